package handle

import (
	"bytes"
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"github.com/inscription-c/ordinals/inscription/server/handle/api"
	"github.com/inscription-c/ordinals/internal/util"
)

const contentTypeOctetStream = "application/octet-stream"

// Content serves the body of an inscription.
func (h *Handler) Content(ctx *gin.Context) {
	id := tables.StringToInscriptionId(ctx.Param("id"))
	if id == nil {
		ctx.JSON(http.StatusBadRequest, api.RespErr(api.CodeParamsInvalid, "invalid inscription id"))
		return
	}
	if err := h.doContent(ctx, id); err != nil {
		ctx.JSON(http.StatusInternalServerError, api.RespErr(api.CodeError500, err.Error()))
		return
	}
}

func (h *Handler) loadContent(id *tables.InscriptionId) (*tables.Inscriptions, error) {
	key := id.String()
	if v, ok := h.content.Get(key); ok {
		return v.(*tables.Inscriptions), nil
	}
	ins, err := h.DB().GetInscriptionContent(id)
	if err != nil {
		return nil, err
	}
	if ins.Id == 0 {
		return nil, nil
	}
	h.cacheContent(key, &ins)
	return &ins, nil
}

func (h *Handler) doContent(ctx *gin.Context, id *tables.InscriptionId) error {
	ins, err := h.loadContent(id)
	if err != nil {
		return err
	}
	if ins == nil {
		ctx.JSON(http.StatusNotFound, api.RespErr(api.CodeNotFound, "inscription not found"))
		return nil
	}

	ctx.Header("Cache-Control", "public, max-age=1209600, immutable")

	contentType := contentTypeOctetStream
	if ins.ContentType != "" {
		contentType = ins.ContentType
	}
	body := ins.Body

	if ins.ContentEncoding != "" {
		acceptEncoding := util.ParseAcceptEncoding(ctx.GetHeader("Accept-Encoding"))
		switch {
		case acceptEncoding.IsAccept(ins.ContentEncoding):
			ctx.Header("Content-Encoding", ins.ContentEncoding)
		case ins.ContentEncoding == "br" && len(body) == 0:
		case ins.ContentEncoding == "br":
			decompressed, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
			if err != nil {
				return err
			}
			body = decompressed
		default:
			ctx.Status(http.StatusNotAcceptable)
			return nil
		}
	}

	ctx.Data(http.StatusOK, contentType, body)
	return nil
}
