package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"github.com/inscription-c/ordinals/inscription/server/handle/api"
)

// RespInscription is a struct that represents the response for an inscription request.
type RespInscription struct {
	InscriptionId   string      `json:"inscription_id"`
	Height          uint64      `json:"height"`
	TxIdx           uint32      `json:"tx_idx"`
	Timestamp       int64       `json:"timestamp"`
	ContentType     string      `json:"content_type"`
	MediaType       string      `json:"media_type"`
	ContentEncoding string      `json:"content_encoding"`
	ContentLength   uint32      `json:"content_length"`
	Pointer         *uint64     `json:"pointer"`
	Parent          string      `json:"parent"`
	MetaProtocol    string      `json:"metaprotocol"`
	Metadata        string      `json:"metadata"`
	MetadataJson    interface{} `json:"metadata_json,omitempty"`
}

// Inscription is a handler function for handling inscription requests.
func (h *Handler) Inscription(ctx *gin.Context) {
	id := tables.StringToInscriptionId(ctx.Param("id"))
	if id == nil {
		ctx.JSON(http.StatusBadRequest, api.RespErr(api.CodeParamsInvalid, "invalid inscription id"))
		return
	}
	if err := h.doInscription(ctx, id); err != nil {
		ctx.JSON(http.StatusInternalServerError, api.RespErr(api.CodeDbError, err.Error()))
		return
	}
}

func (h *Handler) doInscription(ctx *gin.Context, id *tables.InscriptionId) error {
	ins, err := h.DB().GetInscriptionById(id)
	if err != nil {
		return err
	}
	if ins.Id == 0 {
		ctx.JSON(http.StatusNotFound, api.RespErr(api.CodeNotFound, "inscription not found"))
		return nil
	}

	resp := &RespInscription{
		InscriptionId:   ins.InscriptionId.String(),
		Height:          ins.Height,
		TxIdx:           ins.TxIdx,
		Timestamp:       ins.Timestamp,
		ContentType:     ins.ContentType,
		MediaType:       ins.MediaType,
		ContentEncoding: ins.ContentEncoding,
		ContentLength:   ins.ContentSize,
		Pointer:         ins.Pointer,
		Parent:          ins.Parent,
		MetaProtocol:    ins.MetaProtocol,
		Metadata:        ins.Metadata,
	}
	if v, ok := decodeMetadata(ins.Metadata); ok {
		resp.MetadataJson = v
	}
	ctx.JSON(http.StatusOK, api.RespOK(resp))
	return nil
}
