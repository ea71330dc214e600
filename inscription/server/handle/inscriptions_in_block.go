package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogf/gf/v2/util/gconv"
	"github.com/inscription-c/ordinals/inscription/server/handle/api"
)

type RespInscriptionsInBlock struct {
	BlockHeight  uint64   `json:"block_height"`
	PageIndex    int      `json:"page_index"`
	More         bool     `json:"more"`
	Inscriptions []string `json:"inscriptions"`
}

// InscriptionsInBlock pages the inscriptions revealed in a block, ?page= starts at 1.
func (h *Handler) InscriptionsInBlock(ctx *gin.Context) {
	height, err := parseHeight(ctx.Param("height"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, api.RespErr(api.CodeParamsInvalid, "invalid height"))
		return
	}
	page := gconv.Int(ctx.DefaultQuery("page", "1"))
	if err := h.doInscriptionsInBlock(ctx, height, page); err != nil {
		ctx.JSON(http.StatusInternalServerError, api.RespErr(api.CodeDbError, err.Error()))
		return
	}
}

func (h *Handler) doInscriptionsInBlock(ctx *gin.Context, height uint64, page int) error {
	if page <= 0 {
		ctx.JSON(http.StatusBadRequest, api.RespErr(api.CodeParamsInvalid, "invalid page"))
		return nil
	}

	size := h.options.pageSize
	list, err := h.DB().FindInscriptionsInBlock(height, page, size)
	if err != nil {
		return err
	}
	more := len(list) > size
	if more {
		list = list[:size]
	}

	inscriptionsIds := make([]string, 0, len(list))
	for _, v := range list {
		inscriptionsIds = append(inscriptionsIds, v.String())
	}

	ctx.JSON(http.StatusOK, api.RespOK(&RespInscriptionsInBlock{
		BlockHeight:  height,
		PageIndex:    page,
		More:         more,
		Inscriptions: inscriptionsIds,
	}))
	return nil
}
