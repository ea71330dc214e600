package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/ordinals/inscription/server/handle/api"
)

type RespStatistics struct {
	Height     uint64            `json:"height"`
	Statistics map[string]uint64 `json:"statistics"`
}

// Statistics returns the indexer counters and the last indexed height.
func (h *Handler) Statistics(ctx *gin.Context) {
	if err := h.doStatistics(ctx); err != nil {
		ctx.JSON(http.StatusInternalServerError, api.RespErr(api.CodeDbError, err.Error()))
		return
	}
}

func (h *Handler) doStatistics(ctx *gin.Context) error {
	height, _, err := h.DB().BlockHeight()
	if err != nil {
		return err
	}
	counters, err := h.DB().Statistics()
	if err != nil {
		return err
	}
	resp := &RespStatistics{
		Height:     height,
		Statistics: make(map[string]uint64, len(counters)),
	}
	for name, count := range counters {
		resp.Statistics[string(name)] = count
	}
	ctx.JSON(http.StatusOK, api.RespOK(resp))
	return nil
}
