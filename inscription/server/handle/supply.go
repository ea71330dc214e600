package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
	"github.com/inscription-c/ordinals/inscription/ordinal"
	"github.com/inscription-c/ordinals/inscription/server/handle/api"
)

type RespSupply struct {
	Height uint64 `json:"height"`
	// Subsidy is the block subsidy at Height in sats.
	Subsidy uint64 `json:"subsidy"`
	// FirstOrdinal is the supply mined before Height, the first sat of its subsidy.
	FirstOrdinal string `json:"first_ordinal"`
	// Total is the supply mined through Height.
	Total string `json:"total"`
}

// Supply returns the cumulative subsidy around an indexed height.
func (h *Handler) Supply(ctx *gin.Context) {
	height, err := parseHeight(ctx.Param("height"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, api.RespErr(api.CodeParamsInvalid, "invalid height"))
		return
	}
	if err := h.doSupply(ctx, height); err != nil {
		ctx.JSON(http.StatusInternalServerError, api.RespErr(api.CodeDbError, err.Error()))
		return
	}
}

func (h *Handler) doSupply(ctx *gin.Context, height uint64) error {
	total, err := h.DB().TotalSupply(height)
	if errors.Is(err, ordinal.ErrSupplyNotFound) {
		ctx.JSON(http.StatusNotFound, api.RespErr(api.CodeNotIndexed, "height not indexed"))
		return nil
	}
	if err != nil {
		return err
	}
	subsidy := ordinal.Subsidy(height)
	first := new(uint256.Int).SubUint64(total, subsidy)
	ctx.JSON(http.StatusOK, api.RespOK(&RespSupply{
		Height:       height,
		Subsidy:      subsidy,
		FirstOrdinal: first.Dec(),
		Total:        total.Dec(),
	}))
	return nil
}
