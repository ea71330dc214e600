package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/ordinals/inscription/ordinal"
	"github.com/inscription-c/ordinals/inscription/server/handle/api"
	"github.com/inscription-c/ordinals/internal/util"
)

type RespOutput struct {
	Outpoint string `json:"outpoint"`
	Height   uint64 `json:"height"`
	Value    uint64 `json:"value"`
	Address  string `json:"address"`
	// Relative ranges are offsets into the input sats of the transaction.
	Relative bool          `json:"relative"`
	Ordinals ordinal.Range `json:"ordinals"`
	Rarity   string        `json:"rarity,omitempty"`
}

// Output returns the ordinal assignment of an outpoint.
func (h *Handler) Output(ctx *gin.Context) {
	outpoint := util.StringToOutpoint(ctx.Param("outpoint"))
	if outpoint == nil {
		ctx.JSON(http.StatusBadRequest, api.RespErr(api.CodeParamsInvalid, "invalid outpoint"))
		return
	}
	if err := h.doOutput(ctx, outpoint.String()); err != nil {
		ctx.JSON(http.StatusInternalServerError, api.RespErr(api.CodeDbError, err.Error()))
		return
	}
}

func (h *Handler) doOutput(ctx *gin.Context, outpoint string) error {
	row, err := h.DB().GetOutpointOrdinals(outpoint)
	if err != nil {
		return err
	}
	if row.Id == 0 {
		ctx.JSON(http.StatusNotFound, api.RespErr(api.CodeNotFound, "output not indexed"))
		return nil
	}
	r, err := row.Range()
	if err != nil {
		return err
	}
	ctx.JSON(http.StatusOK, api.RespOK(&RespOutput{
		Outpoint: row.Outpoint,
		Height:   row.Height,
		Value:    row.Value,
		Address:  row.Address,
		Relative: row.Relative,
		Ordinals: r,
		Rarity:   row.Rarity,
	}))
	return nil
}
