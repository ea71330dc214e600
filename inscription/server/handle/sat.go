package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
	"github.com/inscription-c/ordinals/inscription/ordinal"
	"github.com/inscription-c/ordinals/inscription/server/handle/api"
)

type RespSat struct {
	Sat           uint64         `json:"sat"`
	Height        uint64         `json:"height"`
	Epoch         uint64         `json:"epoch"`
	EpochPosition uint64         `json:"epoch_position"`
	Third         uint64         `json:"third"`
	Degree        string         `json:"degree"`
	Rarity        ordinal.Rarity `json:"rarity"`
	Coin          bool           `json:"coin"`
	NineBall      bool           `json:"nine_ball"`
	// Outpoint is the coinbase output the sat was assigned to, empty when
	// its block is not indexed or the sat was left unclaimed.
	Outpoint string `json:"outpoint"`
	Offset   uint64 `json:"offset"`
}

// Sat describes a sat and locates its coinbase output.
func (h *Handler) Sat(ctx *gin.Context) {
	n, err := strconv.ParseUint(ctx.Param("sat"), 10, 64)
	if err != nil || !ordinal.Sat(n).Valid() {
		ctx.JSON(http.StatusBadRequest, api.RespErr(api.CodeParamsInvalid, "invalid sat"))
		return
	}
	if err := h.doSat(ctx, ordinal.Sat(n)); err != nil {
		ctx.JSON(http.StatusInternalServerError, api.RespErr(api.CodeDbError, err.Error()))
		return
	}
}

func (h *Handler) doSat(ctx *gin.Context, sat ordinal.Sat) error {
	resp := &RespSat{
		Sat:           sat.N(),
		Height:        sat.Height(),
		Epoch:         uint64(sat.Epoch()),
		EpochPosition: sat.EpochPosition(),
		Third:         sat.Third(),
		Degree:        sat.Degree().String(),
		Rarity:        sat.Rarity(),
		Coin:          sat.Coin(),
		NineBall:      sat.NineBall(),
	}

	row, err := h.DB().FindCoinbaseOutpointBySat(sat.Uint256().Dec())
	if err != nil {
		return err
	}
	if row.Id > 0 {
		r, err := row.Range()
		if err != nil {
			return err
		}
		resp.Outpoint = row.Outpoint
		resp.Offset = new(uint256.Int).Sub(sat.Uint256(), r.Start).Uint64()
	}
	ctx.JSON(http.StatusOK, api.RespOK(resp))
	return nil
}
