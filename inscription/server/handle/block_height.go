package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inscription-c/ordinals/inscription/server/handle/api"
)

type RespBlockHeight struct {
	Height uint64 `json:"height"`
}

// BlockHeight returns the last indexed block height.
func (h *Handler) BlockHeight(ctx *gin.Context) {
	if err := h.doBlockHeight(ctx); err != nil {
		ctx.JSON(http.StatusInternalServerError, api.RespErr(api.CodeDbError, err.Error()))
		return
	}
}

func (h *Handler) doBlockHeight(ctx *gin.Context) error {
	height, ok, err := h.DB().BlockHeight()
	if err != nil {
		return err
	}
	if !ok {
		ctx.JSON(http.StatusNotFound, api.RespErr(api.CodeNotIndexed, "no block indexed"))
		return nil
	}
	ctx.JSON(http.StatusOK, api.RespOK(&RespBlockHeight{Height: height}))
	return nil
}

// RespBlock is an indexed block with its coinbase accounting.
type RespBlock struct {
	Height           uint64 `json:"height"`
	Hash             string `json:"hash"`
	PrevHash         string `json:"prev_hash"`
	Timestamp        int64  `json:"timestamp"`
	Subsidy          uint64 `json:"subsidy"`
	Fees             uint64 `json:"fees"`
	MinerReward      uint64 `json:"miner_reward"`
	FirstOrdinal     string `json:"first_ordinal"`
	Leftover         string `json:"leftover"`
	TxCount          uint32 `json:"tx_count"`
	InscriptionCount uint32 `json:"inscription_count"`
}

// Block returns the indexed block at height.
func (h *Handler) Block(ctx *gin.Context) {
	height, err := parseHeight(ctx.Param("height"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, api.RespErr(api.CodeParamsInvalid, "invalid height"))
		return
	}
	if err := h.doBlock(ctx, height); err != nil {
		ctx.JSON(http.StatusInternalServerError, api.RespErr(api.CodeDbError, err.Error()))
		return
	}
}

func (h *Handler) doBlock(ctx *gin.Context, height uint64) error {
	blk, err := h.DB().GetBlockInfo(height)
	if err != nil {
		return err
	}
	if blk.Id == 0 {
		ctx.JSON(http.StatusNotFound, api.RespErr(api.CodeNotFound, "block not indexed"))
		return nil
	}
	ctx.JSON(http.StatusOK, api.RespOK(&RespBlock{
		Height:           blk.Height,
		Hash:             blk.Hash,
		PrevHash:         blk.PrevHash,
		Timestamp:        blk.Timestamp,
		Subsidy:          blk.Subsidy,
		Fees:             blk.Fees,
		MinerReward:      blk.MinerReward,
		FirstOrdinal:     blk.FirstOrdinal,
		Leftover:         blk.LeftoverStart + "+" + blk.LeftoverSize,
		TxCount:          blk.TxCount,
		InscriptionCount: blk.InscriptionCount,
	}))
	return nil
}

func parseHeight(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
