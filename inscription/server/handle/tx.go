package handle

import (
	"net/http"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gin-gonic/gin"
	"github.com/inscription-c/ordinals/inscription/server/handle/api"
)

// RespTx is an indexed transaction. The relative ranges of its outputs are
// offsets into the sats of Inputs, concatenated in order.
type RespTx struct {
	Txid         string   `json:"txid"`
	Height       uint64   `json:"height"`
	Idx          uint32   `json:"idx"`
	Coinbase     bool     `json:"coinbase"`
	Amount       uint64   `json:"amount"`
	OutputCount  uint32   `json:"output_count"`
	Inputs       []string `json:"inputs"`
	Inscriptions []string `json:"inscriptions"`
	DecodeError  string   `json:"decode_error,omitempty"`
}

// Tx returns a transaction with the outpoints it spends and its inscriptions.
func (h *Handler) Tx(ctx *gin.Context) {
	txid := ctx.Param("txid")
	if _, err := chainhash.NewHashFromStr(txid); err != nil || len(txid) != 2*chainhash.HashSize {
		ctx.JSON(http.StatusBadRequest, api.RespErr(api.CodeParamsInvalid, "invalid txid"))
		return
	}
	if err := h.doTx(ctx, txid); err != nil {
		ctx.JSON(http.StatusInternalServerError, api.RespErr(api.CodeDbError, err.Error()))
		return
	}
}

func (h *Handler) doTx(ctx *gin.Context, txid string) error {
	row, err := h.DB().GetTransaction(txid)
	if err != nil {
		return err
	}
	if row.Id == 0 {
		ctx.JSON(http.StatusNotFound, api.RespErr(api.CodeNotFound, "transaction not indexed"))
		return nil
	}

	inputs, err := h.DB().FindTransactionInputs(txid)
	if err != nil {
		return err
	}
	list, err := h.DB().FindInscriptionsByTxId(txid)
	if err != nil {
		return err
	}

	resp := &RespTx{
		Txid:         row.TxId,
		Height:       row.Height,
		Idx:          row.Idx,
		Coinbase:     row.Coinbase,
		Amount:       row.Amount,
		OutputCount:  row.OutputCount,
		Inputs:       make([]string, 0, len(inputs)),
		Inscriptions: make([]string, 0, len(list)),
		DecodeError:  row.DecodeError,
	}
	resp.Inputs = append(resp.Inputs, inputs...)
	for _, ins := range list {
		resp.Inscriptions = append(resp.Inscriptions, ins.InscriptionId.String())
	}
	ctx.JSON(http.StatusOK, api.RespOK(resp))
	return nil
}
