// Package block converts node blocks into the per-block view the indexer works
// on and assembles inscriptions and ordinal assignments for it.
package block

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/inscription-c/ordinals/inscription/ordinal"
	"github.com/inscription-c/ordinals/internal/util"
)

// Output is one transaction output with its value in sats.
type Output struct {
	Index   uint32 `json:"index"`
	Value   uint64 `json:"value"`
	Address string `json:"address,omitempty"`
}

// Transaction is a transaction as the indexer sees it. Inputs holds the
// spent outpoints as txid:vout and is empty for a coinbase.
type Transaction struct {
	Txid     string   `json:"txid"`
	Hex      string   `json:"-"`
	Coinbase bool     `json:"coinbase"`
	Inputs   []string `json:"inputs"`
	Outputs  []Output `json:"outputs"`
}

// Values returns the output values in sats, in output order.
func (t *Transaction) Values() []uint64 {
	values := make([]uint64, len(t.Outputs))
	for i, out := range t.Outputs {
		values[i] = out.Value
	}
	return values
}

// Amount returns the sum of the output values in sats.
func (t *Transaction) Amount() uint64 {
	var sum uint64
	for _, out := range t.Outputs {
		sum += out.Value
	}
	return sum
}

// Raw returns the serialized transaction.
func (t *Transaction) Raw() ([]byte, error) {
	raw, err := hex.DecodeString(t.Hex)
	if err != nil {
		return nil, fmt.Errorf("tx %s hex: %w", t.Txid, err)
	}
	return raw, nil
}

// Block is a block with its transactions in block order.
type Block struct {
	Height       uint64         `json:"height"`
	Hash         string         `json:"hash"`
	PrevHash     string         `json:"prev_hash"`
	Timestamp    time.Time      `json:"timestamp"`
	Transactions []*Transaction `json:"transactions"`
}

// FromVerbose converts a getblock verbosity 2 result.
func FromVerbose(v *btcjson.GetBlockVerboseTxResult) (*Block, error) {
	if v.Height < 0 {
		return nil, fmt.Errorf("block %s: negative height %d", v.Hash, v.Height)
	}
	blk := &Block{
		Height:       uint64(v.Height),
		Hash:         v.Hash,
		PrevHash:     v.PreviousHash,
		Timestamp:    time.Unix(v.Time, 0).UTC(),
		Transactions: make([]*Transaction, 0, len(v.Tx)),
	}
	for i := range v.Tx {
		tx, err := fromTxRaw(&v.Tx[i])
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", blk.Height, err)
		}
		blk.Transactions = append(blk.Transactions, tx)
	}
	return blk, nil
}

func fromTxRaw(raw *btcjson.TxRawResult) (*Transaction, error) {
	tx := &Transaction{
		Txid:    raw.Txid,
		Hex:     raw.Hex,
		Inputs:  make([]string, 0, len(raw.Vin)),
		Outputs: make([]Output, 0, len(raw.Vout)),
	}
	for _, in := range raw.Vin {
		if in.IsCoinBase() {
			tx.Coinbase = true
			continue
		}
		tx.Inputs = append(tx.Inputs, util.FormatOutpoint(in.Txid, in.Vout))
	}
	for _, out := range raw.Vout {
		value, err := ordinal.BtcToSats(out.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d: %w", raw.Txid, out.N, err)
		}
		address := out.ScriptPubKey.Address
		if address == "" && len(out.ScriptPubKey.Addresses) > 0 {
			address = out.ScriptPubKey.Addresses[0]
		}
		tx.Outputs = append(tx.Outputs, Output{
			Index:   out.N,
			Value:   value,
			Address: address,
		})
	}
	return tx, nil
}

// FromMsgTx converts a deserialized transaction. Output addresses are
// rendered for params.
func FromMsgTx(msg *wire.MsgTx, params *chaincfg.Params) (*Transaction, error) {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	if err := msg.Serialize(buf); err != nil {
		return nil, err
	}
	tx := &Transaction{
		Txid:     msg.TxHash().String(),
		Hex:      hex.EncodeToString(buf.Bytes()),
		Coinbase: blockchain.IsCoinBaseTx(msg),
		Inputs:   make([]string, 0, len(msg.TxIn)),
		Outputs:  make([]Output, 0, len(msg.TxOut)),
	}
	if !tx.Coinbase {
		for _, in := range msg.TxIn {
			tx.Inputs = append(tx.Inputs, in.PreviousOutPoint.String())
		}
	}
	for i, out := range msg.TxOut {
		if out.Value < 0 {
			return nil, fmt.Errorf("tx %s output %d: negative value", tx.Txid, i)
		}
		o := Output{Index: uint32(i), Value: uint64(out.Value)}
		_, addrs, _, err := txscript.ExtractPkScriptAddrs(out.PkScript, params)
		if err == nil && len(addrs) > 0 {
			o.Address = addrs[0].EncodeAddress()
		}
		tx.Outputs = append(tx.Outputs, o)
	}
	return tx, nil
}
