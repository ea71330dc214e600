package block

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/inscription-c/ordinals/inscription/envelope"
	"github.com/inscription-c/ordinals/inscription/ordinal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var p2trScript = append([]byte{txscript.OP_1, txscript.OP_DATA_32}, bytes.Repeat([]byte{0x33}, 32)...)

func coinbaseTx(t *testing.T, values ...int64) *Transaction {
	t.Helper()
	msg := wire.NewMsgTx(2)
	msg.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex), []byte{0x51, 0x51}, nil))
	for _, v := range values {
		msg.AddTxOut(wire.NewTxOut(v, p2trScript))
	}
	tx, err := FromMsgTx(msg, &chaincfg.MainNetParams)
	require.NoError(t, err)
	require.True(t, tx.Coinbase)
	return tx
}

// revealTx spends a fake outpoint with tapscript as the witness script.
func revealTx(t *testing.T, seed byte, tapscript []byte, values ...int64) *Transaction {
	t.Helper()
	prev := chainhash.Hash{}
	for i := range prev {
		prev[i] = seed
	}
	msg := wire.NewMsgTx(2)
	msg.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prev, 1), nil, [][]byte{
		bytes.Repeat([]byte{0x01}, 64),
		tapscript,
		append([]byte{0xc1}, bytes.Repeat([]byte{0x02}, 32)...),
	}))
	for _, v := range values {
		msg.AddTxOut(wire.NewTxOut(v, p2trScript))
	}
	tx, err := FromMsgTx(msg, &chaincfg.MainNetParams)
	require.NoError(t, err)
	return tx
}

func inscriptionScript(t *testing.T, contentType string, body []byte) []byte {
	t.Helper()
	script, err := txscript.NewScriptBuilder().
		AddData(bytes.Repeat([]byte{0x11}, 32)).
		AddOp(txscript.OP_CHECKSIG).
		AddOp(txscript.OP_FALSE).
		AddOp(txscript.OP_IF).
		AddData([]byte("ord")).
		AddFullData([]byte{1}).
		AddData([]byte(contentType)).
		AddOp(txscript.OP_0).
		AddData(body).
		AddOp(txscript.OP_ENDIF).
		Script()
	require.NoError(t, err)
	return script
}

func TestFromMsgTx(t *testing.T) {
	tx := revealTx(t, 0x0a, inscriptionScript(t, "text/plain", []byte("hi")), 546, 1_000)
	assert.False(t, tx.Coinbase)
	require.Len(t, tx.Inputs, 1)
	assert.Equal(t, bytes.Repeat([]byte("0a"), 32), []byte(tx.Inputs[0][:64]))
	assert.Equal(t, ":1", tx.Inputs[0][64:])
	assert.Equal(t, []uint64{546, 1_000}, tx.Values())
	assert.Equal(t, uint64(1_546), tx.Amount())
	assert.NotEmpty(t, tx.Outputs[0].Address)
	assert.Equal(t, "bc1p", tx.Outputs[0].Address[:4])

	raw, err := tx.Raw()
	require.NoError(t, err)
	assert.Equal(t, tx.Hex, hex.EncodeToString(raw))
}

func TestFromVerbose(t *testing.T) {
	v := &btcjson.GetBlockVerboseTxResult{
		Hash:         "00000000000000000002a7c4c1e48d76c5a37902165a270156b7a8d72728a054",
		PreviousHash: "00000000000000000001b16b7b2b2d5d2ad0d35b6cd5c2d0f2a0ed6e6c3e0f0f",
		Height:       767430,
		Time:         1671000000,
		Tx: []btcjson.TxRawResult{
			{
				Txid: "aa",
				Hex:  "00",
				Vin:  []btcjson.Vin{{Coinbase: "03c6b50b"}},
				Vout: []btcjson.Vout{
					{Value: 6.33613403, N: 0, ScriptPubKey: btcjson.ScriptPubKeyResult{Address: "bc1qminer"}},
					{Value: 0, N: 1},
				},
			},
			{
				Txid: "bb",
				Hex:  "0063",
				Vin:  []btcjson.Vin{{Txid: "cc", Vout: 3}},
				Vout: []btcjson.Vout{
					{Value: 0.00000546, N: 0, ScriptPubKey: btcjson.ScriptPubKeyResult{Addresses: []string{"bc1pdest"}}},
				},
			},
		},
	}
	blk, err := FromVerbose(v)
	require.NoError(t, err)
	assert.Equal(t, uint64(767430), blk.Height)
	assert.Equal(t, v.PreviousHash, blk.PrevHash)
	assert.Equal(t, int64(1671000000), blk.Timestamp.Unix())
	require.Len(t, blk.Transactions, 2)

	cb := blk.Transactions[0]
	assert.True(t, cb.Coinbase)
	assert.Empty(t, cb.Inputs)
	assert.Equal(t, []uint64{633_613_403, 0}, cb.Values())
	assert.Equal(t, "bc1qminer", cb.Outputs[0].Address)

	tx := blk.Transactions[1]
	assert.False(t, tx.Coinbase)
	assert.Equal(t, []string{"cc:3"}, tx.Inputs)
	assert.Equal(t, []uint64{546}, tx.Values())
	assert.Equal(t, "bc1pdest", tx.Outputs[0].Address)

	v.Height = -1
	_, err = FromVerbose(v)
	assert.Error(t, err)
}

func TestAssemble(t *testing.T) {
	supply := ordinal.NewMemorySupply()
	require.NoError(t, supply.AddSupply(0, ordinal.Subsidy(0)))

	good := revealTx(t, 0x0a, inscriptionScript(t, "text/plain;charset=utf-8", []byte("hello")), 546)

	bad := []byte{txscript.OP_FALSE, txscript.OP_IF, 0x03, 'o', 'r', 'd', txscript.OP_DATA_1, 0x04, 0x01, 0xff, txscript.OP_0, txscript.OP_ENDIF}
	malformed := revealTx(t, 0x0b, bad, 600)
	plain := revealTx(t, 0x0c, []byte{txscript.OP_TRUE}, 700, 800)

	blk := &Block{
		Height: 1,
		Hash:   "hash1",
		Transactions: []*Transaction{
			coinbaseTx(t, 3_000_000_000, 2_000_001_000),
			good,
			malformed,
			plain,
		},
	}

	a := NewAssembler(WithSupply(supply), WithDecodeLimit(2))
	summary, err := a.Assemble(context.Background(), blk)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), summary.Height)
	assert.Equal(t, uint64(5_000_000_000), summary.Subsidy)
	assert.Equal(t, uint64(5_000_001_000), summary.MinerReward)
	assert.Equal(t, uint64(1_000), summary.Fees)
	assert.Equal(t, uint64(5_000_000_000), summary.FirstOrdinal.Uint64())
	assert.True(t, summary.Leftover.Empty())
	require.Len(t, summary.Txs, 4)

	cb := summary.Txs[0]
	require.Len(t, cb.Assignments, 2)
	assert.Equal(t, "5000000000+3000000000", cb.Assignments[0].Ordinals.String())
	assert.Equal(t, "8000000000+2000000000", cb.Assignments[1].Ordinals.String())

	require.Len(t, summary.Txs[1].Inscriptions, 1)
	insc := summary.Txs[1].Inscriptions[0]
	assert.Equal(t, good.Txid+"i0", insc.Id)
	assert.Equal(t, "hello", insc.Content)
	assert.Equal(t, 1, summary.Txs[1].Idx)
	assert.NoError(t, summary.Txs[1].DecodeErr)

	assert.Empty(t, summary.Txs[2].Inscriptions)
	assert.ErrorIs(t, summary.Txs[2].DecodeErr, envelope.ErrUnknownFieldCode)
	require.Len(t, summary.Txs[2].Assignments, 1)
	assert.True(t, summary.Txs[2].Assignments[0].Relative)

	assert.Empty(t, summary.Txs[3].Inscriptions)
	assert.Equal(t, "700+800", summary.Txs[3].Assignments[1].Ordinals.String())

	assert.Equal(t, 1, summary.InscriptionCount())
	assert.Equal(t, 1, summary.DecodeFailures())

	// the subsidy was added once, at height 1
	total, err := supply.TotalSupply(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000_000), total.Uint64())
	_, err = a.Assemble(context.Background(), blk)
	assert.ErrorIs(t, err, ordinal.ErrSupplyExists)
}

func TestAssembleOrdering(t *testing.T) {
	a := NewAssembler()
	_, err := a.Assemble(context.Background(), &Block{Height: 5})
	assert.ErrorIs(t, err, ordinal.ErrSupplyNotFound)

	summary, err := a.Assemble(context.Background(), &Block{Height: 0, Transactions: []*Transaction{coinbaseTx(t, 1_000)}})
	require.NoError(t, err)
	assert.Equal(t, "1000+4999999000", summary.Leftover.String())

	summary, err = a.Assemble(context.Background(), &Block{Height: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000_000), summary.FirstOrdinal.Uint64())
	assert.Equal(t, "5000000000+5000000000", summary.Leftover.String())
}

func TestAssembleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	supply := ordinal.NewMemorySupply()
	a := NewAssembler(WithSupply(supply))
	blk := &Block{Transactions: []*Transaction{
		revealTx(t, 0x0a, inscriptionScript(t, "text/plain", []byte("x")), 546),
	}}
	_, err := a.Assemble(ctx, blk)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = supply.TotalSupply(0)
	assert.ErrorIs(t, err, ordinal.ErrSupplyNotFound)
}
