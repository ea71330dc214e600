package inscription

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/holiman/uint256"
	"github.com/inscription-c/ordinals/config"
	"github.com/inscription-c/ordinals/inscription/envelope"
	"github.com/inscription-c/ordinals/inscription/ordinal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeTapscript() []byte {
	script := []byte{txscript.OP_FALSE, txscript.OP_IF, txscript.OP_DATA_3, 'o', 'r', 'd'}
	script = append(script, txscript.OP_DATA_1, 0x01, txscript.OP_DATA_10)
	script = append(script, "text/plain"...)
	script = append(script, txscript.OP_0, txscript.OP_DATA_5)
	script = append(script, "hello"...)
	return append(script, txscript.OP_ENDIF)
}

func revealMsg() *wire.MsgTx {
	tx := wire.NewMsgTx(2)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{0x0a}, 0), nil,
		wire.TxWitness{envelopeTapscript(), {0xc1}}))
	tx.AddTxOut(wire.NewTxOut(546, []byte{txscript.OP_1}))
	tx.AddTxOut(wire.NewTxOut(1000, []byte{txscript.OP_1}))
	return tx
}

func coinbaseMsg(values ...int64) *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex), []byte{0x03, 0x01, 0x02}, nil))
	for _, v := range values {
		tx.AddTxOut(wire.NewTxOut(v, []byte{txscript.OP_TRUE}))
	}
	return tx
}

func rawBytes(t *testing.T, tx *wire.MsgTx) []byte {
	t.Helper()
	buf := bytes.NewBuffer(make([]byte, 0, tx.SerializeSize()))
	require.NoError(t, tx.Serialize(buf))
	return buf.Bytes()
}

func TestDecodeRawTx(t *testing.T) {
	msg := revealMsg()
	result, parsed, err := DecodeRawTx(envelope.NewDecoder(), rawBytes(t, msg))
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, msg.TxHash().String(), result.Txid)
	require.Len(t, result.Inscriptions, 1)
	ins := result.Inscriptions[0]
	assert.Equal(t, msg.TxHash().String()+"i0", ins.Id)
	assert.Equal(t, "text/plain", *ins.ContentType)
	assert.Equal(t, []byte("hello"), ins.Body)
}

func TestDecodeBareScript(t *testing.T) {
	script := envelopeTapscript()
	result, parsed, err := DecodeRawTx(envelope.NewDecoder(), script)
	require.NoError(t, err)
	assert.Nil(t, parsed)
	assert.Equal(t, chainhash.DoubleHashH(script).String(), result.Txid)
	assert.Len(t, result.Inscriptions, 1)
}

func TestDecodeNoInscription(t *testing.T) {
	result, _, err := DecodeRawTx(envelope.NewDecoder(), rawBytes(t, coinbaseMsg(100)))
	require.NoError(t, err)
	assert.NotNil(t, result.Inscriptions)
	assert.Empty(t, result.Inscriptions)
}

func TestAssignCoinbase(t *testing.T) {
	store := ordinal.NewMemorySupply()
	for h := uint64(0); h < 2; h++ {
		require.NoError(t, store.AddSupply(h, ordinal.Subsidy(h)))
	}

	msg := coinbaseMsg(3_000_000_000, 1_000_000_000)
	result := &DecodeResult{Txid: msg.TxHash().String()}
	require.NoError(t, result.Assign(store, msg, 2, &chaincfg.MainNetParams))

	assert.True(t, result.Coinbase)
	assert.Equal(t, uint64(2), *result.Height)
	require.Len(t, result.Assignments, 2)
	assert.Equal(t, ordinal.NewRange(uint256.NewInt(10_000_000_000), 3_000_000_000), result.Assignments[0].Ordinals)
	assert.Equal(t, ordinal.NewRange(uint256.NewInt(13_000_000_000), 1_000_000_000), result.Assignments[1].Ordinals)
	assert.Equal(t, ordinal.RarityUncommon, result.Assignments[0].Rarity)
	assert.Equal(t, "14000000000+1000000000", result.Leftover.String())

	missing := &DecodeResult{}
	assert.ErrorIs(t, missing.Assign(store, msg, 5, &chaincfg.MainNetParams), ordinal.ErrSupplyNotFound)
}

func TestAssignRelative(t *testing.T) {
	msg := revealMsg()
	result := &DecodeResult{Txid: msg.TxHash().String()}
	require.NoError(t, result.Assign(ordinal.NewMemorySupply(), msg, 800_000, &chaincfg.MainNetParams))
	assert.False(t, result.Coinbase)
	assert.Nil(t, result.Leftover)
	require.Len(t, result.Assignments, 2)
	for _, a := range result.Assignments {
		assert.True(t, a.Relative)
	}
	assert.Equal(t, "546+1000", result.Assignments[1].Ordinals.String())
}

func TestHexOrBinary(t *testing.T) {
	raw := []byte{0x00, 0x63, 0xff}
	assert.Equal(t, raw, hexOrBinary(raw))
	assert.Equal(t, raw, hexOrBinary([]byte(" 0063ff\n")))
	assert.Equal(t, []byte("zz"), hexOrBinary([]byte("zz")))
	assert.Equal(t, []byte{}, hexOrBinary([]byte{}))
}

func TestReadRawTx(t *testing.T) {
	defer func() {
		config.Hex, config.FilePath, config.TxId = "", "", ""
	}()
	raw := rawBytes(t, revealMsg())

	config.Hex = hex.EncodeToString(raw)
	got, err := readRawTx()
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	config.Hex = ""
	config.FilePath = filepath.Join(t.TempDir(), "tx.bin")
	require.NoError(t, os.WriteFile(config.FilePath, raw, 0o600))
	got, err = readRawTx()
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestConfigCheck(t *testing.T) {
	defer func() {
		config.Hex, config.TxId, config.PushData4Width, config.LogLevel = "", "", 0, ""
	}()
	config.LogLevel = "warn"
	config.PushData4Width = 4

	assert.ErrorIs(t, configCheck(), ErrNoInput)

	config.Hex, config.TxId = "00", "ab"
	assert.ErrorIs(t, configCheck(), ErrNoInput)

	config.TxId = ""
	config.PushData4Width = 5
	assert.Error(t, configCheck())

	config.PushData4Width = 3
	require.NoError(t, configCheck())
	assert.NotEmpty(t, config.LedgerDir)
}

func TestNewDecoder(t *testing.T) {
	defer func() {
		config.PushData4Width, config.PushNumTags = 0, false
	}()
	config.PushData4Width = 3
	cfg := newDecoder().Config()
	assert.Equal(t, 3, cfg.PushData4Width)
	assert.False(t, cfg.PushNumTags)

	config.PushNumTags = true
	assert.True(t, newDecoder().Config().PushNumTags)
}
