package tables

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/inscription-c/ordinals/inscription/ordinal"
	"gotest.tools/assert"
)

const txid = "4f6864e1b0c6a6bd7f4c8d1bf8d1fc0a8e8b92a0c06ab5b43c0ea0d1a4c1a293"

func TestInscriptionId(t *testing.T) {
	id := NewInscriptionId(txid, 2)
	assert.Equal(t, id.String(), txid+"i2")

	data, err := json.Marshal(id)
	assert.NilError(t, err)
	assert.Equal(t, string(data), `"`+txid+`i2"`)

	parsed := StringToInscriptionId(txid + "i2")
	assert.Assert(t, parsed != nil)
	assert.Equal(t, *parsed, *id)
	assert.Assert(t, StringToInscriptionId(txid) == nil)
}

func TestOutpointOrdinals(t *testing.T) {
	list, _ := ordinal.AssignCoinbase(txid, []uint64{546, 0}, uint256.NewInt(5_000_000_000), ordinal.Subsidy(1))
	row := NewOutpointOrdinals(1, 546, "bc1p", list[0])
	assert.Equal(t, row.Outpoint, txid+":0")
	assert.Equal(t, row.Start, "5000000000")
	assert.Equal(t, row.Size, "546")
	assert.Equal(t, row.Rarity, "uncommon")
	assert.Assert(t, !row.Relative)

	r, err := row.Range()
	assert.NilError(t, err)
	assert.Assert(t, r.Equal(list[0].Ordinals))

	empty := NewOutpointOrdinals(1, 0, "", list[1])
	assert.Equal(t, empty.Rarity, "")

	rel := NewOutpointOrdinals(2, 10, "", ordinal.AssignRelative(txid, []uint64{10})[0])
	assert.Assert(t, rel.Relative)
	assert.Equal(t, rel.Rarity, "")
}

func TestTransactionInputs(t *testing.T) {
	inputs := []string{txid + ":1", txid + ":0"}
	list := NewTransactionInputs(txid, 7, inputs)
	assert.Equal(t, len(list), 2)
	for i, in := range list {
		assert.Equal(t, in.TxId, txid)
		assert.Equal(t, in.Height, uint64(7))
		assert.Equal(t, in.Idx, uint32(i))
		assert.Equal(t, in.Outpoint, inputs[i])
	}
	assert.Equal(t, len(NewTransactionInputs(txid, 7, nil)), 0)
}
