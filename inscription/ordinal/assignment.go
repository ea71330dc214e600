package ordinal

import (
	"github.com/holiman/uint256"
	"github.com/inscription-c/ordinals/internal/util"
)

// Assignment binds an output to an ordinal range. Relative ranges are offsets
// into the sats carried by the transaction inputs and are resolved elsewhere.
type Assignment struct {
	Utxo     string `json:"utxo"`
	Ordinals Range  `json:"ordinals"`
	Relative bool   `json:"relative"`
	// Rarity of the first sat, absolute non-empty ranges only.
	Rarity Rarity `json:"rarity"`
}

// AssignCoinbase walks the coinbase outputs in order over the range the block
// mints, [firstOrdinal, firstOrdinal+subsidy). An output worth more than what
// is left receives only the remainder. The returned range is what no output
// claimed.
func AssignCoinbase(txid string, values []uint64, firstOrdinal *uint256.Int, subsidy uint64) ([]*Assignment, Range) {
	remaining := NewRange(firstOrdinal, subsidy)
	list := make([]*Assignment, 0, len(values))
	for vout, value := range values {
		amount := uint256.NewInt(value)
		if amount.Gt(remaining.Size) {
			amount = remaining.Len()
		}
		var taken Range
		taken, remaining = remaining.Consume(amount)
		a := &Assignment{
			Utxo:     util.FormatOutpoint(txid, uint32(vout)),
			Ordinals: taken,
		}
		if !taken.Empty() && taken.Start.IsUint64() {
			a.Rarity = Sat(taken.Start.Uint64()).Rarity()
		}
		list = append(list, a)
	}
	return list, remaining
}

// AssignRelative numbers the outputs of an ordinary transaction from zero.
func AssignRelative(txid string, values []uint64) []*Assignment {
	counter := uint256.NewInt(0)
	list := make([]*Assignment, 0, len(values))
	for vout, value := range values {
		list = append(list, &Assignment{
			Utxo:     util.FormatOutpoint(txid, uint32(vout)),
			Ordinals: NewRange(counter, value),
			Relative: true,
		})
		counter.AddUint64(counter, value)
	}
	return list
}
