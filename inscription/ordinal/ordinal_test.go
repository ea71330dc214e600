package ordinal

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/inscription-c/ordinals/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coinbaseTxid = "0e3e2357e806b6cdb1f70b54c3a3a17b6714ee1f0e68bebb44a74b1efd512098"

func TestSubsidy(t *testing.T) {
	assert.Equal(t, uint64(5_000_000_000), Subsidy(0))
	assert.Equal(t, uint64(5_000_000_000), Subsidy(209_999))
	assert.Equal(t, uint64(2_500_000_000), Subsidy(210_000))
	assert.Equal(t, uint64(625_000_000), Subsidy(630_000))
	assert.Equal(t, uint64(1), Subsidy(210_000*32))
	assert.Equal(t, uint64(0), Subsidy(210_000*33))
	assert.Equal(t, uint64(0), Subsidy(210_000*64))
	assert.Equal(t, uint64(0), Subsidy(210_000*100))
}

func TestEpoch(t *testing.T) {
	assert.Equal(t, Sat(0), Epoch(0).StartingSat())
	assert.Equal(t, Sat(1050000000000000), Epoch(1).StartingSat())
	assert.Equal(t, Sat(2098974609270000), Epoch(11).StartingSat())
	assert.Equal(t, Sat(2099999997480000), Epoch(32).StartingSat())
	assert.Equal(t, Sat(constants.SupplySat), FirstPostSubsidy.StartingSat())
	assert.Equal(t, Sat(constants.SupplySat), Epoch(40).StartingSat())

	assert.Equal(t, Epoch(0), EpochFromSat(0))
	assert.Equal(t, Epoch(0), EpochFromSat(1049999999999999))
	assert.Equal(t, Epoch(1), EpochFromSat(1050000000000000))
	assert.Equal(t, Epoch(32), EpochFromSat(Sat(constants.LastSupplySat)))
	assert.Equal(t, FirstPostSubsidy, EpochFromSat(Sat(constants.SupplySat)))

	assert.Equal(t, Epoch(2), EpochFromHeight(420_000))
	assert.Equal(t, uint64(420_000), Epoch(2).StartingHeight())
	assert.Equal(t, uint64(0), FirstPostSubsidy.Subsidy())
	for h := uint64(0); h < 34*constants.SubsidyHalvingInterval; h += constants.SubsidyHalvingInterval {
		assert.Equal(t, Subsidy(h), EpochFromHeight(h).Subsidy())
	}
}

func TestSat(t *testing.T) {
	assert.Equal(t, uint64(0), Sat(0).Height())
	assert.Equal(t, uint64(0), Sat(4_999_999_999).Height())
	assert.Equal(t, uint64(1), Sat(5_000_000_000).Height())
	assert.Equal(t, uint64(210_000), Sat(1050000000000000).Height())
	assert.Equal(t, uint64(1), Sat(5_000_000_001).Third())

	assert.True(t, Sat(constants.LastSupplySat).Valid())
	assert.False(t, Sat(constants.SupplySat).Valid())
	assert.True(t, Sat(constants.OneBtc*3).Coin())
	assert.True(t, Sat(50*constants.OneBtc*9).NineBall())
	assert.False(t, Sat(50*constants.OneBtc*10).NineBall())

	assert.Equal(t, RarityMythic, Sat(0).Rarity())
	assert.Equal(t, RarityUncommon, Sat(5_000_000_000).Rarity())
	assert.Equal(t, RarityCommon, Sat(1).Rarity())
	assert.Equal(t, RarityRare, Sat(2016*5_000_000_000).Rarity())
	assert.Equal(t, RarityEpic, Sat(1050000000000000).Rarity())
	assert.Equal(t, "0°0′0″0‴", Sat(0).Degree().String())
	assert.Equal(t, "0°1′1″1‴", Sat(5_000_000_001).Degree().String())

	b, err := json.Marshal(RarityLegendary)
	require.NoError(t, err)
	assert.Equal(t, `"legendary"`, string(b))
}

func TestRangeConsume(t *testing.T) {
	start := uint256.NewInt(1_000)
	r := NewRange(start, 500)
	for _, amount := range []uint64{0, 1, 250, 499, 500} {
		taken, remainder := r.ConsumeUint64(amount)
		assert.Equal(t, amount, taken.Len().Uint64())
		assert.Equal(t, 500-amount, remainder.Len().Uint64())
		assert.True(t, taken.Start.Eq(r.Start))
		assert.True(t, remainder.Start.Eq(new(uint256.Int).AddUint64(r.Start, amount)))
		if !remainder.Empty() {
			assert.True(t, remainder.End().Eq(r.End()))
		}
	}
	// the receiver is not modified
	assert.Equal(t, "1000+500", r.String())
	assert.Equal(t, uint64(1_499), r.End().Uint64())
	assert.Nil(t, EmptyRange(start).End())

	assert.Panics(t, func() {
		r.ConsumeUint64(501)
	})
}

func TestRangeContains(t *testing.T) {
	r := NewRange(uint256.NewInt(10), 5)
	assert.False(t, r.Contains(uint256.NewInt(9)))
	assert.True(t, r.Contains(uint256.NewInt(10)))
	assert.True(t, r.Contains(uint256.NewInt(14)))
	assert.False(t, r.Contains(uint256.NewInt(15)))
	assert.False(t, EmptyRange(uint256.NewInt(10)).Contains(uint256.NewInt(10)))
}

func TestRangeRoundTrip(t *testing.T) {
	big, err := uint256.FromDecimal("340282366920938463463374607431768211456")
	require.NoError(t, err)
	for _, r := range []Range{
		NewRange(uint256.NewInt(0), 0),
		NewRange(uint256.NewInt(0), 5_000_000_000),
		NewRange(big, constants.OneBtc),
	} {
		parsed, err := ParseRange(r.String())
		require.NoError(t, err)
		assert.True(t, parsed.Equal(r), r.String())

		b, err := json.Marshal(r)
		require.NoError(t, err)
		decoded := Range{}
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.True(t, decoded.Equal(r), string(b))
	}

	for _, s := range []string{"", "12", "a+1", "1+b"} {
		_, err := ParseRange(s)
		assert.ErrorIs(t, err, ErrInvalidRange, s)
	}
}

func TestBtcToSats(t *testing.T) {
	tests := []struct {
		btc  float64
		sats uint64
	}{
		{0, 0},
		{0.00000546, 546},
		{0.1, 10_000_000},
		{0.29, 29_000_000},
		{1.15, 115_000_000},
		{21, 2_100_000_000},
		{50, 5_000_000_000},
		{20999999.9769, 2099999997690000},
	}
	for _, tt := range tests {
		sats, err := BtcToSats(tt.btc)
		require.NoError(t, err)
		assert.Equal(t, tt.sats, sats, "%v", tt.btc)
	}

	_, err := BtcToSats(-1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	sats, err := ParseBtc("0.00010000")
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), sats)
	_, err = ParseBtc("ten")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = ParseBtc("1e30")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAssignCoinbase(t *testing.T) {
	first := uint256.NewInt(5_000_000_000)
	list, leftover := AssignCoinbase(coinbaseTxid, []uint64{1_000_000_000, 0, 3_000_000_000}, first, Subsidy(1))
	require.Len(t, list, 3)
	assert.Equal(t, coinbaseTxid+":0", list[0].Utxo)
	assert.Equal(t, "5000000000+1000000000", list[0].Ordinals.String())
	assert.False(t, list[0].Relative)
	assert.Equal(t, RarityUncommon, list[0].Rarity)
	assert.Equal(t, "6000000000+0", list[1].Ordinals.String())
	assert.Equal(t, "6000000000+3000000000", list[2].Ordinals.String())
	assert.Equal(t, RarityCommon, list[2].Rarity)
	assert.Equal(t, "9000000000+1000000000", leftover.String())
}

func TestAssignCoinbaseClamp(t *testing.T) {
	// outputs that also collect fees exceed the minted range
	first := uint256.NewInt(0)
	list, leftover := AssignCoinbase(coinbaseTxid, []uint64{4_000_000_000, 1_500_000_000, 7}, first, Subsidy(0))
	require.Len(t, list, 3)
	assert.Equal(t, "0+4000000000", list[0].Ordinals.String())
	assert.Equal(t, "4000000000+1000000000", list[1].Ordinals.String())
	assert.Equal(t, "5000000000+0", list[2].Ordinals.String())
	assert.True(t, leftover.Empty())

	list, leftover = AssignCoinbase(coinbaseTxid, nil, first, 0)
	assert.Empty(t, list)
	assert.True(t, leftover.Empty())
}

func TestAssignRelative(t *testing.T) {
	list := AssignRelative(coinbaseTxid, []uint64{546, 10_000, 0, 1})
	require.Len(t, list, 4)
	want := []string{"0+546", "546+10000", "10546+0", "10546+1"}
	for i, a := range list {
		assert.True(t, a.Relative)
		assert.Equal(t, want[i], a.Ordinals.String())
	}
	assert.Equal(t, coinbaseTxid+":3", list[3].Utxo)
}
