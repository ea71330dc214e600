package ordinal

import (
	"github.com/holiman/uint256"
	"github.com/inscription-c/ordinals/constants"
)

// Sat is the ordinal number of a single satoshi.
type Sat uint64

func (s Sat) N() uint64 {
	return uint64(s)
}

// Valid reports whether s will ever be mined.
func (s Sat) Valid() bool {
	return uint64(s) < constants.SupplySat
}

func (s Sat) Uint256() *uint256.Int {
	return uint256.NewInt(uint64(s))
}

func (s Sat) Epoch() Epoch {
	return EpochFromSat(s)
}

// EpochPosition is the offset of s from the first sat of its epoch.
func (s Sat) EpochPosition() uint64 {
	return uint64(s - s.Epoch().StartingSat())
}

// Height returns the height of the block that mined s.
func (s Sat) Height() uint64 {
	e := s.Epoch()
	subsidy := e.Subsidy()
	if subsidy == 0 {
		return e.StartingHeight()
	}
	return e.StartingHeight() + s.EpochPosition()/subsidy
}

// Third is the position of s within the subsidy of its block.
func (s Sat) Third() uint64 {
	subsidy := s.Epoch().Subsidy()
	if subsidy == 0 {
		return 0
	}
	return s.EpochPosition() % subsidy
}

func (s Sat) Degree() Degree {
	return NewDegree(s)
}

func (s Sat) Rarity() Rarity {
	return NewRarity(s)
}

// Coin reports whether s is the first sat of a whole bitcoin.
func (s Sat) Coin() bool {
	return uint64(s)%constants.OneBtc == 0
}

// NineBall reports whether s was mined in block 9.
func (s Sat) NineBall() bool {
	return uint64(s) >= 50*constants.OneBtc*9 && uint64(s) < 50*constants.OneBtc*10
}
