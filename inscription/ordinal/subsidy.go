// Package ordinal numbers sats and assigns the ranges a block mints to its outputs.
package ordinal

import "github.com/inscription-c/ordinals/constants"

// Subsidy returns the block reward in sats at height. Heights past the 64th
// halving shift the reward out completely.
func Subsidy(height uint64) uint64 {
	return (50 * constants.OneBtc) >> (height / constants.SubsidyHalvingInterval)
}
