package ordinal

import (
	"sort"

	"github.com/inscription-c/ordinals/constants"
)

// Epoch is a halving period.
type Epoch uint64

// FirstPostSubsidy is the first epoch whose subsidy is zero.
const FirstPostSubsidy = Epoch(constants.FirstPostSubsidyEpoch)

// epochStartingSats[e] is the first sat mined in epoch e.
var epochStartingSats [FirstPostSubsidy + 1]Sat

func init() {
	var sat Sat
	for e := Epoch(0); e < FirstPostSubsidy; e++ {
		epochStartingSats[e] = sat
		sat += Sat(e.Subsidy() * constants.SubsidyHalvingInterval)
	}
	epochStartingSats[FirstPostSubsidy] = Sat(constants.SupplySat)
}

func EpochFromHeight(height uint64) Epoch {
	return Epoch(height / constants.SubsidyHalvingInterval)
}

func EpochFromSat(sat Sat) Epoch {
	i := sort.Search(len(epochStartingSats), func(i int) bool {
		return epochStartingSats[i] > sat
	})
	return Epoch(i - 1)
}

func (e Epoch) Subsidy() uint64 {
	if e < FirstPostSubsidy {
		return (50 * constants.OneBtc) >> e
	}
	return 0
}

func (e Epoch) StartingHeight() uint64 {
	return uint64(e) * constants.SubsidyHalvingInterval
}

func (e Epoch) StartingSat() Sat {
	if e >= FirstPostSubsidy {
		return Sat(constants.SupplySat)
	}
	return epochStartingSats[e]
}
