package ordinal

import (
	"fmt"

	"github.com/inscription-c/ordinals/constants"
)

// Degree locates a sat in the halving, difficulty adjustment and cycle schedule.
type Degree struct {
	Hour   uint64 `json:"hour"`
	Minute uint64 `json:"minute"`
	Second uint64 `json:"second"`
	Third  uint64 `json:"third"`
}

func NewDegree(sat Sat) Degree {
	height := sat.Height()
	return Degree{
		Hour:   height / (constants.CycleEpochs * constants.SubsidyHalvingInterval),
		Minute: height % constants.SubsidyHalvingInterval,
		Second: height % constants.DiffChangeInterval,
		Third:  sat.Third(),
	}
}

func (d Degree) String() string {
	return fmt.Sprintf("%d°%d′%d″%d‴", d.Hour, d.Minute, d.Second, d.Third)
}
