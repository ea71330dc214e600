package ordinal

import "fmt"

type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

func NewRarity(sat Sat) Rarity {
	d := NewDegree(sat)
	switch {
	case d.Hour == 0 && d.Minute == 0 && d.Second == 0 && d.Third == 0:
		return RarityMythic
	case d.Minute == 0 && d.Second == 0 && d.Third == 0:
		return RarityLegendary
	case d.Minute == 0 && d.Third == 0:
		return RarityEpic
	case d.Second == 0 && d.Third == 0:
		return RarityRare
	case d.Third == 0:
		return RarityUncommon
	default:
		return RarityCommon
	}
}

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	case RarityMythic:
		return "mythic"
	default:
		return fmt.Sprintf("rarity(%d)", uint8(r))
	}
}

func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
