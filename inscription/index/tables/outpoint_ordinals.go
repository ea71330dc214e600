package tables

import (
	"time"

	"github.com/inscription-c/ordinals/inscription/ordinal"
)

// OutpointOrdinals is the ordinal range assigned to an output. Relative rows
// are offsets into the sats of the spending transaction inputs.
type OutpointOrdinals struct {
	Id        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT;NOT NULL"`
	Outpoint  string    `gorm:"column:outpoint;type:varchar(80);uniqueIndex:uk_outpoint;default:'';NOT NULL"`
	Height    uint64    `gorm:"column:height;type:bigint unsigned;index:idx_height;default:0;NOT NULL"`
	Value     uint64    `gorm:"column:value;type:bigint unsigned;default:0;NOT NULL"`
	Address   string    `gorm:"column:address;type:varchar(255);index:idx_address;default:'';NOT NULL"`
	Relative  bool      `gorm:"column:relative;type:tinyint(1);index:idx_relative_start,priority:1;default:0;NOT NULL"`
	Start     string    `gorm:"column:start;type:decimal(40,0);index:idx_relative_start,priority:2;default:0;NOT NULL"`
	Size      string    `gorm:"column:size;type:decimal(40,0);default:0;NOT NULL"`
	Rarity    string    `gorm:"column:rarity;type:varchar(16);default:'';NOT NULL"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
}

func (o *OutpointOrdinals) TableName() string {
	return "outpoint_ordinals"
}

// NewOutpointOrdinals builds the row of an assignment.
func NewOutpointOrdinals(height uint64, value uint64, address string, a *ordinal.Assignment) *OutpointOrdinals {
	row := &OutpointOrdinals{
		Outpoint: a.Utxo,
		Height:   height,
		Value:    value,
		Address:  address,
		Relative: a.Relative,
		Start:    a.Ordinals.Start.Dec(),
		Size:     a.Ordinals.Size.Dec(),
	}
	if !a.Relative && !a.Ordinals.Empty() {
		row.Rarity = a.Rarity.String()
	}
	return row
}

// Range parses the stored range.
func (o *OutpointOrdinals) Range() (ordinal.Range, error) {
	return ordinal.ParseRange(o.Start + "+" + o.Size)
}
