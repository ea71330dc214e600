package tables

import "time"

// TotalSupply is the cumulative subsidy of blocks 0..Height.
type TotalSupply struct {
	Id        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT;NOT NULL"`
	Height    uint64    `gorm:"column:height;type:bigint unsigned;uniqueIndex:uk_height;default:0;NOT NULL"`
	Subsidy   uint64    `gorm:"column:subsidy;type:bigint unsigned;default:0;NOT NULL"`
	Total     string    `gorm:"column:total;type:decimal(40,0);default:0;NOT NULL"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
}

func (t *TotalSupply) TableName() string {
	return "total_supply"
}
