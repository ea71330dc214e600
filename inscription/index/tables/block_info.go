package tables

import (
	"time"
)

type BlockInfo struct {
	Id               uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT;NOT NULL"`
	Height           uint64    `gorm:"column:height;type:bigint unsigned;uniqueIndex:uk_height;default:0;NOT NULL"`
	Hash             string    `gorm:"column:hash;type:varchar(64);index:idx_hash;default:'';NOT NULL"`
	PrevHash         string    `gorm:"column:prev_hash;type:varchar(64);default:'';NOT NULL"`
	Timestamp        int64     `gorm:"column:timestamp;type:bigint;default:0;NOT NULL;comment:timestamp"`
	Subsidy          uint64    `gorm:"column:subsidy;type:bigint unsigned;default:0;NOT NULL"`
	MinerReward      uint64    `gorm:"column:miner_reward;type:bigint unsigned;default:0;NOT NULL"`
	Fees             uint64    `gorm:"column:fees;type:bigint unsigned;default:0;NOT NULL"`
	FirstOrdinal     string    `gorm:"column:first_ordinal;type:decimal(40,0);default:0;NOT NULL"`
	LeftoverStart    string    `gorm:"column:leftover_start;type:decimal(40,0);default:0;NOT NULL;comment:unassigned coinbase range"`
	LeftoverSize     string    `gorm:"column:leftover_size;type:decimal(40,0);default:0;NOT NULL"`
	TxCount          uint32    `gorm:"column:tx_count;type:int unsigned;default:0;NOT NULL"`
	InscriptionCount uint32    `gorm:"column:inscription_count;type:int unsigned;default:0;NOT NULL"`
	CreatedAt        time.Time `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
	UpdatedAt        time.Time `gorm:"column:updated_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
}

func (b *BlockInfo) TableName() string {
	return "block_info"
}
