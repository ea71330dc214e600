package tables

import "time"

type Transactions struct {
	Id               uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT;NOT NULL"`
	TxId             string    `gorm:"column:tx_id;type:varchar(64);index:idx_tx_id;default:'';NOT NULL"`
	Height           uint64    `gorm:"column:height;type:bigint unsigned;index:idx_height;default:0;NOT NULL"`
	Idx              uint32    `gorm:"column:idx;type:int unsigned;default:0;NOT NULL;comment:position in block"`
	Coinbase         bool      `gorm:"column:coinbase;type:tinyint(1);default:0;NOT NULL"`
	InputCount       uint32    `gorm:"column:input_count;type:int unsigned;default:0;NOT NULL"`
	OutputCount      uint32    `gorm:"column:output_count;type:int unsigned;default:0;NOT NULL"`
	Amount           uint64    `gorm:"column:amount;type:bigint unsigned;default:0;NOT NULL;comment:sum of output values in sats"`
	InscriptionCount uint32    `gorm:"column:inscription_count;type:int unsigned;default:0;NOT NULL"`
	DecodeError      string    `gorm:"column:decode_error;type:varchar(1024);default:'';NOT NULL"`
	CreatedAt        time.Time `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
	UpdatedAt        time.Time `gorm:"column:updated_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
}

func (t *Transactions) TableName() string {
	return "transactions"
}
