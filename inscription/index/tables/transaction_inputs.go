package tables

import "time"

// TransactionInputs is one spent outpoint of an indexed transaction. The
// relative ranges of a transaction's outputs are offsets into the sats of
// these inputs taken in Idx order.
type TransactionInputs struct {
	Id        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT;NOT NULL"`
	TxId      string    `gorm:"column:tx_id;type:varchar(64);index:idx_tx_id;default:'';NOT NULL"`
	Height    uint64    `gorm:"column:height;type:bigint unsigned;index:idx_height;default:0;NOT NULL"`
	Idx       uint32    `gorm:"column:idx;type:int unsigned;default:0;NOT NULL;comment:input position"`
	Outpoint  string    `gorm:"column:outpoint;type:varchar(80);index:idx_outpoint;default:'';NOT NULL;comment:spent txid:vout"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
}

func (t *TransactionInputs) TableName() string {
	return "transaction_inputs"
}

// NewTransactionInputs returns the input rows of txid in input order.
func NewTransactionInputs(txid string, height uint64, inputs []string) []*TransactionInputs {
	list := make([]*TransactionInputs, 0, len(inputs))
	for i, outpoint := range inputs {
		list = append(list, &TransactionInputs{
			TxId:     txid,
			Height:   height,
			Idx:      uint32(i),
			Outpoint: outpoint,
		})
	}
	return list
}
