package dao

import (
	"errors"

	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"gorm.io/gorm"
)

// CreateTransactions inserts the transaction rows of a block.
func (d *DB) CreateTransactions(list []*tables.Transactions) error {
	if len(list) == 0 {
		return nil
	}
	return d.DB.CreateInBatches(list, constants.DefaultInsertBatch).Error
}

// GetTransaction returns the indexed transaction txid. A zero Id means not found.
func (d *DB) GetTransaction(txid string) (row tables.Transactions, err error) {
	err = d.Where("tx_id = ?", txid).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	return
}

// CreateTransactionInputs inserts the spent outpoints of a block.
func (d *DB) CreateTransactionInputs(list []*tables.TransactionInputs) error {
	if len(list) == 0 {
		return nil
	}
	return d.DB.CreateInBatches(list, constants.DefaultInsertBatch).Error
}

// FindTransactionInputs lists the outpoints spent by txid in input order.
func (d *DB) FindTransactionInputs(txid string) (list []string, err error) {
	err = d.Model(&tables.TransactionInputs{}).
		Where("tx_id = ?", txid).
		Order("idx asc").
		Pluck("outpoint", &list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	return
}
