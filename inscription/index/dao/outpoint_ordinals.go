package dao

import (
	"errors"

	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"gorm.io/gorm"
)

func (d *DB) CreateOutpointOrdinals(list []*tables.OutpointOrdinals) error {
	if len(list) == 0 {
		return nil
	}
	return d.DB.CreateInBatches(list, constants.DefaultInsertBatch).Error
}

// GetOutpointOrdinals returns the assignment of outpoint. A zero Id means not found.
func (d *DB) GetOutpointOrdinals(outpoint string) (row tables.OutpointOrdinals, err error) {
	err = d.Where("outpoint = ?", outpoint).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	return
}

// FindCoinbaseOutpointBySat returns the coinbase output whose absolute range
// contains sat, a decimal string. A zero Id means the sat is unassigned or
// its block is not indexed.
func (d *DB) FindCoinbaseOutpointBySat(sat string) (row tables.OutpointOrdinals, err error) {
	err = d.Where("relative = ? AND start <= ? AND start + size > ?", false, sat, sat).
		Order("start desc").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	return
}
