package dao

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"github.com/inscription-c/ordinals/inscription/ordinal"
	"gorm.io/gorm"
)

var _ ordinal.SupplyStore = (*DB)(nil)

// TotalSupply returns the cumulative subsidy of blocks 0..height.
func (d *DB) TotalSupply(height uint64) (*uint256.Int, error) {
	row := &tables.TotalSupply{}
	err := d.DB.Where("height = ?", height).First(row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: height %d", ordinal.ErrSupplyNotFound, height)
	}
	if err != nil {
		return nil, err
	}
	total, err := uint256.FromDecimal(row.Total)
	if err != nil {
		return nil, fmt.Errorf("total supply at %d: %w", height, err)
	}
	return total, nil
}

// AddSupply records block height. Run it in the transaction that persists the
// block so the next block reads it.
func (d *DB) AddSupply(height uint64, subsidy uint64) error {
	var count int64
	if err := d.DB.Model(&tables.TotalSupply{}).Where("height = ?", height).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: height %d", ordinal.ErrSupplyExists, height)
	}
	prev := uint256.NewInt(0)
	if height > 0 {
		var err error
		if prev, err = d.TotalSupply(height - 1); err != nil {
			return err
		}
	}
	return d.DB.Create(&tables.TotalSupply{
		Height:  height,
		Subsidy: subsidy,
		Total:   new(uint256.Int).AddUint64(prev, subsidy).Dec(),
	}).Error
}
