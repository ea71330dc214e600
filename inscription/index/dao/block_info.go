package dao

import (
	"errors"

	"github.com/inscription-c/ordinals/inscription/index/tables"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlockHeight returns the height of the last indexed block. ok is false
// when nothing has been indexed.
func (d *DB) BlockHeight() (height uint64, ok bool, err error) {
	block := &tables.BlockInfo{}
	err = d.DB.Order("height desc").First(block).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
		return
	}
	if err != nil {
		return
	}
	return block.Height, true, nil
}

// GetBlockInfo retrieves the block at height. A zero Id means not indexed.
func (d *DB) GetBlockInfo(height uint64) (block tables.BlockInfo, err error) {
	err = d.DB.Where("height = ?", height).First(&block).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	return
}

// BlockHash retrieves the hash of the block at height, empty when not indexed.
func (d *DB) BlockHash(height uint64) (string, error) {
	block, err := d.GetBlockInfo(height)
	if err != nil {
		return "", err
	}
	return block.Hash, nil
}

// SaveBlockInfo saves a block info to the database.
// If a block with the same height already exists, it updates the existing record.
func (d *DB) SaveBlockInfo(block *tables.BlockInfo) error {
	return d.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "height"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"hash", "prev_hash", "timestamp", "subsidy", "miner_reward", "fees",
			"first_ordinal", "leftover_start", "leftover_size", "tx_count", "inscription_count",
		}),
	}).Create(block).Error
}
