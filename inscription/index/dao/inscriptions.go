package dao

import (
	"errors"

	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"gorm.io/gorm"
)

// CreateInscriptions inserts list in batches whose bodies stay under MaxInsertDataSize.
func (d *DB) CreateInscriptions(list []*tables.Inscriptions) error {
	for _, batch := range splitBySize(list) {
		if err := d.DB.Create(batch).Error; err != nil {
			return err
		}
	}
	return nil
}

func splitBySize(list []*tables.Inscriptions) [][]*tables.Inscriptions {
	batches := make([][]*tables.Inscriptions, 0)
	start, size := 0, 0
	for i, ins := range list {
		if i > start && (size+len(ins.Body) > constants.MaxInsertDataSize || i-start >= constants.DefaultInsertBatch) {
			batches = append(batches, list[start:i])
			start, size = i, 0
		}
		size += len(ins.Body)
	}
	if start < len(list) {
		batches = append(batches, list[start:])
	}
	return batches
}

// GetInscriptionById returns the inscription with id. A zero Id means not found.
func (d *DB) GetInscriptionById(id *tables.InscriptionId) (ins tables.Inscriptions, err error) {
	err = d.Where("tx_id = ? AND offset = ?", id.TxId, id.Offset).First(&ins).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	return
}

// GetInscriptionContent loads only the fields the content endpoint serves.
func (d *DB) GetInscriptionContent(id *tables.InscriptionId) (ins tables.Inscriptions, err error) {
	err = d.Select("id", "tx_id", "offset", "content_type", "content_encoding", "body").
		Where("tx_id = ? AND offset = ?", id.TxId, id.Offset).First(&ins).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	return
}

// FindInscriptionsInBlock pages the inscription ids revealed at height. It
// reads one row past size so callers can tell whether more pages exist.
func (d *DB) FindInscriptionsInBlock(height uint64, page, size int) (list []*tables.InscriptionId, err error) {
	err = d.Model(&tables.Inscriptions{}).
		Where("height = ?", height).
		Order("tx_idx asc, offset asc").
		Offset((page - 1) * size).Limit(size + 1).Find(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	return
}

// FindInscriptionsByTxId lists the inscriptions of a transaction.
func (d *DB) FindInscriptionsByTxId(txid string) (list []*tables.Inscriptions, err error) {
	err = d.Omit("body").Where("tx_id = ?", txid).Order("offset asc").Find(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	return
}
