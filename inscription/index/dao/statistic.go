package dao

import (
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IncrementStatistic adds count to the counter name, creating it when missing.
func (d *DB) IncrementStatistic(name tables.StatisticType, count uint64) error {
	if count == 0 {
		return nil
	}
	return d.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + ?", count)}),
	}).Create(&tables.Statistic{Name: name, Count: count}).Error
}

// Statistics returns every counter by name.
func (d *DB) Statistics() (map[tables.StatisticType]uint64, error) {
	list := make([]*tables.Statistic, 0)
	if err := d.DB.Find(&list).Error; err != nil {
		return nil, err
	}
	res := make(map[tables.StatisticType]uint64, len(list))
	for _, s := range list {
		res[s.Name] = s.Count
	}
	return res, nil
}
