package dao

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"gotest.tools/assert"
)

func TestDSN(t *testing.T) {
	options := &DBOptions{}
	for _, opt := range []DBOption{
		WithAddr("10.0.0.2:4000"),
		WithUser("indexer"),
		WithPassword("p@ss:word"),
		WithDBName("ordinals_test"),
	} {
		opt(options)
	}
	cfg, err := mysql.ParseDSN(options.DSN(options.dbName))
	assert.NilError(t, err)
	assert.Equal(t, cfg.User, "indexer")
	assert.Equal(t, cfg.Passwd, "p@ss:word")
	assert.Equal(t, cfg.Addr, "10.0.0.2:4000")
	assert.Equal(t, cfg.DBName, "ordinals_test")
	assert.Assert(t, cfg.ParseTime)
	assert.Equal(t, cfg.Params["charset"], "utf8mb4")

	WithDialTimeout(5 * time.Second)(options)
	assert.Equal(t, options.dialTimeout, 5*time.Second)

	cfg, err = mysql.ParseDSN(options.DSN(""))
	assert.NilError(t, err)
	assert.Equal(t, cfg.DBName, "")
}

func TestSplitBySize(t *testing.T) {
	assert.Equal(t, len(splitBySize(nil)), 0)

	half := constants.MaxInsertDataSize/2 + 1
	list := []*tables.Inscriptions{
		{Body: bytes.Repeat([]byte{1}, half)},
		{Body: bytes.Repeat([]byte{1}, half)},
		{Body: []byte{1}},
		{Body: bytes.Repeat([]byte{1}, constants.MaxInsertDataSize*2)},
	}
	batches := splitBySize(list)
	assert.Equal(t, len(batches), 3)
	assert.Equal(t, len(batches[0]), 1)
	assert.Equal(t, len(batches[1]), 2)
	assert.Equal(t, len(batches[2]), 1)

	many := make([]*tables.Inscriptions, constants.DefaultInsertBatch+1)
	for i := range many {
		many[i] = &tables.Inscriptions{}
	}
	batches = splitBySize(many)
	assert.Equal(t, len(batches), 2)
	assert.Equal(t, len(batches[1]), 1)
}
