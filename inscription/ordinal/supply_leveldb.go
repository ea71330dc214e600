package ordinal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/syndtr/goleveldb/leveldb"
)

var (
	supplyKeyPrefix = []byte("supply/")
	supplyTipKey    = []byte("tip")
)

// LevelDBSupply persists the cumulative supply in a leveldb database.
type LevelDBSupply struct {
	mu sync.Mutex
	db *leveldb.DB
}

// OpenLevelDBSupply opens or creates the supply database in dir.
func OpenLevelDBSupply(dir string) (*LevelDBSupply, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	return NewLevelDBSupply(db), nil
}

// NewLevelDBSupply wraps an open database. Close closes db.
func NewLevelDBSupply(db *leveldb.DB) *LevelDBSupply {
	return &LevelDBSupply{db: db}
}

func supplyKey(height uint64) []byte {
	key := make([]byte, len(supplyKeyPrefix)+8)
	copy(key, supplyKeyPrefix)
	binary.BigEndian.PutUint64(key[len(supplyKeyPrefix):], height)
	return key
}

func (l *LevelDBSupply) TotalSupply(height uint64) (*uint256.Int, error) {
	value, err := l.db.Get(supplyKey(height), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, fmt.Errorf("%w: height %d", ErrSupplyNotFound, height)
		}
		return nil, err
	}
	return new(uint256.Int).SetBytes(value), nil
}

func (l *LevelDBSupply) AddSupply(height uint64, subsidy uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	exists, err := l.db.Has(supplyKey(height), nil)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: height %d", ErrSupplyExists, height)
	}
	prev := uint256.NewInt(0)
	if height > 0 {
		if prev, err = l.TotalSupply(height - 1); err != nil {
			return err
		}
	}
	total := new(uint256.Int).AddUint64(prev, subsidy)
	value := total.Bytes32()

	tip := make([]byte, 8)
	binary.BigEndian.PutUint64(tip, height)

	batch := new(leveldb.Batch)
	batch.Put(supplyKey(height), value[:])
	batch.Put(supplyTipKey, tip)
	return l.db.Write(batch, nil)
}

// Tip returns the highest recorded height. ok is false for an empty ledger.
func (l *LevelDBSupply) Tip() (height uint64, ok bool, err error) {
	value, err := l.db.Get(supplyTipKey, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return binary.BigEndian.Uint64(value), true, nil
}

// ExtendTo records the subsidy of every block after the tip up to and
// including height. Supply depends on height alone, so the ledger can be
// built without block data.
func (l *LevelDBSupply) ExtendTo(height uint64) error {
	tip, ok, err := l.Tip()
	if err != nil {
		return err
	}
	next := uint64(0)
	if ok {
		next = tip + 1
	}
	for h := next; h <= height; h++ {
		if err := l.AddSupply(h, Subsidy(h)); err != nil {
			return err
		}
	}
	return nil
}

func (l *LevelDBSupply) Close() error {
	return l.db.Close()
}
