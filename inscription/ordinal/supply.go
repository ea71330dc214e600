package ordinal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
)

var (
	ErrSupplyNotFound = errors.New("total supply not found")
	ErrSupplyExists   = errors.New("total supply already recorded")
)

// SupplyStore is the height indexed cumulative subsidy. TotalSupply(h) is the
// sum of the subsidies of blocks 0..h. AddSupply(h, subsidy) records block h and
// requires block h-1 to be recorded already. Blocks are added in height order.
type SupplyStore interface {
	TotalSupply(height uint64) (*uint256.Int, error)
	AddSupply(height uint64, subsidy uint64) error
}

// BlockTotalSupply returns the number of sats minted before height, which is
// the first ordinal of the block at height.
func BlockTotalSupply(store SupplyStore, height uint64) (*uint256.Int, error) {
	if height == 0 {
		return uint256.NewInt(0), nil
	}
	total, err := store.TotalSupply(height - 1)
	if err != nil {
		return nil, fmt.Errorf("block %d total supply: %w", height, err)
	}
	return total, nil
}

// MemorySupply is an in-process SupplyStore.
type MemorySupply struct {
	mu     sync.RWMutex
	totals map[uint64]*uint256.Int
}

// NewMemorySupply returns an empty MemorySupply.
func NewMemorySupply() *MemorySupply {
	return &MemorySupply{totals: make(map[uint64]*uint256.Int)}
}

func (m *MemorySupply) TotalSupply(height uint64) (*uint256.Int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total, ok := m.totals[height]
	if !ok {
		return nil, fmt.Errorf("%w: height %d", ErrSupplyNotFound, height)
	}
	return total.Clone(), nil
}

func (m *MemorySupply) AddSupply(height uint64, subsidy uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.totals[height]; ok {
		return fmt.Errorf("%w: height %d", ErrSupplyExists, height)
	}
	prev := uint256.NewInt(0)
	if height > 0 {
		total, ok := m.totals[height-1]
		if !ok {
			return fmt.Errorf("%w: height %d", ErrSupplyNotFound, height-1)
		}
		prev = total
	}
	m.totals[height] = new(uint256.Int).AddUint64(prev, subsidy)
	return nil
}
