package ordinal

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

func newTestLevelDBSupply(t *testing.T) *LevelDBSupply {
	t.Helper()
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	s := NewLevelDBSupply(db)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestSupplyStores(t *testing.T) {
	stores := map[string]SupplyStore{
		"memory":  NewMemorySupply(),
		"leveldb": newTestLevelDBSupply(t),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			total, err := BlockTotalSupply(store, 0)
			require.NoError(t, err)
			assert.True(t, total.IsZero())

			_, err = BlockTotalSupply(store, 1)
			assert.ErrorIs(t, err, ErrSupplyNotFound)

			assert.ErrorIs(t, store.AddSupply(1, Subsidy(1)), ErrSupplyNotFound)
			require.NoError(t, store.AddSupply(0, Subsidy(0)))
			assert.ErrorIs(t, store.AddSupply(0, Subsidy(0)), ErrSupplyExists)
			require.NoError(t, store.AddSupply(1, Subsidy(1)))

			total, err = BlockTotalSupply(store, 1)
			require.NoError(t, err)
			assert.Equal(t, uint64(5_000_000_000), total.Uint64())

			total, err = BlockTotalSupply(store, 2)
			require.NoError(t, err)
			assert.Equal(t, uint64(10_000_000_000), total.Uint64())
		})
	}
}

func TestLevelDBSupplyExtend(t *testing.T) {
	s := newTestLevelDBSupply(t)
	_, ok, err := s.Tip()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.ExtendTo(9))
	tip, ok, err := s.Tip()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(9), tip)

	require.NoError(t, s.ExtendTo(4))
	require.NoError(t, s.ExtendTo(10))

	total, err := s.TotalSupply(10)
	require.NoError(t, err)
	assert.True(t, total.Eq(uint256.NewInt(11*5_000_000_000)))

	mem := NewMemorySupply()
	for h := uint64(0); h <= 10; h++ {
		require.NoError(t, mem.AddSupply(h, Subsidy(h)))
	}
	want, err := mem.TotalSupply(10)
	require.NoError(t, err)
	assert.True(t, want.Eq(total))
}
