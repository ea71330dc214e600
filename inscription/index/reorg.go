package index

import (
	"errors"
	"fmt"

	"github.com/inscription-c/ordinals/inscription/block"
)

// ErrReorg reports that the node chain no longer extends the indexed chain.
// Rolling back is not supported; indexing stops.
var ErrReorg = errors.New("unrecoverable reorg detected")

// detectReorg compares the previous hash of blk with the indexed block below it.
func detectReorg(ledger Ledger, blk *block.Block) error {
	if blk.Height == 0 {
		return nil
	}
	indexPrevHash, err := ledger.BlockHash(blk.Height - 1)
	if err != nil {
		return err
	}
	if indexPrevHash == "" {
		return fmt.Errorf("block %d: previous block not indexed", blk.Height)
	}
	if indexPrevHash == blk.PrevHash {
		return nil
	}
	return fmt.Errorf("%w at height %d: indexed %s, node %s", ErrReorg, blk.Height-1, indexPrevHash, blk.PrevHash)
}
