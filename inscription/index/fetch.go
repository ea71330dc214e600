package index

import (
	"context"
	"fmt"
	"time"

	"github.com/inscription-c/ordinals/inscription/block"
	"github.com/inscription-c/ordinals/inscription/log"
	"github.com/inscription-c/ordinals/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// fetchBlockFrom fetches blocks start..end concurrently and returns them in height order.
func (idx *Indexer) fetchBlockFrom(ctx context.Context, start, end uint64) ([]*block.Block, error) {
	if start > end {
		return nil, nil
	}
	started := time.Now()
	defer metrics.ObserveBlockStep("fetch", started)

	errWg, gctx := errgroup.WithContext(ctx)
	blocks := make([]*block.Block, end-start+1)
	for i := start; i <= end; i++ {
		height := i
		errWg.Go(func() error {
			blk, err := idx.getBlockWithRetries(gctx, height)
			if err != nil {
				return err
			}
			blocks[height-start] = blk
			return nil
		})
	}
	if err := errWg.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// getBlockWithRetries retries failed node calls, doubling the wait each time.
func (idx *Indexer) getBlockWithRetries(ctx context.Context, height uint64) (*block.Block, error) {
	errs := -1
	for {
		errs++
		if errs > 0 {
			wait := idx.opts.retryBase << (errs - 1)
			if wait > idx.opts.maxRetryWait {
				return nil, fmt.Errorf("block %d: would sleep for more than %s, giving up", height, idx.opts.maxRetryWait)
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		hash, err := idx.opts.cli.GetBlockHash(int64(height))
		if err != nil {
			metrics.RPCRetries.WithLabelValues("getblockhash").Inc()
			log.Idx.Warnf("GetBlockHash %d: %v", height, err)
			continue
		}
		verbose, err := idx.opts.cli.GetBlockVerboseTx(hash)
		if err != nil {
			metrics.RPCRetries.WithLabelValues("getblock").Inc()
			log.Idx.Warnf("GetBlockVerboseTx %s: %v", hash, err)
			continue
		}
		blk, err := block.FromVerbose(verbose)
		if err != nil {
			return nil, err
		}
		if blk.Height != height {
			return nil, fmt.Errorf("node returned block %d for height %d", blk.Height, height)
		}
		return blk, nil
	}
}
