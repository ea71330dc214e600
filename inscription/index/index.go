// Package index runs the block loop: fetch blocks from the node, assemble
// them and persist the result, strictly in height order.
package index

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/block"
	"github.com/inscription-c/ordinals/inscription/envelope"
	"github.com/inscription-c/ordinals/inscription/index/dao"
	"github.com/inscription-c/ordinals/inscription/log"
	"github.com/inscription-c/ordinals/internal/metrics"
)

// BlockSource is the part of the node rpc the indexer uses. *rpcclient.Client
// satisfies it.
type BlockSource interface {
	GetBlockCount() (int64, error)
	GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
	GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
}

// Options holds the indexer configuration.
type Options struct {
	ledger Ledger
	cli    BlockSource

	decoder      *envelope.Decoder
	decodeLimit  int
	batchSize    uint64
	pollInterval time.Duration
	retryBase    time.Duration
	maxRetryWait time.Duration
}

// Option configures an Indexer.
type Option func(*Options)

// WithDB persists blocks through db, wrapped in a DBLedger.
func WithDB(db *dao.DB) func(*Options) {
	return func(options *Options) {
		options.ledger = NewDBLedger(db)
	}
}

// WithLedger sets the Ledger blocks are persisted to.
func WithLedger(ledger Ledger) func(*Options) {
	return func(options *Options) {
		options.ledger = ledger
	}
}

// WithClient sets the node blocks are fetched from.
func WithClient(cli BlockSource) func(*Options) {
	return func(options *Options) {
		options.cli = cli
	}
}

// WithDecoder sets the envelope decoder used by the assembler.
func WithDecoder(decoder *envelope.Decoder) func(*Options) {
	return func(options *Options) {
		options.decoder = decoder
	}
}

// WithDecodeLimit bounds the transactions of a block decoded concurrently.
func WithDecodeLimit(limit int) func(*Options) {
	return func(options *Options) {
		options.decodeLimit = limit
	}
}

// WithBatchSize sets how many blocks are fetched concurrently.
func WithBatchSize(size uint64) func(*Options) {
	return func(options *Options) {
		options.batchSize = size
	}
}

// WithPollInterval sets the wait between index updates once caught up.
func WithPollInterval(interval time.Duration) func(*Options) {
	return func(options *Options) {
		options.pollInterval = interval
	}
}

// WithRetry sets the first retry wait of a failed node call and the wait
// after which fetching gives up. The wait doubles on every failure.
func WithRetry(base, max time.Duration) func(*Options) {
	return func(options *Options) {
		options.retryBase = base
		options.maxRetryWait = max
	}
}

// Indexer keeps a Ledger in step with the node.
type Indexer struct {
	opts      *Options
	assembler *block.Assembler

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewIndexer returns an Indexer configured by opts. A ledger and a client
// are required before Start or UpdateIndex.
func NewIndexer(opts ...Option) *Indexer {
	idx := &Indexer{
		opts: &Options{
			decoder:      envelope.NewDecoder(),
			decodeLimit:  constants.DefaultDecodeLimit,
			batchSize:    constants.DefaultFetchBatch,
			pollInterval: 10 * time.Second,
			retryBase:    time.Second,
			maxRetryWait: 120 * time.Second,
		},
	}
	for _, v := range opts {
		v(idx.opts)
	}
	if idx.opts.batchSize == 0 {
		idx.opts.batchSize = 1
	}
	idx.assembler = block.NewAssembler(
		block.WithDecoder(idx.opts.decoder),
		block.WithDecodeLimit(idx.opts.decodeLimit),
		block.WithLogger(log.Dec),
	)
	return idx
}

// Start runs UpdateIndex every poll interval until Stop is called, ctx is
// done or a reorg is detected.
func (idx *Indexer) Start(ctx context.Context) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.cancel != nil {
		return
	}
	ctx, idx.cancel = context.WithCancel(ctx)
	metrics.Stage.Set(metrics.StageInitializing)

	idx.wg.Add(1)
	go func() {
		defer idx.wg.Done()
		defer metrics.Stage.Set(metrics.StageStopped)
		for {
			metrics.Stage.Set(metrics.StageCatchup)
			err := idx.UpdateIndex(ctx)
			switch {
			case errors.Is(err, ErrReorg):
				metrics.Stage.Set(metrics.StageReorg)
				log.Idx.Criticalf("indexing stopped: %v", err)
				return
			case errors.Is(err, context.Canceled):
				return
			case err != nil:
				log.Idx.Errorf("update index: %v", err)
			default:
				metrics.Stage.Set(metrics.StageServing)
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(idx.opts.pollInterval):
			}
		}
	}()
}

// Stop cancels the loop and waits for the block in progress to finish. The
// indexer can be started again afterwards.
func (idx *Indexer) Stop() {
	idx.mu.Lock()
	cancel := idx.cancel
	idx.cancel = nil
	idx.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	idx.wg.Wait()
}

// UpdateIndex indexes every block from the one after the last indexed block
// up to the node tip.
func (idx *Indexer) UpdateIndex(ctx context.Context) error {
	count, err := idx.opts.cli.GetBlockCount()
	if err != nil {
		return err
	}
	tip := uint64(count)
	metrics.ChainHeight.Set(float64(tip))

	next, err := idx.nextHeight()
	if err != nil {
		return err
	}
	for next <= tip {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := next + idx.opts.batchSize - 1
		if end > tip {
			end = tip
		}
		blocks, err := idx.fetchBlockFrom(ctx, next, end)
		if err != nil {
			return err
		}
		for _, blk := range blocks {
			if err := idx.indexBlock(ctx, blk); err != nil {
				return err
			}
		}
		next = end + 1
	}
	return nil
}

func (idx *Indexer) nextHeight() (uint64, error) {
	height, ok, err := idx.opts.ledger.LastHeight()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	metrics.CurrentHeight.Set(float64(height))
	return height + 1, nil
}

func (idx *Indexer) indexBlock(ctx context.Context, blk *block.Block) error {
	start := time.Now()
	if err := detectReorg(idx.opts.ledger, blk); err != nil {
		return err
	}

	var summary *block.Summary
	err := idx.opts.ledger.Atomic(func(tx Ledger) error {
		var err error
		summary, err = idx.assembler.AssembleWith(ctx, tx, blk)
		if err != nil {
			return err
		}
		saved := time.Now()
		defer metrics.ObserveBlockStep("save", saved)
		return tx.SaveBlock(blk, summary)
	})
	if err != nil {
		return err
	}

	metrics.ObserveBlockStep("total", start)
	metrics.CurrentHeight.Set(float64(blk.Height))
	metrics.Inscriptions.Add(float64(summary.InscriptionCount()))
	metrics.DecodeFailures.Add(float64(summary.DecodeFailures()))
	log.Idx.Infof("Block Height %d: %d txs, %d inscriptions, %d decode failures in %d ms",
		blk.Height, len(summary.Txs), summary.InscriptionCount(), summary.DecodeFailures(), time.Since(start).Milliseconds())
	return nil
}
