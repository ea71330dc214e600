package block

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/holiman/uint256"
	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/envelope"
	"github.com/inscription-c/ordinals/inscription/log"
	"github.com/inscription-c/ordinals/inscription/ordinal"
	"golang.org/x/sync/errgroup"
)

// envelopeMarker is OP_FALSE OP_IF. Transactions without it cannot carry an inscription.
var envelopeMarker = []byte{0x00, 0x63}

// TxSummary is the result for one transaction of a block.
type TxSummary struct {
	Txid         string                  `json:"txid"`
	Idx          int                     `json:"idx"`
	Coinbase     bool                    `json:"coinbase"`
	Inscriptions []*envelope.Inscription `json:"inscriptions"`
	Assignments  []*ordinal.Assignment   `json:"assignments"`
	// DecodeErr is set when the envelopes of this transaction failed to decode.
	// Inscriptions is empty in that case.
	DecodeErr error `json:"-"`
}

// Summary is the result for one block.
type Summary struct {
	Height       uint64        `json:"height"`
	Hash         string        `json:"hash"`
	PrevHash     string        `json:"prev_hash"`
	Timestamp    time.Time     `json:"timestamp"`
	Subsidy      uint64        `json:"subsidy"`
	MinerReward  uint64        `json:"miner_reward"`
	Fees         uint64        `json:"fees"`
	FirstOrdinal *uint256.Int  `json:"first_ordinal"`
	Leftover     ordinal.Range `json:"leftover"`
	Txs          []*TxSummary  `json:"txs"`
}

// InscriptionCount returns the number of inscriptions in the block.
func (s *Summary) InscriptionCount() int {
	n := 0
	for _, tx := range s.Txs {
		n += len(tx.Inscriptions)
	}
	return n
}

// DecodeFailures returns the number of transactions whose envelopes failed to decode.
func (s *Summary) DecodeFailures() int {
	n := 0
	for _, tx := range s.Txs {
		if tx.DecodeErr != nil {
			n++
		}
	}
	return n
}

// Assembler turns a Block into a Summary: ordinal assignments for every
// output and the inscriptions revealed by every transaction.
type Assembler struct {
	decoder *envelope.Decoder
	supply  ordinal.SupplyStore
	limit   int
	log     btclog.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithDecoder sets the envelope decoder, envelope.NewDecoder() by default.
func WithDecoder(decoder *envelope.Decoder) AssemblerOption {
	return func(a *Assembler) {
		a.decoder = decoder
	}
}

// WithSupply sets the store the first ordinal of a block is read from and its
// subsidy is added to. An empty MemorySupply is used when unset.
func WithSupply(supply ordinal.SupplyStore) AssemblerOption {
	return func(a *Assembler) {
		a.supply = supply
	}
}

// WithDecodeLimit bounds the transactions decoded concurrently.
func WithDecodeLimit(limit int) AssemblerOption {
	return func(a *Assembler) {
		a.limit = limit
	}
}

// WithLogger sets the logger decode failures are reported on.
func WithLogger(logger btclog.Logger) AssemblerOption {
	return func(a *Assembler) {
		a.log = logger
	}
}

// NewAssembler returns an Assembler configured by opts.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		decoder: envelope.NewDecoder(),
		limit:   constants.DefaultDecodeLimit,
		log:     log.Dec,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.supply == nil {
		a.supply = ordinal.NewMemorySupply()
	}
	if a.limit <= 0 {
		a.limit = 1
	}
	return a
}

// Assemble assembles blk against the configured supply store.
func (a *Assembler) Assemble(ctx context.Context, blk *Block) (*Summary, error) {
	return a.AssembleWith(ctx, a.supply, blk)
}

// AssembleWith reads the supply minted before blk, assigns ordinals, decodes
// inscriptions and adds the block subsidy to supply exactly once. Blocks must
// be assembled in height order. A transaction that fails to decode is recorded
// on its TxSummary and does not fail the block.
func (a *Assembler) AssembleWith(ctx context.Context, supply ordinal.SupplyStore, blk *Block) (*Summary, error) {
	first, err := ordinal.BlockTotalSupply(supply, blk.Height)
	if err != nil {
		return nil, err
	}
	subsidy := ordinal.Subsidy(blk.Height)

	summary := &Summary{
		Height:       blk.Height,
		Hash:         blk.Hash,
		PrevHash:     blk.PrevHash,
		Timestamp:    blk.Timestamp,
		Subsidy:      subsidy,
		FirstOrdinal: first,
		Leftover:     ordinal.NewRange(first, subsidy),
		Txs:          make([]*TxSummary, len(blk.Transactions)),
	}

	for i, tx := range blk.Transactions {
		ts := &TxSummary{
			Txid:         tx.Txid,
			Idx:          i,
			Coinbase:     tx.Coinbase,
			Inscriptions: make([]*envelope.Inscription, 0),
		}
		values := tx.Values()
		if tx.Coinbase {
			ts.Assignments, summary.Leftover = ordinal.AssignCoinbase(tx.Txid, values, first, subsidy)
			for _, v := range values {
				summary.MinerReward += v
			}
		} else {
			ts.Assignments = ordinal.AssignRelative(tx.Txid, values)
		}
		summary.Txs[i] = ts
	}
	if summary.MinerReward > subsidy {
		summary.Fees = summary.MinerReward - subsidy
	}

	if err := a.decodeAll(ctx, blk, summary); err != nil {
		return nil, err
	}

	if err := supply.AddSupply(blk.Height, subsidy); err != nil {
		return nil, fmt.Errorf("block %d add supply: %w", blk.Height, err)
	}
	return summary, nil
}

func (a *Assembler) decodeAll(ctx context.Context, blk *Block, summary *Summary) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.limit)
	for i, tx := range blk.Transactions {
		tx := tx
		ts := summary.Txs[i]
		raw, err := tx.Raw()
		if err != nil {
			ts.DecodeErr = err
			a.log.Warnf("block %d tx %s: %v", blk.Height, tx.Txid, err)
			continue
		}
		if !bytes.Contains(raw, envelopeMarker) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			list, err := a.decoder.Decode(tx.Txid, raw)
			if err != nil {
				ts.DecodeErr = err
				a.log.Warnf("block %d: %v", blk.Height, err)
				return nil
			}
			ts.Inscriptions = list
			return nil
		})
	}
	return g.Wait()
}
