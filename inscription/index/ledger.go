package index

import (
	"strings"

	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/block"
	"github.com/inscription-c/ordinals/inscription/envelope"
	"github.com/inscription-c/ordinals/inscription/index/dao"
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"github.com/inscription-c/ordinals/inscription/ordinal"
)

// Ledger is the storage the indexer reads its position from and writes blocks to.
type Ledger interface {
	ordinal.SupplyStore
	// LastHeight returns the last indexed height, ok is false when empty.
	LastHeight() (height uint64, ok bool, err error)
	// BlockHash returns the hash of the indexed block at height, empty when missing.
	BlockHash(height uint64) (string, error)
	// SaveBlock persists an assembled block.
	SaveBlock(blk *block.Block, summary *block.Summary) error
	// Atomic runs fn on a ledger whose writes commit together or not at all.
	Atomic(fn func(tx Ledger) error) error
}

// DBLedger is the gorm backed Ledger.
type DBLedger struct {
	*dao.DB
}

// NewDBLedger returns a Ledger writing through db.
func NewDBLedger(db *dao.DB) *DBLedger {
	return &DBLedger{DB: db}
}

func (l *DBLedger) LastHeight() (uint64, bool, error) {
	return l.DB.BlockHeight()
}

func (l *DBLedger) Atomic(fn func(tx Ledger) error) error {
	return l.DB.Transaction(func(tx *dao.DB) error {
		return fn(&DBLedger{DB: tx})
	})
}

func (l *DBLedger) SaveBlock(blk *block.Block, summary *block.Summary) error {
	rows := NewBlockRows(blk, summary)
	if err := l.SaveBlockInfo(rows.Block); err != nil {
		return err
	}
	if err := l.CreateTransactions(rows.Transactions); err != nil {
		return err
	}
	if err := l.CreateTransactionInputs(rows.Inputs); err != nil {
		return err
	}
	if err := l.CreateInscriptions(rows.Inscriptions); err != nil {
		return err
	}
	if err := l.CreateOutpointOrdinals(rows.Outpoints); err != nil {
		return err
	}
	for name, count := range rows.Statistics {
		if err := l.IncrementStatistic(name, count); err != nil {
			return err
		}
	}
	return nil
}

// BlockRows is the table rows of one assembled block.
type BlockRows struct {
	Block        *tables.BlockInfo
	Transactions []*tables.Transactions
	Inputs       []*tables.TransactionInputs
	Inscriptions []*tables.Inscriptions
	Outpoints    []*tables.OutpointOrdinals
	Statistics   map[tables.StatisticType]uint64
}

// NewBlockRows maps an assembled block to its table rows. Transaction i of
// summary is transaction i of blk.
func NewBlockRows(blk *block.Block, summary *block.Summary) *BlockRows {
	rows := &BlockRows{
		Block: &tables.BlockInfo{
			Height:           blk.Height,
			Hash:             blk.Hash,
			PrevHash:         blk.PrevHash,
			Timestamp:        blk.Timestamp.Unix(),
			Subsidy:          summary.Subsidy,
			MinerReward:      summary.MinerReward,
			Fees:             summary.Fees,
			FirstOrdinal:     summary.FirstOrdinal.Dec(),
			LeftoverStart:    summary.Leftover.Start.Dec(),
			LeftoverSize:     summary.Leftover.Size.Dec(),
			TxCount:          uint32(len(summary.Txs)),
			InscriptionCount: uint32(summary.InscriptionCount()),
		},
		Transactions: make([]*tables.Transactions, 0, len(summary.Txs)),
		Inputs:       make([]*tables.TransactionInputs, 0),
		Inscriptions: make([]*tables.Inscriptions, 0),
		Outpoints:    make([]*tables.OutpointOrdinals, 0),
		Statistics:   make(map[tables.StatisticType]uint64),
	}

	for i, ts := range summary.Txs {
		tx := blk.Transactions[i]
		row := &tables.Transactions{
			TxId:             ts.Txid,
			Height:           blk.Height,
			Idx:              uint32(ts.Idx),
			Coinbase:         ts.Coinbase,
			InputCount:       uint32(len(tx.Inputs)),
			OutputCount:      uint32(len(tx.Outputs)),
			Amount:           tx.Amount(),
			InscriptionCount: uint32(len(ts.Inscriptions)),
		}
		if ts.DecodeErr != nil {
			row.DecodeError = truncate(ts.DecodeErr.Error(), 1024)
		}
		rows.Transactions = append(rows.Transactions, row)
		rows.Inputs = append(rows.Inputs, tables.NewTransactionInputs(ts.Txid, blk.Height, tx.Inputs)...)

		for _, ins := range ts.Inscriptions {
			rows.Inscriptions = append(rows.Inscriptions, newInscriptionRow(blk, ts, ins))
		}
		for j, a := range ts.Assignments {
			out := tx.Outputs[j]
			rows.Outpoints = append(rows.Outpoints, tables.NewOutpointOrdinals(blk.Height, out.Value, out.Address, a))
		}
	}

	rows.Statistics[tables.StatisticInscriptions] = uint64(summary.InscriptionCount())
	rows.Statistics[tables.StatisticDecodeFailures] = uint64(summary.DecodeFailures())
	rows.Statistics[tables.StatisticTransactions] = uint64(len(summary.Txs))
	rows.Statistics[tables.StatisticOutputs] = uint64(len(rows.Outpoints))
	rows.Statistics[tables.StatisticCommits] = 1
	return rows
}

func newInscriptionRow(blk *block.Block, ts *block.TxSummary, ins *envelope.Inscription) *tables.Inscriptions {
	row := &tables.Inscriptions{
		InscriptionId: *tables.NewInscriptionId(ts.Txid, ins.Index),
		Height:        blk.Height,
		TxIdx:         uint32(ts.Idx),
		Timestamp:     blk.Timestamp.Unix(),
		ContentSize:   uint32(len(ins.Body)),
		Body:          ins.Body,
		Pointer:       ins.Pointer,
	}
	if ins.ContentType != nil {
		row.ContentType = truncate(*ins.ContentType, 255)
		row.MediaType = constants.ContentType(*ins.ContentType).MediaType().String()
	}
	if ins.ContentEncoding != nil {
		row.ContentEncoding = truncate(*ins.ContentEncoding, 255)
	}
	if ins.Parent != nil {
		row.Parent = truncate(*ins.Parent, 255)
	}
	if ins.Metadata != nil {
		row.Metadata = *ins.Metadata
	}
	if ins.MetaProtocol != nil {
		row.MetaProtocol = truncate(*ins.MetaProtocol, 255)
	}
	return row
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.ToValidUTF8(s[:n], "")
}
