package indexer

import (
	"context"
	"errors"

	"github.com/inscription-c/ordinals/inscription/server/handle"
)

// ErrNotFound is returned when the indexer has no such record.
var ErrNotFound = errors.New("not found")

// IndexerInterface is the read api of an ordinals indexer.
type IndexerInterface interface {
	BlockHeight(ctx context.Context) (uint64, error)
	Block(ctx context.Context, height uint64) (*BlockResp, error)
	Inscription(ctx context.Context, inscriptionId string) (*InscriptionResp, error)
	InscriptionsInBlock(ctx context.Context, height uint64, page int) (*InscriptionsInBlockResp, error)
	Content(ctx context.Context, inscriptionId string) (contentType string, body []byte, err error)
	Outpoint(ctx context.Context, outpoint string) (*OutpointResp, error)
	Supply(ctx context.Context, height uint64) (*SupplyResp, error)
	Sat(ctx context.Context, sat uint64) (*SatResp, error)
	Tx(ctx context.Context, txid string) (*TxResp, error)
	Statistics(ctx context.Context) (*StatisticsResp, error)
}

type (
	BlockResp               = handle.RespBlock
	InscriptionResp         = handle.RespInscription
	InscriptionsInBlockResp = handle.RespInscriptionsInBlock
	OutpointResp            = handle.RespOutput
	SupplyResp              = handle.RespSupply
	SatResp                 = handle.RespSat
	TxResp                  = handle.RespTx
	StatisticsResp          = handle.RespStatistics
)
