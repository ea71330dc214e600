package handle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
	"github.com/inscription-c/ordinals/constants"
	"github.com/inscription-c/ordinals/inscription/index/tables"
	"github.com/inscription-c/ordinals/inscription/log"
	"github.com/patrickmn/go-cache"
)

// Store is the read side of the index the API serves. *dao.DB implements it.
type Store interface {
	BlockHeight() (height uint64, ok bool, err error)
	GetBlockInfo(height uint64) (tables.BlockInfo, error)
	GetInscriptionById(id *tables.InscriptionId) (tables.Inscriptions, error)
	GetInscriptionContent(id *tables.InscriptionId) (tables.Inscriptions, error)
	FindInscriptionsInBlock(height uint64, page, size int) ([]*tables.InscriptionId, error)
	GetOutpointOrdinals(outpoint string) (tables.OutpointOrdinals, error)
	FindCoinbaseOutpointBySat(sat string) (tables.OutpointOrdinals, error)
	TotalSupply(height uint64) (*uint256.Int, error)
	GetTransaction(txid string) (tables.Transactions, error)
	FindTransactionInputs(txid string) ([]string, error)
	FindInscriptionsByTxId(txid string) ([]*tables.Inscriptions, error)
	Statistics() (map[tables.StatisticType]uint64, error)
}

// Options holds the api server configuration.
type Options struct {
	addr        string
	testnet     bool
	enablePProf bool
	pageSize    int
	engine      *gin.Engine
	db          Store
}

// Option configures a Handler.
type Option func(*Options)

// WithAddr sets the listen address.
func WithAddr(addr string) func(*Options) {
	return func(options *Options) {
		options.addr = addr
	}
}

// WithEngine serves routes on g instead of a new gin engine.
func WithEngine(g *gin.Engine) func(*Options) {
	return func(options *Options) {
		options.engine = g
	}
}

// WithDB sets the store the routes read from. It is required.
func WithDB(db Store) func(*Options) {
	return func(options *Options) {
		options.db = db
	}
}

func WithTestNet(testnet bool) func(*Options) {
	return func(options *Options) {
		options.testnet = testnet
	}
}

func WithEnablePProf(enable bool) func(*Options) {
	return func(options *Options) {
		options.enablePProf = enable
	}
}

func WithPageSize(size int) func(*Options) {
	return func(options *Options) {
		options.pageSize = size
	}
}

type Handler struct {
	options *Options
	content *cache.Cache
	srv     *http.Server
}

func New(opts ...Option) (*Handler, error) {
	h := &Handler{}
	h.options = &Options{}
	for _, opt := range opts {
		opt(h.options)
	}
	if h.options.addr == "" {
		h.options.addr = ":8335"
		if h.options.testnet {
			h.options.addr = ":18335"
		}
	}
	if h.options.db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if h.options.engine == nil {
		h.options.engine = gin.New()
	}
	if h.options.pageSize <= 0 {
		h.options.pageSize = 100
	}
	h.content = cache.New(10*time.Minute, 20*time.Minute)
	h.InitRouter()
	return h, nil
}

func (h *Handler) DB() Store {
	return h.options.db
}

func (h *Handler) Engine() *gin.Engine {
	return h.options.engine
}

func (h *Handler) Addr() string {
	return h.options.addr
}

// Run serves the API in the background until Shutdown.
func (h *Handler) Run() error {
	h.srv = &http.Server{
		Addr:              h.options.addr,
		Handler:           h.options.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := h.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Srv.Errorf("srv.ListenAndServe: %v", err)
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-time.After(100 * time.Millisecond):
	}
	log.Srv.Infof("api listening on %s", h.options.addr)
	return nil
}

func (h *Handler) Shutdown(ctx context.Context) error {
	if h.srv == nil {
		return nil
	}
	return h.srv.Shutdown(ctx)
}

// cacheContent keeps at most DefaultContentCache bodies.
func (h *Handler) cacheContent(key string, ins *tables.Inscriptions) {
	if h.content.ItemCount() >= constants.DefaultContentCache {
		return
	}
	h.content.SetDefault(key, ins)
}
