package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inscription-c/ordinals/inscription/server/handle"
	"github.com/inscription-c/ordinals/inscription/server/handle/api"
)

// Indexer talks to the http api of an ordinals indexer.
type Indexer struct {
	indexerUrl string
	client     *http.Client
	retries    int
	retryWait  time.Duration
}

var _ IndexerInterface = (*Indexer)(nil)

type Option func(*Indexer)

func WithHttpClient(client *http.Client) Option {
	return func(w *Indexer) {
		w.client = client
	}
}

// WithRetry sets how many times a request is tried and the pause between tries.
func WithRetry(retries int, wait time.Duration) Option {
	return func(w *Indexer) {
		w.retries = retries
		w.retryWait = wait
	}
}

func NewIndexer(indexerUrl string, opts ...Option) *Indexer {
	w := &Indexer{
		indexerUrl: strings.TrimRight(indexerUrl, "/"),
		client:     http.DefaultClient,
		retries:    3,
		retryWait:  time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.retries < 1 {
		w.retries = 1
	}
	return w
}

func (w *Indexer) BlockHeight(ctx context.Context) (uint64, error) {
	resp := &handle.RespBlockHeight{}
	if err := w.get(ctx, "/block/height", resp); err != nil {
		return 0, err
	}
	return resp.Height, nil
}

func (w *Indexer) Block(ctx context.Context, height uint64) (*BlockResp, error) {
	resp := &BlockResp{}
	if err := w.get(ctx, fmt.Sprintf("/block/%d", height), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (w *Indexer) Inscription(ctx context.Context, inscriptionId string) (*InscriptionResp, error) {
	resp := &InscriptionResp{}
	if err := w.get(ctx, "/inscription/"+url.PathEscape(inscriptionId), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (w *Indexer) InscriptionsInBlock(ctx context.Context, height uint64, page int) (*InscriptionsInBlockResp, error) {
	resp := &InscriptionsInBlockResp{}
	if err := w.get(ctx, fmt.Sprintf("/inscriptions/block/%d?page=%d", height, page), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (w *Indexer) Outpoint(ctx context.Context, outpoint string) (*OutpointResp, error) {
	resp := &OutpointResp{}
	if err := w.get(ctx, "/output/"+url.PathEscape(outpoint), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (w *Indexer) Supply(ctx context.Context, height uint64) (*SupplyResp, error) {
	resp := &SupplyResp{}
	if err := w.get(ctx, fmt.Sprintf("/supply/%d", height), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (w *Indexer) Sat(ctx context.Context, sat uint64) (*SatResp, error) {
	resp := &SatResp{}
	if err := w.get(ctx, fmt.Sprintf("/sat/%d", sat), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (w *Indexer) Tx(ctx context.Context, txid string) (*TxResp, error) {
	resp := &TxResp{}
	if err := w.get(ctx, "/tx/"+url.PathEscape(txid), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (w *Indexer) Statistics(ctx context.Context) (*StatisticsResp, error) {
	resp := &StatisticsResp{}
	if err := w.get(ctx, "/statistics", resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Content returns the body as served, already decompressed by the server
// unless the transport negotiated the encoding.
func (w *Indexer) Content(ctx context.Context, inscriptionId string) (string, []byte, error) {
	var (
		contentType string
		body        []byte
	)
	err := w.doRetry(ctx, "/content/"+url.PathEscape(inscriptionId), func(resp *http.Response) error {
		var err error
		body, err = io.ReadAll(resp.Body)
		contentType = resp.Header.Get("Content-Type")
		return err
	})
	return contentType, body, err
}

func (w *Indexer) get(ctx context.Context, path string, result interface{}) error {
	return w.doRetry(ctx, path, func(resp *http.Response) error {
		r := &api.Resp{Data: result}
		return json.NewDecoder(resp.Body).Decode(r)
	})
}

// statusError is a response the server answered on purpose; it is not retried.
type statusError struct {
	status int
	msg    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("indexer: %d %s", e.status, e.msg)
}

func (w *Indexer) doRetry(ctx context.Context, path string, read func(*http.Response) error) error {
	var lastErr error
	for i := 0; i < w.retries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.retryWait):
			}
		}
		err := w.do(ctx, path, read)
		if err == nil {
			return nil
		}
		var se *statusError
		if errors.As(err, &se) || errors.Is(err, ErrNotFound) || ctx.Err() != nil {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("retry %d times: %w", w.retries, lastErr)
}

func (w *Indexer) do(ctx context.Context, path string, read func(*http.Response) error) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, w.indexerUrl+path, nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return read(resp)
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		r := &api.Resp{}
		if err := json.NewDecoder(resp.Body).Decode(r); err != nil || r.ErrMsg == "" {
			return &statusError{status: resp.StatusCode, msg: resp.Status}
		}
		return &statusError{status: resp.StatusCode, msg: r.ErrMsg}
	default:
		return fmt.Errorf("indexer: %s", resp.Status)
	}
}
