// Package rpcclient builds validated btcd rpc clients for bitcoind style nodes.
package rpcclient

import (
	"fmt"
	"net/url"

	btcrpc "github.com/btcsuite/btcd/rpcclient"
	"github.com/go-playground/validator/v10"
)

// clientOptions holds the connection settings. Host is a full url such as
// http://127.0.0.1:8332; credentials in the url are used when User is empty.
type clientOptions struct {
	Host     string `validate:"required,url"`
	User     string
	Password string
	Batch    bool
}

type ClientOption func(*clientOptions)

func WithClientHost(host string) ClientOption {
	return func(o *clientOptions) {
		o.Host = host
	}
}

func WithClientUser(user string) ClientOption {
	return func(o *clientOptions) {
		o.User = user
	}
}

func WithClientPassword(password string) ClientOption {
	return func(o *clientOptions) {
		o.Password = password
	}
}

// WithClientBatch creates a batch client whose requests are sent on Send.
func WithClientBatch(batch bool) ClientOption {
	return func(o *clientOptions) {
		o.Batch = batch
	}
}

// NewClient validates the options and connects in http post mode.
func NewClient(optFns ...ClientOption) (*btcrpc.Client, error) {
	opts := &clientOptions{}
	for _, v := range optFns {
		v(opts)
	}
	connCfg, err := newConnConfig(opts)
	if err != nil {
		return nil, err
	}
	if opts.Batch {
		return btcrpc.NewBatch(connCfg)
	}
	return btcrpc.New(connCfg, nil)
}

func newConnConfig(opts *clientOptions) (*btcrpc.ConnConfig, error) {
	if err := validator.New().Struct(opts); err != nil {
		return nil, err
	}
	u, err := url.Parse(opts.Host)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("rpc host %s: unsupported scheme %q", opts.Host, u.Scheme)
	}
	user, pass := opts.User, opts.Password
	if user == "" && u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	return &btcrpc.ConnConfig{
		Host:         u.Host + u.Path,
		User:         user,
		Pass:         pass,
		HTTPPostMode: true,
		DisableTLS:   u.Scheme == "http",
	}, nil
}
