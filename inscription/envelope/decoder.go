// Package envelope recovers inscriptions from the envelopes embedded in raw
// transaction bytes.
//
// An envelope is an OP_FALSE OP_IF ... OP_ENDIF fragment. When its first push is
// the protocol marker "ord", the pushes that follow are header fields
// (tag, value), an OP_0 separator and the content chunks. The automaton in
// Transition recognizes that framing one token at a time; Decoder folds its
// events into Inscription records.
package envelope

// Option configures a Decoder.
type Option func(*Config)

// WithPushData4Width sets the OP_PUSHDATA4 length field width (3 or 4).
func WithPushData4Width(width int) Option {
	return func(c *Config) {
		c.PushData4Width = width
	}
}

// WithPushNumTags accepts OP_1..OP_16 header bytes as field tags.
func WithPushNumTags() Option {
	return func(c *Config) {
		c.PushNumTags = true
	}
}

// Decoder decodes inscriptions. It holds no mutable state and is safe for concurrent use.
type Decoder struct {
	cfg Config
}

// NewDecoder returns a Decoder with the default configuration changed by opts.
// An unsupported PUSHDATA4 width falls back to DefaultPushData4Width.
func NewDecoder(opts ...Option) *Decoder {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.PushData4Width != 3 {
		cfg.PushData4Width = DefaultPushData4Width
	}
	return &Decoder{cfg: cfg}
}

var defaultDecoder = NewDecoder()

// Decode decodes script with the default configuration.
func Decode(txid string, script []byte) ([]*Inscription, error) {
	return defaultDecoder.Decode(txid, script)
}

// Config returns the decoder configuration.
func (d *Decoder) Config() Config {
	return d.cfg
}

// Decode returns the inscriptions of one transaction in encounter order.
// Any error is a *DecodeError and applies to this transaction only.
func (d *Decoder) Decode(txid string, script []byte) ([]*Inscription, error) {
	state := State{Kind: StateScanning}
	builder := NewBuilder(txid)

	cursor := 0
	for cursor < len(script) {
		step, err := d.cfg.Transition(state, script[cursor:])
		if err != nil {
			return nil, &DecodeError{Txid: txid, Offset: cursor, State: state, Err: err}
		}
		for _, ev := range step.Events {
			if err := builder.Apply(ev); err != nil {
				return nil, &DecodeError{Txid: txid, Offset: cursor, State: state, Err: err}
			}
		}
		cursor += step.Consumed
		state = step.Next
	}

	if _, err := d.cfg.Transition(state, nil); err != nil {
		return nil, &DecodeError{Txid: txid, Offset: cursor, State: state, Err: err}
	}
	return builder.Inscriptions(), nil
}
