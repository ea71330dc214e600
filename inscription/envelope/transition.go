package envelope

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/inscription-c/ordinals/constants"
)

var protocolId = []byte(constants.ProtocolId)

// DefaultPushData4Width is the OP_PUSHDATA4 length field width of the script standard.
const DefaultPushData4Width = 4

// Config holds the protocol parameters of the automaton.
type Config struct {
	// PushData4Width is the width of the OP_PUSHDATA4 length field. The script
	// standard is 4; 3 reproduces indexers that read a 3-byte length.
	PushData4Width int
	// PushNumTags accepts OP_1..OP_16 as one-byte field tags in the header, the
	// form txscript.ScriptBuilder emits for a minimal tag push. Off by default:
	// any header byte other than OP_0 and OP_DATA_1 is skipped.
	PushNumTags bool
}

// DefaultConfig reads OP_PUSHDATA4 lengths as 4 bytes.
func DefaultConfig() Config {
	return Config{PushData4Width: DefaultPushData4Width}
}

// Transition advances the automaton by one token taken from the front of rest.
// It never modifies rest. Every successful step consumes at least one byte.
func (c Config) Transition(state State, rest []byte) (Step, error) {
	if len(rest) == 0 {
		if state.Terminal() {
			return Step{Next: state}, nil
		}
		return Step{}, fmt.Errorf("%w: input exhausted in state %s", ErrIncompleteParse, state)
	}

	switch state.Kind {
	case StateScanning:
		if len(rest) >= 2 && rest[0] == txscript.OP_FALSE && rest[1] == txscript.OP_IF {
			return Step{Next: State{Kind: StateInEnvelope}, Consumed: 2}, nil
		}
		return Step{Next: state, Consumed: 1}, nil

	case StateInEnvelope:
		size := int(rest[0])
		if size > len(rest)-1 {
			// too short to carry a marker; treat like any foreign envelope
			return Step{Next: State{Kind: StateNotAnInscription}, Consumed: 1}, nil
		}
		marker := rest[1 : 1+size]
		if bytes.Equal(marker, protocolId) {
			return Step{
				Next:     State{Kind: StateInInscriptionHeader},
				Consumed: 1 + size,
				Events:   []Event{{Kind: EventBegin}},
			}, nil
		}
		return Step{Next: State{Kind: StateNotAnInscription}, Consumed: 1 + size}, nil

	case StateNotAnInscription:
		if rest[0] == txscript.OP_ENDIF {
			return Step{Next: State{Kind: StateScanning}, Consumed: 1}, nil
		}
		return Step{Next: state, Consumed: 1}, nil

	case StateInInscriptionHeader:
		op := rest[0]
		switch {
		case op == txscript.OP_0:
			return Step{Next: State{Kind: StateInContent}, Consumed: 1}, nil
		case op == txscript.OP_DATA_1:
			if len(rest) < 2 {
				return Step{}, fmt.Errorf("%w: truncated field tag", ErrMalformedEnvelope)
			}
			tag, ok := FieldTagFromCode(rest[1])
			if !ok {
				return Step{}, fmt.Errorf("%w: 0x%02x", ErrUnknownFieldCode, rest[1])
			}
			return Step{Next: State{Kind: StateInField, Field: tag}, Consumed: 2}, nil
		case c.PushNumTags && op >= txscript.OP_1 && op <= txscript.OP_16:
			code := op - txscript.OP_1 + 1
			tag, ok := FieldTagFromCode(code)
			if !ok {
				return Step{}, fmt.Errorf("%w: 0x%02x", ErrUnknownFieldCode, code)
			}
			return Step{Next: State{Kind: StateInField, Field: tag}, Consumed: 1}, nil
		default:
			return Step{Next: state, Consumed: 1}, nil
		}

	case StateInField:
		data, consumed, err := c.readPush(rest, true)
		if err != nil {
			return Step{}, fmt.Errorf("field %s: %w", state.Field, err)
		}
		return Step{
			Next:     State{Kind: StateInInscriptionHeader},
			Consumed: consumed,
			Events:   []Event{{Kind: EventField, Field: state.Field, Data: data}},
		}, nil

	case StateInContent:
		op := rest[0]
		if op == txscript.OP_ENDIF {
			return Step{
				Next:     State{Kind: StateScanning},
				Consumed: 1,
				Events:   []Event{{Kind: EventEnd}},
			}, nil
		}
		if !isPushOpcode(op) {
			return Step{Next: state, Consumed: 1}, nil
		}
		data, consumed, err := c.readPush(rest, false)
		if err != nil {
			return Step{}, fmt.Errorf("content: %w", err)
		}
		return Step{
			Next:     state,
			Consumed: consumed,
			Events:   []Event{{Kind: EventChunk, Data: data}},
		}, nil
	}

	return Step{Next: state, Consumed: 1}, nil
}
