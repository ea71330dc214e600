package envelope

// StateKind is the active variant of the decoder automaton.
type StateKind uint8

const (
	StateScanning StateKind = iota
	StateInEnvelope
	StateInInscriptionHeader
	StateInField
	StateInContent
	StateNotAnInscription
)

func (k StateKind) String() string {
	switch k {
	case StateScanning:
		return "scanning"
	case StateInEnvelope:
		return "in_envelope"
	case StateInInscriptionHeader:
		return "in_inscription_header"
	case StateInField:
		return "in_field"
	case StateInContent:
		return "in_content"
	case StateNotAnInscription:
		return "not_an_inscription"
	default:
		return "unknown"
	}
}

// State is a decoder state. Field is only meaningful for StateInField.
type State struct {
	Kind  StateKind
	Field FieldTag
}

// Terminal reports whether the input may end in this state.
func (s State) Terminal() bool {
	return s.Kind == StateScanning || s.Kind == StateNotAnInscription
}

func (s State) String() string {
	if s.Kind == StateInField {
		return s.Kind.String() + "(" + s.Field.String() + ")"
	}
	return s.Kind.String()
}

// EventKind enumerates the side effects a transition asks the accumulator to apply.
type EventKind uint8

const (
	// EventBegin starts a new inscription; the envelope carried the protocol marker.
	EventBegin EventKind = iota + 1
	// EventField sets Field to Data.
	EventField
	// EventChunk appends Data to the content.
	EventChunk
	// EventEnd finalizes the current inscription.
	EventEnd
)

// Event is emitted by Transition and folded into a Builder.
type Event struct {
	Kind  EventKind
	Field FieldTag
	Data  []byte
}

// Step is the result of one transition.
type Step struct {
	Next     State
	Consumed int
	Events   []Event
}
