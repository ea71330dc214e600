package envelope

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/inscription-c/ordinals/internal/util"
)

// Inscription is the immutable record recovered from one envelope.
type Inscription struct {
	Id              string  `json:"id"`
	Index           uint32  `json:"index"`
	ContentType     *string `json:"content_type,omitempty"`
	Pointer         *uint64 `json:"pointer,omitempty"`
	Parent          *string `json:"parent,omitempty"`
	Metadata        *string `json:"metadata,omitempty"`
	MetaProtocol    *string `json:"metaprotocol,omitempty"`
	ContentEncoding *string `json:"content_encoding,omitempty"`
	Content         string  `json:"content"`
	Body            []byte  `json:"-"`
}

// PointerInt64 widens the pointer for signed transports. Values above
// math.MaxInt64 are reported as not representable.
func (i *Inscription) PointerInt64() (int64, bool) {
	if i.Pointer == nil || *i.Pointer > math.MaxInt64 {
		return 0, false
	}
	return int64(*i.Pointer), true
}

// Builder folds decoder events into inscriptions of one transaction.
type Builder struct {
	txid    string
	current *Inscription
	// metadata accumulates the raw metadata pushes of current
	metadata []byte
	records  []*Inscription
}

// NewBuilder returns an empty Builder for the transaction txid.
func NewBuilder(txid string) *Builder {
	return &Builder{txid: txid, records: make([]*Inscription, 0)}
}

// Apply applies one event to the accumulator.
func (b *Builder) Apply(ev Event) error {
	switch ev.Kind {
	case EventBegin:
		index := uint32(len(b.records))
		b.current = &Inscription{
			Id:    util.NewInscriptionId(b.txid, index),
			Index: index,
		}
		b.metadata = nil
		return nil
	case EventEnd:
		if b.current == nil {
			return fmt.Errorf("%w: envelope end without inscription", ErrMalformedEnvelope)
		}
		b.records = append(b.records, b.current)
		b.current = nil
		return nil
	}

	if b.current == nil {
		return fmt.Errorf("%w: event outside inscription", ErrMalformedEnvelope)
	}
	switch ev.Kind {
	case EventChunk:
		b.current.Content += ChunkString(ev.Data)
		b.current.Body = append(b.current.Body, ev.Data...)
	case EventField:
		return b.setField(ev.Field, ev.Data)
	}
	return nil
}

func (b *Builder) setField(tag FieldTag, data []byte) error {
	switch tag {
	case TagContentType:
		if !utf8.Valid(data) {
			return fmt.Errorf("%w: content type is not valid utf-8", ErrMalformedEnvelope)
		}
		v := string(data)
		b.current.ContentType = &v
	case TagPointer:
		v := LittleEndianUint64(data)
		b.current.Pointer = &v
	case TagParent:
		b.current.Parent = optionalString(data)
	case TagMetadata:
		// metadata may be split over several pushes
		b.metadata = append(b.metadata, data...)
		b.current.Metadata = optionalString(b.metadata)
	case TagMetaProtocol:
		b.current.MetaProtocol = optionalString(data)
	case TagContentEncoding:
		b.current.ContentEncoding = optionalString(data)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFieldCode, tag)
	}
	return nil
}

// Inscriptions returns the finalized records in encounter order.
func (b *Builder) Inscriptions() []*Inscription {
	return b.records
}

func optionalString(data []byte) *string {
	v := ChunkString(data)
	return &v
}
