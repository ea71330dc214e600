package envelope

import "fmt"

// FieldTag identifies an inscription header field. Its value is the protocol tag code.
type FieldTag uint8

const (
	TagContentType     FieldTag = 1
	TagPointer         FieldTag = 2
	TagParent          FieldTag = 3
	TagMetadata        FieldTag = 5
	TagMetaProtocol    FieldTag = 7
	TagContentEncoding FieldTag = 9
)

// FieldTagFromCode maps a header tag code to its FieldTag.
func FieldTagFromCode(code byte) (FieldTag, bool) {
	switch FieldTag(code) {
	case TagContentType, TagPointer, TagParent, TagMetadata, TagMetaProtocol, TagContentEncoding:
		return FieldTag(code), true
	default:
		return 0, false
	}
}

// Code returns the byte written after the tag push opcode.
func (t FieldTag) Code() byte {
	return byte(t)
}

func (t FieldTag) String() string {
	switch t {
	case TagContentType:
		return "content_type"
	case TagPointer:
		return "pointer"
	case TagParent:
		return "parent"
	case TagMetadata:
		return "metadata"
	case TagMetaProtocol:
		return "metaprotocol"
	case TagContentEncoding:
		return "content_encoding"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}
