package envelope

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/btcsuite/btcd/txscript"
)

// LittleEndianUint64 interprets up to the first 8 bytes of b as a little-endian integer.
// Bytes beyond the 8th are ignored and an empty slice is zero.
func LittleEndianUint64(b []byte) uint64 {
	value := uint64(0)
	for i, v := range b {
		if i == 8 {
			break
		}
		value |= uint64(v) << (8 * i)
	}
	return value
}

// ChunkString renders b as utf-8 when valid, lowercase hex otherwise.
func ChunkString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return hex.EncodeToString(b)
}

// isPushOpcode reports whether op pushes data onto the stack.
func isPushOpcode(op byte) bool {
	return op <= txscript.OP_DATA_75 ||
		op == txscript.OP_PUSHDATA1 ||
		op == txscript.OP_PUSHDATA2 ||
		op == txscript.OP_PUSHDATA4
}

// readPush reads one push from the front of rest. With rawLength set, a leading
// byte that is not a push opcode is taken as a plain length prefix.
func (c Config) readPush(rest []byte, rawLength bool) (data []byte, consumed int, err error) {
	op := rest[0]
	width := 0
	switch op {
	case txscript.OP_PUSHDATA1:
		width = 1
	case txscript.OP_PUSHDATA2:
		width = 2
	case txscript.OP_PUSHDATA4:
		width = c.PushData4Width
	default:
		if op > txscript.OP_DATA_75 && !rawLength {
			return nil, 0, fmt.Errorf("%w: opcode 0x%02x is not a push", ErrMalformedEnvelope, op)
		}
	}

	header := 1 + width
	if len(rest) < header {
		return nil, 0, fmt.Errorf("%w: truncated length of opcode 0x%02x", ErrMalformedEnvelope, op)
	}
	size := uint64(op)
	if width > 0 {
		size = LittleEndianUint64(rest[1:header])
	}
	if size > uint64(len(rest)-header) {
		return nil, 0, fmt.Errorf("%w: push of %d bytes, %d remaining", ErrMalformedEnvelope, size, len(rest)-header)
	}
	end := header + int(size)
	return rest[header:end], end, nil
}
