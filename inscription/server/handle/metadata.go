package handle

import (
	"encoding/hex"
	"reflect"

	"github.com/ugorji/go/codec"
)

var cborHandle = func() *codec.CborHandle {
	h := &codec.CborHandle{}
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return h
}()

// decodeMetadata renders CBOR metadata as a JSON-ready value. Binary
// metadata is stored hex encoded; ok is false when it is not hex CBOR.
func decodeMetadata(metadata string) (v interface{}, ok bool) {
	if metadata == "" {
		return nil, false
	}
	raw, err := hex.DecodeString(metadata)
	if err != nil {
		return nil, false
	}
	if err := codec.NewDecoderBytes(raw, cborHandle).Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}
