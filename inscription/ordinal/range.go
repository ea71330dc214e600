package ordinal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

var ErrInvalidRange = errors.New("invalid ordinal range")

// Range is a contiguous run of Size sats beginning at Start. A range can only
// shrink, from its low end, through Consume.
type Range struct {
	Start *uint256.Int
	Size  *uint256.Int
}

// NewRange returns the range of size sats starting at start. start is copied.
func NewRange(start *uint256.Int, size uint64) Range {
	return Range{Start: start.Clone(), Size: uint256.NewInt(size)}
}

// EmptyRange returns a zero length range positioned at start.
func EmptyRange(start *uint256.Int) Range {
	return NewRange(start, 0)
}

// Len returns the number of sats in the range.
func (r Range) Len() *uint256.Int {
	return r.Size.Clone()
}

// Empty reports whether the range holds no sats.
func (r Range) Empty() bool {
	return r.Size.IsZero()
}

// End returns the last sat of the range, or nil when the range is empty.
func (r Range) End() *uint256.Int {
	if r.Empty() {
		return nil
	}
	end := new(uint256.Int).Add(r.Start, r.Size)
	return end.SubUint64(end, 1)
}

// Contains reports whether sat lies in the range.
func (r Range) Contains(sat *uint256.Int) bool {
	if sat.Lt(r.Start) {
		return false
	}
	offset := new(uint256.Int).Sub(sat, r.Start)
	return offset.Lt(r.Size)
}

// Consume splits off the first amount sats. It panics when amount exceeds Len;
// callers bound every amount by the range they walk.
func (r Range) Consume(amount *uint256.Int) (taken, remainder Range) {
	if amount.Gt(r.Size) {
		panic(fmt.Sprintf("ordinal range %s: consume %s exceeds length %s", r, amount.Dec(), r.Size.Dec()))
	}
	taken = Range{Start: r.Start.Clone(), Size: amount.Clone()}
	remainder = Range{
		Start: new(uint256.Int).Add(r.Start, amount),
		Size:  new(uint256.Int).Sub(r.Size, amount),
	}
	return taken, remainder
}

// ConsumeUint64 is Consume with a uint64 amount.
func (r Range) ConsumeUint64(amount uint64) (taken, remainder Range) {
	return r.Consume(uint256.NewInt(amount))
}

// Equal reports whether r and o cover the same sats from the same start.
func (r Range) Equal(o Range) bool {
	return r.Start.Eq(o.Start) && r.Size.Eq(o.Size)
}

// String formats the range as "start+size" in decimal.
func (r Range) String() string {
	return r.Start.Dec() + "+" + r.Size.Dec()
}

// ParseRange parses the output of Range.String.
func ParseRange(s string) (Range, error) {
	start, size, ok := strings.Cut(s, "+")
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	return rangeFromDecimal(start, size)
}

func rangeFromDecimal(start, size string) (Range, error) {
	st, err := uint256.FromDecimal(start)
	if err != nil {
		return Range{}, fmt.Errorf("%w: start %q: %v", ErrInvalidRange, start, err)
	}
	sz, err := uint256.FromDecimal(size)
	if err != nil {
		return Range{}, fmt.Errorf("%w: size %q: %v", ErrInvalidRange, size, err)
	}
	if _, overflow := new(uint256.Int).AddOverflow(st, sz); overflow {
		return Range{}, fmt.Errorf("%w: %s+%s overflows", ErrInvalidRange, start, size)
	}
	return Range{Start: st, Size: sz}, nil
}

type rangeJSON struct {
	Start string `json:"start"`
	Size  string `json:"size"`
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(rangeJSON{Start: r.Start.Dec(), Size: r.Size.Dec()})
}

func (r *Range) UnmarshalJSON(data []byte) error {
	v := rangeJSON{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := rangeFromDecimal(v.Start, v.Size)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
