package ordinal

import (
	"errors"
	"fmt"

	"github.com/inscription-c/ordinals/constants"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var satsPerBtc = decimal.NewFromInt(int64(constants.OneBtc))

// BtcToSats converts an rpc float amount to sats by exact decimal scaling.
func BtcToSats(amount float64) (uint64, error) {
	return toSats(decimal.NewFromFloat(amount))
}

// ParseBtc converts a decimal BTC string such as "0.00000546" to sats.
func ParseBtc(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return toSats(d)
}

func toSats(btc decimal.Decimal) (uint64, error) {
	if btc.IsNegative() {
		return 0, fmt.Errorf("%w: negative %s", ErrInvalidAmount, btc)
	}
	sats := btc.Mul(satsPerBtc).Round(0)
	n := sats.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s overflows", ErrInvalidAmount, btc)
	}
	return n.Uint64(), nil
}
