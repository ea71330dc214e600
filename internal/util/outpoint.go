package util

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/gogf/gf/v2/util/gconv"
	"github.com/inscription-c/ordinals/constants"
)

// FormatOutpoint returns "txid:vout".
func FormatOutpoint(txid string, vout uint32) string {
	return fmt.Sprintf("%s%s%d", txid, constants.OutpointDelimiter, vout)
}

type OutPoint struct {
	wire.OutPoint
}

// StringToOutpoint parses "txid:vout", returning nil when s is not an outpoint.
func StringToOutpoint(s string) *OutPoint {
	s = strings.ToLower(strings.TrimSpace(s))
	if !constants.OutpointRegexp.MatchString(s) {
		return nil
	}
	parts := strings.Split(s, constants.OutpointDelimiter)
	h, err := chainhash.NewHashFromStr(parts[0])
	if err != nil {
		return nil
	}
	return &OutPoint{
		OutPoint: wire.OutPoint{
			Hash:  *h,
			Index: gconv.Uint32(parts[1]),
		},
	}
}

func (o *OutPoint) String() string {
	return FormatOutpoint(o.Hash.String(), o.Index)
}

func (o *OutPoint) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("unsupported outpoint value %T", value)
	}
	outpoint := StringToOutpoint(s)
	if outpoint == nil {
		return errors.New("invalid outpoint " + s)
	}
	*o = *outpoint
	return nil
}

func (o OutPoint) Value() (driver.Value, error) {
	return o.String(), nil
}

func (o *OutPoint) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}
