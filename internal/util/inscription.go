package util

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gogf/gf/v2/util/gconv"
	"github.com/inscription-c/ordinals/constants"
)

// NewInscriptionId formats the id of the index-th inscription revealed by txid.
func NewInscriptionId(txid string, index uint32) string {
	return fmt.Sprintf("%s%s%d", txid, constants.InscriptionIdDelimiter, index)
}

// InscriptionId is a parsed "{txid}i{index}".
type InscriptionId struct {
	TxId  chainhash.Hash
	Index uint32
}

func (i *InscriptionId) String() string {
	return NewInscriptionId(i.TxId.String(), i.Index)
}

// StringToInscriptionId parses an inscription id, returning nil when s is not one.
func StringToInscriptionId(s string) *InscriptionId {
	s = strings.ToLower(strings.TrimSpace(s))
	if !constants.InscriptionIdRegexp.MatchString(s) {
		return nil
	}
	idx := strings.LastIndex(s, constants.InscriptionIdDelimiter)
	h, err := chainhash.NewHashFromStr(s[:idx])
	if err != nil {
		return nil
	}
	return &InscriptionId{
		TxId:  *h,
		Index: gconv.Uint32(s[idx+1:]),
	}
}
