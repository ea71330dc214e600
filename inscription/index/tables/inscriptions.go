package tables

import (
	"fmt"
	"time"

	"github.com/inscription-c/ordinals/internal/util"
)

type Inscriptions struct {
	Id              uint64 `gorm:"column:id;primary_key;AUTO_INCREMENT;NOT NULL"`
	InscriptionId   `gorm:"embedded"`
	Height          uint64    `gorm:"column:height;type:bigint unsigned;index:idx_height;default:0;NOT NULL"`
	TxIdx           uint32    `gorm:"column:tx_idx;type:int unsigned;default:0;NOT NULL"`
	Timestamp       int64     `gorm:"column:timestamp;type:bigint;default:0;NOT NULL"`
	ContentType     string    `gorm:"column:content_type;type:varchar(255);default:'';NOT NULL"`
	MediaType       string    `gorm:"column:media_type;type:varchar(255);index:idx_media_type;default:'';NOT NULL"`
	ContentEncoding string    `gorm:"column:content_encoding;type:varchar(255);default:'';NOT NULL"`
	ContentSize     uint32    `gorm:"column:content_size;type:int unsigned;default:0;NOT NULL"`
	Body            []byte    `gorm:"column:body;type:mediumblob"`
	Pointer         *uint64   `gorm:"column:pointer;type:bigint unsigned"`
	Parent          string    `gorm:"column:parent;type:varchar(255);index:idx_parent;default:'';NOT NULL"`
	Metadata        string    `gorm:"column:metadata;type:mediumtext"`
	MetaProtocol    string    `gorm:"column:metaprotocol;type:varchar(255);index:idx_metaprotocol;default:'';NOT NULL"`
	CreatedAt       time.Time `gorm:"column:created_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
	UpdatedAt       time.Time `gorm:"column:updated_at;type:timestamp;default:CURRENT_TIMESTAMP;NOT NULL"`
}

func (i *Inscriptions) TableName() string {
	return "inscriptions"
}

type InscriptionId struct {
	TxId   string `gorm:"column:tx_id;type:varchar(64);uniqueIndex:uk_inscription_id;default:'';NOT NULL" json:"txid"`
	Offset uint32 `gorm:"column:offset;type:int unsigned;uniqueIndex:uk_inscription_id;default:0;NOT NULL" json:"offset"` // envelope index in tx
}

func (i *InscriptionId) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", i.String())), nil
}

func (i *InscriptionId) String() string {
	return util.NewInscriptionId(i.TxId, i.Offset)
}

func NewInscriptionId(txid string, offset uint32) *InscriptionId {
	return &InscriptionId{
		TxId:   txid,
		Offset: offset,
	}
}

// StringToInscriptionId returns nil when s is not an inscription id.
func StringToInscriptionId(s string) *InscriptionId {
	id := util.StringToInscriptionId(s)
	if id == nil {
		return nil
	}
	return NewInscriptionId(id.TxId.String(), id.Index)
}
