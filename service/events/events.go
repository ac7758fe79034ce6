// Package events implements the ledger's journaled domain events. Every
// successful mutating operation appends exactly one event; off-ledger
// observers index these instead of tailing the database tables.
package events

import (
	"encoding/json"

	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Type string

const (
	TypeMinted         Type = "Minted"
	TypeTransferred    Type = "Transferred"
	TypeApproved       Type = "Approved"
	TypeApprovalForAll Type = "ApprovalForAllSet"
	TypeSaleConfigSet  Type = "SaleConfigSet"
	TypeUnifiedSaleSet Type = "UnifiedSaleSet"
	TypeAllowlistSeed  Type = "AllowlistSeeded"
	TypeBaseURISet     Type = "BaseURISet"
	TypeWithdrawn      Type = "Withdrawn"
)

// Event stores one journaled ledger event. The payload is one of the
// *Payload structs below, encoded as JSON.
type Event struct {
	gorm.Model
	ID uuid.UUID `gorm:"column:id;primary_key;type:uuid;"`

	Type    Type           `gorm:"column:type;index"`
	Payload datatypes.JSON `gorm:"column:payload"`
}

type MintedPayload struct {
	To       common.Address `json:"to"`
	Quantity uint64         `json:"quantity"`
	FirstID  uint64         `json:"firstID"`
	LastID   uint64         `json:"lastID"`
	Payment  common.Wei     `json:"payment"`
}

type TransferredPayload struct {
	From    common.Address `json:"from"`
	To      common.Address `json:"to"`
	TokenID uint64         `json:"tokenID"`
}

type ApprovedPayload struct {
	Owner    common.Address `json:"owner"`
	Approved common.Address `json:"approved"`
	TokenID  uint64         `json:"tokenID"`
}

type ApprovalForAllPayload struct {
	Owner    common.Address `json:"owner"`
	Operator common.Address `json:"operator"`
	Approved bool           `json:"approved"`
}

type SaleConfigSetPayload struct {
	PublicSaleStartTime int64      `json:"publicSaleStartTime"`
	AllowlistPrice      common.Wei `json:"allowlistPrice"`
	PublicPrice         common.Wei `json:"publicPrice"`
	PublicSaleKey       uint64     `json:"publicSaleKey"`
}

type UnifiedSaleSetPayload struct {
	Started bool       `json:"started"`
	Price   common.Wei `json:"price"`
}

type AllowlistSeededPayload struct {
	Addresses  []common.Address `json:"addresses"`
	Allowances []uint64         `json:"allowances"`
}

type BaseURISetPayload struct {
	BaseURI string `json:"baseURI"`
}

type WithdrawnPayload struct {
	To     common.Address `json:"to"`
	Amount common.Wei     `json:"amount"`
}

func New(t Type, payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{Type: t, Payload: data}, nil
}
