package http

import (
	"encoding/json"
	"time"

	"github.com/cutelabs/drop-ledger/service/app"
	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/cutelabs/drop-ledger/service/errors"
	"github.com/cutelabs/drop-ledger/service/events"
	"github.com/google/uuid"
)

type ResError struct {
	Kind   errors.Kind `json:"kind"`
	Reason string      `json:"reason"`
}

type ReqSetSaleConfig struct {
	Caller              common.Address `json:"caller"`
	PublicSaleStartTime int64          `json:"publicSaleStartTime"`
	AllowlistPrice      common.Wei     `json:"allowlistPrice"`
	PublicPrice         common.Wei     `json:"publicPrice"`
	PublicSaleKey       uint64         `json:"publicSaleKey"`
}

type ResSaleConfig struct {
	PublicSaleStartTime int64      `json:"publicSaleStartTime"`
	AllowlistPrice      common.Wei `json:"allowlistPrice"`
	PublicPrice         common.Wei `json:"publicPrice"`
	PublicSaleKey       uint64     `json:"publicSaleKey"`
}

type ReqSetUnifiedSale struct {
	Caller  common.Address `json:"caller"`
	Started bool           `json:"started"`
	Price   common.Wei     `json:"price"`
}

type ReqSeedAllowlist struct {
	Caller     common.Address   `json:"caller"`
	Addresses  []common.Address `json:"addresses"`
	Allowances []uint64         `json:"allowances"`
}

type ResAllowance struct {
	Address   common.Address `json:"address"`
	Remaining uint64         `json:"remaining"`
}

type ReqDevMint struct {
	Caller   common.Address `json:"caller"`
	Quantity uint64         `json:"quantity"`
}

type ReqAllowlistMint struct {
	Caller  common.Address `json:"caller"`
	Payment common.Wei     `json:"payment"`
}

type ReqPublicSaleMint struct {
	Caller        common.Address `json:"caller"`
	Quantity      uint64         `json:"quantity"`
	PublicSaleKey uint64         `json:"publicSaleKey"`
	Payment       common.Wei     `json:"payment"`
}

type ReqMint struct {
	Caller   common.Address `json:"caller"`
	Quantity uint64         `json:"quantity"`
	Payment  common.Wei     `json:"payment"`
}

type ResMint struct {
	TokenIDs []uint64 `json:"tokenIDs"`
	Event    ResEvent `json:"event"`
}

type ResMintedCount struct {
	Address common.Address `json:"address"`
	Minted  uint64         `json:"minted"`
}

type ReqTransfer struct {
	Caller common.Address `json:"caller"`
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
}

type ReqApprove struct {
	Caller common.Address `json:"caller"`
	To     common.Address `json:"to"`
}

type ReqSetApprovalForAll struct {
	Caller   common.Address `json:"caller"`
	Operator common.Address `json:"operator"`
	Approved bool           `json:"approved"`
}

type ReqSetBaseURI struct {
	Caller  common.Address `json:"caller"`
	BaseURI string         `json:"baseURI"`
}

type ReqWithdraw struct {
	Caller common.Address `json:"caller"`
}

type ResWithdraw struct {
	Amount common.Wei `json:"amount"`
	Event  ResEvent   `json:"event"`
}

type ResToken struct {
	ID       uint64         `json:"id"`
	Owner    common.Address `json:"owner"`
	Approved common.Address `json:"approved"`
	URI      string         `json:"uri"`
}

type ResTokenURI struct {
	ID  uint64 `json:"id"`
	URI string `json:"uri"`
}

type ResCollection struct {
	Owner          common.Address   `json:"owner"`
	CollectionSize uint64           `json:"collectionSize"`
	MaxBatchSize   uint64           `json:"maxBatchSize"`
	DevReserve     uint64           `json:"devReserve"`
	PublicMintCap  uint64           `json:"publicMintCap"`
	SaleMode       common.SaleMode  `json:"saleMode"`
	Phase          common.SalePhase `json:"phase"`
	TotalIssued    uint64           `json:"totalIssued"`
	DevMinted      uint64           `json:"devMinted"`
	Treasury       common.Wei       `json:"treasury"`
	BaseURI        string           `json:"baseURI"`
	SaleConfig     ResSaleConfig    `json:"saleConfig"`
	UnifiedStarted bool             `json:"unifiedStarted"`
	UnifiedPrice   common.Wei       `json:"unifiedPrice"`
}

type ResEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      events.Type     `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
	Payload   json.RawMessage `json:"payload"`
}

func ResEventFromApp(e *events.Event) ResEvent {
	return ResEvent{
		ID:        e.ID,
		Type:      e.Type,
		CreatedAt: e.CreatedAt,
		Payload:   json.RawMessage(e.Payload),
	}
}

func ResEventListFromApp(ee []events.Event) []ResEvent {
	res := make([]ResEvent, len(ee))
	for i := range ee {
		res[i] = ResEventFromApp(&ee[i])
	}
	return res
}

func ResMintFromApp(m *app.MintResult) ResMint {
	return ResMint{
		TokenIDs: m.IDs,
		Event:    ResEventFromApp(m.Event),
	}
}

func ResSaleConfigFromApp(c app.SaleConfig) ResSaleConfig {
	return ResSaleConfig{
		PublicSaleStartTime: c.PublicSaleStartTime,
		AllowlistPrice:      c.AllowlistPrice,
		PublicPrice:         c.PublicPrice,
		PublicSaleKey:       c.PublicSaleKey,
	}
}

func ResCollectionFromApp(info app.CollectionInfo) ResCollection {
	return ResCollection{
		Owner:          info.Owner,
		CollectionSize: info.Bounds.CollectionSize,
		MaxBatchSize:   info.Bounds.MaxBatchSize,
		DevReserve:     info.Bounds.DevReserve,
		PublicMintCap:  info.Bounds.PublicMintCap,
		SaleMode:       info.Mode,
		Phase:          info.Phase,
		TotalIssued:    info.TotalIssued,
		DevMinted:      info.DevMinted,
		Treasury:       info.Treasury,
		BaseURI:        info.BaseURI,
		SaleConfig:     ResSaleConfigFromApp(info.SaleConfig),
		UnifiedStarted: info.Unified.Started,
		UnifiedPrice:   info.Unified.Price,
	}
}

func ResTokenFromApp(t app.TokenInfo) ResToken {
	return ResToken{
		ID:       t.ID,
		Owner:    t.Owner,
		Approved: t.Approved,
		URI:      t.URI,
	}
}

func (r ReqSetSaleConfig) ToApp() app.SaleConfig {
	return app.SaleConfig{
		PublicSaleStartTime: r.PublicSaleStartTime,
		AllowlistPrice:      r.AllowlistPrice,
		PublicPrice:         r.PublicPrice,
		PublicSaleKey:       r.PublicSaleKey,
	}
}
