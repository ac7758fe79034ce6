package app

import (
	"time"

	"github.com/cutelabs/drop-ledger/service/common"
	"gorm.io/gorm"
)

// The collections table holds a single row mirroring the ledger's scalar
// state; it always uses this id.
const collectionRowID = 1

type Collection struct {
	gorm.Model

	Owner common.Address `gorm:"column:owner"`

	CollectionSize uint64          `gorm:"column:collection_size"`
	MaxBatchSize   uint64          `gorm:"column:max_batch_size"`
	DevReserve     uint64          `gorm:"column:dev_reserve"`
	PublicMintCap  uint64          `gorm:"column:public_mint_cap"`
	SaleMode       common.SaleMode `gorm:"column:sale_mode"`

	TotalIssued uint64     `gorm:"column:total_issued"`
	DevMinted   uint64     `gorm:"column:dev_minted"`
	BaseURI     string     `gorm:"column:base_uri"`
	Treasury    common.Wei `gorm:"column:treasury"`

	SalePublicStartTime int64      `gorm:"column:sale_public_start_time"`
	SaleAllowlistPrice  common.Wei `gorm:"column:sale_allowlist_price"`
	SalePublicPrice     common.Wei `gorm:"column:sale_public_price"`
	SalePublicKey       uint64     `gorm:"column:sale_public_key"`

	UnifiedStarted bool       `gorm:"column:unified_started"`
	UnifiedPrice   common.Wei `gorm:"column:unified_price"`
}

type Token struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement:false"`
	Owner     common.Address `gorm:"column:owner;index"`
	Approved  common.Address `gorm:"column:approved"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AllowlistEntry struct {
	Address   common.Address `gorm:"column:address;primaryKey"`
	Remaining uint64         `gorm:"column:remaining"`
	UpdatedAt time.Time
}

type MinterStat struct {
	Address   common.Address `gorm:"column:address;primaryKey"`
	Minted    uint64         `gorm:"column:minted"`
	UpdatedAt time.Time
}

type OperatorApproval struct {
	Owner     common.Address `gorm:"column:owner;primaryKey"`
	Operator  common.Address `gorm:"column:operator;primaryKey"`
	Approved  bool           `gorm:"column:approved"`
	UpdatedAt time.Time
}

func (Collection) TableName() string {
	return "collections"
}

func (Token) TableName() string {
	return "tokens"
}

func (AllowlistEntry) TableName() string {
	return "allowlist_entries"
}

func (MinterStat) TableName() string {
	return "minter_stats"
}

func (OperatorApproval) TableName() string {
	return "operator_approvals"
}
