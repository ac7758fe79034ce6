package app

import (
	"time"

	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/cutelabs/drop-ledger/service/errors"
)

// Bounds are the immutable limits of a collection, fixed at deployment.
type Bounds struct {
	CollectionSize uint64
	MaxBatchSize   uint64
	DevReserve     uint64
	PublicMintCap  uint64
}

// SaleConfig holds the phased sale timing, pricing and the shared public
// sale key. It is replaced wholesale by the owner.
type SaleConfig struct {
	PublicSaleStartTime int64
	AllowlistPrice      common.Wei
	PublicPrice         common.Wei
	PublicSaleKey       uint64
}

// UnifiedSale is the single-phase engine variant: a global start flag and
// one price per token.
type UnifiedSale struct {
	Started bool
	Price   common.Wei
}

// Ledger is the authoritative sale and ownership state. It is not safe for
// concurrent use; the owning App serializes all access, which models the
// host environment's total ordering of mutating calls. Methods either apply
// fully or return a taxonomy error and leave the state untouched.
type Ledger struct {
	owner  common.Address
	bounds Bounds
	mode   common.SaleMode

	saleConfig SaleConfig
	unified    UnifiedSale
	baseURI    string

	totalIssued uint64
	devMinted   uint64
	treasury    common.Wei

	allowlist         map[common.Address]uint64
	minted            map[common.Address]uint64
	owners            map[uint64]common.Address
	tokenApprovals    map[uint64]common.Address
	operatorApprovals map[common.Address]map[common.Address]bool

	now func() time.Time
}

func NewLedger(owner common.Address, bounds Bounds, mode common.SaleMode) *Ledger {
	return &Ledger{
		owner:             owner,
		bounds:            bounds,
		mode:              mode,
		allowlist:         map[common.Address]uint64{},
		minted:            map[common.Address]uint64{},
		owners:            map[uint64]common.Address{},
		tokenApprovals:    map[uint64]common.Address{},
		operatorApprovals: map[common.Address]map[common.Address]bool{},
		now:               time.Now,
	}
}

func (l *Ledger) requireOwner(caller common.Address) error {
	if caller != l.owner {
		return errors.ErrUnauthorized
	}
	return nil
}

// reserveAndIssue atomically checks the supply cap and assigns the next
// quantity sequential ids to the recipient. Ids start at 1, are strictly
// increasing, contiguous and never reused. The cap check compares against
// the remaining headroom so absurd quantities cannot wrap the sum.
func (l *Ledger) reserveAndIssue(to common.Address, quantity uint64) ([]uint64, error) {
	if quantity > l.bounds.CollectionSize-l.totalIssued {
		return nil, errors.ErrSupplyExceeded
	}

	ids := make([]uint64, quantity)
	for i := range ids {
		id := l.totalIssued + uint64(i) + 1
		ids[i] = id
		l.owners[id] = to
	}

	l.totalIssued += quantity
	l.minted[to] += quantity

	return ids, nil
}

// SetSaleConfig replaces all four phased sale fields atomically.
func (l *Ledger) SetSaleConfig(caller common.Address, cfg SaleConfig) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}

	l.saleConfig = cfg

	return nil
}

// SetUnifiedSale replaces the unified variant's start flag and price.
func (l *Ledger) SetUnifiedSale(caller common.Address, started bool, price common.Wei) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}

	l.unified = UnifiedSale{Started: started, Price: price}

	return nil
}

// SeedAllowlist sets (not increments) the remaining allowance of each given
// address.
func (l *Ledger) SeedAllowlist(caller common.Address, addresses []common.Address, allowances []uint64) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}

	if len(addresses) != len(allowances) {
		return errors.New(errors.KindInvalidRequest, "addresses does not match allowances length")
	}

	for i, addr := range addresses {
		l.allowlist[addr] = allowances[i]
	}

	return nil
}

// -- Reads --

func (l *Ledger) Owner() common.Address {
	return l.owner
}

func (l *Ledger) Bounds() Bounds {
	return l.bounds
}

func (l *Ledger) Mode() common.SaleMode {
	return l.mode
}

func (l *Ledger) SaleConfig() SaleConfig {
	return l.saleConfig
}

func (l *Ledger) UnifiedSale() UnifiedSale {
	return l.unified
}

func (l *Ledger) TotalIssued() uint64 {
	return l.totalIssued
}

func (l *Ledger) DevMinted() uint64 {
	return l.devMinted
}

func (l *Ledger) MintedCount(addr common.Address) uint64 {
	return l.minted[addr]
}

func (l *Ledger) Allowance(addr common.Address) uint64 {
	return l.allowlist[addr]
}
