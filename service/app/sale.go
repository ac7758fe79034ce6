package app

import (
	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/cutelabs/drop-ledger/service/errors"
)

// DevMint issues quantity tokens to the owner against the reserved dev
// quota. It is independent of the sale timeline and requires no payment,
// but quantities must align to the batch size. Available in both sale modes
// since the reserve exists regardless of how the paid sale is run.
func (l *Ledger) DevMint(caller common.Address, quantity uint64) ([]uint64, error) {
	if err := l.requireOwner(caller); err != nil {
		return nil, err
	}

	// Reserve before alignment, the order the original drop checked in.
	// Compared against the remaining reserve so the sum cannot wrap.
	if quantity > l.bounds.DevReserve-l.devMinted {
		return nil, errors.ErrReserveExceeded
	}

	if quantity == 0 {
		return nil, errors.ErrInvalidQuantity
	}

	if quantity%l.bounds.MaxBatchSize != 0 {
		return nil, errors.ErrBatchSizeViolation
	}

	ids, err := l.reserveAndIssue(l.owner, quantity)
	if err != nil {
		return nil, err
	}

	l.devMinted += quantity

	return ids, nil
}

// AllowlistMint issues exactly one token to an allowlisted caller. The
// allowlist phase is open once the owner has configured a non-zero
// allowlist price.
func (l *Ledger) AllowlistMint(caller common.Address, payment common.Wei) (uint64, error) {
	if l.mode != common.SaleModePhased || l.saleConfig.AllowlistPrice.IsZero() {
		return 0, errors.New(errors.KindSaleNotStarted, "allowlist sale has not begun yet")
	}

	if l.allowlist[caller] == 0 {
		return 0, errors.ErrNotEligible
	}

	if l.totalIssued >= l.bounds.CollectionSize {
		return 0, errors.ErrSupplyExceeded
	}

	if !payment.EqualTo(l.saleConfig.AllowlistPrice) {
		return 0, errors.ErrInvalidPayment
	}

	// Effects after all checks: allowance and supply first, funds last
	l.allowlist[caller]--

	ids, err := l.reserveAndIssue(caller, 1)
	if err != nil {
		return 0, err
	}

	l.treasury = l.treasury.Add(payment)

	return ids[0], nil
}

// PublicSaleMint issues quantity tokens to any caller holding the shared
// public sale key, limited by the per-address cap.
func (l *Ledger) PublicSaleMint(caller common.Address, quantity uint64, key uint64, payment common.Wei) ([]uint64, error) {
	if l.mode != common.SaleModePhased {
		return nil, errors.New(errors.KindSaleNotStarted, "public sale has not begun yet")
	}

	if key != l.saleConfig.PublicSaleKey {
		return nil, errors.ErrWrongKey
	}

	if !l.isPublicSaleOn() {
		return nil, errors.New(errors.KindSaleNotStarted, "public sale has not begun yet")
	}

	if quantity == 0 {
		return nil, errors.ErrInvalidQuantity
	}

	if quantity > l.bounds.CollectionSize-l.totalIssued {
		return nil, errors.ErrSupplyExceeded
	}

	// The cap counts mints across all phases, so the count may already sit
	// above it after dev or allowlist mints
	if l.minted[caller] >= l.bounds.PublicMintCap || quantity > l.bounds.PublicMintCap-l.minted[caller] {
		return nil, errors.ErrQuotaExceeded
	}

	if !payment.EqualTo(l.saleConfig.PublicPrice.MulUint64(quantity)) {
		return nil, errors.ErrInvalidPayment
	}

	ids, err := l.reserveAndIssue(caller, quantity)
	if err != nil {
		return nil, err
	}

	l.treasury = l.treasury.Add(payment)

	return ids, nil
}

// Mint is the unified single-phase variant: one price, one global start
// flag, no allowlist and no per-address cap.
func (l *Ledger) Mint(caller common.Address, quantity uint64, payment common.Wei) ([]uint64, error) {
	if l.mode != common.SaleModeUnified || !l.unified.Started {
		return nil, errors.New(errors.KindSaleNotStarted, "mint not started")
	}

	if quantity == 0 {
		return nil, errors.ErrInvalidQuantity
	}

	if quantity > l.bounds.CollectionSize-l.totalIssued {
		return nil, errors.ErrSupplyExceeded
	}

	if !payment.EqualTo(l.unified.Price.MulUint64(quantity)) {
		return nil, errors.ErrInvalidPayment
	}

	ids, err := l.reserveAndIssue(caller, quantity)
	if err != nil {
		return nil, err
	}

	l.treasury = l.treasury.Add(payment)

	return ids, nil
}

// The public phase is on once the owner has configured a price, a key and a
// start time that has passed.
func (l *Ledger) isPublicSaleOn() bool {
	return !l.saleConfig.PublicPrice.IsZero() &&
		l.saleConfig.PublicSaleKey != 0 &&
		l.saleConfig.PublicSaleStartTime != 0 &&
		l.now().Unix() >= l.saleConfig.PublicSaleStartTime
}

// Phase reports the current paid-sale phase. Dev minting is not a phase of
// its own as it is owner-gated and independent of the timeline.
func (l *Ledger) Phase() common.SalePhase {
	switch l.mode {
	case common.SaleModeUnified:
		if l.unified.Started {
			return common.SalePhasePublic
		}
		return common.SalePhaseNotStarted
	default:
		if l.isPublicSaleOn() {
			return common.SalePhasePublic
		}
		if !l.saleConfig.AllowlistPrice.IsZero() {
			return common.SalePhaseAllowlist
		}
		return common.SalePhaseNotStarted
	}
}
