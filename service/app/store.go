package app

import (
	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/cutelabs/drop-ledger/service/events"
)

type Store interface {
	// Load the full read model, nil if the ledger has not been initialized
	LoadSnapshot() (*Snapshot, error)

	// Persist one operation's row changes and its event atomically
	Commit(*Mutation) error

	// List journaled events
	ListEvents(limit, offset int) ([]events.Event, error)
}

// Snapshot is the persisted mirror of the ledger, used for rehydration.
type Snapshot struct {
	Collection        Collection
	Tokens            []Token
	AllowlistEntries  []AllowlistEntry
	MinterStats       []MinterStat
	OperatorApprovals []OperatorApproval
}

// Mutation carries the rows touched by one operation. Nil or empty fields
// are left alone; present rows are upserted.
type Mutation struct {
	Collection        *Collection
	Tokens            []Token
	AllowlistEntries  []AllowlistEntry
	MinterStats       []MinterStat
	OperatorApprovals []OperatorApproval
	Event             *events.Event
}

const (
	DefaultEventLimit = 1000
)

func ParseEventListOptions(limit, offset int) (int, int) {
	if limit <= 0 || limit > DefaultEventLimit {
		limit = DefaultEventLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// -- Row builders: project the in-memory ledger onto read-model rows --

func (l *Ledger) collectionRow() *Collection {
	row := &Collection{
		Owner:               l.owner,
		CollectionSize:      l.bounds.CollectionSize,
		MaxBatchSize:        l.bounds.MaxBatchSize,
		DevReserve:          l.bounds.DevReserve,
		PublicMintCap:       l.bounds.PublicMintCap,
		SaleMode:            l.mode,
		TotalIssued:         l.totalIssued,
		DevMinted:           l.devMinted,
		BaseURI:             l.baseURI,
		Treasury:            l.treasury,
		SalePublicStartTime: l.saleConfig.PublicSaleStartTime,
		SaleAllowlistPrice:  l.saleConfig.AllowlistPrice,
		SalePublicPrice:     l.saleConfig.PublicPrice,
		SalePublicKey:       l.saleConfig.PublicSaleKey,
		UnifiedStarted:      l.unified.Started,
		UnifiedPrice:        l.unified.Price,
	}
	row.ID = collectionRowID
	return row
}

func (l *Ledger) tokenRow(id uint64) Token {
	return Token{
		ID:       id,
		Owner:    l.owners[id],
		Approved: l.tokenApprovals[id],
	}
}

func (l *Ledger) tokenRows(ids []uint64) []Token {
	rows := make([]Token, len(ids))
	for i, id := range ids {
		rows[i] = l.tokenRow(id)
	}
	return rows
}

func (l *Ledger) allowlistRow(addr common.Address) AllowlistEntry {
	return AllowlistEntry{Address: addr, Remaining: l.allowlist[addr]}
}

func (l *Ledger) minterStatRow(addr common.Address) MinterStat {
	return MinterStat{Address: addr, Minted: l.minted[addr]}
}

func (l *Ledger) operatorApprovalRow(owner, operator common.Address) OperatorApproval {
	return OperatorApproval{
		Owner:    owner,
		Operator: operator,
		Approved: l.operatorApprovals[owner][operator],
	}
}

// ledgerFromSnapshot rebuilds the in-memory ledger from the read model.
func ledgerFromSnapshot(snap *Snapshot) *Ledger {
	col := snap.Collection

	l := NewLedger(col.Owner, Bounds{
		CollectionSize: col.CollectionSize,
		MaxBatchSize:   col.MaxBatchSize,
		DevReserve:     col.DevReserve,
		PublicMintCap:  col.PublicMintCap,
	}, col.SaleMode)

	l.saleConfig = SaleConfig{
		PublicSaleStartTime: col.SalePublicStartTime,
		AllowlistPrice:      col.SaleAllowlistPrice,
		PublicPrice:         col.SalePublicPrice,
		PublicSaleKey:       col.SalePublicKey,
	}
	l.unified = UnifiedSale{Started: col.UnifiedStarted, Price: col.UnifiedPrice}
	l.baseURI = col.BaseURI
	l.totalIssued = col.TotalIssued
	l.devMinted = col.DevMinted
	l.treasury = col.Treasury

	for _, t := range snap.Tokens {
		l.owners[t.ID] = t.Owner
		if !t.Approved.IsEmpty() {
			l.tokenApprovals[t.ID] = t.Approved
		}
	}

	for _, e := range snap.AllowlistEntries {
		l.allowlist[e.Address] = e.Remaining
	}

	for _, s := range snap.MinterStats {
		l.minted[s.Address] = s.Minted
	}

	for _, a := range snap.OperatorApprovals {
		if !a.Approved {
			continue
		}
		if l.operatorApprovals[a.Owner] == nil {
			l.operatorApprovals[a.Owner] = map[common.Address]bool{}
		}
		l.operatorApprovals[a.Owner][a.Operator] = true
	}

	return l
}
