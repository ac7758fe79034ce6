package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/cutelabs/drop-ledger/service/config"
	"github.com/cutelabs/drop-ledger/service/events"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App serializes all ledger operations behind one mutex and mirrors every
// successful operation to the database before the in-memory state advances.
// A failed mirror write restores the ledger from the last persisted
// snapshot, so no partial effects survive a rejection.
type App struct {
	cfg    *config.Config
	logger *log.Logger
	db     Store
	ledger *Ledger

	mu       sync.Mutex
	quit     chan struct{}
	diverged bool
}

type MintResult struct {
	IDs   []uint64
	Event *events.Event
}

type CollectionInfo struct {
	Owner       common.Address
	Bounds      Bounds
	Mode        common.SaleMode
	Phase       common.SalePhase
	TotalIssued uint64
	DevMinted   uint64
	Treasury    common.Wei
	BaseURI     string
	SaleConfig  SaleConfig
	Unified     UnifiedSale
}

type TokenInfo struct {
	ID       uint64
	Owner    common.Address
	Approved common.Address
	URI      string
}

func New(cfg *config.Config, logger *log.Logger, db *gorm.DB, logState bool) (*App, error) {
	if logger == nil {
		logger = log.New()
	}

	mode := common.SaleMode(cfg.SaleMode)
	if mode != common.SaleModePhased && mode != common.SaleModeUnified {
		return nil, fmt.Errorf("sale mode '%s' not supported", cfg.SaleMode)
	}

	store := NewGormStore(db)

	snap, err := store.LoadSnapshot()
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		logger: logger,
		db:     store,
		quit:   make(chan struct{}),
	}

	if snap == nil {
		ledger := NewLedger(common.AddressFromString(cfg.OwnerAddress), Bounds{
			CollectionSize: cfg.CollectionSize,
			MaxBatchSize:   cfg.MaxBatchSize,
			DevReserve:     cfg.DevReserve,
			PublicMintCap:  cfg.PublicMintCap,
		}, mode)
		app.ledger = ledger
		if err := store.Commit(&Mutation{Collection: ledger.collectionRow()}); err != nil {
			return nil, err
		}
		logger.WithFields(log.Fields{
			"owner":          ledger.Owner(),
			"collectionSize": ledger.Bounds().CollectionSize,
			"saleMode":       mode,
		}).Info("Initialized new collection")
	} else {
		app.ledger = ledgerFromSnapshot(snap)
		logger.WithFields(log.Fields{
			"totalIssued": app.ledger.TotalIssued(),
			"treasury":    app.ledger.Treasury(),
		}).Info("Rehydrated ledger from database")
	}

	if logState && cfg.StateLogInterval > 0 {
		go app.stateLogLoop(cfg.StateLogInterval)
	}

	return app, nil
}

func (a *App) Close() {
	close(a.quit)
}

// stateLogLoop periodically logs a one-line ledger summary.
func (a *App) stateLogLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return
		case <-ticker.C:
			a.mu.Lock()
			fields := log.Fields{
				"phase":       a.ledger.Phase(),
				"totalIssued": a.ledger.TotalIssued(),
				"treasury":    a.ledger.Treasury(),
			}
			a.mu.Unlock()
			a.logger.WithFields(fields).Info("Ledger state")
		}
	}
}

// commit mirrors one applied operation. On failure the in-memory ledger is
// reloaded from the last persisted snapshot to discard the applied change.
// If that restore fails too the in-memory state no longer matches the read
// model and the app refuses all further writes until a restart rehydrates it.
func (a *App) commit(m *Mutation) error {
	if err := a.db.Commit(m); err != nil {
		snap, lerr := a.db.LoadSnapshot()
		if lerr != nil || snap == nil {
			a.diverged = true
			a.logger.WithError(lerr).Error("Unable to restore ledger after failed commit, disabling writes")
		} else {
			a.ledger = ledgerFromSnapshot(snap)
		}
		return err
	}
	return nil
}

// checkWritable gates every mutating operation. Callers hold the lock.
func (a *App) checkWritable() error {
	if a.diverged {
		return fmt.Errorf("ledger state diverged from database, writes are disabled")
	}
	return nil
}

// Healthy reports whether the app can still accept writes.
func (a *App) Healthy(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.diverged
}

// -- Owner operations --

func (a *App) SetSaleConfig(ctx context.Context, caller common.Address, cfg SaleConfig) (*events.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	if err := a.ledger.SetSaleConfig(caller, cfg); err != nil {
		return nil, err
	}

	event, err := events.New(events.TypeSaleConfigSet, events.SaleConfigSetPayload{
		PublicSaleStartTime: cfg.PublicSaleStartTime,
		AllowlistPrice:      cfg.AllowlistPrice,
		PublicPrice:         cfg.PublicPrice,
		PublicSaleKey:       cfg.PublicSaleKey,
	})
	if err != nil {
		return nil, err
	}

	if err := a.commit(&Mutation{Collection: a.ledger.collectionRow(), Event: event}); err != nil {
		return nil, err
	}

	return event, nil
}

func (a *App) SetUnifiedSale(ctx context.Context, caller common.Address, started bool, price common.Wei) (*events.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	if err := a.ledger.SetUnifiedSale(caller, started, price); err != nil {
		return nil, err
	}

	event, err := events.New(events.TypeUnifiedSaleSet, events.UnifiedSaleSetPayload{
		Started: started,
		Price:   price,
	})
	if err != nil {
		return nil, err
	}

	if err := a.commit(&Mutation{Collection: a.ledger.collectionRow(), Event: event}); err != nil {
		return nil, err
	}

	return event, nil
}

func (a *App) SeedAllowlist(ctx context.Context, caller common.Address, addresses []common.Address, allowances []uint64) (*events.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	if err := a.ledger.SeedAllowlist(caller, addresses, allowances); err != nil {
		return nil, err
	}

	event, err := events.New(events.TypeAllowlistSeed, events.AllowlistSeededPayload{
		Addresses:  addresses,
		Allowances: allowances,
	})
	if err != nil {
		return nil, err
	}

	entries := make([]AllowlistEntry, len(addresses))
	for i, addr := range addresses {
		entries[i] = a.ledger.allowlistRow(addr)
	}

	if err := a.commit(&Mutation{AllowlistEntries: entries, Event: event}); err != nil {
		return nil, err
	}

	return event, nil
}

func (a *App) SetBaseURI(ctx context.Context, caller common.Address, base string) (*events.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	if err := a.ledger.SetBaseURI(caller, base); err != nil {
		return nil, err
	}

	event, err := events.New(events.TypeBaseURISet, events.BaseURISetPayload{BaseURI: base})
	if err != nil {
		return nil, err
	}

	if err := a.commit(&Mutation{Collection: a.ledger.collectionRow(), Event: event}); err != nil {
		return nil, err
	}

	return event, nil
}

func (a *App) Withdraw(ctx context.Context, caller common.Address) (common.Wei, *events.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return common.Wei{}, nil, err
	}

	amount, err := a.ledger.Withdraw(caller)
	if err != nil {
		return common.Wei{}, nil, err
	}

	event, err := events.New(events.TypeWithdrawn, events.WithdrawnPayload{
		To:     a.ledger.Owner(),
		Amount: amount,
	})
	if err != nil {
		return common.Wei{}, nil, err
	}

	if err := a.commit(&Mutation{Collection: a.ledger.collectionRow(), Event: event}); err != nil {
		return common.Wei{}, nil, err
	}

	return amount, event, nil
}

// -- Mint operations --

func (a *App) DevMint(ctx context.Context, caller common.Address, quantity uint64) (*MintResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	ids, err := a.ledger.DevMint(caller, quantity)
	if err != nil {
		return nil, err
	}

	return a.commitMint(a.ledger.Owner(), ids, common.Wei{}, nil)
}

func (a *App) AllowlistMint(ctx context.Context, caller common.Address, payment common.Wei) (*MintResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	id, err := a.ledger.AllowlistMint(caller, payment)
	if err != nil {
		return nil, err
	}

	entry := a.ledger.allowlistRow(caller)
	return a.commitMint(caller, []uint64{id}, payment, &entry)
}

func (a *App) PublicSaleMint(ctx context.Context, caller common.Address, quantity uint64, key uint64, payment common.Wei) (*MintResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	ids, err := a.ledger.PublicSaleMint(caller, quantity, key, payment)
	if err != nil {
		return nil, err
	}

	return a.commitMint(caller, ids, payment, nil)
}

func (a *App) Mint(ctx context.Context, caller common.Address, quantity uint64, payment common.Wei) (*MintResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	ids, err := a.ledger.Mint(caller, quantity, payment)
	if err != nil {
		return nil, err
	}

	return a.commitMint(caller, ids, payment, nil)
}

// commitMint journals a successful issuance. Callers hold the lock.
func (a *App) commitMint(to common.Address, ids []uint64, payment common.Wei, allowlist *AllowlistEntry) (*MintResult, error) {
	event, err := events.New(events.TypeMinted, events.MintedPayload{
		To:       to,
		Quantity: uint64(len(ids)),
		FirstID:  ids[0],
		LastID:   ids[len(ids)-1],
		Payment:  payment,
	})
	if err != nil {
		return nil, err
	}

	mutation := &Mutation{
		Collection:  a.ledger.collectionRow(),
		Tokens:      a.ledger.tokenRows(ids),
		MinterStats: []MinterStat{a.ledger.minterStatRow(to)},
		Event:       event,
	}
	if allowlist != nil {
		mutation.AllowlistEntries = []AllowlistEntry{*allowlist}
	}

	if err := a.commit(mutation); err != nil {
		return nil, err
	}

	return &MintResult{IDs: ids, Event: event}, nil
}

// -- Transfer and approval operations --

func (a *App) Transfer(ctx context.Context, caller, from, to common.Address, id uint64) (*events.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	if err := a.ledger.Transfer(caller, from, to, id); err != nil {
		return nil, err
	}

	event, err := events.New(events.TypeTransferred, events.TransferredPayload{
		From:    from,
		To:      to,
		TokenID: id,
	})
	if err != nil {
		return nil, err
	}

	if err := a.commit(&Mutation{Tokens: []Token{a.ledger.tokenRow(id)}, Event: event}); err != nil {
		return nil, err
	}

	return event, nil
}

func (a *App) Approve(ctx context.Context, caller, to common.Address, id uint64) (*events.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	if err := a.ledger.Approve(caller, to, id); err != nil {
		return nil, err
	}

	holder, err := a.ledger.OwnerOf(id)
	if err != nil {
		return nil, err
	}

	event, err := events.New(events.TypeApproved, events.ApprovedPayload{
		Owner:    holder,
		Approved: to,
		TokenID:  id,
	})
	if err != nil {
		return nil, err
	}

	if err := a.commit(&Mutation{Tokens: []Token{a.ledger.tokenRow(id)}, Event: event}); err != nil {
		return nil, err
	}

	return event, nil
}

func (a *App) SetApprovalForAll(ctx context.Context, caller, operator common.Address, approved bool) (*events.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkWritable(); err != nil {
		return nil, err
	}

	if err := a.ledger.SetApprovalForAll(caller, operator, approved); err != nil {
		return nil, err
	}

	event, err := events.New(events.TypeApprovalForAll, events.ApprovalForAllPayload{
		Owner:    caller,
		Operator: operator,
		Approved: approved,
	})
	if err != nil {
		return nil, err
	}

	mutation := &Mutation{
		OperatorApprovals: []OperatorApproval{a.ledger.operatorApprovalRow(caller, operator)},
		Event:             event,
	}

	if err := a.commit(mutation); err != nil {
		return nil, err
	}

	return event, nil
}

// -- Reads --

func (a *App) CollectionInfo(ctx context.Context) CollectionInfo {
	a.mu.Lock()
	defer a.mu.Unlock()

	return CollectionInfo{
		Owner:       a.ledger.Owner(),
		Bounds:      a.ledger.Bounds(),
		Mode:        a.ledger.Mode(),
		Phase:       a.ledger.Phase(),
		TotalIssued: a.ledger.TotalIssued(),
		DevMinted:   a.ledger.DevMinted(),
		Treasury:    a.ledger.Treasury(),
		BaseURI:     a.ledger.BaseURI(),
		SaleConfig:  a.ledger.SaleConfig(),
		Unified:     a.ledger.UnifiedSale(),
	}
}

func (a *App) SaleConfig(ctx context.Context) SaleConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.SaleConfig()
}

func (a *App) Allowance(ctx context.Context, addr common.Address) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Allowance(addr)
}

func (a *App) MintedCount(ctx context.Context, addr common.Address) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.MintedCount(addr)
}

func (a *App) Token(ctx context.Context, id uint64) (TokenInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	holder, err := a.ledger.OwnerOf(id)
	if err != nil {
		return TokenInfo{}, err
	}

	approved, err := a.ledger.ApprovedFor(id)
	if err != nil {
		return TokenInfo{}, err
	}

	uri, err := a.ledger.TokenURI(id)
	if err != nil {
		return TokenInfo{}, err
	}

	return TokenInfo{ID: id, Owner: holder, Approved: approved, URI: uri}, nil
}

func (a *App) TokenURI(ctx context.Context, id uint64) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.TokenURI(id)
}

func (a *App) IsApprovedForAll(ctx context.Context, owner, operator common.Address) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.IsApprovedForAll(owner, operator)
}

func (a *App) ListEvents(ctx context.Context, limit, offset int) ([]events.Event, error) {
	return a.db.ListEvents(limit, offset)
}
