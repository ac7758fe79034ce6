package main

import (
	"context"
	"testing"

	"github.com/cutelabs/drop-ledger/service/app"
	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/cutelabs/drop-ledger/utils"
)

// Runs a whole phased drop through the application layer and then boots a
// second application on the same database to check that every effect was
// mirrored and survives a restart.
func TestE2EPhasedDrop(t *testing.T) {
	cfg := getTestCfg(t)
	db := getTestDatabase(t, cfg)
	ctx := context.Background()

	a, err := app.New(cfg, nil, db, false)
	if err != nil {
		t.Fatal(err)
	}

	owner := common.AddressFromString(cfg.OwnerAddress)
	alice := common.AddressFromString("0xa11ce")
	bob := common.AddressFromString("0xb0b")

	allowlistPrice := utils.Gwei(100000000)
	publicPrice := utils.Gwei(500000000)

	// Devs take their full reserve up front
	mint, err := a.DevMint(ctx, owner, 20)
	if err != nil {
		t.Fatal(err)
	}
	AssertEqual(t, 20, len(mint.IDs))
	AssertEqual(t, uint64(1), mint.IDs[0])

	if _, err := a.SeedAllowlist(ctx, owner, []common.Address{alice}, []uint64{1}); err != nil {
		t.Fatal(err)
	}

	if _, err := a.SetSaleConfig(ctx, owner, app.SaleConfig{
		PublicSaleStartTime: 1645115250,
		AllowlistPrice:      allowlistPrice,
		PublicPrice:         publicPrice,
		PublicSaleKey:       12345678,
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := a.SetBaseURI(ctx, owner, "ipfs://cute/"); err != nil {
		t.Fatal(err)
	}

	// Alice mints her allowlisted token
	mint, err = a.AllowlistMint(ctx, alice, allowlistPrice)
	if err != nil {
		t.Fatal(err)
	}
	AssertEqual(t, []uint64{21}, mint.IDs)
	AssertEqual(t, uint64(0), a.Allowance(ctx, alice))

	// Bob buys two in the public sale
	mint, err = a.PublicSaleMint(ctx, bob, 2, 12345678, publicPrice.MulUint64(2))
	if err != nil {
		t.Fatal(err)
	}
	AssertEqual(t, []uint64{22, 23}, mint.IDs)

	// Alice hands her token to Bob through an operator approval
	if _, err := a.SetApprovalForAll(ctx, alice, bob, true); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Transfer(ctx, bob, alice, bob, 21); err != nil {
		t.Fatal(err)
	}

	expectedProceeds := allowlistPrice.Add(publicPrice.MulUint64(2))
	amount, _, err := a.Withdraw(ctx, owner)
	if err != nil {
		t.Fatal(err)
	}
	AssertEqual(t, expectedProceeds.String(), amount.String())

	a.Close()

	// Restart on the same database
	a2, err := app.New(cfg, nil, db, false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a2.Close)

	info := a2.CollectionInfo(ctx)
	AssertEqual(t, uint64(23), info.TotalIssued)
	AssertEqual(t, uint64(20), info.DevMinted)
	AssertEqual(t, "ipfs://cute/", info.BaseURI)
	AssertEqual(t, "0", info.Treasury.String())
	AssertEqual(t, uint64(12345678), info.SaleConfig.PublicSaleKey)

	token, err := a2.Token(ctx, 21)
	if err != nil {
		t.Fatal(err)
	}
	AssertEqual(t, bob, token.Owner)
	AssertEqual(t, "ipfs://cute/21", token.URI)

	AssertEqual(t, uint64(1), a2.MintedCount(ctx, alice))
	AssertEqual(t, uint64(2), a2.MintedCount(ctx, bob))
	AssertEqual(t, uint64(0), a2.Allowance(ctx, alice))
	AssertEqual(t, true, a2.IsApprovedForAll(ctx, alice, bob))

	events, err := a2.ListEvents(ctx, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	AssertEqual(t, 9, len(events))

	// Quota still applies after the restart
	mint, err = a2.PublicSaleMint(ctx, bob, 3, 12345678, publicPrice.MulUint64(3))
	if err != nil {
		t.Fatal(err)
	}
	AssertEqual(t, []uint64{24, 25, 26}, mint.IDs)

	if _, err := a2.PublicSaleMint(ctx, bob, 1, 12345678, publicPrice); err == nil {
		t.Fatal("expected quota to be exceeded after restart")
	}
}

// Kills the database under a live app: the write whose mirror fails is
// rejected, and once the ledger can no longer be restored from the read
// model the app refuses further writes and reports itself unhealthy.
func TestDivergedStateDisablesWrites(t *testing.T) {
	cfg := getTestCfg(t)
	cfg.SaleMode = "unified"

	db := getTestDatabase(t, cfg)
	ctx := context.Background()

	a, err := app.New(cfg, nil, db, false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a.Close)

	owner := common.AddressFromString(cfg.OwnerAddress)
	buyer := common.AddressFromString("0xbeef")

	if _, err := a.SetUnifiedSale(ctx, owner, true, common.Wei{}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Mint(ctx, buyer, 1, common.Wei{}); err != nil {
		t.Fatal(err)
	}

	AssertEqual(t, true, a.Healthy(ctx))

	common.CloseGormDB(db)

	if _, err := a.Mint(ctx, buyer, 1, common.Wei{}); err == nil {
		t.Fatal("expected mint to fail once the database is gone")
	}

	// The restore failed too, so writes stay disabled
	if _, err := a.Mint(ctx, buyer, 1, common.Wei{}); err == nil {
		t.Fatal("expected writes to be disabled after a failed restore")
	}
	if _, err := a.SetBaseURI(ctx, owner, "ipfs://cute/"); err == nil {
		t.Fatal("expected writes to be disabled after a failed restore")
	}

	AssertEqual(t, false, a.Healthy(ctx))
}

// Sells out a small unified-sale collection and checks the terminal state.
func TestE2ESellOut(t *testing.T) {
	cfg := getTestCfg(t)
	cfg.SaleMode = "unified"
	cfg.CollectionSize = 50

	db := getTestDatabase(t, cfg)
	ctx := context.Background()

	a, err := app.New(cfg, nil, db, false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a.Close)

	owner := common.AddressFromString(cfg.OwnerAddress)
	buyer := common.AddressFromString("0xbeef")
	price := utils.Gwei(1)

	if _, err := a.SetUnifiedSale(ctx, owner, true, price); err != nil {
		t.Fatal(err)
	}

	issued := uint64(0)
	for issued+7 <= cfg.CollectionSize {
		if _, err := a.Mint(ctx, buyer, 7, price.MulUint64(7)); err != nil {
			t.Fatal(err)
		}
		issued += 7
	}

	// A batch crossing the cap is rejected whole
	if _, err := a.Mint(ctx, buyer, 7, price.MulUint64(7)); err == nil {
		t.Fatal("expected mint over the supply cap to fail")
	}
	AssertEqual(t, issued, a.CollectionInfo(ctx).TotalIssued)

	// The remainder can still be minted one by one
	for issued < cfg.CollectionSize {
		if _, err := a.Mint(ctx, buyer, 1, price); err != nil {
			t.Fatal(err)
		}
		issued++
	}

	if _, err := a.Mint(ctx, buyer, 1, price); err == nil {
		t.Fatal("expected a sold out collection to reject minting")
	}

	info := a.CollectionInfo(ctx)
	AssertEqual(t, cfg.CollectionSize, info.TotalIssued)
	AssertEqual(t, price.MulUint64(cfg.CollectionSize).String(), info.Treasury.String())

	// Every id in 1..size exists and is owned
	for id := uint64(1); id <= cfg.CollectionSize; id++ {
		token, err := a.Token(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		AssertEqual(t, buyer, token.Owner)
	}
}
