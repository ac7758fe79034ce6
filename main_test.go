package main

import (
	"net/http"
	"testing"

	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/cutelabs/drop-ledger/service/errors"
	httpserver "github.com/cutelabs/drop-ledger/service/http"
	"github.com/cutelabs/drop-ledger/utils"
)

func TestHealthReady(t *testing.T) {
	srv := getTestServer(t, getTestCfg(t))

	res, err := http.Get(srv.URL + "/v1/health/ready")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	AssertStatus(t, res, http.StatusOK)
}

func TestGetCollection(t *testing.T) {
	cfg := getTestCfg(t)
	srv := getTestServer(t, cfg)

	res, err := http.Get(srv.URL + "/v1/collection")
	if err != nil {
		t.Fatal(err)
	}

	AssertStatus(t, res, http.StatusOK)

	var col httpserver.ResCollection
	fromJSON(t, res, &col)

	AssertEqual(t, common.AddressFromString(cfg.OwnerAddress), col.Owner)
	AssertEqual(t, common.SaleModePhased, col.SaleMode)
	AssertEqual(t, uint64(10000), col.CollectionSize)
	AssertEqual(t, uint64(0), col.TotalIssued)
}

func TestDevMintHTTP(t *testing.T) {
	cfg := getTestCfg(t)
	srv := getTestServer(t, cfg)

	// Not the owner
	res := postJSON(t, srv.URL+"/v1/mints/dev", httpserver.ReqDevMint{
		Caller:   common.AddressFromString("0xdead"),
		Quantity: 5,
	})

	AssertStatus(t, res, http.StatusForbidden)

	var resErr httpserver.ResError
	fromJSON(t, res, &resErr)
	AssertEqual(t, errors.KindUnauthorized, resErr.Kind)

	// The owner, a full batch
	res = postJSON(t, srv.URL+"/v1/mints/dev", httpserver.ReqDevMint{
		Caller:   common.AddressFromString(cfg.OwnerAddress),
		Quantity: 5,
	})

	AssertStatus(t, res, http.StatusCreated)

	var mint httpserver.ResMint
	fromJSON(t, res, &mint)
	AssertEqual(t, []uint64{1, 2, 3, 4, 5}, mint.TokenIDs)

	// The minted token is visible
	res, err := http.Get(srv.URL + "/v1/tokens/1")
	if err != nil {
		t.Fatal(err)
	}

	AssertStatus(t, res, http.StatusOK)

	var token httpserver.ResToken
	fromJSON(t, res, &token)
	AssertEqual(t, common.AddressFromString(cfg.OwnerAddress), token.Owner)

	// An unissued token is not
	res, err = http.Get(srv.URL + "/v1/tokens/6")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	AssertStatus(t, res, http.StatusNotFound)
}

func TestPhasedSaleHTTP(t *testing.T) {
	cfg := getTestCfg(t)
	srv := getTestServer(t, cfg)

	owner := common.AddressFromString(cfg.OwnerAddress)
	minter := common.AddressFromString("0xb001")
	price := utils.Gwei(100000000)

	res := postJSON(t, srv.URL+"/v1/allowlist", httpserver.ReqSeedAllowlist{
		Caller:     owner,
		Addresses:  []common.Address{minter},
		Allowances: []uint64{2},
	})
	AssertStatus(t, res, http.StatusOK)
	res.Body.Close()

	res = postJSON(t, srv.URL+"/v1/sale-config", httpserver.ReqSetSaleConfig{
		Caller:              owner,
		PublicSaleStartTime: 1645115250,
		AllowlistPrice:      price,
		PublicPrice:         utils.Gwei(500000000),
		PublicSaleKey:       12345678,
	})
	AssertStatus(t, res, http.StatusOK)
	res.Body.Close()

	// Underpayment is rejected
	res = postJSON(t, srv.URL+"/v1/mints/allowlist", httpserver.ReqAllowlistMint{
		Caller:  minter,
		Payment: utils.Gwei(1),
	})

	AssertStatus(t, res, http.StatusBadRequest)

	var resErr httpserver.ResError
	fromJSON(t, res, &resErr)
	AssertEqual(t, errors.KindInvalidPayment, resErr.Kind)

	// Exact payment mints
	res = postJSON(t, srv.URL+"/v1/mints/allowlist", httpserver.ReqAllowlistMint{
		Caller:  minter,
		Payment: price,
	})

	AssertStatus(t, res, http.StatusCreated)

	var mint httpserver.ResMint
	fromJSON(t, res, &mint)
	AssertEqual(t, []uint64{1}, mint.TokenIDs)

	// One allowance was consumed
	res, err := http.Get(srv.URL + "/v1/allowlist/" + minter.String())
	if err != nil {
		t.Fatal(err)
	}

	AssertStatus(t, res, http.StatusOK)

	var allowance httpserver.ResAllowance
	fromJSON(t, res, &allowance)
	AssertEqual(t, uint64(1), allowance.Remaining)

	// Withdraw the proceeds
	res = postJSON(t, srv.URL+"/v1/withdraw", httpserver.ReqWithdraw{Caller: owner})

	AssertStatus(t, res, http.StatusOK)

	var withdraw httpserver.ResWithdraw
	fromJSON(t, res, &withdraw)
	AssertEqual(t, price.String(), withdraw.Amount.String())

	// Everything above was journaled
	res, err = http.Get(srv.URL + "/v1/events")
	if err != nil {
		t.Fatal(err)
	}

	AssertStatus(t, res, http.StatusOK)

	var list []httpserver.ResEvent
	fromJSON(t, res, &list)
	AssertEqual(t, 4, len(list))
}

func TestEmptyBody(t *testing.T) {
	cfg := getTestCfg(t)
	srv := getTestServer(t, cfg)

	res, err := http.Post(srv.URL+"/v1/withdraw", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	AssertStatus(t, res, http.StatusBadRequest)
}
