package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cutelabs/drop-ledger/service/app"
	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Replace the phased sale configuration
func HandleSetSaleConfig(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		// Check body is not empty
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqSetSaleConfig

		// Decode JSON
		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		event, err := app.SetSaleConfig(r.Context(), reqData.Caller, reqData.ToApp())
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResEventFromApp(event))
	}
}

func HandleGetSaleConfig(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		res := ResSaleConfigFromApp(app.SaleConfig(r.Context()))
		handleJsonResponse(rw, http.StatusOK, res)
	}
}

// Replace the unified variant's start flag and price
func HandleSetUnifiedSale(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqSetUnifiedSale

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		event, err := app.SetUnifiedSale(r.Context(), reqData.Caller, reqData.Started, reqData.Price)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResEventFromApp(event))
	}
}

// Seed allowlist allowances
func HandleSeedAllowlist(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqSeedAllowlist

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		event, err := app.SeedAllowlist(r.Context(), reqData.Caller, reqData.Addresses, reqData.Allowances)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResEventFromApp(event))
	}
}

func HandleGetAllowance(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		addr := common.AddressFromString(mux.Vars(r)["address"])

		res := ResAllowance{
			Address:   addr,
			Remaining: app.Allowance(r.Context(), addr),
		}

		handleJsonResponse(rw, http.StatusOK, res)
	}
}

// Dev mint against the reserved quota
func HandleDevMint(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqDevMint

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		res, err := app.DevMint(r.Context(), reqData.Caller, reqData.Quantity)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusCreated, ResMintFromApp(res))
	}
}

// Allowlist mint, exactly one token per call
func HandleAllowlistMint(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqAllowlistMint

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		res, err := app.AllowlistMint(r.Context(), reqData.Caller, reqData.Payment)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusCreated, ResMintFromApp(res))
	}
}

// Public sale mint, gated by the shared key
func HandlePublicSaleMint(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqPublicSaleMint

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		res, err := app.PublicSaleMint(r.Context(), reqData.Caller, reqData.Quantity, reqData.PublicSaleKey, reqData.Payment)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusCreated, ResMintFromApp(res))
	}
}

// Unified single-phase mint
func HandleMint(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqMint

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		res, err := app.Mint(r.Context(), reqData.Caller, reqData.Quantity, reqData.Payment)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusCreated, ResMintFromApp(res))
	}
}

func HandleGetMintedCount(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		addr := common.AddressFromString(mux.Vars(r)["address"])

		res := ResMintedCount{
			Address: addr,
			Minted:  app.MintedCount(r.Context(), addr),
		}

		handleJsonResponse(rw, http.StatusOK, res)
	}
}

// Token details
func HandleGetToken(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		id, err := parseTokenID(r)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		token, err := app.Token(r.Context(), id)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResTokenFromApp(token))
	}
}

func HandleGetTokenURI(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		id, err := parseTokenID(r)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		uri, err := app.TokenURI(r.Context(), id)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResTokenURI{ID: id, URI: uri})
	}
}

// Move ownership of one token
func HandleTransfer(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		id, err := parseTokenID(r)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqTransfer

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		event, err := app.Transfer(r.Context(), reqData.Caller, reqData.From, reqData.To, id)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResEventFromApp(event))
	}
}

// Approve one address for one token
func HandleApprove(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		id, err := parseTokenID(r)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqApprove

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		event, err := app.Approve(r.Context(), reqData.Caller, reqData.To, id)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResEventFromApp(event))
	}
}

// Grant or revoke blanket operator rights
func HandleSetApprovalForAll(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqSetApprovalForAll

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		event, err := app.SetApprovalForAll(r.Context(), reqData.Caller, reqData.Operator, reqData.Approved)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResEventFromApp(event))
	}
}

// Replace the base reference string
func HandleSetBaseURI(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqSetBaseURI

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		event, err := app.SetBaseURI(r.Context(), reqData.Caller, reqData.BaseURI)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResEventFromApp(event))
	}
}

// Withdraw the whole treasury balance to the owner
func HandleWithdraw(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if err := checkNonEmptyBody(r); err != nil {
			handleError(rw, logger, err)
			return
		}

		var reqData ReqWithdraw

		if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
			handleError(rw, logger, err)
			return
		}

		amount, event, err := app.Withdraw(r.Context(), reqData.Caller)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResWithdraw{
			Amount: amount,
			Event:  ResEventFromApp(event),
		})
	}
}

// Collection totals and sale state
func HandleGetCollection(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		res := ResCollectionFromApp(app.CollectionInfo(r.Context()))
		handleJsonResponse(rw, http.StatusOK, res)
	}
}

// Journaled events
func HandleListEvents(logger *log.Logger, app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(r.FormValue("limit"))
		if err != nil {
			limit = 0
		}

		offset, err := strconv.Atoi(r.FormValue("offset"))
		if err != nil {
			offset = 0
		}

		list, err := app.ListEvents(r.Context(), limit, offset)
		if err != nil {
			handleError(rw, logger, err)
			return
		}

		handleJsonResponse(rw, http.StatusOK, ResEventListFromApp(list))
	}
}

func HandleHealthReady(app *app.App) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !app.Healthy(r.Context()) {
			rw.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		rw.WriteHeader(http.StatusOK)
	}
}

func parseTokenID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}
