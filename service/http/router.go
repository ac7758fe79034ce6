package http

import (
	"net/http"

	"github.com/cutelabs/drop-ledger/service/app"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func NewRouter(app *app.App) http.Handler {
	r := mux.NewRouter()

	requestLogger := log.New()

	// Catch the api version
	rv := r.PathPrefix("/{apiVersion}").Subrouter()

	rv.HandleFunc("/health/ready", HandleHealthReady(app)).Methods(http.MethodGet)

	rv.HandleFunc("/collection", HandleGetCollection(requestLogger, app)).Methods(http.MethodGet)

	rv.HandleFunc("/sale-config", HandleSetSaleConfig(requestLogger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/sale-config", HandleGetSaleConfig(requestLogger, app)).Methods(http.MethodGet)
	rv.HandleFunc("/unified-sale", HandleSetUnifiedSale(requestLogger, app)).Methods(http.MethodPost)

	rv.HandleFunc("/allowlist", HandleSeedAllowlist(requestLogger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/allowlist/{address}", HandleGetAllowance(requestLogger, app)).Methods(http.MethodGet)

	rv.HandleFunc("/mints/dev", HandleDevMint(requestLogger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/mints/allowlist", HandleAllowlistMint(requestLogger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/mints/public", HandlePublicSaleMint(requestLogger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/mints", HandleMint(requestLogger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/minters/{address}", HandleGetMintedCount(requestLogger, app)).Methods(http.MethodGet)

	rv.HandleFunc("/tokens/{id}", HandleGetToken(requestLogger, app)).Methods(http.MethodGet)
	rv.HandleFunc("/tokens/{id}/uri", HandleGetTokenURI(requestLogger, app)).Methods(http.MethodGet)
	rv.HandleFunc("/tokens/{id}/transfer", HandleTransfer(requestLogger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/tokens/{id}/approve", HandleApprove(requestLogger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/approvals", HandleSetApprovalForAll(requestLogger, app)).Methods(http.MethodPost)

	rv.HandleFunc("/base-uri", HandleSetBaseURI(requestLogger, app)).Methods(http.MethodPost)
	rv.HandleFunc("/withdraw", HandleWithdraw(requestLogger, app)).Methods(http.MethodPost)

	rv.HandleFunc("/events", HandleListEvents(requestLogger, app)).Methods(http.MethodGet)

	// Use middleware
	h := UseCors(r)
	h = UseLogging(requestLogger.Writer(), h)
	h = UseCompress(h)
	h = UseJson(h)

	return h
}
