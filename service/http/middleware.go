package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cutelabs/drop-ledger/service/errors"
	gorilla "github.com/gorilla/handlers"
	log "github.com/sirupsen/logrus"
)

func UseCors(h http.Handler) http.Handler {
	return gorilla.CORS(gorilla.AllowedOrigins([]string{"*"}))(h)
}

func UseLogging(out io.Writer, h http.Handler) http.Handler {
	return gorilla.CombinedLoggingHandler(out, h)
}

func UseCompress(h http.Handler) http.Handler {
	return gorilla.CompressHandler(h)
}

func UseJson(h http.Handler) http.Handler {
	// Only PUT, POST, and PATCH requests are considered.
	return gorilla.ContentTypeHandler(h, "application/json")
}

// handleError is a helper function for unified HTTP error handling. Ledger
// errors keep their kind and reason in the response body so callers can
// assert on them.
func handleError(rw http.ResponseWriter, logger *log.Logger, err error) {
	if logger != nil {
		logger.Printf("Error: %v\n", err)
	}

	kind := errors.KindOf(err)
	if kind == "" {
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}

	status := http.StatusBadRequest
	switch kind {
	case errors.KindUnauthorized:
		status = http.StatusForbidden
	case errors.KindUnknownToken:
		status = http.StatusNotFound
	}

	handleJsonResponse(rw, status, ResError{Kind: kind, Reason: err.Error()})
}

// handleJsonResponse is a helper function for unified JSON response handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	json.NewEncoder(rw).Encode(res)
}

func checkNonEmptyBody(r *http.Request) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("empty body")
	}
	return nil
}
