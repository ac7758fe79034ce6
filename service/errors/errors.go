// Package errors defines the rejection taxonomy of the ledger. Every
// operation failure carries a machine-checkable Kind and a human-readable
// reason string; callers assert on both.
package errors

import "errors"

type Kind string

const (
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindSupplyExceeded     Kind = "SUPPLY_EXCEEDED"
	KindReserveExceeded    Kind = "RESERVE_EXCEEDED"
	KindQuotaExceeded      Kind = "QUOTA_EXCEEDED"
	KindBatchSizeViolation Kind = "BATCH_SIZE_VIOLATION"
	KindSaleNotStarted     Kind = "SALE_NOT_STARTED"
	KindWrongKey           Kind = "WRONG_KEY"
	KindNotEligible        Kind = "NOT_ELIGIBLE"
	KindInvalidPayment     Kind = "INVALID_PAYMENT"
	KindInvalidQuantity    Kind = "INVALID_QUANTITY"
	KindUnknownToken       Kind = "UNKNOWN_TOKEN"
	KindInvalidRequest     Kind = "INVALID_REQUEST"
)

type Error struct {
	Kind   Kind   `json:"kind"`
	Reason string `json:"reason"`
}

func (e *Error) Error() string {
	return e.Reason
}

// Is matches errors by kind so that errors.Is(err, &Error{Kind: k}) and the
// Err* sentinels below work regardless of the reason string.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// Sentinels for errors.Is checks.
var (
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Reason: "Ownable: caller is not the owner"}
	ErrSupplyExceeded     = &Error{Kind: KindSupplyExceeded, Reason: "reached max supply"}
	ErrReserveExceeded    = &Error{Kind: KindReserveExceeded, Reason: "too many already minted before dev mint"}
	ErrQuotaExceeded      = &Error{Kind: KindQuotaExceeded, Reason: "can not mint this many"}
	ErrBatchSizeViolation = &Error{Kind: KindBatchSizeViolation, Reason: "can only mint a multiple of the maxBatchSize"}
	ErrSaleNotStarted     = &Error{Kind: KindSaleNotStarted, Reason: "sale has not begun yet"}
	ErrWrongKey           = &Error{Kind: KindWrongKey, Reason: "called with incorrect public sale key"}
	ErrNotEligible        = &Error{Kind: KindNotEligible, Reason: "not eligible for allowlist mint"}
	ErrInvalidPayment     = &Error{Kind: KindInvalidPayment, Reason: "value error, please check price"}
	ErrInvalidQuantity    = &Error{Kind: KindInvalidQuantity, Reason: "incorrect mint number"}
	ErrUnknownToken       = &Error{Kind: KindUnknownToken, Reason: "token does not exist"}
	ErrInvalidRequest     = &Error{Kind: KindInvalidRequest, Reason: "invalid request"}
)

// KindOf returns the Kind of err, or "" if err is not a ledger error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
