package app

import (
	"strconv"

	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/cutelabs/drop-ledger/service/errors"
)

// Transfer moves ownership of a token. The caller must be the current
// owner, an operator approved for all of the owner's tokens, or the
// token's individually approved address. Any per-token approval is cleared
// on transfer.
func (l *Ledger) Transfer(caller, from, to common.Address, id uint64) error {
	holder, ok := l.owners[id]
	if !ok {
		return errors.ErrUnknownToken
	}

	if holder != from {
		return errors.New(errors.KindInvalidRequest, "transfer from incorrect owner")
	}

	if to.IsEmpty() {
		return errors.New(errors.KindInvalidRequest, "transfer to the zero address")
	}

	if caller != holder && !l.operatorApprovals[holder][caller] && l.tokenApprovals[id] != caller {
		return errors.New(errors.KindUnauthorized, "transfer caller is not owner nor approved")
	}

	delete(l.tokenApprovals, id)
	l.owners[id] = to

	return nil
}

// Approve grants a single address transfer rights over one token. The
// caller must own the token or be approved for all of the owner's tokens.
func (l *Ledger) Approve(caller, to common.Address, id uint64) error {
	holder, ok := l.owners[id]
	if !ok {
		return errors.ErrUnknownToken
	}

	if caller != holder && !l.operatorApprovals[holder][caller] {
		return errors.New(errors.KindUnauthorized, "approve caller is not owner nor approved for all")
	}

	if to.IsEmpty() {
		delete(l.tokenApprovals, id)
	} else {
		l.tokenApprovals[id] = to
	}

	return nil
}

// SetApprovalForAll grants or revokes blanket transfer rights over all of
// the caller's tokens, current and future.
func (l *Ledger) SetApprovalForAll(caller, operator common.Address, approved bool) error {
	if operator == caller {
		return errors.New(errors.KindInvalidRequest, "approve to caller")
	}

	if approved {
		if l.operatorApprovals[caller] == nil {
			l.operatorApprovals[caller] = map[common.Address]bool{}
		}
		l.operatorApprovals[caller][operator] = true
	} else {
		delete(l.operatorApprovals[caller], operator)
	}

	return nil
}

// SetBaseURI replaces the base reference string wholesale. Token locators
// are computed lazily so the change covers prior mints too.
func (l *Ledger) SetBaseURI(caller common.Address, base string) error {
	if err := l.requireOwner(caller); err != nil {
		return err
	}

	l.baseURI = base

	return nil
}

// -- Reads --

func (l *Ledger) OwnerOf(id uint64) (common.Address, error) {
	holder, ok := l.owners[id]
	if !ok {
		return common.EmptyAddress, errors.ErrUnknownToken
	}
	return holder, nil
}

func (l *Ledger) ApprovedFor(id uint64) (common.Address, error) {
	if _, ok := l.owners[id]; !ok {
		return common.EmptyAddress, errors.ErrUnknownToken
	}
	return l.tokenApprovals[id], nil
}

func (l *Ledger) IsApprovedForAll(owner, operator common.Address) bool {
	return l.operatorApprovals[owner][operator]
}

func (l *Ledger) BaseURI() string {
	return l.baseURI
}

// TokenURI resolves the metadata locator of an issued token by
// concatenating the base reference string and the token id.
func (l *Ledger) TokenURI(id uint64) (string, error) {
	if _, ok := l.owners[id]; !ok {
		return "", errors.ErrUnknownToken
	}
	return l.baseURI + strconv.FormatUint(id, 10), nil
}
