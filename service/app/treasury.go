package app

import (
	"github.com/cutelabs/drop-ledger/service/common"
)

// Withdraw pays the entire accumulated balance out to the owner and zeroes
// the treasury. Partial withdrawals are not supported.
func (l *Ledger) Withdraw(caller common.Address) (common.Wei, error) {
	if err := l.requireOwner(caller); err != nil {
		return common.Wei{}, err
	}

	amount := l.treasury
	l.treasury = common.Wei{}

	return amount, nil
}

func (l *Ledger) Treasury() common.Wei {
	return l.treasury
}
