package utils

import (
	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/holiman/uint256"
)

// Ether returns n * 10^18 wei, handy for tests and seeding scripts.
func Ether(n uint64) common.Wei {
	wei := uint256.NewInt(n)
	wei.Mul(wei, uint256.NewInt(1e18))
	w, _ := common.WeiFromString(wei.Dec())
	return w
}

// Gwei returns n * 10^9 wei.
func Gwei(n uint64) common.Wei {
	wei := uint256.NewInt(n)
	wei.Mul(wei, uint256.NewInt(1e9))
	w, _ := common.WeiFromString(wei.Dec())
	return w
}
