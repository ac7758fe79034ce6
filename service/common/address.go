package common

import (
	"database/sql/driver"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Address is the opaque 20-byte identity of a caller, owner or operator.
// It is comparable with == and usable as a map key.
type Address ethcommon.Address

var EmptyAddress = Address{}

func (a Address) String() string {
	return ethcommon.Address(a).Hex()
}

func (a Address) IsEmpty() bool {
	return a == EmptyAddress
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", a.String())), nil
}

func (a *Address) UnmarshalJSON(data []byte) error {
	b := ethcommon.Address{}
	if err := b.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Address(b)
	return nil
}

func (a Address) Value() (driver.Value, error) {
	return ethcommon.Address(a).Bytes(), nil
}

func (a *Address) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal Address value: %v", value)
	}
	*a = Address(ethcommon.BytesToAddress(bytes))
	return nil
}

func AddressFromString(s string) Address {
	return Address(ethcommon.HexToAddress(s))
}
