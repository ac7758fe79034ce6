package common

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Wei is a wei denominated payment amount. It is stored as a decimal string
// in the database and in JSON since the values routinely exceed what an
// int64 column can hold.
type Wei struct {
	v uint256.Int
}

func NewWei(v uint64) Wei {
	return Wei{v: *uint256.NewInt(v)}
}

func WeiFromString(s string) (Wei, error) {
	if s == "" || s == "null" {
		return Wei{}, nil
	}
	i, err := uint256.FromDecimal(s)
	if err != nil {
		return Wei{}, fmt.Errorf("unable to parse Wei from %q: %w", s, err)
	}
	return Wei{v: *i}, nil
}

func (w Wei) String() string {
	return w.v.Dec()
}

func (w Wei) IsZero() bool {
	return w.v.IsZero()
}

func (w Wei) EqualTo(o Wei) bool {
	return w.v.Eq(&o.v)
}

func (w Wei) Add(o Wei) Wei {
	res := Wei{}
	res.v.Add(&w.v, &o.v)
	return res
}

func (w Wei) MulUint64(q uint64) Wei {
	res := Wei{}
	res.v.Mul(&w.v, uint256.NewInt(q))
	return res
}

func (w Wei) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", w.v.Dec())), nil
}

func (w *Wei) UnmarshalJSON(data []byte) error {
	parsed, err := WeiFromString(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func (Wei) GormDataType() string {
	return "text"
}

func (w Wei) Value() (driver.Value, error) {
	return w.v.Dec(), nil
}

func (w *Wei) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		parsed, err := WeiFromString(v)
		if err != nil {
			return err
		}
		*w = parsed
	case []byte:
		parsed, err := WeiFromString(string(v))
		if err != nil {
			return err
		}
		*w = parsed
	case int64:
		if v < 0 {
			return fmt.Errorf("failed to unmarshal Wei value: negative %d", v)
		}
		*w = NewWei(uint64(v))
	case nil:
		*w = Wei{}
	default:
		return fmt.Errorf("failed to unmarshal Wei value: %v", value)
	}
	return nil
}
