package render

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money is a decimal written to JSON as a string with exactly two decimals.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(decimal.Decimal(m).StringFixed(2))
}
