package render_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
)

func TestMoney_MarshalJSON(t *testing.T) {
	type testCase struct {
		name  string
		value string
		want  string
	}

	tests := []testCase{
		{name: "KeepsTrailingZeros", value: "18", want: `"18.00"`},
		{name: "OneDecimal", value: "37.5", want: `"37.50"`},
		{name: "Cents", value: "45.38", want: `"45.38"`},
		{name: "Zero", value: "0", want: `"0.00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(render.Money(decimal.RequireFromString(tt.value)))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}
