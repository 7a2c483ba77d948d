package validate_test

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/facturaas/internal/validate"
)

func TestEmail(t *testing.T) {
	type testCase struct {
		name  string
		email string
		want  bool
	}

	tests := []testCase{
		{name: "Valid", email: "info@pena.es", want: true},
		{name: "Subdomain", email: "user@facturaas.local", want: true},
		{name: "Empty", email: "", want: false},
		{name: "NoDomain", email: "not-an-email", want: false},
		{name: "DisplayName", email: "Jane <jane@example.com>", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.Email(tt.email))
		})
	}
}

func TestStruct_JSONFieldNames(t *testing.T) {
	type body struct {
		Login string `json:"login" validate:"required"`
	}

	err := validate.Struct(body{})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "login", verrs[0].Field())
}
