package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationFixture struct {
	Name     string `json:"name" binding:"required,min=2,max=10"`
	Currency string `json:"currency" binding:"omitempty,oneof=TRY USD EUR GBP"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

func TestSetupValidator_UsesJSONTagNames(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(validationFixture{Currency: "JPY", Quantity: 5})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "name: this field is required")
	assert.Contains(t, msg, "currency: must be one of: TRY USD EUR GBP")
}

func TestValidationMessage_MinMax(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(validationFixture{Name: "x", Quantity: 0})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "name: must be at least 2 characters")
	assert.Contains(t, msg, "quantity: this field is required")
}

func TestValidationMessage_NonValidatorError(t *testing.T) {
	err := errors.New("unexpected EOF")
	assert.Equal(t, "unexpected EOF", ValidationMessage(err))
}
