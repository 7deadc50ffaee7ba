package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderForm struct {
	Name       string   `json:"name" validate:"required"`
	PostalCode string   `json:"cep" validate:"required,min=8"`
	Method     string   `json:"payment_method" validate:"required,oneof=pix cartao dinheiro"`
	Quantity   int      `json:"quantity" validate:"gte=1,lte=99"`
	Latitude   *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Untagged   string   `validate:"max=2"`
}

func validForm() orderForm {
	return orderForm{Name: "Ana", PostalCode: "78000000", Method: "pix", Quantity: 1}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(validForm()))
}

func TestValidate_UsesJSONNames(t *testing.T) {
	f := validForm()
	f.Name = ""
	f.PostalCode = "780"

	fields := fieldsOf(t, Validate(f))
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be at least 8 characters", fields["cep"])
}

func TestValidate_OneOf(t *testing.T) {
	f := validForm()
	f.Method = "boleto"

	fields := fieldsOf(t, Validate(f))
	assert.Equal(t, "must be one of: pix cartao dinheiro", fields["payment_method"])
}

func TestValidate_NumericRange(t *testing.T) {
	f := validForm()
	f.Quantity = 0

	fields := fieldsOf(t, Validate(f))
	assert.Equal(t, "must be greater than or equal to 1", fields["quantity"])
}

func TestValidate_Latitude(t *testing.T) {
	f := validForm()
	lat := 123.0
	f.Latitude = &lat

	fields := fieldsOf(t, Validate(f))
	assert.Equal(t, "must be a valid latitude", fields["latitude"])
}

func TestValidate_FallbackNames(t *testing.T) {
	f := validForm()
	f.Untagged = "abc"

	fields := fieldsOf(t, Validate(f))
	assert.Contains(t, fields, "Untagged")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(orderForm{Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'name' is required")
}

func TestDecodeAndValidate_Success(t *testing.T) {
	body := `{"name":"Ana","cep":"78000-000","payment_method":"dinheiro","quantity":2,"extra":"ignored"}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var f orderForm
	require.NoError(t, DecodeAndValidate(req, &f))
	assert.Equal(t, "dinheiro", f.Method)
	assert.Equal(t, 2, f.Quantity)
}

func TestDecodeAndValidate_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{invalid"))

	var f orderForm
	err := DecodeAndValidate(req, &f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_TooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var f orderForm
	assert.Error(t, DecodeAndValidate(req, &f))
}

func TestDecodeAndValidate_ValidationFails(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ana","quantity":1}`))

	var f orderForm
	err := DecodeAndValidate(req, &f)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}
