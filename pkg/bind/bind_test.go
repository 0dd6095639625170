package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kashvi-shop/pkg/bind"
)

type itemInput struct {
	Name     string `json:"name"     validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))
}

func TestJSONDecodesValidBody(t *testing.T) {
	var in itemInput
	errs, err := bind.JSON(post(`{"name":"mug","quantity":2}`), &in)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, itemInput{Name: "mug", Quantity: 2}, in)
}

func TestJSONEmptyBody(t *testing.T) {
	var in itemInput
	errs, err := bind.JSON(post(""), &in)
	assert.ErrorIs(t, err, bind.ErrEmptyBody)
	assert.Nil(t, errs)
}

func TestJSONMalformedBody(t *testing.T) {
	var in itemInput
	_, err := bind.JSON(post(`{"name":`), &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestJSONBodyTooLarge(t *testing.T) {
	req := post(`{"name":"a much longer name than allowed","quantity":1}`)
	req.Body = http.MaxBytesReader(httptest.NewRecorder(), req.Body, 8)

	var in itemInput
	_, err := bind.JSON(req, &in)
	require.Error(t, err)
	assert.EqualError(t, err, "request body too large (max 8 bytes)")
}

func TestJSONValidationFailures(t *testing.T) {
	var in itemInput
	errs, err := bind.JSON(post(`{"quantity":0}`), &in)
	require.NoError(t, err)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "quantity")
}
