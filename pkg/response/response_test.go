package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kashvi-shop/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorWritesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, http.StatusBadRequest, "No items")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"detail":"No items"}`, rec.Body.String())
}

func TestValidationErrorCarriesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	response.ValidationError(rec, map[string]string{"user_id": "The user_id field is required."})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Validation failed", body.Detail)
	assert.Equal(t, "The user_id field is required.", body.Errors["user_id"])
}

func TestInternalErrorDefaultsDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	response.InternalError(rec, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decode(t, rec).Detail)
}

func TestCreatedWritesPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Created(rec, map[string]int{"order_id": 7})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"order_id":7}`, rec.Body.String())
}
