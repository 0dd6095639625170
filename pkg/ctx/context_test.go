package ctx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/shashiranjanraj/kashvi-shop/pkg/ctx"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrapAndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"ok": true})
		assert.Equal(t, http.StatusOK, c.WrittenStatus())
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, true, decode(t, rec)["ok"])
}

func TestParamUint(t *testing.T) {
	r := chi.NewRouter()
	var got uint
	var ok bool
	r.Get("/products/{id}", appctx.Wrap(func(c *appctx.Context) {
		got, ok = c.ParamUint("id")
	}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/42", nil))
	assert.True(t, ok)
	assert.EqualValues(t, 42, got)

	for _, bad := range []string{"/products/0", "/products/-3", "/products/abc"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, bad, nil))
		assert.False(t, ok, bad)
	}
}

func TestQueryInt(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?skip=10&limit=x", nil)
	appctx.Wrap(func(c *appctx.Context) {
		skip, err := c.QueryInt("skip", 0)
		require.NoError(t, err)
		assert.Equal(t, 10, skip)

		missing, err := c.QueryInt("page", 7)
		require.NoError(t, err)
		assert.Equal(t, 7, missing)

		_, err = c.QueryInt("limit", 50)
		assert.Error(t, err)
	})(rec, req)
}

func TestBindJSONValid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Widget","email":"w@example.com"}`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name  string `json:"name"  validate:"required"`
			Email string `json:"email" validate:"required,email"`
		}
		require.True(t, c.BindJSON(&input))
		assert.Equal(t, "Widget", input.Name)
		c.Created(input)
	})(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBindJSONValidationFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name string `json:"name" validate:"required"`
		}
		assert.False(t, c.BindJSON(&input))
	})(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Validation failed", body["detail"])
	assert.Contains(t, body["errors"], "name")
}

func TestBindJSONMalformed(t *testing.T) {
	for name, payload := range map[string]string{"broken": `{"name":`, "empty": ``} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
			appctx.Wrap(func(c *appctx.Context) {
				var input struct{ Name string }
				assert.False(t, c.BindJSON(&input))
			})(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode(t, rec)["detail"])
		})
	}
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.NotFound("Product not found")
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"detail": "Product not found"}, decode(t, rec))
}
