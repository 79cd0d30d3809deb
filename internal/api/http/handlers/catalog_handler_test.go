package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	app, _, tokens := newTestServer(t)
	token := issueToken(t, tokens, "u1", "admin@example.com", "admin")

	status, env := doRequest(t, app, http.MethodPost, "/categories", token, map[string]any{"name": "Antibiotics"})
	mustStatus(t, http.StatusOK, status, env)
	assert.True(t, env.Success)
	assert.Equal(t, "Antibiotics", dataMap(t, env)["name"])

	status, env = doRequest(t, app, http.MethodPost, "/categories", token, map[string]any{"name": "Antibiotics"})
	mustStatus(t, http.StatusForbidden, status, env)
	assert.False(t, env.Success)
	assert.Equal(t, "Already exists", env.Message)
}

func TestListCategoriesIsPublic(t *testing.T) {
	app, _, tokens := newTestServer(t)
	token := issueToken(t, tokens, "u1", "admin@example.com", "admin")

	for _, name := range []string{"Antibiotics", "Vitamins"} {
		status, env := doRequest(t, app, http.MethodPost, "/categories", token, map[string]any{"name": name})
		mustStatus(t, http.StatusOK, status, env)
	}

	status, env := doRequest(t, app, http.MethodGet, "/categories", "", nil)
	mustStatus(t, http.StatusOK, status, env)
	assert.Len(t, dataList(t, env), 2)
}

func TestDeleteCategory(t *testing.T) {
	app, _, tokens := newTestServer(t)
	token := issueToken(t, tokens, "u1", "admin@example.com", "admin")

	status, env := doRequest(t, app, http.MethodPost, "/categories", token, map[string]any{"name": "Antibiotics"})
	mustStatus(t, http.StatusOK, status, env)
	id, _ := dataMap(t, env)["_id"].(string)
	require.NotEmpty(t, id)

	status, env = doRequest(t, app, http.MethodDelete, "/categories/"+id, token, nil)
	mustStatus(t, http.StatusOK, status, env)

	status, env = doRequest(t, app, http.MethodDelete, "/categories/"+id, token, nil)
	mustStatus(t, http.StatusNotFound, status, env)
	assert.False(t, env.Success)
}

func validProduct() map[string]any {
	return map[string]any{
		"name":        "Amoxicillin",
		"genericName": "amoxicillin",
		"category":    "Antibiotics",
		"company":     "Acme Pharma",
		"massUnit":    "500mg",
		"price":       12.5,
		"sellerEmail": "seller@example.com",
	}
}

func TestCreateProductValidatesRequiredFields(t *testing.T) {
	app, _, tokens := newTestServer(t)
	token := issueToken(t, tokens, "u1", "seller@example.com", "seller")

	payload := validProduct()
	delete(payload, "price")
	delete(payload, "massUnit")

	status, env := doRequest(t, app, http.MethodPost, "/products", token, payload)
	mustStatus(t, http.StatusBadRequest, status, env)
	assert.False(t, env.Success)
}

func TestCreateProductStampsDefaults(t *testing.T) {
	app, _, tokens := newTestServer(t)
	token := issueToken(t, tokens, "u1", "seller@example.com", "seller")

	status, env := doRequest(t, app, http.MethodPost, "/products", token, validProduct())
	mustStatus(t, http.StatusOK, status, env)

	product := dataMap(t, env)
	assert.Equal(t, float64(0), product["discount"])
	assert.NotEmpty(t, product["createdAt"])
	assert.NotEmpty(t, product["_id"])
}

func TestListProductsFiltersBySeller(t *testing.T) {
	app, _, tokens := newTestServer(t)
	token := issueToken(t, tokens, "u1", "seller@example.com", "seller")

	first := validProduct()
	second := validProduct()
	second["sellerEmail"] = "other@example.com"
	for _, payload := range []map[string]any{first, second} {
		status, env := doRequest(t, app, http.MethodPost, "/products", token, payload)
		mustStatus(t, http.StatusOK, status, env)
	}

	status, env := doRequest(t, app, http.MethodGet, "/products?email=other@example.com", token, nil)
	mustStatus(t, http.StatusOK, status, env)
	require.Len(t, dataList(t, env), 1)

	status, env = doRequest(t, app, http.MethodGet, "/products", token, nil)
	mustStatus(t, http.StatusOK, status, env)
	assert.Len(t, dataList(t, env), 2)
}

func TestGetProductMissing(t *testing.T) {
	app, _, _ := newTestServer(t)

	status, env := doRequest(t, app, http.MethodGet, "/products/nope", "", nil)
	mustStatus(t, http.StatusNotFound, status, env)
	assert.False(t, env.Success)
}

func TestDeleteProductLifecycle(t *testing.T) {
	app, _, tokens := newTestServer(t)
	token := issueToken(t, tokens, "u1", "seller@example.com", "seller")

	status, env := doRequest(t, app, http.MethodDelete, "/products/X", token, nil)
	mustStatus(t, http.StatusNotFound, status, env)
	assert.False(t, env.Success)

	status, env = doRequest(t, app, http.MethodPost, "/products", token, validProduct())
	mustStatus(t, http.StatusOK, status, env)
	id, _ := dataMap(t, env)["_id"].(string)
	require.NotEmpty(t, id)

	status, env = doRequest(t, app, http.MethodDelete, "/products/"+id, token, nil)
	mustStatus(t, http.StatusOK, status, env)
	assert.True(t, env.Success)

	status, env = doRequest(t, app, http.MethodGet, "/products/"+id, "", nil)
	mustStatus(t, http.StatusNotFound, status, env)
}
