package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pedidos-service/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Validation failures are rejected before any store access, so these
// routes are exercised against a handler with no services wired.
func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(nil, nil, nil, realtime.NewHub()).SetupRoutes(router)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := doJSON(testRouter(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateOrderRejectsMalformedBody(t *testing.T) {
	w := doJSON(testRouter(), http.MethodPost, "/orders/7", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRejectsMissingPhone(t *testing.T) {
	w := doJSON(testRouter(), http.MethodPost, "/orders/7",
		`{"type":"delivery","productIds":[1]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRejectsBadUserID(t *testing.T) {
	w := doJSON(testRouter(), http.MethodPost, "/orders/abc",
		`{"phone":"555-1111","type":"delivery","productIds":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderRequiresStatus(t *testing.T) {
	w := doJSON(testRouter(), http.MethodPut, "/orders/5",
		`{"comentary":"sin cebolla"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductRejectsBadID(t *testing.T) {
	w := doJSON(testRouter(), http.MethodPut, "/products/xyz",
		`{"name":"Taco","price":2.5,"user":7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	w := doJSON(testRouter(), http.MethodPost, "/products/",
		`{"name":"Taco","price":-1,"user":7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateInstanceRequiresURL(t *testing.T) {
	w := doJSON(testRouter(), http.MethodPost, "/instance_user/",
		`{"iduser":7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
