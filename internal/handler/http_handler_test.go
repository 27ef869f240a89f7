package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pennsieve/customers-service/internal/handler"
	"github.com/pennsieve/customers-service/internal/models"
	"github.com/pennsieve/customers-service/internal/test"
	"github.com/stretchr/testify/assert"
)

func TestHTTPHandler_Success(t *testing.T) {
	store := &stubCustomerStore{result: models.QueryResult{Data: []models.Customer{
		{"id": float64(1)}, {"id": float64(2)},
	}}}

	recorder := httptest.NewRecorder()
	handler.NewHTTPHandler(stubContainer(store)).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, recorder.Body.String())
}

func TestHTTPHandler_Failure(t *testing.T) {
	store := &stubCustomerStore{err: fmt.Errorf("index not found")}

	recorder := httptest.NewRecorder()
	handler.NewHTTPHandler(stubContainer(store)).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"error":"index not found"}`, recorder.Body.String())
}

func TestHTTPHandler_AnyMethodAndPath(t *testing.T) {
	db := test.NewFakeDynamoDB(test.CustomerItems(2)...)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.HandleFunc("/*", handler.NewHTTPHandler(fakeContainer(db, 64)))

	var bodies []string
	for _, request := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/", nil),
		httptest.NewRequest(http.MethodPost, "/api/customers?limit=1", strings.NewReader(`{"size":1}`)),
		httptest.NewRequest(http.MethodDelete, "/customers/customer-000", nil),
	} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code, request.Method)
		bodies = append(bodies, recorder.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[0], bodies[2])
	assert.Len(t, db.ScanInputs, 3)
}
