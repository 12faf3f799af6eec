package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/http/handler"
	"github.com/atelier-vn/shop-api/internal/repository"
	"github.com/atelier-vn/shop-api/internal/service"
	"github.com/atelier-vn/shop-api/internal/testutil"
)

func setupCustomerRouter(db *gorm.DB) *chi.Mux {
	svc := service.NewCustomerService(repository.NewCustomerRepository(db), zap.NewNop())
	h := handler.NewCustomerHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func TestCustomerHandler_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := setupCustomerRouter(db)

	body, _ := json.Marshal(domain.CreateCustomerRequest{
		Name:  "Chị Lan",
		Phone: "0912345678",
	})
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/api/v1/customers/")

	var created domain.CustomerDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Chị Lan", created.Name)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCustomerHandler_CreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := setupCustomerRouter(db)

	// name is required
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader([]byte(`{"phone":"0912345678"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerHandler_GetNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := setupCustomerRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/customers/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerHandler_GetBadID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := setupCustomerRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/customers/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerHandler_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := setupCustomerRouter(db)

	testutil.CreateTestCustomer(t, db, "Chị Lan")
	testutil.CreateTestCustomer(t, db, "Anh Tuấn")

	req := httptest.NewRequest(http.MethodGet, "/customers?page=1&limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Customers  []domain.CustomerDTO `json:"customers"`
		Pagination domain.Pagination    `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Len(t, envelope.Customers, 2)
	assert.Equal(t, int64(2), envelope.Pagination.Total)
}

func TestCustomerHandler_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := setupCustomerRouter(db)

	customer := testutil.CreateTestCustomer(t, db, "Chị Lan")

	req := httptest.NewRequest(http.MethodDelete, "/customers/"+customer.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCustomerHandler_UpdateNoFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := setupCustomerRouter(db)

	customer := testutil.CreateTestCustomer(t, db, "Chị Lan")

	req := httptest.NewRequest(http.MethodPut, "/customers/"+customer.ID.String(), bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
