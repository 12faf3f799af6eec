package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atelier-vn/shop-api/internal/domain"
	"github.com/atelier-vn/shop-api/internal/service"
)

type FinanceHandler struct {
	financeService *service.FinanceService
	logger         *zap.Logger
}

func NewFinanceHandler(financeService *service.FinanceService, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
		logger:         logger,
	}
}

// Create godoc
// @Summary Record a finance transaction
// @Tags Finance
// @Accept json
// @Produce json
// @Param request body domain.CreateTransactionRequest true "Transaction data"
// @Success 201 {object} domain.TransactionDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *FinanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	tx, err := h.financeService.CreateTransaction(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid transaction type or status",
			})
			return
		}
		h.logger.Error("failed to create transaction", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create transaction",
		})
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/transactions/%s", tx.ID))
	respondJSON(w, http.StatusCreated, tx)
}

// Get godoc
// @Summary Get a finance transaction
// @Tags Finance
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} domain.TransactionDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *FinanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid transaction ID",
		})
		return
	}

	tx, err := h.financeService.GetTransaction(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Transaction not found",
			})
			return
		}
		h.logger.Error("failed to get transaction", zap.Error(err), zap.String("transaction_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get transaction",
		})
		return
	}

	respondJSON(w, http.StatusOK, tx)
}

// Update godoc
// @Summary Update a finance transaction
// @Description Only the provided fields are changed
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body domain.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} domain.TransactionDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *FinanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid transaction ID",
		})
		return
	}

	var req domain.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	tx, err := h.financeService.UpdateTransaction(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Transaction not found",
			})
			return
		}
		if errors.Is(err, service.ErrNoFieldsToUpdate) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "No fields to update",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidStatus) {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid transaction type or status",
			})
			return
		}
		h.logger.Error("failed to update transaction", zap.Error(err), zap.String("transaction_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update transaction",
		})
		return
	}

	respondJSON(w, http.StatusOK, tx)
}

// Delete godoc
// @Summary Delete a finance transaction
// @Tags Finance
// @Param id path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *FinanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid transaction ID",
		})
		return
	}

	if err := h.financeService.DeleteTransaction(r.Context(), id); err != nil {
		h.logger.Error("failed to delete transaction", zap.Error(err), zap.String("transaction_id", id.String()))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete transaction",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// List godoc
// @Summary List finance transactions with an income/expense summary
// @Description The summary covers the full filtered set, not just the current page
// @Tags Finance
// @Produce json
// @Param type query string false "Filter by type (REVENUE or EXPENSE)"
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param startDate query string false "Transactions on or after (YYYY-MM-DD)"
// @Param endDate query string false "Transactions on or before (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *FinanceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := service.TransactionListFilter{
		Type:      r.URL.Query().Get("type"),
		Status:    r.URL.Query().Get("status"),
		Category:  r.URL.Query().Get("category"),
		StartDate: queryDate(r, "startDate"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}
	if end := queryDate(r, "endDate"); end != nil {
		e := endOfDay(*end)
		filter.EndDate = &e
	}

	transactions, summary, pagination, err := h.financeService.ListTransactions(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list transactions", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list transactions",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"summary":      summary,
		"pagination":   pagination,
	})
}
