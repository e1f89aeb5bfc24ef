package httpx

import (
	"errors"
	"net/http"

	"github.com/finledger/finledger/internal/domain/model"
	"github.com/finledger/finledger/internal/service"
)

// TransactionHandlers provides HTTP handlers for transaction CRUD.
// All operations are scoped to the authenticated owner.
type TransactionHandlers struct {
	Svc *service.TransactionService
}

// Create handles HTTP requests to record a new transaction.
func (h *TransactionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req model.CreateTransactionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tx, err := h.Svc.Create(r.Context(), claims.Subject, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, tx)
}

// List handles HTTP requests to list the owner's transactions with optional
// kind, category and occurred_at range filters.
func (h *TransactionHandlers) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	opts, err := transactionListOptions(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
		return
	}

	list, err := h.Svc.ListForOwner(r.Context(), claims.Subject, opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if list == nil {
		list = []*model.Transaction{}
	}

	WriteJSON(w, http.StatusOK, list)
}

// Update handles HTTP requests to update a transaction the owner holds.
func (h *TransactionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("transaction id is required")},
		)
		return
	}

	var req model.UpdateTransactionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tx, err := h.Svc.Update(r.Context(), id, claims.Subject, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, tx)
}

// Delete handles HTTP requests to remove a transaction the owner holds.
func (h *TransactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("transaction id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id, claims.Subject); err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
