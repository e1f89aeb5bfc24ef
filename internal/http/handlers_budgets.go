package httpx

import (
	"errors"
	"net/http"

	"github.com/finledger/finledger/internal/domain/model"
	"github.com/finledger/finledger/internal/service"
)

// BudgetHandlers provides HTTP handlers for budget CRUD.
// All operations are scoped to the authenticated owner.
type BudgetHandlers struct {
	Svc *service.BudgetService
}

// Create handles HTTP requests to set a monthly budget.
func (h *BudgetHandlers) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req model.CreateBudgetRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	budget, err := h.Svc.Create(r.Context(), claims.Subject, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, budget)
}

// List handles HTTP requests to list the owner's budgets with optional
// year and month filters.
func (h *BudgetHandlers) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	opts, err := budgetListOptions(r)
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
		list = []*model.Budget{}
	}

	WriteJSON(w, http.StatusOK, list)
}

// Update handles HTTP requests to update a budget the owner holds.
func (h *BudgetHandlers) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("budget id is required")},
		)
		return
	}

	var req model.UpdateBudgetRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	budget, err := h.Svc.Update(r.Context(), id, claims.Subject, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, budget)
}

// Delete handles HTTP requests to remove a budget the owner holds.
func (h *BudgetHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("budget id is required")},
		)
		return
	}

	if err := h.Svc.Delete(r.Context(), id, claims.Subject); err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
