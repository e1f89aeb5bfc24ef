package httpx

import (
	"net/http"

	"github.com/finledger/finledger/internal/service"
)

// ReportHandlers provides HTTP handlers for owner-scoped reporting.
type ReportHandlers struct {
	Svc *service.ReportService
}

// Monthly handles HTTP requests for a month's totals grouped by kind and
// by category.
func (h *ReportHandlers) Monthly(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	year := parseIntQuery(r, "year", 0)
	month := parseIntQuery(r, "month", 0)

	summary, err := h.Svc.MonthlySummary(r.Context(), claims.Subject, year, month)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}
