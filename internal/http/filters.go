package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/finledger/finledger/internal/domain/model"
)

const (
	maxListLimit = 200
)

// parseIntQuery returns the integer value of a query parameter, falling back
// to def when the parameter is absent or not a number.
func parseIntQuery(r *http.Request, key string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// parseTimeQuery accepts RFC 3339 timestamps and plain dates (2006-01-02).
func parseTimeQuery(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// transactionListOptions builds typed list options from query parameters.
// Unknown kind values and unparseable times are rejected rather than
// silently dropped, so callers can't accidentally widen a filter.
func transactionListOptions(r *http.Request) (*model.TransactionsListOptions, error) {
	q := r.URL.Query()
	opts := &model.TransactionsListOptions{
		Limit:  clampLimit(parseIntQuery(r, "limit", 0)),
		Offset: max(parseIntQuery(r, "offset", 0), 0),
	}

	if raw := strings.TrimSpace(q.Get("kind")); raw != "" {
		kind, ok := model.ParseTransactionKind(raw)
		if !ok {
			return nil, errors.New("kind must be income or expense")
		}
		opts.Kind = &kind
	}
	if raw := strings.TrimSpace(q.Get("category")); raw != "" {
		opts.Category = &raw
	}
	if raw := strings.TrimSpace(q.Get("from")); raw != "" {
		t, err := parseTimeQuery(raw)
		if err != nil {
			return nil, errors.New("from must be an RFC 3339 timestamp or date")
		}
		opts.From = &t
	}
	if raw := strings.TrimSpace(q.Get("to")); raw != "" {
		t, err := parseTimeQuery(raw)
		if err != nil {
			return nil, errors.New("to must be an RFC 3339 timestamp or date")
		}
		opts.To = &t
	}

	return opts, nil
}

// budgetListOptions builds typed list options from query parameters.
func budgetListOptions(r *http.Request) (*model.BudgetsListOptions, error) {
	q := r.URL.Query()
	opts := &model.BudgetsListOptions{
		Limit:  clampLimit(parseIntQuery(r, "limit", 0)),
		Offset: max(parseIntQuery(r, "offset", 0), 0),
	}

	if raw := strings.TrimSpace(q.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("year must be a number")
		}
		opts.Year = &year
	}
	if raw := strings.TrimSpace(q.Get("month")); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("month must be a number")
		}
		opts.Month = &month
	}

	return opts, nil
}

func clampLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
