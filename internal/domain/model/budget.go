//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minBudgetYear = 1970
	maxBudgetYear = 9999
)

// BudgetsListOptions controls paging and filtering for listing budgets.
// Year and Month match exactly.
type BudgetsListOptions struct {
	Limit  int
	Offset int
	Year   *int
	Month  *int
}

// Budget caps spending for one category in one calendar month.
type Budget struct {
	ID          string    `json:"id"           db:"id"`
	UserID      string    `json:"user_id"      db:"user_id"`
	Year        int       `json:"year"         db:"year"`
	Month       int       `json:"month"        db:"month"`
	Category    string    `json:"category"     db:"category"`
	LimitAmount float64   `json:"limit_amount" db:"limit_amount"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"   db:"updated_at"`
}

// CreateBudgetRequest represents parameters to create a Budget.
type CreateBudgetRequest struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Category    string  `json:"category"`
	LimitAmount float64 `json:"limit_amount"`
}

// UpdateBudgetRequest represents parameters to update a Budget.
type UpdateBudgetRequest struct {
	Year        *int     `json:"year,omitempty"`
	Month       *int     `json:"month,omitempty"`
	Category    *string  `json:"category,omitempty"`
	LimitAmount *float64 `json:"limit_amount,omitempty"`
}

func validBudgetYear(y int) bool  { return y >= minBudgetYear && y <= maxBudgetYear }
func validBudgetMonth(m int) bool { return m >= 1 && m <= 12 }

// Validate validates CreateBudgetRequest.
func (r *CreateBudgetRequest) Validate() error {
	if !validBudgetYear(r.Year) {
		return errors.New("year must be between 1970 and 9999")
	}
	if !validBudgetMonth(r.Month) {
		return errors.New("month must be between 1 and 12")
	}
	category := strings.TrimSpace(r.Category)
	if category == "" {
		return errors.New("category is required and cannot be empty")
	}
	if utf8.RuneCountInString(category) > maxCategoryLen {
		return errors.New("category cannot exceed 255 characters")
	}
	r.Category = category
	if r.LimitAmount <= 0 {
		return errors.New("limit_amount must be > 0")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateBudgetRequest.
func (r *UpdateBudgetRequest) HasUpdates() bool {
	return r.Year != nil || r.Month != nil || r.Category != nil || r.LimitAmount != nil
}

// Validate validates UpdateBudgetRequest, ensuring at least one field is set and values are sane.
func (r *UpdateBudgetRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Year != nil && !validBudgetYear(*r.Year) {
		return errors.New("year must be between 1970 and 9999")
	}
	if r.Month != nil && !validBudgetMonth(*r.Month) {
		return errors.New("month must be between 1 and 12")
	}
	if r.Category != nil {
		c := strings.TrimSpace(*r.Category)
		if c == "" {
			return errors.New("category cannot be empty")
		}
		if utf8.RuneCountInString(c) > maxCategoryLen {
			return errors.New("category cannot exceed 255 characters")
		}
		*r.Category = c
	}
	if r.LimitAmount != nil && *r.LimitAmount <= 0 {
		return errors.New("limit_amount must be > 0")
	}
	return nil
}
