//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxCategoryLen = 255
	maxNoteLen     = 1024
)

// TransactionKind distinguishes money coming in from money going out.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// Valid reports whether the transaction kind is supported.
func (k TransactionKind) Valid() bool {
	switch k {
	case TransactionKindIncome, TransactionKindExpense:
		return true
	default:
		return false
	}
}

// ParseTransactionKind normalizes a kind string and reports whether it is supported.
func ParseTransactionKind(value string) (TransactionKind, bool) {
	kind := TransactionKind(strings.ToLower(strings.TrimSpace(value)))
	if kind.Valid() {
		return kind, true
	}
	return "", false
}

// TransactionsListOptions controls paging and filtering for listing transactions.
// Notes:
// - Kind and Category match exactly.
// - From/To bound occurred_at inclusively.
// - Results are ordered occurred_at descending.
type TransactionsListOptions struct {
	Limit    int
	Offset   int
	Kind     *TransactionKind // exact match
	Category *string          // exact match
	From     *time.Time       // occurred_at >= From
	To       *time.Time       // occurred_at <= To
}

// Transaction represents a single income or expense entry.
type Transaction struct {
	ID         string          `json:"id"             db:"id"`
	UserID     string          `json:"user_id"        db:"user_id"`
	Amount     float64         `json:"amount"         db:"amount"`
	Kind       TransactionKind `json:"kind"           db:"kind"`
	Category   string          `json:"category"       db:"category"`
	Note       *string         `json:"note,omitempty" db:"note"`
	OccurredAt time.Time       `json:"occurred_at"    db:"occurred_at"`
	CreatedAt  time.Time       `json:"created_at"     db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"     db:"updated_at"`
}

// CreateTransactionRequest represents parameters to create a Transaction.
type CreateTransactionRequest struct {
	Amount     float64         `json:"amount"`
	Kind       TransactionKind `json:"kind"`
	Category   string          `json:"category"`
	Note       *string         `json:"note,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// UpdateTransactionRequest represents parameters to update a Transaction.
type UpdateTransactionRequest struct {
	Amount     *float64         `json:"amount,omitempty"`
	Kind       *TransactionKind `json:"kind,omitempty"`
	Category   *string          `json:"category,omitempty"`
	Note       *string          `json:"note,omitempty"`
	OccurredAt *time.Time       `json:"occurred_at,omitempty"`
}

// Validate validates CreateTransactionRequest.
func (r *CreateTransactionRequest) Validate() error {
	if r.Amount <= 0 {
		return errors.New("amount must be > 0")
	}
	kind, ok := ParseTransactionKind(string(r.Kind))
	if !ok {
		return errors.New("kind must be income or expense")
	}
	r.Kind = kind
	category := strings.TrimSpace(r.Category)
	if category == "" {
		return errors.New("category is required and cannot be empty")
	}
	if utf8.RuneCountInString(category) > maxCategoryLen {
		return errors.New("category cannot exceed 255 characters")
	}
	r.Category = category
	if r.Note != nil && utf8.RuneCountInString(*r.Note) > maxNoteLen {
		return errors.New("note cannot exceed 1024 characters")
	}
	if r.OccurredAt.IsZero() {
		return errors.New("occurred_at is required")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateTransactionRequest.
func (r *UpdateTransactionRequest) HasUpdates() bool {
	return r.Amount != nil || r.Kind != nil || r.Category != nil || r.Note != nil || r.OccurredAt != nil
}

// Validate validates UpdateTransactionRequest, ensuring at least one field is set and values are sane.
func (r *UpdateTransactionRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Amount != nil && *r.Amount <= 0 {
		return errors.New("amount must be > 0")
	}
	if r.Kind != nil {
		kind, ok := ParseTransactionKind(string(*r.Kind))
		if !ok {
			return errors.New("kind must be income or expense")
		}
		*r.Kind = kind
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
	if r.Note != nil && utf8.RuneCountInString(*r.Note) > maxNoteLen {
		return errors.New("note cannot exceed 1024 characters")
	}
	if r.OccurredAt != nil && r.OccurredAt.IsZero() {
		return errors.New("occurred_at cannot be zero")
	}
	return nil
}
