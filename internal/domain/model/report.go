//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// KindTotal is one row of an aggregate grouped by transaction kind.
type KindTotal struct {
	Kind  TransactionKind `json:"kind"  db:"kind"`
	Total float64         `json:"total" db:"total"`
}

// CategoryTotal is one row of an aggregate grouped by category.
type CategoryTotal struct {
	Category string  `json:"category" db:"category"`
	Total    float64 `json:"total"    db:"total"`
}

// MonthlySummary aggregates one owner's transactions for a calendar month.
type MonthlySummary struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	ByKind     []KindTotal     `json:"by_kind"`
	ByCategory []CategoryTotal `json:"by_category"`
}
