package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Sale struct {
	ID          int             `db:"id"`
	Amount      int             `db:"amount"`
	Price       decimal.Decimal `db:"price"`
	Description *string         `db:"description"`
	Date        time.Time       `db:"date"`
	UserID      int             `db:"user_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type Expense struct {
	ID          int             `db:"id"`
	Total       decimal.Decimal `db:"total"`
	Description string          `db:"description"`
	Date        time.Time       `db:"date"`
	UserID      int             `db:"user_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// RecordFilter is the normalized owner+date-range+page descriptor shared by
// the sale and expense stores. Owner scoping is mandatory; both date bounds
// are inclusive when set. A reversed range is legal and matches nothing.
type RecordFilter struct {
	UserID    int
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Size      int
	Offset    int
}
