package dto

import (
	"time"

	"finledger/internal/domain"
	"finledger/internal/pagination"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequestDTO uses a pointer for total so that a missing field
// fails validation while an explicit zero is accepted.
type CreateExpenseRequestDTO struct {
	Total       *decimal.Decimal `json:"total" validate:"required" example:"54.30"`
	Description string           `json:"description" validate:"required" example:"Office supplies"`
	Date        string           `json:"date" validate:"required,datetime=2006-01-02" example:"2023-01-01"`
}

func (d CreateExpenseRequestDTO) Validate() error {
	return validate.Struct(d)
}

func (d CreateExpenseRequestDTO) ToDomain() (domain.Expense, error) {
	date, err := time.Parse(time.DateOnly, d.Date)
	if err != nil {
		return domain.Expense{}, err
	}
	return domain.Expense{
		Total:       *d.Total,
		Description: d.Description,
		Date:        date,
	}, nil
}

// UpdateExpenseRequestDTO is a partial patch: only non-nil fields are merged
// onto the stored record.
type UpdateExpenseRequestDTO struct {
	Total       *decimal.Decimal `json:"total,omitempty"`
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Date        *string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (d UpdateExpenseRequestDTO) Validate() error {
	return validate.Struct(d)
}

// Apply merges the patch onto the expense. The owner reference is never
// touched.
func (d UpdateExpenseRequestDTO) Apply(expense *domain.Expense) {
	if d.Total != nil {
		expense.Total = *d.Total
	}
	if d.Description != nil {
		expense.Description = *d.Description
	}
	if d.Date != nil {
		if date, err := time.Parse(time.DateOnly, *d.Date); err == nil {
			expense.Date = date
		}
	}
}

type ExpenseResponseDTO struct {
	ID          int             `json:"id" example:"1"`
	Total       decimal.Decimal `json:"total" example:"54.30"`
	Description string          `json:"description" example:"Office supplies"`
	Date        string          `json:"date" example:"2023-01-01"`
	UserID      int             `json:"user_id" example:"1"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ExpenseListResponseDTO struct {
	Data       []ExpenseResponseDTO `json:"data"`
	Pagination pagination.Meta      `json:"pagination"`
}

func NewExpenseResponse(expense *domain.Expense) ExpenseResponseDTO {
	return ExpenseResponseDTO{
		ID:          expense.ID,
		Total:       expense.Total,
		Description: expense.Description,
		Date:        expense.Date.Format(time.DateOnly),
		UserID:      expense.UserID,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

func NewExpenseListResponse(expenses []domain.Expense, meta pagination.Meta) ExpenseListResponseDTO {
	data := make([]ExpenseResponseDTO, 0, len(expenses))
	for i := range expenses {
		data = append(data, NewExpenseResponse(&expenses[i]))
	}
	return ExpenseListResponseDTO{Data: data, Pagination: meta}
}

func NewExpensesResponse(expenses []domain.Expense) []ExpenseResponseDTO {
	data := make([]ExpenseResponseDTO, 0, len(expenses))
	for i := range expenses {
		data = append(data, NewExpenseResponse(&expenses[i]))
	}
	return data
}
