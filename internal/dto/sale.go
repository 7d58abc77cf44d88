package dto

import (
	"time"

	"finledger/internal/domain"
	"finledger/internal/pagination"

	"github.com/shopspring/decimal"
)

// CreateSaleRequestDTO uses pointers for the numeric fields so that a
// missing field fails validation while an explicit zero is accepted.
type CreateSaleRequestDTO struct {
	Amount      *int             `json:"amount" validate:"required" example:"2"`
	Price       *decimal.Decimal `json:"price" validate:"required" example:"100.50"`
	Description *string          `json:"description,omitempty" example:"Description of the sale"`
	Date        string           `json:"date" validate:"required,datetime=2006-01-02" example:"2023-01-01"`
}

func (d CreateSaleRequestDTO) Validate() error {
	return validate.Struct(d)
}

func (d CreateSaleRequestDTO) ToDomain() (domain.Sale, error) {
	date, err := time.Parse(time.DateOnly, d.Date)
	if err != nil {
		return domain.Sale{}, err
	}
	return domain.Sale{
		Amount:      *d.Amount,
		Price:       *d.Price,
		Description: d.Description,
		Date:        date,
	}, nil
}

// UpdateSaleRequestDTO is a partial patch: only non-nil fields are merged
// onto the stored record.
type UpdateSaleRequestDTO struct {
	Amount      *int             `json:"amount,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (d UpdateSaleRequestDTO) Validate() error {
	return validate.Struct(d)
}

// Apply merges the patch onto the sale. The owner reference is never
// touched.
func (d UpdateSaleRequestDTO) Apply(sale *domain.Sale) {
	if d.Amount != nil {
		sale.Amount = *d.Amount
	}
	if d.Price != nil {
		sale.Price = *d.Price
	}
	if d.Description != nil {
		sale.Description = d.Description
	}
	if d.Date != nil {
		if date, err := time.Parse(time.DateOnly, *d.Date); err == nil {
			sale.Date = date
		}
	}
}

type SaleResponseDTO struct {
	ID          int             `json:"id" example:"1"`
	Amount      int             `json:"amount" example:"2"`
	Price       decimal.Decimal `json:"price" example:"100.50"`
	Description *string         `json:"description" example:"Description of the sale"`
	Date        string          `json:"date" example:"2023-01-01"`
	UserID      int             `json:"user_id" example:"1"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type SaleListResponseDTO struct {
	Data       []SaleResponseDTO `json:"data"`
	Pagination pagination.Meta   `json:"pagination"`
}

func NewSaleResponse(sale *domain.Sale) SaleResponseDTO {
	return SaleResponseDTO{
		ID:          sale.ID,
		Amount:      sale.Amount,
		Price:       sale.Price,
		Description: sale.Description,
		Date:        sale.Date.Format(time.DateOnly),
		UserID:      sale.UserID,
		CreatedAt:   sale.CreatedAt,
		UpdatedAt:   sale.UpdatedAt,
	}
}

func NewSaleListResponse(sales []domain.Sale, meta pagination.Meta) SaleListResponseDTO {
	data := make([]SaleResponseDTO, 0, len(sales))
	for i := range sales {
		data = append(data, NewSaleResponse(&sales[i]))
	}
	return SaleListResponseDTO{Data: data, Pagination: meta}
}

func NewSalesResponse(sales []domain.Sale) []SaleResponseDTO {
	data := make([]SaleResponseDTO, 0, len(sales))
	for i := range sales {
		data = append(data, NewSaleResponse(&sales[i]))
	}
	return data
}
