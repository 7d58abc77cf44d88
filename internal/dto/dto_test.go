package dto

import (
	"testing"
	"time"

	"finledger/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func TestRegisterRequestDTO_Validate(t *testing.T) {
	tests := []struct {
		name        string
		dto         RegisterRequestDTO
		expectError bool
	}{
		{
			name:        "Valid",
			dto:         RegisterRequestDTO{Email: "user@example.com", Password: "password123"},
			expectError: false,
		},
		{
			name:        "Missing email",
			dto:         RegisterRequestDTO{Password: "password123"},
			expectError: true,
		},
		{
			name:        "Not an email",
			dto:         RegisterRequestDTO{Email: "not-an-email", Password: "password123"},
			expectError: true,
		},
		{
			name:        "Password too short",
			dto:         RegisterRequestDTO{Email: "user@example.com", Password: "12345"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dto.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateSaleRequestDTO_Validate(t *testing.T) {
	tests := []struct {
		name        string
		dto         CreateSaleRequestDTO
		expectError bool
	}{
		{
			name: "Valid",
			dto: CreateSaleRequestDTO{
				Amount: intPtr(2),
				Price:  decPtr(100.5),
				Date:   "2023-01-01",
			},
			expectError: false,
		},
		{
			name: "Zero amount is a legal value",
			dto: CreateSaleRequestDTO{
				Amount: intPtr(0),
				Price:  decPtr(100.5),
				Date:   "2023-01-01",
			},
			expectError: false,
		},
		{
			name: "Zero price is a legal value",
			dto: CreateSaleRequestDTO{
				Amount: intPtr(2),
				Price:  decPtr(0),
				Date:   "2023-01-01",
			},
			expectError: false,
		},
		{
			name: "Missing amount",
			dto: CreateSaleRequestDTO{
				Price: decPtr(100.5),
				Date:  "2023-01-01",
			},
			expectError: true,
		},
		{
			name: "Missing price",
			dto: CreateSaleRequestDTO{
				Amount: intPtr(2),
				Date:   "2023-01-01",
			},
			expectError: true,
		},
		{
			name: "Bad date format",
			dto: CreateSaleRequestDTO{
				Amount: intPtr(2),
				Price:  decPtr(100.5),
				Date:   "01-01-2023",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dto.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateSaleRequestDTO_ToDomain(t *testing.T) {
	dto := CreateSaleRequestDTO{
		Amount:      intPtr(3),
		Price:       decPtr(100.5),
		Description: strPtr("first sale"),
		Date:        "2023-01-15",
	}

	sale, err := dto.ToDomain()

	assert.NoError(t, err)
	assert.Equal(t, 3, sale.Amount)
	assert.True(t, sale.Price.Equal(decimal.NewFromFloat(100.5)))
	assert.Equal(t, "first sale", *sale.Description)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), sale.Date)

	_, err = CreateSaleRequestDTO{Amount: intPtr(1), Price: decPtr(1), Date: "garbage"}.ToDomain()
	assert.Error(t, err)
}

func TestUpdateSaleRequestDTO_Apply(t *testing.T) {
	base := func() domain.Sale {
		return domain.Sale{
			ID:          1,
			Amount:      2,
			Price:       decimal.NewFromFloat(100.5),
			Description: strPtr("original"),
			Date:        time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			UserID:      7,
		}
	}

	tests := []struct {
		name  string
		patch UpdateSaleRequestDTO
		check func(t *testing.T, sale domain.Sale)
	}{
		{
			name:  "Empty patch changes nothing",
			patch: UpdateSaleRequestDTO{},
			check: func(t *testing.T, sale domain.Sale) {
				assert.Equal(t, base(), sale)
			},
		},
		{
			name:  "Amount only",
			patch: UpdateSaleRequestDTO{Amount: intPtr(5)},
			check: func(t *testing.T, sale domain.Sale) {
				assert.Equal(t, 5, sale.Amount)
				assert.True(t, sale.Price.Equal(decimal.NewFromFloat(100.5)))
				assert.Equal(t, "original", *sale.Description)
			},
		},
		{
			name: "Full patch keeps owner",
			patch: UpdateSaleRequestDTO{
				Amount:      intPtr(9),
				Price:       decPtr(55.25),
				Description: strPtr("updated"),
				Date:        strPtr("2023-06-15"),
			},
			check: func(t *testing.T, sale domain.Sale) {
				assert.Equal(t, 9, sale.Amount)
				assert.True(t, sale.Price.Equal(decimal.NewFromFloat(55.25)))
				assert.Equal(t, "updated", *sale.Description)
				assert.Equal(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), sale.Date)
				assert.Equal(t, 7, sale.UserID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := base()
			tt.patch.Apply(&sale)
			tt.check(t, sale)
		})
	}
}

func TestCreateExpenseRequestDTO_Validate(t *testing.T) {
	tests := []struct {
		name        string
		dto         CreateExpenseRequestDTO
		expectError bool
	}{
		{
			name: "Valid",
			dto: CreateExpenseRequestDTO{
				Total:       decPtr(54.3),
				Description: "office supplies",
				Date:        "2023-01-01",
			},
			expectError: false,
		},
		{
			name: "Zero total is a legal value",
			dto: CreateExpenseRequestDTO{
				Total:       decPtr(0),
				Description: "free sample",
				Date:        "2023-01-01",
			},
			expectError: false,
		},
		{
			name: "Missing total",
			dto: CreateExpenseRequestDTO{
				Description: "office supplies",
				Date:        "2023-01-01",
			},
			expectError: true,
		},
		{
			name: "Missing description",
			dto: CreateExpenseRequestDTO{
				Total: decPtr(54.3),
				Date:  "2023-01-01",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dto.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateExpenseRequestDTO_Apply(t *testing.T) {
	expense := domain.Expense{
		ID:          1,
		Total:       decimal.NewFromFloat(54.3),
		Description: "office supplies",
		Date:        time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		UserID:      7,
	}

	patch := UpdateExpenseRequestDTO{
		Total: decPtr(99.99),
		Date:  strPtr("2023-02-01"),
	}
	patch.Apply(&expense)

	assert.True(t, expense.Total.Equal(decimal.NewFromFloat(99.99)))
	assert.Equal(t, "office supplies", expense.Description)
	assert.Equal(t, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), expense.Date)
	assert.Equal(t, 7, expense.UserID)
}

func TestUpdateExpenseRequestDTO_Validate(t *testing.T) {
	assert.NoError(t, UpdateExpenseRequestDTO{}.Validate())
	assert.NoError(t, UpdateExpenseRequestDTO{Date: strPtr("2023-01-01")}.Validate())
	assert.Error(t, UpdateExpenseRequestDTO{Date: strPtr("not-a-date")}.Validate())
}
