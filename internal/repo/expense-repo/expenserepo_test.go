package expenserepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"finledger/internal/domain"
	"finledger/internal/pg"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func TestRepository_Save(t *testing.T) {
	repo, mock, tx := NewMock(t)
	timeNow := time.Now()
	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expense   *domain.Expense
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Save expense successfully",
			expense: &domain.Expense{
				Total:       decimal.NewFromFloat(54.3),
				Description: "office supplies",
				Date:        date,
				UserID:      1,
			},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					rows := pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
						AddRow(1, timeNow, timeNow)
					mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO expenses (total, description, date, user_id) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at")).
						WithArgs(decimal.NewFromFloat(54.3), "office supplies", date, 1).
						WillReturnRows(rows)
					return fn(ctx)
				})
			},
			expectErr: false,
		},
		{
			name: "Database error",
			expense: &domain.Expense{
				Total:       decimal.NewFromFloat(54.3),
				Description: "office supplies",
				Date:        date,
				UserID:      1,
			},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO expenses (total, description, date, user_id) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at")).
						WithArgs(decimal.NewFromFloat(54.3), "office supplies", date, 1).
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Save(context.Background(), tt.expense)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, tt.expense.ID)
			}
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	timeNow := time.Now()
	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Expense
	}{
		{
			name: "Expense exists",
			id:   1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "total", "description", "date", "user_id", "created_at", "updated_at"}).
					AddRow(1, decimal.NewFromFloat(54.3), "office supplies", date, 1, timeNow, timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, total, description, date, user_id, created_at, updated_at FROM expenses WHERE id = $1")).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Expense{
				ID:          1,
				Total:       decimal.NewFromFloat(54.3),
				Description: "office supplies",
				Date:        date,
				UserID:      1,
				CreatedAt:   timeNow,
				UpdatedAt:   timeNow,
			},
		},
		{
			name: "Expense does not exist",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, total, description, date, user_id, created_at, updated_at FROM expenses WHERE id = $1")).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			id:   1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, total, description, date, user_id, created_at, updated_at FROM expenses WHERE id = $1")).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_FindAllByUser(t *testing.T) {
	repo, mock, _ := NewMock(t)
	timeNow := time.Now()
	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		filter      domain.RecordFilter
		mockSetup   func()
		expectErr   bool
		result      []domain.Expense
		expectTotal int
	}{
		{
			name:   "Expenses found without date filter",
			filter: domain.RecordFilter{UserID: 1, Page: 1, Size: 10, Offset: 0},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM expenses WHERE user_id = $1")).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
				rows := pgxmock.NewRows([]string{"id", "total", "description", "date", "user_id", "created_at", "updated_at"}).
					AddRow(1, decimal.NewFromFloat(54.3), "office supplies", date, 1, timeNow, timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, total, description, date, user_id, created_at, updated_at FROM expenses WHERE user_id = $1 ORDER BY date DESC, id DESC LIMIT $2 OFFSET $3")).
					WithArgs(1, 10, 0).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: []domain.Expense{
				{
					ID:          1,
					Total:       decimal.NewFromFloat(54.3),
					Description: "office supplies",
					Date:        date,
					UserID:      1,
					CreatedAt:   timeNow,
					UpdatedAt:   timeNow,
				},
			},
			expectTotal: 1,
		},
		{
			name: "Expenses found with lower bound only",
			filter: domain.RecordFilter{
				UserID:    1,
				StartDate: &start,
				Page:      1,
				Size:      10,
				Offset:    0,
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM expenses WHERE user_id = $1 AND date >= $2")).
					WithArgs(1, start).
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, total, description, date, user_id, created_at, updated_at FROM expenses WHERE user_id = $1 AND date >= $2 ORDER BY date DESC, id DESC LIMIT $3 OFFSET $4")).
					WithArgs(1, start, 10, 0).
					WillReturnRows(pgxmock.NewRows([]string{"id", "total", "description", "date", "user_id", "created_at", "updated_at"}))
			},
			expectErr:   false,
			result:      nil,
			expectTotal: 0,
		},
		{
			name:   "Count query fails",
			filter: domain.RecordFilter{UserID: 1, Page: 1, Size: 10, Offset: 0},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM expenses WHERE user_id = $1")).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, total, err := repo.FindAllByUser(context.Background(), tt.filter)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
			assert.Equal(t, tt.expectTotal, total)
		})
	}
}

func TestRepository_FindLatestByUser(t *testing.T) {
	repo, mock, _ := NewMock(t)
	timeNow := time.Now()
	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		userID    int
		limit     int
		mockSetup func()
		expectErr bool
		result    []domain.Expense
	}{
		{
			name:   "Latest expenses found",
			userID: 1,
			limit:  10,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "total", "description", "date", "user_id", "created_at", "updated_at"}).
					AddRow(2, decimal.NewFromFloat(10.0), "coffee", date, 1, timeNow, timeNow)
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, total, description, date, user_id, created_at, updated_at FROM expenses WHERE user_id = $1 ORDER BY date DESC, id DESC LIMIT $2")).
					WithArgs(1, 10).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: []domain.Expense{
				{ID: 2, Total: decimal.NewFromFloat(10.0), Description: "coffee", Date: date, UserID: 1, CreatedAt: timeNow, UpdatedAt: timeNow},
			},
		},
		{
			name:   "Database error",
			userID: 1,
			limit:  10,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, total, description, date, user_id, created_at, updated_at FROM expenses WHERE user_id = $1 ORDER BY date DESC, id DESC LIMIT $2")).
					WithArgs(1, 10).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
		{
			name:   "Row iteration error is not a truncated page",
			userID: 1,
			limit:  10,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "total", "description", "date", "user_id", "created_at", "updated_at"}).
					AddRow(2, decimal.NewFromFloat(10.0), "coffee", date, 1, timeNow, timeNow).
					AddRow(1, decimal.NewFromFloat(54.3), "office supplies", date, 1, timeNow, timeNow).
					RowError(1, errors.New("connection reset"))
				mock.ExpectQuery(regexp.QuoteMeta("SELECT id, total, description, date, user_id, created_at, updated_at FROM expenses WHERE user_id = $1 ORDER BY date DESC, id DESC LIMIT $2")).
					WithArgs(1, 10).
					WillReturnRows(rows)
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindLatestByUser(context.Background(), tt.userID, tt.limit)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_Update(t *testing.T) {
	repo, mock, tx := NewMock(t)
	timeNow := time.Now()
	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expense   *domain.Expense
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Update expense successfully",
			expense: &domain.Expense{
				ID:          1,
				Total:       decimal.NewFromFloat(99.9),
				Description: "updated",
				Date:        date,
			},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta("UPDATE expenses SET total = $1, description = $2, date = $3, updated_at = now() WHERE id = $4 RETURNING updated_at")).
						WithArgs(decimal.NewFromFloat(99.9), "updated", date, 1).
						WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(timeNow))
					return fn(ctx)
				})
			},
			expectErr: false,
		},
		{
			name: "Database error",
			expense: &domain.Expense{
				ID:          1,
				Total:       decimal.NewFromFloat(99.9),
				Description: "updated",
				Date:        date,
			},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta("UPDATE expenses SET total = $1, description = $2, date = $3, updated_at = now() WHERE id = $4 RETURNING updated_at")).
						WithArgs(decimal.NewFromFloat(99.9), "updated", date, 1).
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Update(context.Background(), tt.expense)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, timeNow, tt.expense.UpdatedAt)
			}
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	repo, mock, tx := NewMock(t)

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Delete expense successfully",
			id:   1,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectExec(regexp.QuoteMeta("DELETE FROM expenses WHERE id = $1")).
						WithArgs(1).
						WillReturnResult(pgxmock.NewResult("DELETE", 1))
					return fn(ctx)
				})
			},
			expectErr: false,
		},
		{
			name: "Database error",
			id:   1,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectExec(regexp.QuoteMeta("DELETE FROM expenses WHERE id = $1")).
						WithArgs(1).
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Delete(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
