package saleservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"finledger/internal/domain"
	"finledger/internal/dto"
	"finledger/internal/pagination"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockUserRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	userRepo := NewMockUserRepo(ctrl)

	service := New(repo, userRepo)
	defer ctrl.Finish()
	return service, repo, userRepo
}

func TestCreate(t *testing.T) {
	service, repo, userRepo := NewMock(t)
	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		userID        int
		sale          domain.Sale
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "Successful creation",
			userID: 1,
			sale: domain.Sale{
				Amount: 2,
				Price:  decimal.NewFromFloat(100.5),
				Date:   date,
			},
			prepareMock: func() {
				userRepo.EXPECT().FindByID(context.Background(), 1).Return(&domain.User{ID: 1}, nil)
				repo.EXPECT().Save(context.Background(), gomock.Any()).DoAndReturn(func(ctx context.Context, sale *domain.Sale) error {
					sale.ID = 10
					return nil
				})
			},
			expectedError: nil,
		},
		{
			name:   "Owner no longer exists",
			userID: 99,
			sale:   domain.Sale{Amount: 2, Price: decimal.NewFromFloat(100.5), Date: date},
			prepareMock: func() {
				userRepo.EXPECT().FindByID(context.Background(), 99).Return(nil, nil)
			},
			expectedError: ErrOwnerNotFound,
		},
		{
			name:   "Owner lookup fails",
			userID: 1,
			sale:   domain.Sale{Amount: 2, Price: decimal.NewFromFloat(100.5), Date: date},
			prepareMock: func() {
				userRepo.EXPECT().FindByID(context.Background(), 1).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
		{
			name:   "Save fails",
			userID: 1,
			sale:   domain.Sale{Amount: 2, Price: decimal.NewFromFloat(100.5), Date: date},
			prepareMock: func() {
				userRepo.EXPECT().FindByID(context.Background(), 1).Return(&domain.User{ID: 1}, nil)
				repo.EXPECT().Save(context.Background(), gomock.Any()).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			created, err := service.Create(context.Background(), tt.userID, tt.sale)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 10, created.ID)
				assert.Equal(t, tt.userID, created.UserID)
			}
		})
	}
}

func TestList(t *testing.T) {
	service, repo, _ := NewMock(t)
	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		filter        domain.RecordFilter
		prepareMock   func()
		expectedSales []domain.Sale
		expectedMeta  pagination.Meta
		expectedError error
	}{
		{
			name:   "Page in the middle of the result set",
			filter: domain.RecordFilter{UserID: 1, Page: 2, Size: 10, Offset: 10},
			prepareMock: func() {
				sales := []domain.Sale{{ID: 11, UserID: 1, Date: date}}
				repo.EXPECT().FindAllByUser(context.Background(), gomock.Any()).Return(sales, 25, nil)
			},
			expectedSales: []domain.Sale{{ID: 11, UserID: 1, Date: date}},
			expectedMeta:  pagination.NewMeta(2, 10, 25),
			expectedError: nil,
		},
		{
			name:   "Empty result",
			filter: domain.RecordFilter{UserID: 1, Page: 1, Size: 20},
			prepareMock: func() {
				repo.EXPECT().FindAllByUser(context.Background(), gomock.Any()).Return(nil, 0, nil)
			},
			expectedSales: nil,
			expectedMeta:  pagination.NewMeta(1, 20, 0),
			expectedError: nil,
		},
		{
			name:   "Repository error",
			filter: domain.RecordFilter{UserID: 1, Page: 1, Size: 20},
			prepareMock: func() {
				repo.EXPECT().FindAllByUser(context.Background(), gomock.Any()).Return(nil, 0, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			sales, meta, err := service.List(context.Background(), tt.filter)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSales, sales)
			assert.Equal(t, tt.expectedMeta, meta)
		})
	}
}

func TestLatest(t *testing.T) {
	service, repo, _ := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedSales []domain.Sale
		expectedError error
	}{
		{
			name: "Latest sales returned",
			prepareMock: func() {
				repo.EXPECT().FindLatestByUser(context.Background(), 1, 10).Return([]domain.Sale{{ID: 3, UserID: 1}}, nil)
			},
			expectedSales: []domain.Sale{{ID: 3, UserID: 1}},
		},
		{
			name: "Repository error",
			prepareMock: func() {
				repo.EXPECT().FindLatestByUser(context.Background(), 1, 10).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			sales, err := service.Latest(context.Background(), 1, 10)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSales, sales)
		})
	}
}

func TestGetByID(t *testing.T) {
	service, repo, _ := NewMock(t)

	tests := []struct {
		name          string
		id            int
		userID        int
		prepareMock   func()
		expectedSale  *domain.Sale
		expectedError error
	}{
		{
			name:   "Own sale returned",
			id:     1,
			userID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).Return(&domain.Sale{ID: 1, UserID: 1}, nil)
			},
			expectedSale: &domain.Sale{ID: 1, UserID: 1},
		},
		{
			name:   "Sale not found",
			id:     99,
			userID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 99).Return(nil, nil)
			},
			expectedError: ErrSaleNotFound,
		},
		{
			name:   "Someone else's sale",
			id:     1,
			userID: 2,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).Return(&domain.Sale{ID: 1, UserID: 1}, nil)
			},
			expectedError: ErrAccessDenied,
		},
		{
			name:   "Repository error",
			id:     1,
			userID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			sale, err := service.GetByID(context.Background(), tt.id, tt.userID)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, sale)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSale, sale)
		})
	}
}

func TestUpdate(t *testing.T) {
	service, repo, _ := NewMock(t)
	date := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newAmount := 5
	newDate := "2023-06-15"

	tests := []struct {
		name          string
		id            int
		userID        int
		patch         dto.UpdateSaleRequestDTO
		prepareMock   func()
		check         func(t *testing.T, sale *domain.Sale)
		expectedError error
	}{
		{
			name:   "Partial patch merges only provided fields",
			id:     1,
			userID: 1,
			patch:  dto.UpdateSaleRequestDTO{Amount: &newAmount, Date: &newDate},
			prepareMock: func() {
				stored := &domain.Sale{ID: 1, UserID: 1, Amount: 2, Price: decimal.NewFromFloat(100.5), Date: date}
				repo.EXPECT().FindByID(context.Background(), 1).Return(stored, nil)
				repo.EXPECT().Update(context.Background(), stored).Return(nil)
			},
			check: func(t *testing.T, sale *domain.Sale) {
				assert.Equal(t, 5, sale.Amount)
				assert.True(t, decimal.NewFromFloat(100.5).Equal(sale.Price))
				assert.Equal(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), sale.Date)
				assert.Equal(t, 1, sale.UserID)
			},
		},
		{
			name:   "Sale not found",
			id:     99,
			userID: 1,
			patch:  dto.UpdateSaleRequestDTO{Amount: &newAmount},
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 99).Return(nil, nil)
			},
			expectedError: ErrSaleNotFound,
		},
		{
			name:   "Someone else's sale",
			id:     1,
			userID: 2,
			patch:  dto.UpdateSaleRequestDTO{Amount: &newAmount},
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).Return(&domain.Sale{ID: 1, UserID: 1}, nil)
			},
			expectedError: ErrAccessDenied,
		},
		{
			name:   "Update fails",
			id:     1,
			userID: 1,
			patch:  dto.UpdateSaleRequestDTO{Amount: &newAmount},
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).Return(&domain.Sale{ID: 1, UserID: 1}, nil)
				repo.EXPECT().Update(context.Background(), gomock.Any()).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			sale, err := service.Update(context.Background(), tt.id, tt.userID, tt.patch)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, sale)
				return
			}
			assert.NoError(t, err)
			if tt.check != nil {
				tt.check(t, sale)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	service, repo, _ := NewMock(t)

	tests := []struct {
		name          string
		id            int
		userID        int
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "Own sale deleted",
			id:     1,
			userID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).Return(&domain.Sale{ID: 1, UserID: 1}, nil)
				repo.EXPECT().Delete(context.Background(), 1).Return(nil)
			},
		},
		{
			name:   "Sale not found",
			id:     99,
			userID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 99).Return(nil, nil)
			},
			expectedError: ErrSaleNotFound,
		},
		{
			name:   "Someone else's sale",
			id:     1,
			userID: 2,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).Return(&domain.Sale{ID: 1, UserID: 1}, nil)
			},
			expectedError: ErrAccessDenied,
		},
		{
			name:   "Delete fails",
			id:     1,
			userID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByID(context.Background(), 1).Return(&domain.Sale{ID: 1, UserID: 1}, nil)
				repo.EXPECT().Delete(context.Background(), 1).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			err := service.Remove(context.Background(), tt.id, tt.userID)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
