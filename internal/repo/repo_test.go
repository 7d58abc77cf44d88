package repo

import (
	"testing"

	"finledger/internal/pg"
	expenserepo "finledger/internal/repo/expense-repo"
	salerepo "finledger/internal/repo/sale-repo"
	userrepo "finledger/internal/repo/user-repo"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	mockTxManager := pg.NewMockTXManager(ctrl)
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.SaleRepo)
	assert.NotNil(t, repo.ExpenseRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &salerepo.Repository{}, repo.SaleRepo)
	assert.IsType(t, &expenserepo.Repository{}, repo.ExpenseRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
