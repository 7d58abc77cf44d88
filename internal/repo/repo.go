package repo

import (
	"finledger/internal/pg"
	expenserepo "finledger/internal/repo/expense-repo"
	salerepo "finledger/internal/repo/sale-repo"
	userrepo "finledger/internal/repo/user-repo"
	"finledger/internal/service/expenseservice"
	"finledger/internal/service/saleservice"
	"finledger/internal/service/userservice"
)

type Repositories struct {
	UserRepo    userservice.Repo
	SaleRepo    saleservice.Repo
	ExpenseRepo expenseservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := userrepo.New(conn)
	saleRepo := salerepo.New(conn, txManager)
	expenseRepo := expenserepo.New(conn, txManager)

	return &Repositories{
		UserRepo:    userRepo,
		SaleRepo:    saleRepo,
		ExpenseRepo: expenseRepo,
	}
}
