package service

import (
	"finledger/internal/handlers/expenses"
	"finledger/internal/handlers/sales"
	"finledger/internal/handlers/users"

	pkgauth "finledger/pkg/auth"

	"finledger/internal/repo"
	"finledger/internal/service/expenseservice"
	"finledger/internal/service/saleservice"
	"finledger/internal/service/userservice"
)

type Services struct {
	UserService    users.Service
	SaleService    sales.Service
	ExpenseService expenses.Service
}

func New(repo *repo.Repositories, jwtService pkgauth.JWTServiceInterface) *Services {
	userService := userservice.New(repo.UserRepo, &pkgauth.HashService{}, jwtService)
	saleService := saleservice.New(repo.SaleRepo, repo.UserRepo)
	expenseService := expenseservice.New(repo.ExpenseRepo, repo.UserRepo)

	return &Services{
		UserService:    userService,
		SaleService:    saleService,
		ExpenseService: expenseService,
	}
}
