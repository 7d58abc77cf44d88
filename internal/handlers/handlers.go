package handlers

import (
	"net/http"

	_ "finledger/docs"
	expensehandlers "finledger/internal/handlers/expenses"
	saleshandlers "finledger/internal/handlers/sales"
	userhandlers "finledger/internal/handlers/users"
	"finledger/internal/service"
	"finledger/pkg/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type UserHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type SaleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Latest(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ExpenseHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Latest(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	UserHandler    UserHandler
	SaleHandler    SaleHandler
	ExpenseHandler ExpenseHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		UserHandler:    userhandlers.New(s.UserService),
		SaleHandler:    saleshandlers.New(s.SaleService),
		ExpenseHandler: expensehandlers.New(s.ExpenseService),
		jwtService:     jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	authMiddleware := auth.Middleware(h.jwtService)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", h.UserHandler.Register)
		r.Post("/login", h.UserHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/me", h.UserHandler.Me)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", h.SaleHandler.Create)
			r.Get("/", h.SaleHandler.List)
			r.Get("/latest", h.SaleHandler.Latest)
			r.Get("/{id}", h.SaleHandler.Get)
			r.Put("/{id}", h.SaleHandler.Update)
			r.Delete("/{id}", h.SaleHandler.Delete)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", h.ExpenseHandler.Create)
			r.Get("/", h.ExpenseHandler.List)
			r.Get("/latest", h.ExpenseHandler.Latest)
			r.Get("/{id}", h.ExpenseHandler.Get)
			r.Patch("/{id}", h.ExpenseHandler.Update)
			r.Delete("/{id}", h.ExpenseHandler.Delete)
		})
	})

	return r
}
