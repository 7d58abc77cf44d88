package expenses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"finledger/internal/domain"
	"finledger/internal/dto"
	"finledger/internal/pagination"
	"finledger/internal/service/expenseservice"
	"finledger/pkg/auth"
	"finledger/pkg/utils"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPageSize    = 10
	defaultLatestLimit = 10
)

type Service interface {
	Create(ctx context.Context, userID int, expense domain.Expense) (*domain.Expense, error)
	List(ctx context.Context, filter domain.RecordFilter) ([]domain.Expense, pagination.Meta, error)
	Latest(ctx context.Context, userID, limit int) ([]domain.Expense, error)
	GetByID(ctx context.Context, id, userID int) (*domain.Expense, error)
	Update(ctx context.Context, id, userID int, patch dto.UpdateExpenseRequestDTO) (*domain.Expense, error)
	Remove(ctx context.Context, id, userID int) error
}

type ExpenseHandler struct {
	expenseService Service
}

func New(expenseService Service) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Create godoc
//
//	@Summary	Create an expense
//	@Tags		Expenses
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreateExpenseRequestDTO	true	"Expense to create"
//	@Success	201		{object}	dto.ExpenseResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body"
//	@Failure	401		{object}	utils.Response	"Unauthorized"
//	@Failure	404		{object}	utils.Response	"User not found"
//	@Router		/expenses [post]
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreateExpenseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	expense, err := req.ToDomain()
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	created, err := h.expenseService.Create(r.Context(), userID, expense)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dto.NewExpenseResponse(created))
}

// List godoc
//
//	@Summary	List expenses
//	@Tags		Expenses
//	@Produce	json
//	@Security	BearerAuth
//	@Param		startDate	query		string	false	"Inclusive lower date bound (YYYY-MM-DD)"
//	@Param		endDate		query		string	false	"Inclusive upper date bound (YYYY-MM-DD)"
//	@Param		page		query		int		false	"Page number, starting at 1"
//	@Param		size		query		int		false	"Page size (1-100)"
//	@Success	200			{object}	dto.ExpenseListResponseDTO
//	@Failure	400			{object}	utils.Response	"Invalid query parameters"
//	@Failure	401			{object}	utils.Response	"Unauthorized"
//	@Router		/expenses [get]
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter, err := pagination.ResolveFilter(userID, r.URL.Query(), defaultPageSize)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, meta, err := h.expenseService.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewExpenseListResponse(expenses, meta))
}

// Latest godoc
//
//	@Summary	Latest expenses
//	@Tags		Expenses
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit	query		int	false	"Maximum number of records (default 10)"
//	@Success	200		{array}		dto.ExpenseResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid limit"
//	@Failure	401		{object}	utils.Response	"Unauthorized"
//	@Router		/expenses/latest [get]
func (h *ExpenseHandler) Latest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, err := pagination.ResolveLimit(r.URL.Query(), defaultLatestLimit)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := h.expenseService.Latest(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewExpensesResponse(expenses))
}

// Get godoc
//
//	@Summary	Get one expense
//	@Tags		Expenses
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Expense id"
//	@Success	200	{object}	dto.ExpenseResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid id"
//	@Failure	401	{object}	utils.Response	"Unauthorized"
//	@Failure	403	{object}	utils.Response	"Access denied"
//	@Failure	404	{object}	utils.Response	"Expense not found"
//	@Router		/expenses/{id} [get]
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	expense, err := h.expenseService.GetByID(r.Context(), id, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewExpenseResponse(expense))
}

// Update godoc
//
//	@Summary	Update an expense
//	@Tags		Expenses
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int								true	"Expense id"
//	@Param		request	body		dto.UpdateExpenseRequestDTO	true	"Fields to update"
//	@Success	200		{object}	dto.ExpenseResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body"
//	@Failure	401		{object}	utils.Response	"Unauthorized"
//	@Failure	403		{object}	utils.Response	"Access denied"
//	@Failure	404		{object}	utils.Response	"Expense not found"
//	@Router		/expenses/{id} [patch]
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	var req dto.UpdateExpenseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	expense, err := h.expenseService.Update(r.Context(), id, userID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewExpenseResponse(expense))
}

// Delete godoc
//
//	@Summary	Delete an expense
//	@Tags		Expenses
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Expense id"
//	@Success	200	{object}	dto.DeleteResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid id"
//	@Failure	401	{object}	utils.Response	"Unauthorized"
//	@Failure	403	{object}	utils.Response	"Access denied"
//	@Failure	404	{object}	utils.Response	"Expense not found"
//	@Router		/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.expenseService.Remove(r.Context(), id, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DeleteResponseDTO{Message: "Expense deleted successfully"})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, expenseservice.ErrExpenseNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, expenseservice.ErrAccessDenied):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, expenseservice.ErrOwnerNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
