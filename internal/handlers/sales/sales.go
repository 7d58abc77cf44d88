package sales

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"finledger/internal/domain"
	"finledger/internal/dto"
	"finledger/internal/pagination"
	"finledger/internal/service/saleservice"
	"finledger/pkg/auth"
	"finledger/pkg/utils"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPageSize    = 20
	defaultLatestLimit = 10
)

type Service interface {
	Create(ctx context.Context, userID int, sale domain.Sale) (*domain.Sale, error)
	List(ctx context.Context, filter domain.RecordFilter) ([]domain.Sale, pagination.Meta, error)
	Latest(ctx context.Context, userID, limit int) ([]domain.Sale, error)
	GetByID(ctx context.Context, id, userID int) (*domain.Sale, error)
	Update(ctx context.Context, id, userID int, patch dto.UpdateSaleRequestDTO) (*domain.Sale, error)
	Remove(ctx context.Context, id, userID int) error
}

type SaleHandler struct {
	saleService Service
}

func New(saleService Service) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// Create godoc
//
//	@Summary	Create a sale
//	@Tags		Sales
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreateSaleRequestDTO	true	"Sale to create"
//	@Success	201		{object}	dto.SaleResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body"
//	@Failure	401		{object}	utils.Response	"Unauthorized"
//	@Failure	404		{object}	utils.Response	"User not found"
//	@Router		/sales [post]
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreateSaleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sale, err := req.ToDomain()
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	created, err := h.saleService.Create(r.Context(), userID, sale)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dto.NewSaleResponse(created))
}

// List godoc
//
//	@Summary	List sales
//	@Tags		Sales
//	@Produce	json
//	@Security	BearerAuth
//	@Param		startDate	query		string	false	"Inclusive lower date bound (YYYY-MM-DD)"
//	@Param		endDate		query		string	false	"Inclusive upper date bound (YYYY-MM-DD)"
//	@Param		page		query		int		false	"Page number, starting at 1"
//	@Param		size		query		int		false	"Page size (1-100)"
//	@Success	200			{object}	dto.SaleListResponseDTO
//	@Failure	400			{object}	utils.Response	"Invalid query parameters"
//	@Failure	401			{object}	utils.Response	"Unauthorized"
//	@Router		/sales [get]
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
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

	sales, meta, err := h.saleService.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewSaleListResponse(sales, meta))
}

// Latest godoc
//
//	@Summary	Latest sales
//	@Tags		Sales
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit	query		int	false	"Maximum number of records (default 10)"
//	@Success	200		{array}		dto.SaleResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid limit"
//	@Failure	401		{object}	utils.Response	"Unauthorized"
//	@Router		/sales/latest [get]
func (h *SaleHandler) Latest(w http.ResponseWriter, r *http.Request) {
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

	sales, err := h.saleService.Latest(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewSalesResponse(sales))
}

// Get godoc
//
//	@Summary	Get one sale
//	@Tags		Sales
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Sale id"
//	@Success	200	{object}	dto.SaleResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid id"
//	@Failure	401	{object}	utils.Response	"Unauthorized"
//	@Failure	403	{object}	utils.Response	"Access denied"
//	@Failure	404	{object}	utils.Response	"Sale not found"
//	@Router		/sales/{id} [get]
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	sale, err := h.saleService.GetByID(r.Context(), id, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewSaleResponse(sale))
}

// Update godoc
//
//	@Summary	Update a sale
//	@Tags		Sales
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int							true	"Sale id"
//	@Param		request	body		dto.UpdateSaleRequestDTO	true	"Fields to update"
//	@Success	200		{object}	dto.SaleResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body"
//	@Failure	401		{object}	utils.Response	"Unauthorized"
//	@Failure	403		{object}	utils.Response	"Access denied"
//	@Failure	404		{object}	utils.Response	"Sale not found"
//	@Router		/sales/{id} [put]
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req dto.UpdateSaleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sale, err := h.saleService.Update(r.Context(), id, userID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewSaleResponse(sale))
}

// Delete godoc
//
//	@Summary	Delete a sale
//	@Tags		Sales
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Sale id"
//	@Success	200	{object}	dto.DeleteResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid id"
//	@Failure	401	{object}	utils.Response	"Unauthorized"
//	@Failure	403	{object}	utils.Response	"Access denied"
//	@Failure	404	{object}	utils.Response	"Sale not found"
//	@Router		/sales/{id} [delete]
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.saleService.Remove(r.Context(), id, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DeleteResponseDTO{Message: "Sale deleted successfully"})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, saleservice.ErrSaleNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, saleservice.ErrAccessDenied):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, saleservice.ErrOwnerNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
