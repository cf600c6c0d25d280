package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	budgetsdomain "expense-tracker-go/internal/domain/budgets"
	"expense-tracker-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createBudgetRequest struct {
	Amount     float64 `json:"amount"`
	PeriodType string  `json:"period_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
}

type updateBudgetRequest struct {
	Amount     *float64 `json:"amount"`
	PeriodType *string  `json:"period_type"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	IsActive   *bool    `json:"is_active"`
}

type budgetResponse struct {
	ID         string    `json:"id"`
	Amount     float64   `json:"amount"`
	PeriodType string    `json:"period_type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type budgetStatusResponse struct {
	budgetResponse
	Spent         float64 `json:"spent"`
	Remaining     float64 `json:"remaining"`
	Percentage    float64 `json:"percentage"`
	DaysRemaining int     `json:"days_remaining"`
}

func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	items, err := h.Budgets.List(r.Context(), account.ID)
	if err != nil {
		h.log.InternalError("budgets.list: list failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]budgetResponse, 0, len(items))
	for _, budget := range items {
		response = append(response, toBudgetResponse(budget))
	}

	writeData(w, http.StatusOK, response)
}

func (h *Handlers) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must not be negative")
		return
	}

	startDate, err := parseDateRequired(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start date")
		return
	}
	endDate, err := parseDateParam(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end date")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	created, err := h.Budgets.Create(r.Context(), budgetsdomain.CreateInput{
		UserID:     account.ID,
		Amount:     req.Amount,
		PeriodType: strings.ToUpper(strings.TrimSpace(req.PeriodType)),
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, budgetsdomain.ErrInvalidPeriodType):
			h.log.BusinessError("budgets.create: invalid period type", err, "user_id", account.ID)
			writeError(w, http.StatusBadRequest, "invalid_period_type", "period type must be WEEKLY or MONTHLY")
		case errors.Is(err, budgetsdomain.ErrInvalidDateRange):
			h.log.BusinessError("budgets.create: invalid date range", err, "user_id", account.ID)
			writeError(w, http.StatusBadRequest, "invalid_date_range", "end date must be after start date")
		case errors.Is(err, budgetsdomain.ErrBudgetOverlap):
			h.log.BusinessError("budgets.create: overlap", err, "user_id", account.ID)
			writeError(w, http.StatusBadRequest, "budget_overlap", "budget overlaps an existing active budget")
		case errors.Is(err, budgetsdomain.ErrNegativeAmount):
			h.log.BusinessError("budgets.create: negative amount", err, "user_id", account.ID)
			writeError(w, http.StatusBadRequest, "invalid_request", "amount must not be negative")
		default:
			h.log.InternalError("budgets.create: create failed", err, "user_id", account.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeData(w, http.StatusCreated, toBudgetResponse(*created))
}

// CurrentBudget returns the active budget covering the current instant, or a
// null payload when none does.
func (h *Handlers) CurrentBudget(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	status, err := h.Budgets.FindCurrent(r.Context(), account.ID)
	if err != nil {
		h.log.InternalError("budgets.current: lookup failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if status == nil {
		writeData(w, http.StatusOK, nil)
		return
	}

	writeData(w, http.StatusOK, toBudgetStatusResponse(*status))
}

func (h *Handlers) BudgetStatus(w http.ResponseWriter, r *http.Request) {
	budgetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	status, err := h.Budgets.GetStatus(r.Context(), account.ID, budgetID)
	if err != nil {
		if errors.Is(err, budgetsdomain.ErrBudgetNotFound) {
			h.log.BusinessError("budgets.status: budget not found", err, "user_id", account.ID, "budget_id", budgetID)
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
			return
		}
		h.log.InternalError("budgets.status: lookup failed", err, "user_id", account.ID, "budget_id", budgetID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeData(w, http.StatusOK, toBudgetStatusResponse(*status))
}

func (h *Handlers) GetBudget(w http.ResponseWriter, r *http.Request) {
	budgetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	budget, err := h.Budgets.Get(r.Context(), account.ID, budgetID)
	if err != nil {
		if errors.Is(err, budgetsdomain.ErrBudgetNotFound) {
			h.log.BusinessError("budgets.get: budget not found", err, "user_id", account.ID, "budget_id", budgetID)
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
			return
		}
		h.log.InternalError("budgets.get: get failed", err, "user_id", account.ID, "budget_id", budgetID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeData(w, http.StatusOK, toBudgetResponse(*budget))
}

func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req updateBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	budgetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	startDate, err := parseDateParam(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start date")
		return
	}
	endDate, err := parseDateParam(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end date")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var periodType *string
	if req.PeriodType != nil {
		normalized := strings.ToUpper(strings.TrimSpace(*req.PeriodType))
		periodType = &normalized
	}

	updated, err := h.Budgets.Update(r.Context(), budgetsdomain.UpdateInput{
		ID:         budgetID,
		UserID:     account.ID,
		Amount:     req.Amount,
		PeriodType: periodType,
		StartDate:  startDate,
		EndDate:    endDate,
		IsActive:   req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, budgetsdomain.ErrBudgetNotFound):
			h.log.BusinessError("budgets.update: budget not found", err, "user_id", account.ID, "budget_id", budgetID)
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
		case errors.Is(err, budgetsdomain.ErrInvalidPeriodType):
			h.log.BusinessError("budgets.update: invalid period type", err, "user_id", account.ID, "budget_id", budgetID)
			writeError(w, http.StatusBadRequest, "invalid_period_type", "period type must be WEEKLY or MONTHLY")
		case errors.Is(err, budgetsdomain.ErrInvalidDateRange):
			h.log.BusinessError("budgets.update: invalid date range", err, "user_id", account.ID, "budget_id", budgetID)
			writeError(w, http.StatusBadRequest, "invalid_date_range", "end date must be after start date")
		case errors.Is(err, budgetsdomain.ErrNegativeAmount):
			h.log.BusinessError("budgets.update: negative amount", err, "user_id", account.ID, "budget_id", budgetID)
			writeError(w, http.StatusBadRequest, "invalid_request", "amount must not be negative")
		default:
			h.log.InternalError("budgets.update: update failed", err, "user_id", account.ID, "budget_id", budgetID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeData(w, http.StatusOK, toBudgetResponse(*updated))
}

func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	budgetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Budgets.Delete(r.Context(), account.ID, budgetID); err != nil {
		if errors.Is(err, budgetsdomain.ErrBudgetNotFound) {
			h.log.BusinessError("budgets.delete: budget not found", err, "user_id", account.ID, "budget_id", budgetID)
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
			return
		}
		h.log.InternalError("budgets.delete: delete failed", err, "user_id", account.ID, "budget_id", budgetID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toBudgetResponse(budget budgetsdomain.Budget) budgetResponse {
	return budgetResponse{
		ID:         budget.ID,
		Amount:     budget.Amount,
		PeriodType: budget.PeriodType,
		StartDate:  budget.StartDate,
		EndDate:    budget.EndDate,
		IsActive:   budget.IsActive,
		CreatedAt:  budget.CreatedAt,
	}
}

func toBudgetStatusResponse(status budgetsdomain.Status) budgetStatusResponse {
	return budgetStatusResponse{
		budgetResponse: toBudgetResponse(status.Budget),
		Spent:          status.Spent,
		Remaining:      status.Remaining,
		Percentage:     status.Percentage,
		DaysRemaining:  status.DaysRemaining,
	}
}
