package handler

import (
	"net/http"

	statsdomain "expense-tracker-go/internal/domain/stats"
	"expense-tracker-go/internal/transport/httpserver/middleware"
)

type dashboardResponse struct {
	TodayTotal           float64                    `json:"today_total"`
	WeekTotal            float64                    `json:"week_total"`
	MonthTotal           float64                    `json:"month_total"`
	TopCategories        []statsdomain.CategoryRow  `json:"top_categories"`
	RecentExpenses       []expenseResponse          `json:"recent_expenses"`
	BudgetStatus         *budgetStatusResponse      `json:"budget_status"`
	AverageDailySpending float64                    `json:"average_daily_spending"`
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	dashboard, err := h.Stats.Dashboard(r.Context(), account.ID)
	if err != nil {
		h.log.InternalError("stats.dashboard: compute failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	recent := make([]expenseResponse, 0, len(dashboard.RecentExpenses))
	for _, expense := range dashboard.RecentExpenses {
		recent = append(recent, toExpenseResponse(expense))
	}

	var budgetStatus *budgetStatusResponse
	if dashboard.BudgetStatus != nil {
		status := toBudgetStatusResponse(*dashboard.BudgetStatus)
		budgetStatus = &status
	}

	writeData(w, http.StatusOK, dashboardResponse{
		TodayTotal:           dashboard.TodayTotal,
		WeekTotal:            dashboard.WeekTotal,
		MonthTotal:           dashboard.MonthTotal,
		TopCategories:        dashboard.TopCategories,
		RecentExpenses:       recent,
		BudgetStatus:         budgetStatus,
		AverageDailySpending: dashboard.AverageDailySpending,
	})
}

func (h *Handlers) DailyStatistics(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	query := r.URL.Query()
	from, err := parseDateRequired(query.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	to, err := parseDateRequired(query.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	rows, err := h.Stats.Daily(r.Context(), account.ID, statsdomain.DailyFilter{From: from, To: to})
	if err != nil {
		h.log.InternalError("stats.daily: compute failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeData(w, http.StatusOK, rows)
}

func (h *Handlers) MonthlyStatistics(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	months, err := parseIntParam(r.URL.Query().Get("months"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid months")
		return
	}

	rows, err := h.Stats.Monthly(r.Context(), account.ID, months)
	if err != nil {
		h.log.InternalError("stats.monthly: compute failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeData(w, http.StatusOK, rows)
}

func (h *Handlers) CategoryStatistics(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	query := r.URL.Query()
	from, err := parseDateParam(query.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	to, err := parseDateParam(query.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	rows, err := h.Stats.ByCategory(r.Context(), account.ID, statsdomain.CategoryFilter{From: from, To: to})
	if err != nil {
		h.log.InternalError("stats.category: compute failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeData(w, http.StatusOK, rows)
}
