package handler

import (
	"net/http"

	budgetsdomain "expense-tracker-go/internal/domain/budgets"
	categoriesdomain "expense-tracker-go/internal/domain/categories"
	expensesdomain "expense-tracker-go/internal/domain/expenses"
	statsdomain "expense-tracker-go/internal/domain/stats"
	userdomain "expense-tracker-go/internal/domain/user"
	"expense-tracker-go/pkg/logger"
)

type Handlers struct {
	Users      *userdomain.Service
	Categories *categoriesdomain.Service
	Expenses   *expensesdomain.Service
	Budgets    *budgetsdomain.Service
	Stats      *statsdomain.Service
	log        logger.Logger
}

func New(
	users *userdomain.Service,
	categories *categoriesdomain.Service,
	expenses *expensesdomain.Service,
	budgets *budgetsdomain.Service,
	stats *statsdomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Users:      users,
		Categories: categories,
		Expenses:   expenses,
		Budgets:    budgets,
		Stats:      stats,
		log:        log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
