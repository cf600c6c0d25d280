package httpserver

import (
	"net/http"
	"time"

	"expense-tracker-go/internal/config"
	"expense-tracker-go/internal/transport/httpserver/handler"
	authmw "expense-tracker-go/internal/transport/httpserver/middleware"
	"expense-tracker-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, users authmw.UserResolver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORS.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)

		auth := authmw.NewTokenAuth(users, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/auth/logout", handlers.Logout)
			r.Get("/auth/me", handlers.AuthMe)
			r.Put("/users/me", handlers.UpdateProfile)
			r.Put("/users/me/password", handlers.ChangePassword)

			r.Get("/categories", handlers.ListCategories)
			r.Post("/categories", handlers.CreateCategory)
			r.Get("/categories/{id}", handlers.GetCategory)
			r.Patch("/categories/{id}", handlers.UpdateCategory)
			r.Delete("/categories/{id}", handlers.DeleteCategory)

			r.Get("/expenses", handlers.ListExpenses)
			r.Post("/expenses", handlers.CreateExpense)
			r.Get("/expenses/recent", handlers.RecentExpenses)
			r.Get("/expenses/{id}", handlers.GetExpense)
			r.Put("/expenses/{id}", handlers.UpdateExpense)
			r.Delete("/expenses/{id}", handlers.DeleteExpense)

			r.Get("/budgets", handlers.ListBudgets)
			r.Post("/budgets", handlers.CreateBudget)
			r.Get("/budgets/current", handlers.CurrentBudget)
			r.Get("/budgets/{id}", handlers.GetBudget)
			r.Get("/budgets/{id}/status", handlers.BudgetStatus)
			r.Put("/budgets/{id}", handlers.UpdateBudget)
			r.Delete("/budgets/{id}", handlers.DeleteBudget)

			r.Get("/statistics/dashboard", handlers.Dashboard)
			r.Get("/statistics/daily", handlers.DailyStatistics)
			r.Get("/statistics/monthly", handlers.MonthlyStatistics)
			r.Get("/statistics/category", handlers.CategoryStatistics)
		})
	})

	return r
}
