package app

import (
	"net/http"

	"expense-tracker-go/internal/config"
	"expense-tracker-go/internal/db"
	budgetsdomain "expense-tracker-go/internal/domain/budgets"
	categoriesdomain "expense-tracker-go/internal/domain/categories"
	expensesdomain "expense-tracker-go/internal/domain/expenses"
	statsdomain "expense-tracker-go/internal/domain/stats"
	userdomain "expense-tracker-go/internal/domain/user"
	budgetsrepo "expense-tracker-go/internal/repository/postgres/budgets"
	categoriesrepo "expense-tracker-go/internal/repository/postgres/categories"
	expensesrepo "expense-tracker-go/internal/repository/postgres/expenses"
	statsrepo "expense-tracker-go/internal/repository/postgres/stats"
	userrepo "expense-tracker-go/internal/repository/postgres/user"
	"expense-tracker-go/internal/transport/httpserver"
	"expense-tracker-go/internal/transport/httpserver/handler"
	"expense-tracker-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn), cfg.Auth.SessionTTL, cfg.Auth.BcryptCost)
	categories := categoriesdomain.NewService(categoriesrepo.NewPostgres(dbConn))
	expenses := expensesdomain.NewServiceWithLimits(
		expensesrepo.NewPostgres(dbConn),
		categories,
		expensesdomain.Limits{
			DefaultPageLimit: cfg.Pagination.DefaultLimit,
			MaxPageLimit:     cfg.Pagination.MaxLimit,
		},
	)
	budgets := budgetsdomain.NewService(budgetsrepo.NewPostgres(dbConn))
	stats := statsdomain.NewService(statsrepo.NewPostgres(dbConn), expenses, budgets)

	handlers := handler.New(users, categories, expenses, budgets, stats, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, users, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
