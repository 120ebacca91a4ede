package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/auth"
	"github.com/frahmantamala/finance-tracker/internal/category"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	"github.com/frahmantamala/finance-tracker/internal/ingestion"
	"github.com/frahmantamala/finance-tracker/internal/lendborrow"
	"github.com/frahmantamala/finance-tracker/internal/summary"
	"github.com/frahmantamala/finance-tracker/internal/transport/middleware"
	"github.com/frahmantamala/finance-tracker/internal/transport/swagger"
	"github.com/frahmantamala/finance-tracker/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Expense    *expense.Handler
	LendBorrow *lendborrow.Handler
	Summary    *summary.Handler
	Category   *category.Handler
	Ingestion  *ingestion.Handler
}

type RouterOptions struct {
	AllowedOrigins string
	OpenAPIPath    string
	TokenValidator middleware.TokenValidator
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, opts RouterOptions, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	if opts.OpenAPIPath != "" {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, opts.OpenAPIPath)
		})
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", h.Auth.Register)
				sr.Post("/login", h.Auth.Login)
			})
		}

		if opts.TokenValidator == nil {
			return
		}

		r.Group(func(pr chi.Router) {
			pr.Use(middleware.Authenticate(opts.TokenValidator))

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
			}

			if h.Expense != nil {
				pr.Route("/expenses", func(er chi.Router) {
					er.Post("/", h.Expense.CreateExpense)
					er.Get("/", h.Expense.ListExpenses)
					er.Get("/{id}", h.Expense.GetExpense)
					er.Patch("/{id}", h.Expense.UpdateExpense)
					er.Delete("/{id}", h.Expense.DeleteExpense)
				})
			}

			if h.LendBorrow != nil {
				pr.Route("/lend-borrow", func(lr chi.Router) {
					lr.Get("/", h.LendBorrow.ListRecords)
					lr.Post("/", h.LendBorrow.CreateRecord)
					lr.Patch("/{id}", h.LendBorrow.UpdateStatus)
					lr.Delete("/{id}", h.LendBorrow.DeleteRecord)
				})
			}

			if h.Summary != nil {
				pr.Get("/summary/totals", h.Summary.GetTotals)
				pr.Get("/summary/chart", h.Summary.GetChart)
			}

			if h.Category != nil {
				pr.Get("/categories", h.Category.GetCategories)
			}

			if h.Ingestion != nil {
				pr.Post("/bills", h.Ingestion.UploadBill)
			}
		})
	})
}
