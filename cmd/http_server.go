package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	expensePostgres "github.com/frahmantamala/finance-tracker/internal/expense/postgres"
	"github.com/frahmantamala/finance-tracker/internal/ingestion"
	"github.com/frahmantamala/finance-tracker/internal/lendborrow"
	lendborrowPostgres "github.com/frahmantamala/finance-tracker/internal/lendborrow/postgres"
	"github.com/frahmantamala/finance-tracker/internal/llm"
	"github.com/frahmantamala/finance-tracker/internal/ocr"
	"github.com/frahmantamala/finance-tracker/internal/summary"
	summaryPostgres "github.com/frahmantamala/finance-tracker/internal/summary/postgres"
	"github.com/frahmantamala/finance-tracker/internal/transport/rest"
	"github.com/frahmantamala/finance-tracker/internal/user"
	userPostgres "github.com/frahmantamala/finance-tracker/internal/user/postgres"
	"github.com/frahmantamala/finance-tracker/pkg/logger"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	GormDB   *gorm.DB
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Auth     *auth.Service
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	openAPIPath := deps.Config.Server.OpenAPIPath
	if err := loadAPIDocument(openAPIPath); err != nil {
		deps.Logger.Warn("API document unavailable, swagger disabled", "path", openAPIPath, "error", err)
		openAPIPath = ""
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, rest.RouterOptions{
		AllowedOrigins: deps.Config.Server.AllowedOrigins,
		OpenAPIPath:    openAPIPath,
		TokenValidator: deps.Auth,
	}, deps.Logger)
}

// loadAPIDocument makes sure the served OpenAPI document parses and is valid.
func loadAPIDocument(path string) error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return err
	}
	return doc.Validate(loader.Context)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.Configure(os.Stdout, config.Observability.Logging.Level, config.Observability.Logging.Format)

	gdb, db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if config.Database.Driver == driverSQLite {
		if err := autoMigrate(gdb); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}

	userRepo := userPostgres.NewUserRepository(gdb)
	userService := user.NewService(userRepo)
	authService := auth.NewService(
		userRepo,
		auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenDuration),
		config.Security.BCryptCost,
		lg,
	)

	expenseService := expense.NewService(expensePostgres.NewExpenseRepository(gdb), lg)
	lendBorrowService := lendborrow.NewService(lendborrowPostgres.NewLendBorrowRepository(gdb), lg)
	summaryService := summary.NewService(summaryPostgres.NewSummaryRepository(db), lg)
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(gdb), lg)

	pipeline, err := initPipeline(config, expenseService, lg)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Config: config,
		GormDB: gdb,
		DB:     db,
		Router: chi.NewRouter(),
		Handlers: rest.Handlers{
			Auth:       auth.NewHandler(authService),
			User:       user.NewHandler(userService),
			Expense:    expense.NewHandler(expenseService),
			LendBorrow: lendborrow.NewHandler(lendBorrowService),
			Summary:    summary.NewHandler(summaryService),
			Category:   category.NewHandler(categoryService),
			Ingestion:  ingestion.NewHandler(pipeline, config.Server.MaxUploadBytes),
		},
		Auth:   authService,
		Logger: lg,
	}, nil
}

func initPipeline(config *internal.Config, ledger ingestion.Ledger, lg *slog.Logger) (*ingestion.Pipeline, error) {
	recognizer, err := ocr.New(config.Recognizer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize text recognition: %w", err)
	}

	// without a key every pair is labelled with the fallback category
	var completer ingestion.Completer
	if config.Categorizer.APIKey != "" {
		gemini, err := llm.NewGeminiCompleter(context.Background(), llm.GeminiConfig{
			APIKey: config.Categorizer.APIKey,
			Model:  config.Categorizer.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize categorizer: %w", err)
		}
		completer = gemini
	} else {
		lg.Warn("categorizer api key not set, scanned items will use the fallback category")
	}

	categorizer := ingestion.NewCategorizer(completer, ingestion.CategorizerOptions{
		Completion: ingestion.CompletionOptions{
			Temperature:     *config.Categorizer.Temperature,
			TopP:            *config.Categorizer.TopP,
			TopK:            *config.Categorizer.TopK,
			MaxOutputTokens: config.Categorizer.MaxOutputTokens,
		},
		Timeout:     config.Categorizer.Timeout,
		MaxAttempts: config.Categorizer.MaxAttempts,
	}, lg)

	return ingestion.NewPipeline(recognizer, categorizer, ledger, ingestion.PipelineOptions{
		MaxWorkers:   config.Ingestion.MaxWorkers,
		BatchTimeout: config.Ingestion.BatchTimeout,
		Alignment:    ingestion.Alignment(config.Ingestion.Alignment),
		TempDir:      config.Ingestion.TempDir,
	}, lg), nil
}
