package cmd

import (
	"fmt"

	"github.com/frahmantamala/finance-tracker/internal"
	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	lendborrowDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/lendborrow"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const driverSQLite = "sqlite"

// initDB opens the ledger database through gorm and shares its pool with sqlx.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	var dialector gorm.Dialector
	sqlxDriver := "pgx"
	if cfg.Driver == driverSQLite {
		dialector = sqlite.Open(cfg.GetDSN())
		sqlxDriver = "sqlite3"
	} else {
		dialector = postgres.Open(cfg.GetDSN())
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gdb, sqlx.NewDb(sqlDB, sqlxDriver), nil
}

// autoMigrate creates the schema for sqlite databases, which goose migrations do not target.
func autoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&userDatamodel.User{},
		&expenseDatamodel.Expense{},
		&lendborrowDatamodel.LendBorrow{},
	)
}
