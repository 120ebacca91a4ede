package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	expenseDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/expense"
	lendborrowDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/lendborrow"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-tracker/internal/expense"
	"github.com/frahmantamala/finance-tracker/internal/lendborrow"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoUsername = "demo"
	demoPassword = "password123"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		gdb, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if cfg.Database.Driver == driverSQLite {
			if err := autoMigrate(gdb); err != nil {
				log.Fatalf("failed to migrate sqlite schema: %v", err)
			}
		}

		ctx := context.Background()

		var demo userDatamodel.User
		err = gdb.WithContext(ctx).Where("username = ?", demoUsername).First(&demo).Error
		switch {
		case err == nil:
			fmt.Println("demo user already exists:", demoUsername)
		case errors.Is(err, gorm.ErrRecordNotFound):
			hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash password: %v", err)
			}
			demo = userDatamodel.User{Username: demoUsername, PasswordHash: string(hash), IsActive: true}
			if err := gdb.WithContext(ctx).Create(&demo).Error; err != nil {
				log.Fatalf("failed to insert demo user: %v", err)
			}
			fmt.Println("Seeded demo user:", demoUsername)
		default:
			log.Fatalf("failed to look up demo user: %v", err)
		}

		if clearData {
			if err := gdb.WithContext(ctx).Where("user_id = ?", demo.ID).Delete(&expenseDatamodel.Expense{}).Error; err != nil {
				log.Fatalf("failed to clear expenses: %v", err)
			}
			if err := gdb.WithContext(ctx).Where("user_id = ?", demo.ID).Delete(&lendborrowDatamodel.LendBorrow{}).Error; err != nil {
				log.Fatalf("failed to clear lend/borrow records: %v", err)
			}
			fmt.Println("Cleared demo ledger")
		}

		now := time.Now().UTC()
		month := func(offset int, day int) time.Time {
			return time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC).AddDate(0, -offset, 0)
		}

		expenses := []expenseDatamodel.Expense{
			{ItemName: "Monthly Salary", Kind: expense.KindIncome, Amount: decimal.NewFromInt(50000), Category: "Salary", Date: month(2, 1)},
			{ItemName: "Groceries", Kind: expense.KindExpense, Amount: decimal.RequireFromString("2450.50"), Category: "Food", Date: month(2, 6)},
			{ItemName: "Electricity", Kind: expense.KindExpense, Amount: decimal.NewFromInt(1800), Category: "Bills", Date: month(2, 12)},
			{ItemName: "Monthly Salary", Kind: expense.KindIncome, Amount: decimal.NewFromInt(50000), Category: "Salary", Date: month(0, 1)},
			{ItemName: "Logo design", Kind: expense.KindIncome, Amount: decimal.NewFromInt(7500), Category: "Freelance", Date: month(0, 3)},
			{ItemName: "Train tickets", Kind: expense.KindExpense, Amount: decimal.NewFromInt(1200), Category: "Travel", Date: month(0, 4)},
		}
		for i := range expenses {
			expenses[i].UserID = demo.ID
		}

		var count int64
		if err := gdb.WithContext(ctx).Model(&expenseDatamodel.Expense{}).Where("user_id = ?", demo.ID).Count(&count).Error; err != nil {
			log.Fatalf("failed to count expenses: %v", err)
		}
		if count == 0 {
			if err := gdb.WithContext(ctx).Create(&expenses).Error; err != nil {
				log.Fatalf("failed to insert expenses: %v", err)
			}
			fmt.Printf("Seeded %d ledger entries\n", len(expenses))
		}

		due := month(-1, 15)
		records := []lendborrowDatamodel.LendBorrow{
			{UserID: demo.ID, Person: "Ravi", Kind: lendborrow.KindLent, Amount: decimal.NewFromInt(2000), Date: month(0, 2), DueDate: &due, Reason: "Concert tickets", Status: lendborrow.StatusPending},
			{UserID: demo.ID, Person: "Anita", Kind: lendborrow.KindBorrowed, Amount: decimal.NewFromInt(500), Date: month(1, 20), Reason: "Lunch", Status: lendborrow.StatusSettled},
		}

		if err := gdb.WithContext(ctx).Model(&lendborrowDatamodel.LendBorrow{}).Where("user_id = ?", demo.ID).Count(&count).Error; err != nil {
			log.Fatalf("failed to count lend/borrow records: %v", err)
		}
		if count == 0 {
			if err := gdb.WithContext(ctx).Create(&records).Error; err != nil {
				log.Fatalf("failed to insert lend/borrow records: %v", err)
			}
			fmt.Printf("Seeded %d lend/borrow records\n", len(records))
		}

		fmt.Println("Seeding complete")
	},
}
