package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupLedgerServiceTest(t *testing.T) (*LedgerService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:ledger_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Expense{}, &models.Purchase{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewLedgerService(repository.NewExpenseRepository(db), repository.NewPurchaseRepository(db)), db
}

func TestCreateExpenseValidation(t *testing.T) {
	svc, _ := setupLedgerServiceTest(t)

	if _, err := svc.CreateExpense(ExpenseInput{
		ExpenseDate: time.Now(),
		Category:    "NOT_A_CATEGORY",
		Amount:      1000,
	}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if _, err := svc.CreateExpense(ExpenseInput{
		ExpenseDate: time.Now(),
		Category:    constants.ExpenseCategoryShipping,
		Amount:      -100,
	}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.CreateExpense(ExpenseInput{
		Category: constants.ExpenseCategoryShipping,
		Amount:   1000,
	}); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod for zero date, got %v", err)
	}
}

func TestCreateExpenseNormalizesInput(t *testing.T) {
	svc, _ := setupLedgerServiceTest(t)

	// 소문자 항목은 대문자로, 0 이하 수량은 1로 맞춘다
	expense, err := svc.CreateExpense(ExpenseInput{
		ExpenseDate: time.Now(),
		Category:    " shipping ",
		Description: "  택배 발송비  ",
		Amount:      3500,
		Quantity:    0,
	})
	if err != nil {
		t.Fatalf("CreateExpense error: %v", err)
	}
	if expense.Category != constants.ExpenseCategoryShipping {
		t.Fatalf("expected normalized category, got %q", expense.Category)
	}
	if expense.Description != "택배 발송비" {
		t.Fatalf("expected trimmed description, got %q", expense.Description)
	}
	if expense.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", expense.Quantity)
	}
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	svc, _ := setupLedgerServiceTest(t)

	created, err := svc.CreateExpense(ExpenseInput{
		ExpenseDate: time.Now(),
		Category:    constants.ExpenseCategoryAdvertising,
		Description: "키워드 광고",
		Amount:      50000,
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("CreateExpense error: %v", err)
	}

	updated, err := svc.UpdateExpense(created.ID, ExpenseInput{
		ExpenseDate: time.Now(),
		Category:    constants.ExpenseCategoryAdvertising,
		Description: "배너 광고",
		Amount:      70000,
		Quantity:    2,
	})
	if err != nil {
		t.Fatalf("UpdateExpense error: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update must keep id, got %d", updated.ID)
	}
	if updated.Description != "배너 광고" || updated.Quantity != 2 {
		t.Fatalf("unexpected updated expense: %+v", updated)
	}

	if _, err := svc.UpdateExpense(created.ID+100, ExpenseInput{
		ExpenseDate: time.Now(),
		Category:    constants.ExpenseCategoryAdvertising,
		Amount:      1000,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.DeleteExpense(created.ID); err != nil {
		t.Fatalf("DeleteExpense error: %v", err)
	}
	if err := svc.DeleteExpense(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreatePurchaseComputesTotal(t *testing.T) {
	svc, _ := setupLedgerServiceTest(t)

	purchase, err := svc.CreatePurchase(PurchaseInput{
		PurchaseDate: time.Now(),
		Category:     constants.PurchaseCategoryTShirt,
		ItemName:     "30수 반팔 화이트",
		Quantity:     50,
		UnitCost:     4500,
	})
	if err != nil {
		t.Fatalf("CreatePurchase error: %v", err)
	}
	if !purchase.TotalAmount.Equal(decimal.NewFromInt(225_000)) {
		t.Fatalf("expected total 225000, got %s", purchase.TotalAmount.String())
	}

	if _, err := svc.CreatePurchase(PurchaseInput{
		PurchaseDate: time.Now(),
		Category:     "COFFEE",
		ItemName:     "원두",
		UnitCost:     10000,
	}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestListExpensesFilter(t *testing.T) {
	svc, db := setupLedgerServiceTest(t)
	base := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)
	expenses := []models.Expense{
		{ExpenseDate: base, Category: constants.ExpenseCategoryShipping, Amount: models.NewMoneyFromInt(3500), Quantity: 1},
		{ExpenseDate: base.AddDate(0, 0, 5), Category: constants.ExpenseCategoryRent, Amount: models.NewMoneyFromInt(500_000), Quantity: 1},
		{ExpenseDate: base.AddDate(0, 2, 0), Category: constants.ExpenseCategoryShipping, Amount: models.NewMoneyFromInt(4000), Quantity: 1},
	}
	for i := range expenses {
		if err := db.Create(&expenses[i]).Error; err != nil {
			t.Fatalf("create expense failed: %v", err)
		}
	}

	to := base.AddDate(0, 1, 0)
	list, total, err := svc.ListExpenses(repository.LedgerListFilter{
		Page:     1,
		PageSize: 10,
		Category: constants.ExpenseCategoryShipping,
		From:     &base,
		To:       &to,
	})
	if err != nil {
		t.Fatalf("ListExpenses error: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected 1 expense in period, got total=%d len=%d", total, len(list))
	}
}
