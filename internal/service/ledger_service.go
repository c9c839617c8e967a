package service

import (
	"strings"
	"time"

	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"

	"github.com/shopspring/decimal"
)

// LedgerService 지출/매입 장부 서비스
type LedgerService struct {
	expenseRepo  repository.ExpenseRepository
	purchaseRepo repository.PurchaseRepository
}

// NewLedgerService 장부 서비스 생성
func NewLedgerService(expenseRepo repository.ExpenseRepository, purchaseRepo repository.PurchaseRepository) *LedgerService {
	return &LedgerService{
		expenseRepo:  expenseRepo,
		purchaseRepo: purchaseRepo,
	}
}

// ExpenseInput 지출 입력
type ExpenseInput struct {
	ExpenseDate time.Time
	Category    string
	Description string
	Amount      int64
	Quantity    int
}

// PurchaseInput 매입 입력
type PurchaseInput struct {
	PurchaseDate time.Time
	Category     string
	ItemName     string
	Quantity     int
	UnitCost     int64
}

// ListExpenses 지출 목록 조회
func (s *LedgerService) ListExpenses(filter repository.LedgerListFilter) ([]models.Expense, int64, error) {
	return s.expenseRepo.List(filter)
}

// CreateExpense 지출 등록
func (s *LedgerService) CreateExpense(input ExpenseInput) (*models.Expense, error) {
	expense, err := buildExpense(input)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense 지출 수정
func (s *LedgerService) UpdateExpense(id uint, input ExpenseInput) (*models.Expense, error) {
	existing, err := s.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	updated, err := buildExpense(input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.expenseRepo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteExpense 지출 삭제
func (s *LedgerService) DeleteExpense(id uint) error {
	existing, err := s.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.expenseRepo.Delete(id)
}

// ListPurchases 매입 목록 조회
func (s *LedgerService) ListPurchases(filter repository.LedgerListFilter) ([]models.Purchase, int64, error) {
	return s.purchaseRepo.List(filter)
}

// CreatePurchase 매입 등록
func (s *LedgerService) CreatePurchase(input PurchaseInput) (*models.Purchase, error) {
	purchase, err := buildPurchase(input)
	if err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// UpdatePurchase 매입 수정
func (s *LedgerService) UpdatePurchase(id uint, input PurchaseInput) (*models.Purchase, error) {
	existing, err := s.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	updated, err := buildPurchase(input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.purchaseRepo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePurchase 매입 삭제
func (s *LedgerService) DeletePurchase(id uint) error {
	existing, err := s.purchaseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.purchaseRepo.Delete(id)
}

func buildExpense(input ExpenseInput) (*models.Expense, error) {
	category := strings.ToUpper(strings.TrimSpace(input.Category))
	if !constants.IsValidExpenseCategory(category) {
		return nil, ErrInvalidCategory
	}
	if input.Amount < 0 {
		return nil, ErrInvalidAmount
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if input.ExpenseDate.IsZero() {
		return nil, ErrInvalidPeriod
	}
	return &models.Expense{
		ExpenseDate: input.ExpenseDate,
		Category:    category,
		Description: strings.TrimSpace(input.Description),
		Amount:      models.NewMoneyFromInt(input.Amount),
		Quantity:    quantity,
	}, nil
}

func buildPurchase(input PurchaseInput) (*models.Purchase, error) {
	category := strings.ToUpper(strings.TrimSpace(input.Category))
	if !constants.IsValidPurchaseCategory(category) {
		return nil, ErrInvalidCategory
	}
	if input.UnitCost < 0 {
		return nil, ErrInvalidAmount
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if input.PurchaseDate.IsZero() {
		return nil, ErrInvalidPeriod
	}
	unitCost := models.NewMoneyFromInt(input.UnitCost)
	total := models.NewMoneyFromDecimal(unitCost.Mul(decimal.NewFromInt(int64(quantity))))
	return &models.Purchase{
		PurchaseDate: input.PurchaseDate,
		Category:     category,
		ItemName:     strings.TrimSpace(input.ItemName),
		Quantity:     quantity,
		UnitCost:     unitCost,
		TotalAmount:  total,
	}, nil
}
