package repository

import (
	"errors"
	"time"

	"github.com/tshirt-admin/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseRepository 지출 데이터 접근 인터페이스
type ExpenseRepository interface {
	List(filter LedgerListFilter) ([]models.Expense, int64, error)
	GetByID(id uint) (*models.Expense, error)
	Create(expense *models.Expense) error
	Update(expense *models.Expense) error
	Delete(id uint) error
	SumByPeriod(from, to *time.Time) (decimal.Decimal, error)
	SumByCategory(from, to *time.Time) (map[string]decimal.Decimal, error)
}

// GormExpenseRepository GORM 구현
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository 지출 저장소 생성
func NewExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) applyPeriod(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("expense_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("expense_date < ?", *to)
	}
	return query
}

// List 지출 목록 조회
func (r *GormExpenseRepository) List(filter LedgerListFilter) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	query := r.db.Model(&models.Expense{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	query = r.applyPeriod(query, filter.From, filter.To)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("expense_date DESC, id DESC").Find(&expenses).Error; err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// GetByID ID로 지출 조회
func (r *GormExpenseRepository) GetByID(id uint) (*models.Expense, error) {
	if id == 0 {
		return nil, errors.New("invalid expense id")
	}
	var expense models.Expense
	if err := r.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

// Create 지출 생성
func (r *GormExpenseRepository) Create(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense is nil")
	}
	return r.db.Create(expense).Error
}

// Update 지출 갱신
func (r *GormExpenseRepository) Update(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense is nil")
	}
	return r.db.Save(expense).Error
}

// Delete 지출 삭제 (소프트 삭제)
func (r *GormExpenseRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Expense{}, id).Error
}

// SumByPeriod 기간 내 지출 합계
func (r *GormExpenseRepository) SumByPeriod(from, to *time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	query := r.db.Model(&models.Expense{}).Select("COALESCE(SUM(amount * quantity), 0) AS total")
	query = r.applyPeriod(query, from, to)
	if err := query.Take(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SumByCategory 기간 내 항목별 지출 합계
func (r *GormExpenseRepository) SumByCategory(from, to *time.Time) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Category string
		Total    decimal.Decimal
	}
	query := r.db.Model(&models.Expense{}).Select("category, COALESCE(SUM(amount * quantity), 0) AS total").Group("category")
	query = r.applyPeriod(query, from, to)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.Category] = row.Total
	}
	return sums, nil
}
