package repository

import (
	"errors"
	"time"

	"github.com/tshirt-admin/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseRepository 매입 데이터 접근 인터페이스
type PurchaseRepository interface {
	List(filter LedgerListFilter) ([]models.Purchase, int64, error)
	GetByID(id uint) (*models.Purchase, error)
	Create(purchase *models.Purchase) error
	Update(purchase *models.Purchase) error
	Delete(id uint) error
	SumByPeriod(from, to *time.Time) (decimal.Decimal, error)
	SumByCategory(from, to *time.Time) (map[string]decimal.Decimal, error)
}

// GormPurchaseRepository GORM 구현
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 매입 저장소 생성
func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

func (r *GormPurchaseRepository) applyPeriod(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("purchase_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("purchase_date < ?", *to)
	}
	return query
}

// List 매입 목록 조회
func (r *GormPurchaseRepository) List(filter LedgerListFilter) ([]models.Purchase, int64, error) {
	var purchases []models.Purchase
	query := r.db.Model(&models.Purchase{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	query = r.applyPeriod(query, filter.From, filter.To)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("purchase_date DESC, id DESC").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// GetByID ID로 매입 조회
func (r *GormPurchaseRepository) GetByID(id uint) (*models.Purchase, error) {
	if id == 0 {
		return nil, errors.New("invalid purchase id")
	}
	var purchase models.Purchase
	if err := r.db.First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// Create 매입 생성
func (r *GormPurchaseRepository) Create(purchase *models.Purchase) error {
	if purchase == nil {
		return errors.New("purchase is nil")
	}
	return r.db.Create(purchase).Error
}

// Update 매입 갱신
func (r *GormPurchaseRepository) Update(purchase *models.Purchase) error {
	if purchase == nil {
		return errors.New("purchase is nil")
	}
	return r.db.Save(purchase).Error
}

// Delete 매입 삭제 (소프트 삭제)
func (r *GormPurchaseRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Purchase{}, id).Error
}

// SumByPeriod 기간 내 매입 합계
func (r *GormPurchaseRepository) SumByPeriod(from, to *time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	query := r.db.Model(&models.Purchase{}).Select("COALESCE(SUM(total_amount), 0) AS total")
	query = r.applyPeriod(query, from, to)
	if err := query.Take(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// SumByCategory 기간 내 항목별 매입 합계
func (r *GormPurchaseRepository) SumByCategory(from, to *time.Time) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Category string
		Total    decimal.Decimal
	}
	query := r.db.Model(&models.Purchase{}).Select("category, COALESCE(SUM(total_amount), 0) AS total").Group("category")
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
