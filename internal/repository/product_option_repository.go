package repository

import (
	"errors"

	"github.com/tshirt-admin/internal/models"

	"gorm.io/gorm"
)

// ProductOptionRepository 상품 옵션 데이터 접근 인터페이스
type ProductOptionRepository interface {
	ListByProduct(productID uint, onlyActive bool) ([]models.ProductOption, error)
	GetByID(id uint) (*models.ProductOption, error)
	ListByIDs(ids []uint) ([]models.ProductOption, error)
	Create(option *models.ProductOption) error
	CreateBatch(options []models.ProductOption) error
	Update(option *models.ProductOption) error
	Delete(id uint) error
	DeleteByProduct(productID uint) error
	DecreaseStock(optionID uint, quantity int) (int64, error)
	IncreaseStock(optionID uint, quantity int) (int64, error)
	ListLowStock(threshold int) ([]models.ProductOption, error)
	WithTx(tx *gorm.DB) ProductOptionRepository
}

// GormProductOptionRepository GORM 구현
type GormProductOptionRepository struct {
	db *gorm.DB
}

// NewProductOptionRepository 옵션 저장소 생성
func NewProductOptionRepository(db *gorm.DB) *GormProductOptionRepository {
	return &GormProductOptionRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormProductOptionRepository) WithTx(tx *gorm.DB) ProductOptionRepository {
	if tx == nil {
		return r
	}
	return &GormProductOptionRepository{db: tx}
}

// ListByProduct 상품별 옵션 목록 조회
func (r *GormProductOptionRepository) ListByProduct(productID uint, onlyActive bool) ([]models.ProductOption, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	query := r.db.Model(&models.ProductOption{}).Where("product_id = ?", productID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var options []models.ProductOption
	if err := query.Order("sort_order DESC, id ASC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// GetByID ID로 옵션 조회
func (r *GormProductOptionRepository) GetByID(id uint) (*models.ProductOption, error) {
	if id == 0 {
		return nil, errors.New("invalid option id")
	}
	var option models.ProductOption
	if err := r.db.Preload("Product").First(&option, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

// ListByIDs 옵션 일괄 조회
func (r *GormProductOptionRepository) ListByIDs(ids []uint) ([]models.ProductOption, error) {
	if len(ids) == 0 {
		return []models.ProductOption{}, nil
	}
	var options []models.ProductOption
	if err := r.db.Preload("Product").Where("id IN ?", ids).Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// Create 옵션 생성
func (r *GormProductOptionRepository) Create(option *models.ProductOption) error {
	if option == nil {
		return errors.New("option is nil")
	}
	return r.db.Create(option).Error
}

// CreateBatch 옵션 일괄 생성
func (r *GormProductOptionRepository) CreateBatch(options []models.ProductOption) error {
	if len(options) == 0 {
		return nil
	}
	return r.db.Create(&options).Error
}

// Update 옵션 갱신
func (r *GormProductOptionRepository) Update(option *models.ProductOption) error {
	if option == nil {
		return errors.New("option is nil")
	}
	return r.db.Save(option).Error
}

// Delete 옵션 삭제 (소프트 삭제)
func (r *GormProductOptionRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.ProductOption{}, id).Error
}

// DeleteByProduct 상품 하위 옵션 전체 삭제
func (r *GormProductOptionRepository) DeleteByProduct(productID uint) error {
	if productID == 0 {
		return errors.New("invalid product id")
	}
	return r.db.Where("product_id = ?", productID).Delete(&models.ProductOption{}).Error
}

// DecreaseStock 재고 차감 (추적 중이고 잔량이 충분할 때만 1행 갱신)
func (r *GormProductOptionRepository) DecreaseStock(optionID uint, quantity int) (int64, error) {
	if optionID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrease params")
	}
	result := r.db.Model(&models.ProductOption{}).
		Where("id = ? AND track_inventory = ? AND stock_quantity IS NOT NULL AND stock_quantity >= ?",
			optionID, true, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncreaseStock 재고 복원 (무제한 옵션은 NULL 유지)
func (r *GormProductOptionRepository) IncreaseStock(optionID uint, quantity int) (int64, error) {
	if optionID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock increase params")
	}
	result := r.db.Model(&models.ProductOption{}).
		Where("id = ? AND track_inventory = ? AND stock_quantity IS NOT NULL", optionID, true).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListLowStock 재고 부족 옵션 목록 (추적 중이면서 잔량이 기준 이하)
func (r *GormProductOptionRepository) ListLowStock(threshold int) ([]models.ProductOption, error) {
	if threshold < 0 {
		threshold = 0
	}
	var options []models.ProductOption
	err := r.db.Preload("Product").
		Where("track_inventory = ? AND stock_quantity IS NOT NULL AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity ASC, id ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}
