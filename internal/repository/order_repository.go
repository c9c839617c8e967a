package repository

import (
	"errors"

	"github.com/tshirt-admin/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 주문 데이터 접근 인터페이스
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByExternalID(externalOrderID string) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	ListByIDs(ids []uint, withItems bool) ([]models.Order, error)
	Update(order *models.Order) error
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	UpdateStatusBulk(ids []uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error)
	CountByStatus() (map[string]int64, error)
	AddCompletionPhotos(photos []models.OrderCompletionPhoto) error
	MaxExternalIDWithPrefix(prefix string) (string, error)
	ListCustomerIDs(customerName string) ([]string, error)
	ListCustomerIDsByNamePhone(customerName, customerPhone string) ([]string, error)
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 구현
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 주문 저장소 생성
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 트랜잭션 바인딩
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 주문과 품목 생성
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID ID로 주문 조회
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	query := r.db.Preload("Items").Preload("CompletionPhotos")
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByExternalID 외부 주문번호로 조회
func (r *GormOrderRepository) GetByExternalID(externalOrderID string) (*models.Order, error) {
	var order models.Order
	query := r.db.Preload("Items").Preload("CompletionPhotos")
	if err := query.Where("external_order_id = ?", externalOrderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List 주문 목록 조회
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.ExternalOrderID != "" {
		query = query.Where("external_order_id = ?", filter.ExternalOrderID)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"customer_name", "external_order_id", "customer_id"})
		if argCount > 0 {
			query = query.Where(condition, repeatLikeArgs("%"+filter.Search+"%", argCount)...)
		}
	}
	if filter.PaymentFrom != nil {
		query = query.Where("payment_date >= ?", *filter.PaymentFrom)
	}
	if filter.PaymentTo != nil {
		query = query.Where("payment_date < ?", *filter.PaymentTo)
	}
	if filter.UpdatedFrom != nil {
		query = query.Where("updated_at >= ?", *filter.UpdatedFrom)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date IS NOT NULL AND due_date < ?", *filter.DueBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if filter.WithItems {
		query = query.Preload("Items")
	}
	if filter.WithPhotos {
		query = query.Preload("CompletionPhotos")
	}
	if err := query.Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListByIDs ID 목록으로 주문 조회
func (r *GormOrderRepository) ListByIDs(ids []uint, withItems bool) ([]models.Order, error) {
	if len(ids) == 0 {
		return []models.Order{}, nil
	}
	query := r.db.Where("id IN ?", ids)
	if withItems {
		query = query.Preload("Items")
	}
	var orders []models.Order
	if err := query.Order("id asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Update 주문 전체 갱신
func (r *GormOrderRepository) Update(order *models.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	return r.db.Save(order).Error
}

// UpdateStatus 주문 상태 갱신
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateStatusBulk 동일 상태 주문 일괄 전이, 영향 행 수 반환
func (r *GormOrderRepository) UpdateStatusBulk(ids []uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	result := r.db.Model(&models.Order{}).
		Where("id IN ? AND status = ?", ids, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountByStatus 상태별 주문 건수 집계
func (r *GormOrderRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// AddCompletionPhotos 발송 완료 사진 일괄 저장
func (r *GormOrderRepository) AddCompletionPhotos(photos []models.OrderCompletionPhoto) error {
	if len(photos) == 0 {
		return nil
	}
	return r.db.Create(&photos).Error
}

// MaxExternalIDWithPrefix 접두어가 붙은 주문번호의 최댓값 조회 (수기 채번용)
func (r *GormOrderRepository) MaxExternalIDWithPrefix(prefix string) (string, error) {
	var row struct {
		ExternalOrderID string
	}
	operator := likeOperatorByDialect(dbDialectName(r.db))
	err := r.db.Model(&models.Order{}).
		Select("external_order_id").
		Where("external_order_id "+operator+" ?", prefix+"%").
		Order("external_order_id DESC").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.ExternalOrderID, nil
}

// ListCustomerIDs 동일 고객명으로 발급된 고객 식별자 목록 조회
func (r *GormOrderRepository) ListCustomerIDs(customerName string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Order{}).
		Distinct("customer_id").
		Where("customer_name = ? AND customer_id <> ''", customerName).
		Pluck("customer_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListCustomerIDsByNamePhone 이름+연락처가 일치하는 기존 고객 식별자 목록 조회
func (r *GormOrderRepository) ListCustomerIDsByNamePhone(customerName, customerPhone string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Order{}).
		Distinct("customer_id").
		Where("customer_name = ? AND customer_phone = ? AND customer_id <> ''", customerName, customerPhone).
		Pluck("customer_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
