package repository

import (
	"time"

	"github.com/tshirt-admin/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinanceRepository 손익 집계 조회 인터페이스
// 집계 수치만 반환하고 업무 규칙은 서비스 계층에서 처리한다.
type FinanceRepository interface {
	SumOrders(statuses []string, from, to *time.Time) (OrderAggregateRow, error)
	SumOrdersByMonth(statuses []string, from, to *time.Time) ([]MonthlyAggregateRow, error)
}

// OrderAggregateRow 주문 집계 결과
type OrderAggregateRow struct {
	OrderCount   int64           // 주문 건수
	Revenue      decimal.Decimal // 주문 총액 합계 (배송비 포함)
	ShippingCost decimal.Decimal // 배송비 합계
	ItemsCost    decimal.Decimal // 품목 원가 합계
}

// MonthlyAggregateRow 월별 주문 집계 결과
type MonthlyAggregateRow struct {
	Month      string // YYYY-MM
	OrderCount int64
	Revenue    decimal.Decimal
}

// GormFinanceRepository GORM 집계 구현
type GormFinanceRepository struct {
	db *gorm.DB
}

// NewFinanceRepository 손익 집계 저장소 생성
func NewFinanceRepository(db *gorm.DB) *GormFinanceRepository {
	return &GormFinanceRepository{db: db}
}

func (r *GormFinanceRepository) orderBase(statuses []string, from, to *time.Time) *gorm.DB {
	query := r.db.Model(&models.Order{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if from != nil {
		query = query.Where("payment_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("payment_date < ?", *to)
	}
	return query
}

// SumOrders 상태/기간 조건의 주문 합계 집계
func (r *GormFinanceRepository) SumOrders(statuses []string, from, to *time.Time) (OrderAggregateRow, error) {
	result := OrderAggregateRow{}

	var orderRow struct {
		OrderCount   int64
		Revenue      decimal.Decimal
		ShippingCost decimal.Decimal
	}
	if err := r.orderBase(statuses, from, to).
		Select("COUNT(*) AS order_count, COALESCE(SUM(total_order_amount), 0) AS revenue, COALESCE(SUM(shipping_cost), 0) AS shipping_cost").
		Take(&orderRow).Error; err != nil {
		return result, err
	}
	result.OrderCount = orderRow.OrderCount
	result.Revenue = orderRow.Revenue
	result.ShippingCost = orderRow.ShippingCost

	// 품목 원가는 order_items 조인으로 합산
	itemQuery := r.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL")
	if len(statuses) > 0 {
		itemQuery = itemQuery.Where("orders.status IN ?", statuses)
	}
	if from != nil {
		itemQuery = itemQuery.Where("orders.payment_date >= ?", *from)
	}
	if to != nil {
		itemQuery = itemQuery.Where("orders.payment_date < ?", *to)
	}
	var itemRow struct {
		ItemsCost decimal.Decimal
	}
	if err := itemQuery.
		Select("COALESCE(SUM(order_items.unit_cost * order_items.quantity), 0) AS items_cost").
		Take(&itemRow).Error; err != nil {
		return result, err
	}
	result.ItemsCost = itemRow.ItemsCost

	return result, nil
}

// SumOrdersByMonth 결제일 기준 월별 매출 집계
func (r *GormFinanceRepository) SumOrdersByMonth(statuses []string, from, to *time.Time) ([]MonthlyAggregateRow, error) {
	monthExpr := "strftime('%Y-%m', payment_date)"
	if dbDialectName(r.db) == "postgres" || dbDialectName(r.db) == "postgresql" {
		monthExpr = "to_char(payment_date, 'YYYY-MM')"
	}

	var rows []MonthlyAggregateRow
	err := r.orderBase(statuses, from, to).
		Where("payment_date IS NOT NULL").
		Select(monthExpr + " AS month, COUNT(*) AS order_count, COALESCE(SUM(total_order_amount), 0) AS revenue").
		Group(monthExpr).
		Order("month ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
