package service

import (
	"strings"
	"time"

	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"
)

// monthPeriod 연/월 조회 구간 계산 (month 0 이면 연 단위)
func monthPeriod(year, month int) (time.Time, time.Time, error) {
	if year < 2000 || year > 2100 {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	if month < 0 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	if month == 0 {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		return from, from.AddDate(1, 0, 0), nil
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return from, from.AddDate(0, 1, 0), nil
}

// GetOrder 주문 상세 조회 (품목/완료 사진 포함)
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByExternalID 외부 주문번호로 조회
func (s *OrderService) GetOrderByExternalID(externalOrderID string) (*models.Order, error) {
	externalOrderID = strings.TrimSpace(externalOrderID)
	if externalOrderID == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByExternalID(externalOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 주문 목록 조회
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// CountByStatus 상태별 주문 건수 (집계에 없는 상태는 0으로 채움)
func (s *OrderService) CountByStatus() (map[string]int64, error) {
	counts, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	for _, status := range constants.OrderStatuses {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}
	return counts, nil
}

// SettlementList 월별 정산 완료 주문 목록 (결제일 기준)
func (s *OrderService) SettlementList(year, month, page, pageSize int) ([]models.Order, int64, error) {
	from, to, err := monthPeriod(year, month)
	if err != nil {
		return nil, 0, err
	}
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      constants.OrderStatusSettled,
		PaymentFrom: &from,
		PaymentTo:   &to,
		WithItems:   true,
	}
	return s.orderRepo.List(filter)
}

// SalesStatus 월별 매출 현황 주문 목록 (제작 중 이후 상태, 결제일 기준)
func (s *OrderService) SalesStatus(year, month, page, pageSize int) ([]models.Order, int64, error) {
	from, to, err := monthPeriod(year, month)
	if err != nil {
		return nil, 0, err
	}
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Statuses:    constants.SalesStatuses,
		PaymentFrom: &from,
		PaymentTo:   &to,
		WithItems:   true,
	}
	return s.orderRepo.List(filter)
}

// ArchivedList 최근 보관 주문 목록 (수정 시각 기준 조회 기간 제한)
func (s *OrderService) ArchivedList(windowDays, page, pageSize int) ([]models.Order, int64, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	since := time.Now().AddDate(0, 0, -windowDays)
	filter := repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      constants.OrderStatusArchived,
		UpdatedFrom: &since,
		WithItems:   true,
	}
	return s.orderRepo.List(filter)
}

// ProductionSchedule 출고 예정일이 임박한 제작/협의 중 주문 목록
func (s *OrderService) ProductionSchedule(dueBefore time.Time, page, pageSize int) ([]models.Order, int64, error) {
	filter := repository.OrderListFilter{
		Page:      page,
		PageSize:  pageSize,
		Statuses:  []string{constants.OrderStatusConsulting, constants.OrderStatusProducing},
		DueBefore: &dueBefore,
		WithItems: true,
	}
	return s.orderRepo.List(filter)
}
