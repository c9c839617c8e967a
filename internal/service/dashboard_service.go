package service

import (
	"context"
	"time"

	"github.com/tshirt-admin/internal/cache"
	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/logger"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"
)

const (
	dashboardCacheTTL   = 45 * time.Second
	dashboardCacheKey   = "dashboard:overview"
	lowStockThreshold   = 5
	dueSoonWindowInDays = 3
)

// DashboardService 대시보드 집계 서비스
// 관리 화면 첫 페이지의 운영 지표를 모아 준다.
type DashboardService struct {
	orderRepo    repository.OrderRepository
	optionRepo   repository.ProductOptionRepository
	financeRepo  repository.FinanceRepository
	expenseRepo  repository.ExpenseRepository
	purchaseRepo repository.PurchaseRepository
}

// NewDashboardService 대시보드 서비스 생성
func NewDashboardService(orderRepo repository.OrderRepository, optionRepo repository.ProductOptionRepository, financeRepo repository.FinanceRepository, expenseRepo repository.ExpenseRepository, purchaseRepo repository.PurchaseRepository) *DashboardService {
	return &DashboardService{
		orderRepo:    orderRepo,
		optionRepo:   optionRepo,
		financeRepo:  financeRepo,
		expenseRepo:  expenseRepo,
		purchaseRepo: purchaseRepo,
	}
}

// DashboardLowStockItem 재고 부족 옵션 요약
type DashboardLowStockItem struct {
	OptionID      uint   `json:"option_id"`
	ProductName   string `json:"product_name"`
	OptionDetail  string `json:"option_detail"`
	StockQuantity int    `json:"stock_quantity"`
}

// DashboardOverview 대시보드 총람 응답
type DashboardOverview struct {
	GeneratedAt   string                  `json:"generated_at"`
	StatusCounts  map[string]int64        `json:"status_counts"`
	MonthOrderCnt int64                   `json:"month_order_count"`
	MonthRevenue  models.Money            `json:"month_revenue"`
	MonthExpense  models.Money            `json:"month_expense"`
	MonthPurchase models.Money            `json:"month_purchase"`
	DueSoonCount  int64                   `json:"due_soon_count"`
	LowStockItems []DashboardLowStockItem `json:"low_stock_items"`
	LowStockCount int                     `json:"low_stock_count"`
}

// Overview 대시보드 총람 조회 (짧은 TTL 캐시)
func (s *DashboardService) Overview(ctx context.Context, forceRefresh bool) (*DashboardOverview, error) {
	if !forceRefresh {
		var cached DashboardOverview
		hit, err := cache.GetJSON(ctx, dashboardCacheKey, &cached)
		if err != nil {
			logger.Warnw("대시보드 캐시 조회 실패", "error", err)
		}
		if hit {
			return &cached, nil
		}
	}

	overview, err := s.buildOverview()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, dashboardCacheKey, overview, dashboardCacheTTL); err != nil {
		logger.Warnw("대시보드 캐시 저장 실패", "error", err)
	}
	return overview, nil
}

func (s *DashboardService) buildOverview() (*DashboardOverview, error) {
	now := time.Now()
	monthFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	monthTo := monthFrom.AddDate(0, 1, 0)

	statusCounts, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	// 이번 달 매출은 발송 완료 이후 상태만 인식
	orderAgg, err := s.financeRepo.SumOrders(constants.ClosedOutStatuses, &monthFrom, &monthTo)
	if err != nil {
		return nil, err
	}
	expenseTotal, err := s.expenseRepo.SumByPeriod(&monthFrom, &monthTo)
	if err != nil {
		return nil, err
	}
	purchaseTotal, err := s.purchaseRepo.SumByPeriod(&monthFrom, &monthTo)
	if err != nil {
		return nil, err
	}

	dueBefore := now.AddDate(0, 0, dueSoonWindowInDays)
	_, dueSoonCount, err := s.orderRepo.List(repository.OrderListFilter{
		Page:      1,
		PageSize:  1,
		Statuses:  []string{constants.OrderStatusConsulting, constants.OrderStatusProducing},
		DueBefore: &dueBefore,
	})
	if err != nil {
		return nil, err
	}

	lowStock, err := s.optionRepo.ListLowStock(lowStockThreshold)
	if err != nil {
		return nil, err
	}
	lowStockItems := make([]DashboardLowStockItem, 0, len(lowStock))
	for _, option := range lowStock {
		item := DashboardLowStockItem{
			OptionID:     option.ID,
			OptionDetail: option.OptionDetail,
		}
		if option.Product != nil {
			item.ProductName = option.Product.Name
		}
		if option.StockQuantity != nil {
			item.StockQuantity = *option.StockQuantity
		}
		lowStockItems = append(lowStockItems, item)
	}

	return &DashboardOverview{
		GeneratedAt:   now.Format(time.RFC3339),
		StatusCounts:  statusCounts,
		MonthOrderCnt: orderAgg.OrderCount,
		MonthRevenue:  models.NewMoneyFromDecimal(orderAgg.Revenue),
		MonthExpense:  models.NewMoneyFromDecimal(expenseTotal),
		MonthPurchase: models.NewMoneyFromDecimal(purchaseTotal),
		DueSoonCount:  dueSoonCount,
		LowStockItems: lowStockItems,
		LowStockCount: len(lowStockItems),
	}, nil
}
