package service

import (
	"errors"
	"fmt"
	"strings"
)

// 서비스 공통 오류
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")

	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderStatusInvalid    = errors.New("order status transition not allowed")
	ErrOrderCancelNotAllowed = errors.New("order cancel not allowed")
	ErrOrderCreateFailed     = errors.New("order create failed")
	ErrOrderUpdateFailed     = errors.New("order update failed")
	ErrInvalidOrderItem      = errors.New("invalid order item")
	ErrExternalOrderIDExists = errors.New("external order id already exists")

	ErrProductNotFound       = errors.New("product not found")
	ErrProductNameRequired   = errors.New("product name required")
	ErrProductOptionNotFound = errors.New("product option not found")
	ErrProductNameExists     = errors.New("product name already exists")

	ErrStockInsufficient = errors.New("stock insufficient")

	ErrDesignUploadRequired  = errors.New("design upload required")
	ErrTrackingNumberMissing = errors.New("tracking number required")
	ErrNoOrdersSelected      = errors.New("no orders selected")
	ErrInvalidPeriod         = errors.New("invalid period")
	ErrInvalidCategory       = errors.New("invalid category")
	ErrInvalidAmount         = errors.New("invalid amount")

	ErrQueueUnavailable        = errors.New("queue unavailable")
	ErrSmartstoreNotConfigured = errors.New("smartstore api not configured")
)

// StockShortage 재고 부족 항목
type StockShortage struct {
	OptionID  uint   `json:"option_id"`
	Label     string `json:"label"` // 상품명 - 옵션 내용
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// StockShortageError 재고 부족 상세 오류
// 한 건이라도 부족하면 전체 전이를 중단하고 부족 품목 전부를 담아 반환한다.
type StockShortageError struct {
	Shortages []StockShortage
}

// Error 부족 품목을 한 줄로 요약
func (e *StockShortageError) Error() string {
	if e == nil || len(e.Shortages) == 0 {
		return ErrStockInsufficient.Error()
	}
	labels := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		labels = append(labels, fmt.Sprintf("%s (요청 %d / 잔여 %d)", s.Label, s.Requested, s.Available))
	}
	return "재고 부족: " + strings.Join(labels, ", ")
}

// Is errors.Is(err, ErrStockInsufficient) 매칭 지원
func (e *StockShortageError) Is(target error) bool {
	return target == ErrStockInsufficient
}
