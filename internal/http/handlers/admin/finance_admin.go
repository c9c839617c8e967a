package admin

import (
	"errors"
	"time"

	"github.com/tshirt-admin/internal/http/response"
	"github.com/tshirt-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminProfitSummary 손익 요약
// include_fee=true 면 마켓 수수료를 차감하고, closed_out=true 면 정산/보관 주문까지 매출로 본다.
func (h *Handler) AdminProfitSummary(c *gin.Context) {
	summary, err := h.FinanceService.ProfitSummary(service.ProfitSummaryInput{
		Year:       queryInt(c, "year", time.Now().Year()),
		Month:      queryInt(c, "month", 0),
		IncludeFee: c.DefaultQuery("include_fee", "true") == "true",
		ClosedOut:  c.Query("closed_out") == "true",
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			respondError(c, response.CodeBadRequest, "조회 기간이 올바르지 않습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "손익 요약 조회에 실패했습니다", err)
		return
	}

	response.Success(c, summary)
}

// AdminMonthlySales 연간 월별 매출 추이
func (h *Handler) AdminMonthlySales(c *gin.Context) {
	year := queryInt(c, "year", time.Now().Year())
	rows, err := h.FinanceService.MonthlySales(year, c.Query("closed_out") == "true")
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			respondError(c, response.CodeBadRequest, "조회 기간이 올바르지 않습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "월별 매출 조회에 실패했습니다", err)
		return
	}

	response.Success(c, rows)
}

// AdminExpenseBreakdown 지출 항목별 합계
func (h *Handler) AdminExpenseBreakdown(c *gin.Context) {
	breakdown, err := h.FinanceService.ExpenseBreakdown(queryInt(c, "year", time.Now().Year()), queryInt(c, "month", 0))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			respondError(c, response.CodeBadRequest, "조회 기간이 올바르지 않습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "지출 집계 조회에 실패했습니다", err)
		return
	}

	response.Success(c, breakdown)
}

// AdminPurchaseBreakdown 매입 항목별 합계
func (h *Handler) AdminPurchaseBreakdown(c *gin.Context) {
	breakdown, err := h.FinanceService.PurchaseBreakdown(queryInt(c, "year", time.Now().Year()), queryInt(c, "month", 0))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPeriod) {
			respondError(c, response.CodeBadRequest, "조회 기간이 올바르지 않습니다", nil)
			return
		}
		respondError(c, response.CodeInternal, "매입 집계 조회에 실패했습니다", err)
		return
	}

	response.Success(c, breakdown)
}
