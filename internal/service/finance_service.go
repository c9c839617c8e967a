package service

import (
	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"

	"github.com/shopspring/decimal"
)

// vatDivisor 부가세 포함 금액에서 공급가액을 분리하는 약수 (10% 부가세)
var vatDivisor = decimal.NewFromFloat(1.1)

// FinanceService 손익 요약 서비스
type FinanceService struct {
	financeRepo  repository.FinanceRepository
	expenseRepo  repository.ExpenseRepository
	purchaseRepo repository.PurchaseRepository
	feeRate      decimal.Decimal
}

// NewFinanceService 손익 요약 서비스 생성
func NewFinanceService(financeRepo repository.FinanceRepository, expenseRepo repository.ExpenseRepository, purchaseRepo repository.PurchaseRepository, marketplaceFeeRate float64) *FinanceService {
	if marketplaceFeeRate <= 0 {
		marketplaceFeeRate = 0.06
	}
	return &FinanceService{
		financeRepo:  financeRepo,
		expenseRepo:  expenseRepo,
		purchaseRepo: purchaseRepo,
		feeRate:      decimal.NewFromFloat(marketplaceFeeRate),
	}
}

// ProfitSummaryInput 손익 요약 조회 조건
type ProfitSummaryInput struct {
	Year       int
	Month      int  // 0이면 연 단위
	IncludeFee bool // 마켓 수수료 차감 여부
	ClosedOut  bool // true면 COMPLETED+SETTLED+ARCHIVED, false면 COMPLETED만 매출 인식
}

// ProfitSummary 손익 요약 결과
// 중간 계산은 전부 decimal 로 유지하고 소득세만 정수 절사한다.
type ProfitSummary struct {
	Year               int          `json:"year"`
	Month              int          `json:"month"`
	OrderCount         int64        `json:"order_count"`
	Revenue            models.Money `json:"revenue"`
	ShippingTotal      models.Money `json:"shipping_total"` // 주문 배송비 합계
	ItemsCost          models.Money `json:"items_cost"`     // 품목 원가 스냅샷 합계
	GrossProfit        models.Money `json:"gross_profit"`   // 주문 단위 이익 합계 (매출 - 품목 원가 - 배송비)
	PurchaseTotal      models.Money `json:"purchase_total"`
	ExpenseTotal       models.Money `json:"expense_total"`
	MarketplaceFee     models.Money `json:"marketplace_fee"`
	NetProfit          models.Money `json:"net_profit"`           // 부가세 포함 순이익
	VATExclusiveProfit models.Money `json:"vat_exclusive_profit"` // 공급가액 기준 순이익
	VATAmount          models.Money `json:"vat_amount"`
	IncomeTax          models.Money `json:"income_tax"`
	NetTakeHome        models.Money `json:"net_take_home"`
}

// ProfitSummary 기간 손익 요약 계산
func (s *FinanceService) ProfitSummary(input ProfitSummaryInput) (*ProfitSummary, error) {
	from, to, err := monthPeriod(input.Year, input.Month)
	if err != nil {
		return nil, err
	}

	statuses := []string{constants.OrderStatusCompleted}
	if input.ClosedOut {
		statuses = constants.ClosedOutStatuses
	}

	orderAgg, err := s.financeRepo.SumOrders(statuses, &from, &to)
	if err != nil {
		return nil, err
	}
	purchaseTotal, err := s.purchaseRepo.SumByPeriod(&from, &to)
	if err != nil {
		return nil, err
	}
	expenseTotal, err := s.expenseRepo.SumByPeriod(&from, &to)
	if err != nil {
		return nil, err
	}

	revenue := orderAgg.Revenue
	grossProfit := revenue.Sub(orderAgg.ItemsCost).Sub(orderAgg.ShippingCost)
	fee := decimal.Zero
	if input.IncludeFee {
		fee = revenue.Mul(s.feeRate).Round(2)
	}

	netProfit := revenue.Sub(purchaseTotal).Sub(expenseTotal).Sub(fee)
	vatExclusive := netProfit.DivRound(vatDivisor, 2)
	vatAmount := netProfit.Sub(vatExclusive)
	incomeTax := CalculateIncomeTax(vatExclusive)
	takeHome := vatExclusive.Sub(incomeTax)

	return &ProfitSummary{
		Year:               input.Year,
		Month:              input.Month,
		OrderCount:         orderAgg.OrderCount,
		Revenue:            models.NewMoneyFromDecimal(revenue),
		ShippingTotal:      models.NewMoneyFromDecimal(orderAgg.ShippingCost),
		ItemsCost:          models.NewMoneyFromDecimal(orderAgg.ItemsCost),
		GrossProfit:        models.NewMoneyFromDecimal(grossProfit),
		PurchaseTotal:      models.NewMoneyFromDecimal(purchaseTotal),
		ExpenseTotal:       models.NewMoneyFromDecimal(expenseTotal),
		MarketplaceFee:     models.NewMoneyFromDecimal(fee),
		NetProfit:          models.NewMoneyFromDecimal(netProfit),
		VATExclusiveProfit: models.NewMoneyFromDecimal(vatExclusive),
		VATAmount:          models.NewMoneyFromDecimal(vatAmount),
		IncomeTax:          models.NewMoneyFromDecimal(incomeTax),
		NetTakeHome:        models.NewMoneyFromDecimal(takeHome),
	}, nil
}

// CalculateIncomeTax 종합소득세 계산 (누진 구간표, 음수면 0, 정수 절사)
func CalculateIncomeTax(profit decimal.Decimal) decimal.Decimal {
	if profit.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	for _, bracket := range constants.IncomeTaxBrackets {
		if bracket.UpperBound > 0 && profit.GreaterThan(decimal.NewFromInt(bracket.UpperBound)) {
			continue
		}
		tax := profit.Mul(decimal.NewFromFloat(bracket.Rate)).Sub(decimal.NewFromInt(bracket.Deduction))
		if tax.LessThan(decimal.Zero) {
			return decimal.Zero
		}
		return tax.Truncate(0)
	}
	return decimal.Zero
}

// MonthlySalesRow 월별 매출 집계 행
type MonthlySalesRow struct {
	Month      string       `json:"month"`
	OrderCount int64        `json:"order_count"`
	Revenue    models.Money `json:"revenue"`
}

// MonthlySales 연간 월별 매출 추이 (결제일 기준)
func (s *FinanceService) MonthlySales(year int, closedOut bool) ([]MonthlySalesRow, error) {
	from, to, err := monthPeriod(year, 0)
	if err != nil {
		return nil, err
	}
	statuses := []string{constants.OrderStatusCompleted}
	if closedOut {
		statuses = constants.ClosedOutStatuses
	}
	rows, err := s.financeRepo.SumOrdersByMonth(statuses, &from, &to)
	if err != nil {
		return nil, err
	}
	result := make([]MonthlySalesRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, MonthlySalesRow{
			Month:      row.Month,
			OrderCount: row.OrderCount,
			Revenue:    models.NewMoneyFromDecimal(row.Revenue),
		})
	}
	return result, nil
}

// ExpenseBreakdown 기간 내 항목별 지출 합계
func (s *FinanceService) ExpenseBreakdown(year, month int) (map[string]models.Money, error) {
	from, to, err := monthPeriod(year, month)
	if err != nil {
		return nil, err
	}
	sums, err := s.expenseRepo.SumByCategory(&from, &to)
	if err != nil {
		return nil, err
	}
	return toMoneyMap(sums), nil
}

// PurchaseBreakdown 기간 내 항목별 매입 합계
func (s *FinanceService) PurchaseBreakdown(year, month int) (map[string]models.Money, error) {
	from, to, err := monthPeriod(year, month)
	if err != nil {
		return nil, err
	}
	sums, err := s.purchaseRepo.SumByCategory(&from, &to)
	if err != nil {
		return nil, err
	}
	return toMoneyMap(sums), nil
}

func toMoneyMap(sums map[string]decimal.Decimal) map[string]models.Money {
	result := make(map[string]models.Money, len(sums))
	for category, sum := range sums {
		result[category] = models.NewMoneyFromDecimal(sum)
	}
	return result
}
