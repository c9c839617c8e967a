package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/logger"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"

	"github.com/xuri/excelize/v2"
)

// shippingSheetName 발송 목록 시트명
const shippingSheetName = "발송목록"

// shippingHeaders 발송 목록 헤더 (열 순서 고정)
var shippingHeaders = []string{"주문번호", "고객명", "연락처", "발송주소", "주문제품", "총금액", "결제일"}

// ExportService 발송 목록 엑셀 내보내기 서비스
type ExportService struct {
	orderRepo    repository.OrderRepository
	orderService *OrderService
}

// NewExportService 내보내기 서비스 생성
func NewExportService(orderRepo repository.OrderRepository, orderService *OrderService) *ExportService {
	return &ExportService{
		orderRepo:    orderRepo,
		orderService: orderService,
	}
}

// ShippingExportResult 발송 목록 내보내기 결과
type ShippingExportResult struct {
	Filename  string
	Exported  int
	Completed int64
}

// ShippingFilename 발송 목록 파일명 (생성 시각 기반)
func ShippingFilename(now time.Time) string {
	return fmt.Sprintf("shipping_list_%s.xlsx", now.Format("20060102_1504"))
}

// ExportShippingList 제작 완료 주문의 발송 목록 엑셀 작성 후 일괄 발송 완료 처리
// 엑셀 작성이 먼저 끝나야 상태 전이가 일어난다. 작성 실패 시 주문은 그대로 남는다.
func (s *ExportService) ExportShippingList(ids []uint, w io.Writer) (*ShippingExportResult, error) {
	if len(ids) == 0 {
		return nil, ErrNoOrdersSelected
	}

	orders, err := s.orderRepo.ListByIDs(ids, true)
	if err != nil {
		return nil, err
	}
	produced := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status == constants.OrderStatusProduced {
			produced = append(produced, order)
		}
	}
	if len(produced) == 0 {
		return nil, ErrNoOrdersSelected
	}

	if err := writeShippingSheet(produced, w); err != nil {
		return nil, err
	}

	producedIDs := make([]uint, 0, len(produced))
	for _, order := range produced {
		producedIDs = append(producedIDs, order.ID)
	}
	completed, err := s.orderService.CompleteOrders(producedIDs)
	if err != nil {
		// 파일은 이미 내려갔으므로 전이 실패만 별도로 알린다
		logger.Errorw("발송 목록 내보내기 후 상태 전이 실패", "order_ids", producedIDs, "error", err)
		return nil, err
	}

	return &ShippingExportResult{
		Filename:  ShippingFilename(time.Now()),
		Exported:  len(produced),
		Completed: completed,
	}, nil
}

// writeShippingSheet 발송 목록 시트 작성
func writeShippingSheet(orders []models.Order, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logger.Warnw("엑셀 파일 닫기 실패", "error", closeErr)
		}
	}()

	index, err := f.NewSheet(shippingSheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, header := range shippingHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(shippingSheetName, cell, header); err != nil {
			return err
		}
	}

	for rowIdx, order := range orders {
		values := []interface{}{
			order.ExternalOrderID,
			order.CustomerName,
			order.CustomerPhone,
			order.ShippingAddress,
			formatOrderItems(order.Items),
			order.TotalOrderAmount.String(),
			formatPaymentDate(order.PaymentDate),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(shippingSheetName, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// formatOrderItems 주문 품목을 한 칸에 요약 ("상품명 (옵션) x수량" 을 | 로 연결)
func formatOrderItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := item.ProductName
		if item.ManualDetail != "" {
			name = item.ManualDetail
		}
		if item.OptionDetail != "" {
			parts = append(parts, fmt.Sprintf("%s (%s) x%d", name, item.OptionDetail, item.Quantity))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, item.Quantity))
	}
	return strings.Join(parts, " | ")
}

func formatPaymentDate(paymentDate *time.Time) string {
	if paymentDate == nil {
		return ""
	}
	return paymentDate.Format("2006-01-02 15:04")
}
