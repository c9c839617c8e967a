package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tshirt-admin/internal/constants"

	"github.com/xuri/excelize/v2"
)

func TestExportShippingListRequiresSelection(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	exportSvc := NewExportService(svc.orderRepo, svc)

	var buf bytes.Buffer
	if _, err := exportSvc.ExportShippingList(nil, &buf); !errors.Is(err, ErrNoOrdersSelected) {
		t.Fatalf("expected ErrNoOrdersSelected for empty ids, got %v", err)
	}

	// 제작 완료 상태가 아닌 주문만 고르면 내보낼 것이 없다
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / L", 15000, 4500, nil)
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if _, err := exportSvc.ExportShippingList([]uint{order.ID}, &buf); !errors.Is(err, ErrNoOrdersSelected) {
		t.Fatalf("expected ErrNoOrdersSelected for non-PRODUCED order, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("nothing should be written on error, got %d bytes", buf.Len())
	}
}

func TestExportShippingListCompletesProducedOrders(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	exportSvc := NewExportService(svc.orderRepo, svc)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / L", 15000, 4500, nil)

	produced, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName:    "김철수",
		CustomerPhone:   "010-1111-2222",
		ShippingAddress: "서울시 마포구 월드컵로 12",
		Items:           []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if _, err := svc.ChangeStatus(produced.ID, constants.OrderStatusProduced); err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}

	// 아직 제작 전인 주문은 선택되어도 내보내기/전이 대상에서 빠진다
	pending, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "이영희",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}

	var buf bytes.Buffer
	result, err := exportSvc.ExportShippingList([]uint{produced.ID, pending.ID}, &buf)
	if err != nil {
		t.Fatalf("ExportShippingList error: %v", err)
	}
	if result.Exported != 1 || result.Completed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !strings.HasPrefix(result.Filename, "shipping_list_") || !strings.HasSuffix(result.Filename, ".xlsx") {
		t.Fatalf("unexpected filename: %q", result.Filename)
	}

	// 내보낸 주문만 발송 완료로 전이된다
	reloaded, err := svc.GetOrder(produced.ID)
	if err != nil {
		t.Fatalf("GetOrder error: %v", err)
	}
	if reloaded.Status != constants.OrderStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", reloaded.Status)
	}
	untouched, err := svc.GetOrder(pending.ID)
	if err != nil {
		t.Fatalf("GetOrder error: %v", err)
	}
	if untouched.Status != constants.OrderStatusNew {
		t.Fatalf("expected NEW to stay, got %s", untouched.Status)
	}

	// 작성된 엑셀 내용 확인
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open exported xlsx failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(shippingSheetName)
	if err != nil {
		t.Fatalf("read sheet failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "주문번호" || rows[0][4] != "주문제품" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][1] != "김철수" {
		t.Fatalf("expected customer name in row, got %v", rows[1])
	}
	if !strings.Contains(rows[1][4], "커스텀 반팔 티셔츠 (화이트 / L) x2") {
		t.Fatalf("unexpected item summary: %q", rows[1][4])
	}
}

func TestFormatOrderItems(t *testing.T) {
	got := formatOrderItems(nil)
	if got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}
