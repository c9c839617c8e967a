package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tshirt-admin/internal/config"
	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCompletionPhoto{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	svc := NewOrderService(
		orderRepo,
		repository.NewProductRepository(db),
		repository.NewProductOptionRepository(db),
		NewCustomerService(orderRepo),
		nil,
		config.OrderConfig{
			DueDateLeadDays:     3,
			DefaultShippingCost: 3000,
			ExternalIDPrefix:    "TS",
		},
	)
	return svc, db
}

func createTestOption(t *testing.T, db *gorm.DB, productName, detail string, price, cost int64, stock *int) models.ProductOption {
	t.Helper()
	product := models.Product{
		Name:     productName,
		Category: constants.ProductCategoryGoods,
		IsActive: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	option := models.ProductOption{
		ProductID:      product.ID,
		OptionDetail:   detail,
		Price:          models.NewMoneyFromInt(price),
		Cost:           models.NewMoneyFromInt(cost),
		TrackInventory: stock != nil,
		StockQuantity:  stock,
		IsActive:       true,
	}
	if err := db.Create(&option).Error; err != nil {
		t.Fatalf("create option failed: %v", err)
	}
	return option
}

func currentStock(t *testing.T, db *gorm.DB, optionID uint) *int {
	t.Helper()
	var option models.ProductOption
	if err := db.First(&option, optionID).Error; err != nil {
		t.Fatalf("load option failed: %v", err)
	}
	return option.StockQuantity
}

func intPtr(n int) *int {
	return &n
}

func int64Ptr(n int64) *int64 {
	return &n
}

func TestCreateManualOrderSnapshotAndNumbering(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / L", 15000, 4500, intPtr(10))

	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName:  "김철수",
		CustomerPhone: "010-1111-2222",
		Items: []CreateManualOrderItem{
			{ProductOptionID: option.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if order.ExternalOrderID != "TS-000001" {
		t.Fatalf("expected generated order id TS-000001, got %q", order.ExternalOrderID)
	}
	if order.Status != constants.OrderStatusNew {
		t.Fatalf("expected NEW status, got %s", order.Status)
	}
	if order.CustomerID != "김철수" {
		t.Fatalf("expected customer id 김철수, got %q", order.CustomerID)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.ProductName != "커스텀 반팔 티셔츠" || item.OptionDetail != "화이트 / L" {
		t.Fatalf("unexpected item snapshot: %+v", item)
	}
	if !item.UnitPrice.Equal(models.NewMoneyFromInt(15000).Decimal) {
		t.Fatalf("expected snapshot price 15000, got %s", item.UnitPrice.String())
	}
	// 총액 = 15000*2 + 배송비 3000
	if !order.TotalOrderAmount.Equal(models.NewMoneyFromInt(33000).Decimal) {
		t.Fatalf("expected total 33000, got %s", order.TotalOrderAmount.String())
	}

	// 생성 시점에는 재고를 건드리지 않는다
	if stock := currentStock(t, db, option.ID); stock == nil || *stock != 10 {
		t.Fatalf("expected stock unchanged at 10, got %v", stock)
	}

	// 같은 이름+연락처의 다음 주문은 고객 번호가 붙는다
	second, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName:  "김철수",
		CustomerPhone: "010-1111-2222",
		Items: []CreateManualOrderItem{
			{ProductOptionID: option.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if second.ExternalOrderID != "TS-000002" {
		t.Fatalf("expected TS-000002, got %q", second.ExternalOrderID)
	}
	if second.CustomerID != "김철수-001" {
		t.Fatalf("expected 김철수-001, got %q", second.CustomerID)
	}
}

func TestCreateManualOrderDuplicateExternalID(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 후드티", "그레이 / L", 32000, 12000, nil)

	input := CreateManualOrderInput{
		ExternalOrderID: "2024123100001",
		CustomerName:    "이영희",
		Items: []CreateManualOrderItem{
			{ProductOptionID: option.ID, Quantity: 1},
		},
	}
	if _, err := svc.CreateManualOrder(input); err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if _, err := svc.CreateManualOrder(input); !errors.Is(err, ErrExternalOrderIDExists) {
		t.Fatalf("expected ErrExternalOrderIDExists, got %v", err)
	}
}

func TestCreateManualOrderValidation(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "블랙 / M", 16000, 5000, nil)

	if _, err := svc.CreateManualOrder(CreateManualOrderInput{CustomerName: "김철수"}); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("expected ErrInvalidOrderItem for empty items, got %v", err)
	}
	if _, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 0}},
	}); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("expected ErrInvalidOrderItem for zero quantity, got %v", err)
	}
	if _, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID + 100, Quantity: 1}},
	}); !errors.Is(err, ErrProductOptionNotFound) {
		t.Fatalf("expected ErrProductOptionNotFound, got %v", err)
	}
	// 수기 품목은 내용과 단가가 모두 필요하다
	if _, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ManualDetail: "자수 네임택", Quantity: 1}},
	}); !errors.Is(err, ErrInvalidOrderItem) {
		t.Fatalf("expected ErrInvalidOrderItem for manual item without price, got %v", err)
	}
}

func TestCreateManualOrderManualItem(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "박민수",
		ShippingCost: int64Ptr(0),
		Items: []CreateManualOrderItem{
			{ManualDetail: "자수 네임택 추가", Quantity: 3, UnitPrice: int64Ptr(2000)},
		},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if order.Items[0].ManualDetail != "자수 네임택 추가" {
		t.Fatalf("unexpected manual detail: %q", order.Items[0].ManualDetail)
	}
	if order.Items[0].ProductOptionID != nil {
		t.Fatalf("manual item must not reference an option")
	}
	if !order.TotalOrderAmount.Equal(models.NewMoneyFromInt(6000).Decimal) {
		t.Fatalf("expected total 6000, got %s", order.TotalOrderAmount.String())
	}
}

func TestCreateManualOrderCategorySnapshotAndDerivedAmounts(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / L", 15000, 4500, nil)

	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items: []CreateManualOrderItem{
			{ProductOptionID: option.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	// 상품 카테고리는 주문 시점에 품목으로 스냅샷된다
	if order.Items[0].ProductCategory != constants.ProductCategoryGoods {
		t.Fatalf("expected GOODS snapshot, got %q", order.Items[0].ProductCategory)
	}
	if order.Category() != constants.ProductCategoryGoods {
		t.Fatalf("expected GOODS order, got %s", order.Category())
	}
	// 원가 = 4500*2 + 배송비 3000, 이익 = 33000 - 12000
	if !order.TotalCost().Equal(models.NewMoneyFromInt(12000).Decimal) {
		t.Fatalf("expected total cost 12000, got %s", order.TotalCost().String())
	}
	if !order.Profit().Equal(models.NewMoneyFromInt(21000).Decimal) {
		t.Fatalf("expected profit 21000, got %s", order.Profit().String())
	}

	// 수기 품목만 있는 주문은 GENERAL 로 분류된다
	manual, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "박민수",
		ShippingCost: int64Ptr(0),
		Items: []CreateManualOrderItem{
			{ManualDetail: "택배 재발송", Quantity: 1, UnitPrice: int64Ptr(4000)},
		},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if manual.Items[0].ProductCategory != constants.ProductCategoryGeneral {
		t.Fatalf("expected GENERAL snapshot, got %q", manual.Items[0].ProductCategory)
	}
	if manual.Category() != constants.ProductCategoryGeneral {
		t.Fatalf("expected GENERAL order, got %s", manual.Category())
	}
}

func TestChangeStatusInvalidTransition(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / M", 15000, 4500, nil)
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}

	// NEW -> SETTLED 는 허용되지 않는다
	if _, err := svc.ChangeStatus(order.ID, constants.OrderStatusSettled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
	if _, err := svc.ChangeStatus(order.ID, "UNKNOWN"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for unknown status, got %v", err)
	}
	if _, err := svc.ChangeStatus(order.ID+100, constants.OrderStatusConsulting); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestChangeStatusDecreasesStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / L", 15000, 4500, intPtr(5))
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}

	updated, err := svc.ChangeStatus(order.ID, constants.OrderStatusConsulting)
	if err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}
	if updated.Status != constants.OrderStatusConsulting {
		t.Fatalf("expected CONSULTING, got %s", updated.Status)
	}
	if stock := currentStock(t, db, option.ID); stock == nil || *stock != 2 {
		t.Fatalf("expected stock 2 after decrement, got %v", stock)
	}
}

func TestChangeStatusStockShortageCollectsAll(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	optionA := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / L", 15000, 4500, intPtr(1))
	optionB := createTestOption(t, db, "커스텀 후드티", "그레이 / M", 32000, 12000, intPtr(2))
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items: []CreateManualOrderItem{
			{ProductOptionID: optionA.ID, Quantity: 3},
			{ProductOptionID: optionB.ID, Quantity: 5},
		},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}

	_, err = svc.ChangeStatus(order.ID, constants.OrderStatusConsulting)
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected ErrStockInsufficient, got %v", err)
	}
	var shortage *StockShortageError
	if !errors.As(err, &shortage) {
		t.Fatalf("expected StockShortageError, got %T", err)
	}
	// 부족 품목은 하나씩이 아니라 전부 모아 반환한다
	if len(shortage.Shortages) != 2 {
		t.Fatalf("expected 2 shortages, got %d", len(shortage.Shortages))
	}

	// 전이와 재고 모두 그대로여야 한다
	reloaded, err := svc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("GetOrder error: %v", err)
	}
	if reloaded.Status != constants.OrderStatusNew {
		t.Fatalf("expected order to stay NEW, got %s", reloaded.Status)
	}
	if stock := currentStock(t, db, optionA.ID); stock == nil || *stock != 1 {
		t.Fatalf("expected stock untouched at 1, got %v", stock)
	}
	if stock := currentStock(t, db, optionB.ID); stock == nil || *stock != 2 {
		t.Fatalf("expected stock untouched at 2, got %v", stock)
	}
}

func TestChangeStatusUnlimitedStockPasses(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "디자인 시안 추가 작업", "기본", 10000, 0, nil)
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 100}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}

	if _, err := svc.ChangeStatus(order.ID, constants.OrderStatusConsulting); err != nil {
		t.Fatalf("expected unlimited option to pass, got %v", err)
	}
	if stock := currentStock(t, db, option.ID); stock != nil {
		t.Fatalf("unlimited stock must stay NULL, got %v", *stock)
	}
}

func TestConfirmDesignSetsDueDate(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "블랙 / L", 16000, 5000, nil)
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if _, err := svc.ChangeStatus(order.ID, constants.OrderStatusConsulting); err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}

	// 시안 없이 확정은 거부
	if _, err := svc.ConfirmDesign(order.ID, "", nil); !errors.Is(err, ErrDesignUploadRequired) {
		t.Fatalf("expected ErrDesignUploadRequired, got %v", err)
	}

	itemID := order.Items[0].ID
	confirmed, err := svc.ConfirmDesign(order.ID, "https://drive.example.com/folder/abc", map[uint]string{
		itemID: "/uploads/design/abc.png",
	})
	if err != nil {
		t.Fatalf("ConfirmDesign error: %v", err)
	}
	if confirmed.Status != constants.OrderStatusProducing {
		t.Fatalf("expected PRODUCING, got %s", confirmed.Status)
	}
	if confirmed.ConfirmedDate == nil || confirmed.DueDate == nil {
		t.Fatalf("expected confirmed/due dates to be set")
	}
	want := AddBusinessDays(time.Now(), 3)
	if !confirmed.DueDate.Equal(want) {
		t.Fatalf("expected due date %s, got %s", want.Format("2006-01-02"), confirmed.DueDate.Format("2006-01-02"))
	}
	if confirmed.DriveFolderURL != "https://drive.example.com/folder/abc" {
		t.Fatalf("unexpected drive folder url: %q", confirmed.DriveFolderURL)
	}
	if confirmed.Items[0].DesignImageURL != "/uploads/design/abc.png" {
		t.Fatalf("unexpected design image url: %q", confirmed.Items[0].DesignImageURL)
	}

	// 협의 중이 아닌 주문은 확정 불가
	if _, err := svc.ConfirmDesign(order.ID, "https://drive.example.com/folder/abc", nil); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestCompleteOrdersBulk(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / S", 15000, 4500, nil)

	var ids []uint
	for i := 0; i < 3; i++ {
		order, err := svc.CreateManualOrder(CreateManualOrderInput{
			CustomerName: fmt.Sprintf("고객%d", i),
			Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("CreateManualOrder error: %v", err)
		}
		ids = append(ids, order.ID)
	}
	// 둘만 제작 완료 상태로 올린다
	for _, id := range ids[:2] {
		if _, err := svc.ChangeStatus(id, constants.OrderStatusProduced); err != nil {
			t.Fatalf("ChangeStatus error: %v", err)
		}
	}

	affected, err := svc.CompleteOrders(ids)
	if err != nil {
		t.Fatalf("CompleteOrders error: %v", err)
	}
	// PRODUCED 인 주문만 전이된다
	if affected != 2 {
		t.Fatalf("expected 2 completed, got %d", affected)
	}

	if _, err := svc.CompleteOrders(nil); !errors.Is(err, ErrNoOrdersSelected) {
		t.Fatalf("expected ErrNoOrdersSelected, got %v", err)
	}
}

func TestRegisterCompletionAndSettle(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / M", 15000, 4500, nil)
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if _, err := svc.ChangeStatus(order.ID, constants.OrderStatusProduced); err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}
	if _, err := svc.CompleteOrders([]uint{order.ID}); err != nil {
		t.Fatalf("CompleteOrders error: %v", err)
	}

	// 송장도 사진도 없으면 등록 거부
	if _, err := svc.RegisterCompletion(order.ID, "  ", nil); !errors.Is(err, ErrTrackingNumberMissing) {
		t.Fatalf("expected ErrTrackingNumberMissing, got %v", err)
	}

	settled, err := svc.RegisterCompletion(order.ID, "1234-5678-9012", []string{"/uploads/completion/p1.jpg", "/uploads/completion/p2.jpg"})
	if err != nil {
		t.Fatalf("RegisterCompletion error: %v", err)
	}
	if settled.Status != constants.OrderStatusSettled {
		t.Fatalf("expected SETTLED, got %s", settled.Status)
	}
	if settled.TrackingNumber != "1234-5678-9012" {
		t.Fatalf("unexpected tracking number: %q", settled.TrackingNumber)
	}
	if len(settled.CompletionPhotos) != 2 {
		t.Fatalf("expected 2 completion photos, got %d", len(settled.CompletionPhotos))
	}
}

func TestChangeStatusSettleRequiresCompletionRecord(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "블랙 / M", 16000, 5000, nil)
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if _, err := svc.ChangeStatus(order.ID, constants.OrderStatusProduced); err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}
	if _, err := svc.ChangeStatus(order.ID, constants.OrderStatusCompleted); err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}

	// 송장/사진 없이 COMPLETED -> SETTLED 직접 전이는 거부
	if _, err := svc.ChangeStatus(order.ID, constants.OrderStatusSettled); !errors.Is(err, ErrTrackingNumberMissing) {
		t.Fatalf("expected ErrTrackingNumberMissing, got %v", err)
	}

	if _, err := svc.UpdateOrder(order.ID, map[string]interface{}{"tracking_number": "9999-0000-1111"}); err != nil {
		t.Fatalf("UpdateOrder error: %v", err)
	}
	settled, err := svc.ChangeStatus(order.ID, constants.OrderStatusSettled)
	if err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}
	if settled.Status != constants.OrderStatusSettled {
		t.Fatalf("expected SETTLED, got %s", settled.Status)
	}
}

func TestArchiveOrders(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / L", 15000, 4500, nil)
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}

	// 정산 전에는 보관 불가
	if _, err := svc.ArchiveOrder(order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}

	steps := []string{
		constants.OrderStatusProduced,
		constants.OrderStatusCompleted,
	}
	for _, status := range steps {
		if _, err := svc.ChangeStatus(order.ID, status); err != nil {
			t.Fatalf("ChangeStatus to %s error: %v", status, err)
		}
	}
	if _, err := svc.RegisterCompletion(order.ID, "1111-2222-3333", nil); err != nil {
		t.Fatalf("RegisterCompletion error: %v", err)
	}

	archived, err := svc.ArchiveOrder(order.ID)
	if err != nil {
		t.Fatalf("ArchiveOrder error: %v", err)
	}
	if archived.Status != constants.OrderStatusArchived {
		t.Fatalf("expected ARCHIVED, got %s", archived.Status)
	}

	if _, err := svc.ArchiveOrders(nil); !errors.Is(err, ErrNoOrdersSelected) {
		t.Fatalf("expected ErrNoOrdersSelected, got %v", err)
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / L", 15000, 4500, intPtr(5))
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if _, err := svc.ChangeStatus(order.ID, constants.OrderStatusConsulting); err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}
	if stock := currentStock(t, db, option.ID); stock == nil || *stock != 3 {
		t.Fatalf("expected stock 3 after decrement, got %v", stock)
	}

	canceled, already, err := svc.CancelOrder(order.ID)
	if err != nil {
		t.Fatalf("CancelOrder error: %v", err)
	}
	if already {
		t.Fatalf("expected fresh cancel")
	}
	if canceled.Status != constants.OrderStatusCanceled || canceled.CanceledAt == nil {
		t.Fatalf("unexpected cancel result: status=%s canceled_at=%v", canceled.Status, canceled.CanceledAt)
	}
	if stock := currentStock(t, db, option.ID); stock == nil || *stock != 5 {
		t.Fatalf("expected stock restored to 5, got %v", stock)
	}

	// 재취소는 오류가 아니라 이미 취소됨으로 응답
	_, already, err = svc.CancelOrder(order.ID)
	if err != nil {
		t.Fatalf("CancelOrder error: %v", err)
	}
	if !already {
		t.Fatalf("expected alreadyCanceled=true")
	}
	// 재고가 두 번 복원되면 안 된다
	if stock := currentStock(t, db, option.ID); stock == nil || *stock != 5 {
		t.Fatalf("expected stock to stay 5, got %v", stock)
	}
}

func TestCancelOrderFromNewSkipsRestore(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "블랙 / L", 16000, 5000, intPtr(4))
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}

	// NEW 단계는 아직 차감 전이므로 복원 없이 취소만 된다
	if _, _, err := svc.CancelOrder(order.ID); err != nil {
		t.Fatalf("CancelOrder error: %v", err)
	}
	if stock := currentStock(t, db, option.ID); stock == nil || *stock != 4 {
		t.Fatalf("expected stock unchanged at 4, got %v", stock)
	}
}

func TestCancelOrderNotAllowedAfterCompletion(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / M", 15000, 4500, nil)
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}
	if _, err := svc.ChangeStatus(order.ID, constants.OrderStatusProduced); err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}
	if _, err := svc.ChangeStatus(order.ID, constants.OrderStatusCompleted); err != nil {
		t.Fatalf("ChangeStatus error: %v", err)
	}

	if _, _, err := svc.CancelOrder(order.ID); !errors.Is(err, ErrOrderCancelNotAllowed) {
		t.Fatalf("expected ErrOrderCancelNotAllowed, got %v", err)
	}
}

func TestUpdateOrderWhitelist(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / L", 15000, 4500, nil)
	order, err := svc.CreateManualOrder(CreateManualOrderInput{
		CustomerName: "김철수",
		Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateManualOrder error: %v", err)
	}

	updated, err := svc.UpdateOrder(order.ID, map[string]interface{}{
		"memo":   "배송 전 연락 요망",
		"status": constants.OrderStatusSettled, // 화이트리스트 밖 필드는 무시
	})
	if err != nil {
		t.Fatalf("UpdateOrder error: %v", err)
	}
	if updated.Memo != "배송 전 연락 요망" {
		t.Fatalf("unexpected memo: %q", updated.Memo)
	}
	if updated.Status != constants.OrderStatusNew {
		t.Fatalf("status must not change through UpdateOrder, got %s", updated.Status)
	}
}

func TestCountByStatus(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	option := createTestOption(t, db, "커스텀 반팔 티셔츠", "화이트 / L", 15000, 4500, nil)
	for i := 0; i < 2; i++ {
		if _, err := svc.CreateManualOrder(CreateManualOrderInput{
			CustomerName: fmt.Sprintf("고객%d", i),
			Items:        []CreateManualOrderItem{{ProductOptionID: option.ID, Quantity: 1}},
		}); err != nil {
			t.Fatalf("CreateManualOrder error: %v", err)
		}
	}

	counts, err := svc.CountByStatus()
	if err != nil {
		t.Fatalf("CountByStatus error: %v", err)
	}
	if counts[constants.OrderStatusNew] != 2 {
		t.Fatalf("expected 2 NEW orders, got %d", counts[constants.OrderStatusNew])
	}
	// 집계에 없는 상태도 0으로 채워서 돌려준다
	if _, ok := counts[constants.OrderStatusArchived]; !ok {
		t.Fatalf("expected all statuses present in counts")
	}
}
