package main

import (
	"time"

	"github.com/tshirt-admin/internal/config"
	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/logger"
	"github.com/tshirt-admin/internal/models"
)

func main() {
	// 데이터베이스 연결
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("데이터베이스 연결 실패: %v", err)
	}

	// 자동 마이그레이션
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("데이터베이스 마이그레이션 실패: %v", err)
	}

	seedProducts(stdLog)
	seedOrders(stdLog)
	seedLedgers(stdLog)

	stdLog.Printf("시드 데이터 입력 완료")
}

type stdLogger interface {
	Printf(format string, v ...interface{})
	Fatalf(format string, v ...interface{})
}

func stockOf(n int) *int {
	return &n
}

func seedProducts(stdLog stdLogger) {
	products := []models.Product{
		{
			Name:        "커스텀 반팔 티셔츠",
			Category:    constants.ProductCategoryGoods,
			Description: "DTF 프린팅 커스텀 반팔 티셔츠. 시안 확정 후 제작.",
			IsActive:    true,
			SortOrder:   1,
			Options: []models.ProductOption{
				{OptionDetail: "화이트 / S", Price: models.NewMoneyFromInt(15000), Cost: models.NewMoneyFromInt(4500), TrackInventory: true, StockQuantity: stockOf(30), IsActive: true, SortOrder: 1},
				{OptionDetail: "화이트 / M", Price: models.NewMoneyFromInt(15000), Cost: models.NewMoneyFromInt(4500), TrackInventory: true, StockQuantity: stockOf(42), IsActive: true, SortOrder: 2},
				{OptionDetail: "화이트 / L", Price: models.NewMoneyFromInt(15000), Cost: models.NewMoneyFromInt(4500), TrackInventory: true, StockQuantity: stockOf(38), IsActive: true, SortOrder: 3},
				{OptionDetail: "블랙 / M", Price: models.NewMoneyFromInt(16000), Cost: models.NewMoneyFromInt(5000), TrackInventory: true, StockQuantity: stockOf(25), IsActive: true, SortOrder: 4},
				{OptionDetail: "블랙 / L", Price: models.NewMoneyFromInt(16000), Cost: models.NewMoneyFromInt(5000), TrackInventory: true, StockQuantity: stockOf(20), IsActive: true, SortOrder: 5},
			},
		},
		{
			Name:        "커스텀 후드티",
			Category:    constants.ProductCategoryGoods,
			Description: "기모 커스텀 후드티. 단체 주문 환영.",
			IsActive:    true,
			SortOrder:   2,
			Options: []models.ProductOption{
				{OptionDetail: "그레이 / M", Price: models.NewMoneyFromInt(32000), Cost: models.NewMoneyFromInt(12000), TrackInventory: true, StockQuantity: stockOf(15), IsActive: true, SortOrder: 1},
				{OptionDetail: "그레이 / L", Price: models.NewMoneyFromInt(32000), Cost: models.NewMoneyFromInt(12000), TrackInventory: true, StockQuantity: stockOf(12), IsActive: true, SortOrder: 2},
				{OptionDetail: "네이비 / L", Price: models.NewMoneyFromInt(33000), Cost: models.NewMoneyFromInt(12500), TrackInventory: true, StockQuantity: stockOf(8), IsActive: true, SortOrder: 3},
			},
		},
		{
			Name:        "디자인 시안 추가 작업",
			Category:    constants.ProductCategoryGeneral,
			Description: "시안 수정 3회 초과 시 추가 작업비.",
			IsActive:    true,
			SortOrder:   3,
			Options: []models.ProductOption{
				// 작업비 항목은 재고 개념이 없으므로 무제한으로 둔다.
				{OptionDetail: "기본", Price: models.NewMoneyFromInt(10000), Cost: models.NewMoneyFromInt(0), TrackInventory: false, IsActive: true, SortOrder: 1},
			},
		},
	}

	for i := range products {
		product := &products[i]
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err == nil {
			stdLog.Printf("상품 이미 존재: %s", product.Name)
			continue
		}
		if err := models.DB.Create(product).Error; err != nil {
			stdLog.Printf("상품 생성 실패 %s: %v", product.Name, err)
			continue
		}
		stdLog.Printf("상품 생성: %s (옵션 %d개)", product.Name, len(product.Options))
	}
}

func seedOrders(stdLog stdLogger) {
	var count int64
	models.DB.Model(&models.Order{}).Count(&count)
	if count > 0 {
		stdLog.Printf("주문 데이터 이미 존재 (%d건), 건너뜀", count)
		return
	}

	var options []models.ProductOption
	if err := models.DB.Preload("Product").Order("id ASC").Limit(4).Find(&options).Error; err != nil || len(options) < 2 {
		stdLog.Printf("시드 주문에 사용할 상품 옵션이 부족합니다")
		return
	}

	now := time.Now()
	paymentDate := func(daysAgo int) *time.Time {
		t := now.AddDate(0, 0, -daysAgo)
		return &t
	}

	makeItem := func(opt models.ProductOption, qty int) models.OrderItem {
		optID := opt.ID
		return models.OrderItem{
			ProductOptionID: &optID,
			ProductName:     opt.Product.Name,
			OptionDetail:    opt.OptionDetail,
			Quantity:        qty,
			UnitPrice:       opt.Price,
			UnitCost:        opt.Cost,
		}
	}

	orders := []models.Order{
		{
			ExternalOrderID:  "TS-000001",
			Source:           models.OrderSourceManual,
			Status:           constants.OrderStatusNew,
			CustomerID:       "김철수-001",
			CustomerName:     "김철수",
			CustomerPhone:    "010-1234-5678",
			ShippingAddress:  "서울시 마포구 월드컵로 12",
			PaymentDate:      paymentDate(1),
			ShippingCost:     models.NewMoneyFromInt(3000),
			TotalOrderAmount: models.NewMoneyFromInt(33000),
			Items:            []models.OrderItem{makeItem(options[0], 2)},
		},
		{
			ExternalOrderID:  "TS-000002",
			Source:           models.OrderSourceManual,
			Status:           constants.OrderStatusConsulting,
			CustomerID:       "이영희-001",
			CustomerName:     "이영희",
			CustomerPhone:    "010-2345-6789",
			ShippingAddress:  "경기도 성남시 분당구 판교역로 235",
			PaymentDate:      paymentDate(3),
			ShippingCost:     models.NewMoneyFromInt(3000),
			TotalOrderAmount: models.NewMoneyFromInt(51000),
			Memo:             "로고 시안 협의 중",
			Items:            []models.OrderItem{makeItem(options[1], 3)},
		},
		{
			ExternalOrderID:  "TS-000003",
			Source:           models.OrderSourceSmartstore,
			Status:           constants.OrderStatusCompleted,
			CustomerID:       "박민수-001",
			CustomerName:     "박민수",
			CustomerPhone:    "010-3456-7890",
			ShippingAddress:  "부산시 해운대구 센텀중앙로 45",
			PaymentDate:      paymentDate(10),
			ShippingCost:     models.NewMoneyFromInt(3000),
			TotalOrderAmount: models.NewMoneyFromInt(19000),
			TrackingNumber:   "1234-5678-9012",
			Items:            []models.OrderItem{makeItem(options[0], 1)},
		},
	}

	for i := range orders {
		order := &orders[i]
		if err := models.DB.Create(order).Error; err != nil {
			stdLog.Printf("주문 생성 실패 %s: %v", order.ExternalOrderID, err)
			continue
		}
		stdLog.Printf("주문 생성: %s (%s)", order.ExternalOrderID, order.Status)
	}
}

func seedLedgers(stdLog stdLogger) {
	var expenseCount int64
	models.DB.Model(&models.Expense{}).Count(&expenseCount)
	if expenseCount == 0 {
		expenses := []models.Expense{
			{ExpenseDate: time.Now().AddDate(0, 0, -7), Category: constants.ExpenseCategoryShipping, Description: "택배 발송비", Amount: models.NewMoneyFromInt(3500), Quantity: 12},
			{ExpenseDate: time.Now().AddDate(0, 0, -5), Category: constants.ExpenseCategoryAdvertising, Description: "키워드 광고", Amount: models.NewMoneyFromInt(50000), Quantity: 1},
			{ExpenseDate: time.Now().AddDate(0, 0, -2), Category: constants.ExpenseCategoryMaterials, Description: "포장 비닐", Amount: models.NewMoneyFromInt(200), Quantity: 100},
		}
		for i := range expenses {
			if err := models.DB.Create(&expenses[i]).Error; err != nil {
				stdLog.Printf("지출 생성 실패: %v", err)
			}
		}
		stdLog.Printf("지출 %d건 생성", len(expenses))
	} else {
		stdLog.Printf("지출 데이터 이미 존재 (%d건), 건너뜀", expenseCount)
	}

	var purchaseCount int64
	models.DB.Model(&models.Purchase{}).Count(&purchaseCount)
	if purchaseCount == 0 {
		purchases := []models.Purchase{
			{PurchaseDate: time.Now().AddDate(0, 0, -14), Category: constants.PurchaseCategoryTShirt, ItemName: "30수 반팔 화이트", Quantity: 50, UnitCost: models.NewMoneyFromInt(4500), TotalAmount: models.NewMoneyFromInt(225000)},
			{PurchaseDate: time.Now().AddDate(0, 0, -14), Category: constants.PurchaseCategoryHoodie, ItemName: "기모 후드 그레이", Quantity: 20, UnitCost: models.NewMoneyFromInt(12000), TotalAmount: models.NewMoneyFromInt(240000)},
			{PurchaseDate: time.Now().AddDate(0, 0, -6), Category: constants.PurchaseCategoryInk, ItemName: "DTF 잉크 세트", Quantity: 2, UnitCost: models.NewMoneyFromInt(85000), TotalAmount: models.NewMoneyFromInt(170000)},
		}
		for i := range purchases {
			if err := models.DB.Create(&purchases[i]).Error; err != nil {
				stdLog.Printf("매입 생성 실패: %v", err)
			}
		}
		stdLog.Printf("매입 %d건 생성", len(purchases))
	} else {
		stdLog.Printf("매입 데이터 이미 존재 (%d건), 건너뜀", purchaseCount)
	}
}
