//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB PostgreSQL 통합 테스트 DB 초기화
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.ProductOption{},
		&models.Product{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductOption{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresOrderSearchCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewOrderRepository(db)

	orders := []models.Order{
		{ExternalOrderID: "ts-000101", Status: constants.OrderStatusNew, CustomerName: "김철수", CustomerID: "김철수"},
		{ExternalOrderID: "TS-000102", Status: constants.OrderStatusNew, CustomerName: "이영희", CustomerID: "이영희"},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	// ILIKE 경로라 주문번호 대소문자가 달라도 조회된다
	rows, total, err := repo.List(OrderListFilter{Page: 1, PageSize: 10, Search: "TS-000101"})
	if err != nil {
		t.Fatalf("order search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("order search want 1 got total=%d len=%d", total, len(rows))
	}
	if rows[0].CustomerName != "김철수" {
		t.Fatalf("order search customer want 김철수 got %s", rows[0].CustomerName)
	}

	rows, total, err = repo.List(OrderListFilter{Page: 1, PageSize: 10, Search: "영희"})
	if err != nil {
		t.Fatalf("customer name search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("customer name search want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresMonthlyAggregation(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewFinanceRepository(db)

	march := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	april := time.Date(2025, 4, 2, 9, 0, 0, 0, time.Local)
	orders := []models.Order{
		{ExternalOrderID: "TS-000201", Status: constants.OrderStatusCompleted,
			CustomerName: "김철수", PaymentDate: &march, TotalOrderAmount: models.NewMoneyFromInt(50_000)},
		{ExternalOrderID: "TS-000202", Status: constants.OrderStatusSettled,
			CustomerName: "이영희", PaymentDate: &march, TotalOrderAmount: models.NewMoneyFromInt(30_000)},
		{ExternalOrderID: "TS-000203", Status: constants.OrderStatusArchived,
			CustomerName: "박민준", PaymentDate: &april, TotalOrderAmount: models.NewMoneyFromInt(20_000)},
		{ExternalOrderID: "TS-000204", Status: constants.OrderStatusNew, CustomerName: "최지우"},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	// to_char 월 표현식 경로 검증
	rows, err := repo.SumOrdersByMonth(constants.ClosedOutStatuses, nil, nil)
	if err != nil {
		t.Fatalf("sum orders by month failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("monthly rows want 2 got %d", len(rows))
	}
	if rows[0].Month != "2025-03" || rows[0].OrderCount != 2 || rows[0].Revenue.IntPart() != 80_000 {
		t.Fatalf("march row mismatch: %+v", rows[0])
	}
	if rows[1].Month != "2025-04" || rows[1].OrderCount != 1 || rows[1].Revenue.IntPart() != 20_000 {
		t.Fatalf("april row mismatch: %+v", rows[1])
	}
}
