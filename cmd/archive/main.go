package main

import (
	"errors"
	"flag"
	"time"

	"github.com/tshirt-admin/internal/config"
	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/logger"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"
	"github.com/tshirt-admin/internal/service"
)

// 정산 완료(SETTLED) 상태로 일정 기간 머문 주문을 보관(ARCHIVED) 상태로 일괄 이동하는
// 배치 도구. 크론으로 주기 실행하거나 수동으로 돌린다.
func main() {
	days := flag.Int("days", 0, "정산 완료 후 보관 전환까지 대기할 일수 (0이면 설정값 사용)")
	dryRun := flag.Bool("dry-run", false, "대상만 출력하고 상태는 바꾸지 않음")
	flag.Parse()

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

	waitDays := *days
	if waitDays <= 0 {
		waitDays = cfg.Archive.RecentWindowDays
	}
	if waitDays < 0 {
		waitDays = 0
	}
	cutoff := time.Now().AddDate(0, 0, -waitDays)

	ids, err := settledOrderIDsBefore(cutoff)
	if err != nil {
		stdLog.Fatalf("보관 대상 조회 실패: %v", err)
	}
	if len(ids) == 0 {
		stdLog.Printf("보관 대상 없음 (기준일: %s)", cutoff.Format("2006-01-02"))
		return
	}

	stdLog.Printf("보관 대상 %d건 (기준일: %s)", len(ids), cutoff.Format("2006-01-02"))
	if *dryRun {
		for _, id := range ids {
			stdLog.Printf("대상 주문 ID: %d", id)
		}
		return
	}

	orderRepo := repository.NewOrderRepository(models.DB)
	orderService := service.NewOrderService(
		orderRepo,
		repository.NewProductRepository(models.DB),
		repository.NewProductOptionRepository(models.DB),
		service.NewCustomerService(orderRepo),
		nil,
		cfg.Order,
	)

	archived, err := orderService.ArchiveOrders(ids)
	if err != nil && !errors.Is(err, service.ErrNoOrdersSelected) {
		stdLog.Fatalf("보관 처리 실패: %v", err)
	}
	stdLog.Printf("보관 처리 완료: %d건", archived)
}

// settledOrderIDsBefore 기준 시각 이전에 마지막으로 갱신된 SETTLED 주문 ID를 조회한다.
func settledOrderIDsBefore(cutoff time.Time) ([]uint, error) {
	var ids []uint
	err := models.DB.Model(&models.Order{}).
		Where("status = ? AND updated_at < ?", constants.OrderStatusSettled, cutoff).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}
