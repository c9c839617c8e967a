package main

import (
	"flag"
	"os"
	"strings"
	"syscall"

	"github.com/tshirt-admin/internal/app"
	"github.com/tshirt-admin/internal/config"
	"github.com/tshirt-admin/internal/logger"
	"github.com/tshirt-admin/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	// 설정 로드
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Fatalf("JWT secret 이 약하거나 기본값입니다. 운영 환경에서는 강한 난수 키를 설정해 주세요")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) {
		stdLog.Printf("경고: JWT secret 이 약하거나 기본값입니다. 운영 환경에서는 교체를 권장합니다")
	}

	// 데이터베이스 초기화
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("데이터베이스 초기화 실패: %v", err)
	}

	// 테이블 자동 마이그레이션
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("데이터베이스 마이그레이션 실패: %v", err)
	}

	// 기본 관리자 계정 초기화
	defaultAdminUser := os.Getenv("TS_DEFAULT_ADMIN_USERNAME")
	defaultAdminPass := os.Getenv("TS_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("경고: TS_DEFAULT_ADMIN_PASSWORD 가 설정되지 않아 기본 관리자 초기화를 건너뜁니다")
	} else if err := models.InitDefaultAdmin(defaultAdminUser, defaultAdminPass); err != nil {
		stdLog.Printf("경고: 기본 관리자 초기화 실패: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "실행 모드: all (기본), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("서비스 실행 실패: %v", err)
	}
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
