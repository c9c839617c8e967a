package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSettingServiceTest(t *testing.T) *SettingService {
	t.Helper()
	dsn := fmt.Sprintf("file:setting_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewSettingService(repository.NewSettingRepository(db))
}

func TestSettingUpdateLastWriteWins(t *testing.T) {
	svc := setupSettingServiceTest(t)

	if _, err := svc.Update("unknown_key", map[string]interface{}{"a": 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown key, got %v", err)
	}

	first, err := svc.Update(constants.SettingKeySmartstoreAPIConfig, map[string]interface{}{
		"client_id":     "  first-id  ",
		"client_secret": "first-secret",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if first["client_id"] != "first-id" {
		t.Fatalf("expected trimmed value, got %q", first["client_id"])
	}

	// 마지막 쓰기가 이긴다
	second, err := svc.Update(constants.SettingKeySmartstoreAPIConfig, map[string]interface{}{
		"client_id":     "second-id",
		"client_secret": "second-secret",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if second["client_id"] != "second-id" {
		t.Fatalf("expected second write to win, got %q", second["client_id"])
	}

	stored, err := svc.GetByKey(constants.SettingKeySmartstoreAPIConfig)
	if err != nil {
		t.Fatalf("GetByKey error: %v", err)
	}
	if stored["client_id"] != "second-id" {
		t.Fatalf("expected stored client_id second-id, got %v", stored["client_id"])
	}
}

func TestSettingGetByKeyMissing(t *testing.T) {
	svc := setupSettingServiceTest(t)

	value, err := svc.GetByKey(constants.SettingKeyStoreConfig)
	if err != nil {
		t.Fatalf("GetByKey error: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil for unset key, got %v", value)
	}

	if _, err := svc.GetByKey("unknown_key"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetStoreConfigMergesDefaults(t *testing.T) {
	svc := setupSettingServiceTest(t)

	defaults := map[string]interface{}{
		"store_name":    "기본 스토어",
		"currency":      constants.SiteCurrencyDefault,
		"lead_day_note": "영업일 3일",
	}
	merged, err := svc.GetStoreConfig(defaults)
	if err != nil {
		t.Fatalf("GetStoreConfig error: %v", err)
	}
	if merged["store_name"] != "기본 스토어" {
		t.Fatalf("expected defaults when unset, got %v", merged["store_name"])
	}

	if _, err := svc.Update(constants.SettingKeyStoreConfig, map[string]interface{}{
		"store_name": "티셔츠 공방",
	}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	merged, err = svc.GetStoreConfig(defaults)
	if err != nil {
		t.Fatalf("GetStoreConfig error: %v", err)
	}
	if merged["store_name"] != "티셔츠 공방" {
		t.Fatalf("expected stored value to override default, got %v", merged["store_name"])
	}
	if merged["currency"] != constants.SiteCurrencyDefault {
		t.Fatalf("expected untouched default to remain, got %v", merged["currency"])
	}
}

func TestSmartstoreRequestSyncRequiresConfig(t *testing.T) {
	settingSvc := setupSettingServiceTest(t)
	svc := NewSmartstoreService(settingSvc, nil)

	if err := svc.RequestSync(7); !errors.Is(err, ErrSmartstoreNotConfigured) {
		t.Fatalf("expected ErrSmartstoreNotConfigured, got %v", err)
	}

	if _, err := settingSvc.Update(constants.SettingKeySmartstoreAPIConfig, map[string]interface{}{
		"client_id":     "cid",
		"client_secret": "secret",
	}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	// 설정은 갖췄지만 큐가 꺼져 있으면 등록 불가
	if err := svc.RequestSync(7); !errors.Is(err, ErrQueueUnavailable) {
		t.Fatalf("expected ErrQueueUnavailable, got %v", err)
	}
}
