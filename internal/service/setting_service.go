package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/models"
	"github.com/tshirt-admin/internal/repository"
)

// SettingService 설정 서비스
// 외부 연동 자격 정보는 잘 알려진 키 하나에 마지막 쓰기 우선으로 저장한다.
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 설정 서비스 생성
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetStoreConfig 매장 기본 설정 조회 (기본값 병합)
func (s *SettingService) GetStoreConfig(defaults map[string]interface{}) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	for k, v := range defaults {
		data[k] = v
	}

	setting, err := s.repo.GetByKey(constants.SettingKeyStoreConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return data, nil
	}

	for k, v := range setting.ValueJSON {
		data[k] = v
	}
	return data, nil
}

// GetByKey 설정 조회
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	if !isKnownSettingKey(key) {
		return nil, ErrNotFound
	}
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 설정 저장 (마지막 쓰기 우선)
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	if !isKnownSettingKey(key) {
		return nil, ErrNotFound
	}
	normalized := normalizeSettingValue(value)

	setting, err := s.repo.Upsert(key, normalized)
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

func isKnownSettingKey(key string) bool {
	switch key {
	case constants.SettingKeyDriveAPIConfig,
		constants.SettingKeySmartstoreAPIConfig,
		constants.SettingKeyStoreConfig:
		return true
	default:
		return false
	}
}

// normalizeSettingValue 문자열 값 공백 정리
func normalizeSettingValue(value map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(value))
	for k, v := range value {
		if str, ok := v.(string); ok {
			normalized[k] = strings.TrimSpace(str)
			continue
		}
		normalized[k] = v
	}
	return normalized
}

func parseSettingInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		if f, err := v.Float64(); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("invalid json number")
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}
