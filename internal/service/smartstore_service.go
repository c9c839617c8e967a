package service

import (
	"context"
	"strings"

	"github.com/tshirt-admin/internal/constants"
	"github.com/tshirt-admin/internal/logger"
	"github.com/tshirt-admin/internal/queue"
)

// SmartstoreService 스마트스토어 주문 수집 서비스
// 실제 API 호출은 아직 붙어 있지 않다. 설정 검증과 작업 등록까지만 담당한다.
type SmartstoreService struct {
	settingService *SettingService
	queueClient    *queue.Client
}

// NewSmartstoreService 스마트스토어 서비스 생성
func NewSmartstoreService(settingService *SettingService, queueClient *queue.Client) *SmartstoreService {
	return &SmartstoreService{
		settingService: settingService,
		queueClient:    queueClient,
	}
}

// RequestSync 스마트스토어 동기화 작업 등록
func (s *SmartstoreService) RequestSync(sinceDays int) error {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	if err := s.ensureConfigured(); err != nil {
		return err
	}
	if !s.queueClient.Enabled() {
		return ErrQueueUnavailable
	}
	return s.queueClient.EnqueueSmartstoreSync(queue.SmartstoreSyncPayload{SinceDays: sinceDays})
}

// Sync 동기화 작업 본체 (워커에서 호출)
// TODO: 커머스 API 주문 조회 연동이 준비되면 수집 로직을 붙인다
func (s *SmartstoreService) Sync(_ context.Context, sinceDays int) error {
	if err := s.ensureConfigured(); err != nil {
		return err
	}
	logger.Infow("스마트스토어 동기화 건너뜀 (API 연동 미구현)", "since_days", sinceDays)
	return nil
}

func (s *SmartstoreService) ensureConfigured() error {
	value, err := s.settingService.GetByKey(constants.SettingKeySmartstoreAPIConfig)
	if err != nil {
		return err
	}
	if value == nil {
		return ErrSmartstoreNotConfigured
	}
	clientID, _ := value["client_id"].(string)
	clientSecret, _ := value["client_secret"].(string)
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		return ErrSmartstoreNotConfigured
	}
	return nil
}
