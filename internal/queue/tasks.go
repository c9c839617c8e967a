package queue

import (
	"encoding/json"

	"github.com/tshirt-admin/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderArchive 정산 완료 주문 일괄 보관 작업
	TaskOrderArchive = constants.TaskOrderArchive
	// TaskSmartstoreSync 스마트스토어 주문 동기화 작업
	TaskSmartstoreSync = constants.TaskSmartstoreSync
	// TaskCompletionNotify 제작 완료 사진 알림 작업
	TaskCompletionNotify = constants.TaskCompletionNotify
)

// OrderArchivePayload 주문 보관 작업 페이로드
type OrderArchivePayload struct {
	OrderIDs []uint `json:"order_ids"`
}

// SmartstoreSyncPayload 스마트스토어 동기화 작업 페이로드
type SmartstoreSyncPayload struct {
	SinceDays int `json:"since_days"`
}

// CompletionNotifyPayload 제작 완료 알림 작업 페이로드
type CompletionNotifyPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderArchiveTask 주문 보관 작업 생성
func NewOrderArchiveTask(payload OrderArchivePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderArchive, body), nil
}

// NewSmartstoreSyncTask 스마트스토어 동기화 작업 생성
func NewSmartstoreSyncTask(payload SmartstoreSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSmartstoreSync, body), nil
}

// NewCompletionNotifyTask 제작 완료 알림 작업 생성
func NewCompletionNotifyTask(payload CompletionNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCompletionNotify, body), nil
}
