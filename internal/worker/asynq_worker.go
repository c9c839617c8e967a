package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tshirt-admin/internal/logger"
	"github.com/tshirt-admin/internal/provider"
	"github.com/tshirt-admin/internal/queue"
	"github.com/tshirt-admin/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 비동기 작업 소비자
type Consumer struct {
	*provider.Container
}

// NewConsumer 소비자 생성
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 소비자 핸들러 등록
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderArchive, c.handleOrderArchive)
	mux.HandleFunc(queue.TaskSmartstoreSync, c.handleSmartstoreSync)
	mux.HandleFunc(queue.TaskCompletionNotify, c.handleCompletionNotify)
}

func (c *Consumer) handleOrderArchive(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_archive_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderArchivePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_archive_unmarshal_failed", "error", err)
		return err
	}
	if len(payload.OrderIDs) == 0 {
		logger.Debugw("worker_order_archive_skip_empty_payload")
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_archive_skip_order_service_nil", "order_count", len(payload.OrderIDs))
		return nil
	}
	archived, err := c.OrderService.ArchiveOrders(payload.OrderIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoOrdersSelected):
			logger.Debugw("worker_order_archive_skip_no_orders", "order_count", len(payload.OrderIDs))
			return nil
		default:
			logger.Warnw("worker_order_archive_failed", "order_count", len(payload.OrderIDs), "error", err)
			return err
		}
	}
	logger.Debugw("worker_order_archive_done", "requested", len(payload.OrderIDs), "archived", archived)
	return nil
}

func (c *Consumer) handleSmartstoreSync(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_smartstore_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SmartstoreSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_smartstore_sync_unmarshal_failed", "error", err)
		return err
	}
	if c.SmartstoreService == nil {
		logger.Warnw("worker_smartstore_sync_skip_service_nil")
		return nil
	}
	if err := c.SmartstoreService.Sync(ctx, payload.SinceDays); err != nil {
		switch {
		case errors.Is(err, service.ErrSmartstoreNotConfigured):
			logger.Debugw("worker_smartstore_sync_skip_not_configured", "since_days", payload.SinceDays)
			return nil
		default:
			logger.Warnw("worker_smartstore_sync_failed", "since_days", payload.SinceDays, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleCompletionNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_completion_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CompletionNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_completion_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_completion_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_completion_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_completion_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	// TODO: 알림톡/문자 발송 연동이 붙으면 실제 발송으로 교체한다.
	logger.Infow("worker_completion_notify",
		"order_id", order.ID,
		"external_order_id", order.ExternalOrderID,
		"customer_name", order.CustomerName,
		"tracking_number", order.TrackingNumber,
	)
	return nil
}
