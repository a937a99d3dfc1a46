package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/libris-next/internal/logger"
	"github.com/libris-next/internal/provider"
	"github.com/libris-next/internal/queue"
	"github.com/libris-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPurchaseTimeoutCancel, c.handlePurchaseTimeoutCancel)
}

func (c *Consumer) handlePurchaseTimeoutCancel(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_purchase_timeout_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PurchaseTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_purchase_timeout_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.PurchaseID == 0 {
		logger.Debugw("worker_purchase_timeout_cancel_skip_invalid_payload", "purchase_id", payload.PurchaseID)
		return nil
	}
	if c.PurchaseService == nil {
		logger.Warnw("worker_purchase_timeout_cancel_skip_service_nil", "purchase_id", payload.PurchaseID)
		return nil
	}
	canceled, err := c.PurchaseService.CancelExpiredPurchase(payload.PurchaseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseNotFound):
			logger.Debugw("worker_purchase_timeout_cancel_skip_not_found", "purchase_id", payload.PurchaseID)
			return nil
		default:
			logger.Warnw("worker_purchase_timeout_cancel_failed", "purchase_id", payload.PurchaseID, "error", err)
			return err
		}
	}
	if canceled {
		logger.Infow("worker_purchase_timeout_canceled", "purchase_id", payload.PurchaseID)
	}
	return nil
}
