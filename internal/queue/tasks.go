package queue

import (
	"encoding/json"

	"github.com/libris-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPurchaseTimeoutCancel 超时取消任务
	TaskPurchaseTimeoutCancel = constants.TaskPurchaseTimeoutCancel
)

// PurchaseTimeoutCancelPayload 超时取消任务载荷
type PurchaseTimeoutCancelPayload struct {
	PurchaseID uint `json:"purchase_id"`
}

// NewPurchaseTimeoutCancelTask 创建超时取消任务
func NewPurchaseTimeoutCancelTask(payload PurchaseTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPurchaseTimeoutCancel, body), nil
}
