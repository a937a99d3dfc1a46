package repository

import (
	"testing"
	"time"

	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/models"
)

func TestTransitionStatusGuardsCurrentStatus(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewPurchaseRepository(db)

	purchase := &models.Purchase{
		UserID: 1,
		Status: constants.PurchaseStatusPending,
	}
	if err := repo.Create(purchase); err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}

	now := time.Now()
	affected, err := repo.TransitionStatus(purchase.ID, constants.PurchaseStatusPending, constants.PurchaseStatusCompleted, map[string]interface{}{
		"completed_at": now,
	})
	if err != nil {
		t.Fatalf("transition to completed failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("pending purchase should transition, affected want 1 got %d", affected)
	}

	// 已完成的订单不可再被取消路径改写
	affected, err = repo.TransitionStatus(purchase.ID, constants.PurchaseStatusPending, constants.PurchaseStatusCanceled, map[string]interface{}{
		"canceled_at": now,
	})
	if err != nil {
		t.Fatalf("transition attempt failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("completed purchase must not transition, affected want 0 got %d", affected)
	}

	got, err := repo.GetByID(purchase.ID)
	if err != nil {
		t.Fatalf("reload purchase failed: %v", err)
	}
	if got.Status != constants.PurchaseStatusCompleted {
		t.Fatalf("status want completed got %s", got.Status)
	}
	if got.CanceledAt != nil {
		t.Fatalf("canceled_at should stay empty, got %v", got.CanceledAt)
	}

	// 重复结算同样只有一次生效
	affected, err = repo.TransitionStatus(purchase.ID, constants.PurchaseStatusPending, constants.PurchaseStatusCompleted, nil)
	if err != nil {
		t.Fatalf("transition attempt failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("repeat completion must not transition, affected want 0 got %d", affected)
	}
}
