package service

import (
	"time"

	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/models"
	"github.com/libris-next/internal/repository"

	"gorm.io/gorm"
)

// PurchaseService 订单结算服务
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
	bookRepo     repository.BookRepository
}

// NewPurchaseService 创建订单结算服务
func NewPurchaseService(purchaseRepo repository.PurchaseRepository, bookRepo repository.BookRepository) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		bookRepo:     bookRepo,
	}
}

// Checkout 结算用户的 pending 订单。
// 整个结算在一个事务内完成：逐项条件扣减库存，任意一项库存不足
// 即整体回滚并返回 InsufficientStockError，订单保持 pending 可修改重试；
// 全部扣减成功后订单由 pending 条件转为 completed，
// 状态已被并发改写时返回 ErrPurchaseNotPending 并回滚扣减。
// 条件扣减保证并发抢购最后一件库存时只有一个事务成功。
func (s *PurchaseService) Checkout(userID uint) (*models.Purchase, error) {
	if userID == 0 {
		return nil, ErrPurchaseNotFound
	}
	pending, err := s.purchaseRepo.GetPendingByUser(userID)
	if err != nil {
		return nil, err
	}
	if pending == nil || len(pending.Items) == 0 {
		return nil, ErrEmptyCart
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		purchaseRepo := s.purchaseRepo.WithTx(tx)
		bookRepo := s.bookRepo.WithTx(tx)

		items, err := purchaseRepo.ListItems(pending.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		for _, item := range items {
			affected, err := bookRepo.DecrementStock(item.BookID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				stockErr := &InsufficientStockError{BookID: item.BookID}
				if book, err := bookRepo.GetByID(item.BookID); err == nil && book != nil {
					stockErr.Title = book.Title
					stockErr.Available = book.Quantity
				}
				return stockErr
			}
		}

		// 状态转移以 pending 为前提，0 行说明订单已被并发结算或取消，
		// 整体回滚避免重复扣减库存
		now := time.Now()
		affected, err := purchaseRepo.TransitionStatus(pending.ID, constants.PurchaseStatusPending, constants.PurchaseStatusCompleted, map[string]interface{}{
			"completed_at": now,
			"expires_at":   nil,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrPurchaseNotPending
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.purchaseRepo.GetByID(pending.ID)
}

// GetByIDAndUser 获取用户订单详情
func (s *PurchaseService) GetByIDAndUser(id, userID uint) (*models.Purchase, error) {
	if id == 0 || userID == 0 {
		return nil, ErrPurchaseNotFound
	}
	purchase, err := s.purchaseRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

// ListByUser 用户历史订单列表
func (s *PurchaseService) ListByUser(userID uint, page, pageSize int) ([]models.Purchase, int64, error) {
	return s.purchaseRepo.List(repository.PurchaseListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// CancelExpiredPurchase 取消超时未结算的 pending 订单。
// 返回是否发生了取消。订单已结算或已取消时为空操作；
// 取消与结算竞争时以数据库中的当前状态为准。
func (s *PurchaseService) CancelExpiredPurchase(purchaseID uint) (bool, error) {
	if purchaseID == 0 {
		return false, ErrPurchaseNotFound
	}
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return false, err
	}
	if purchase == nil {
		return false, ErrPurchaseNotFound
	}
	if purchase.Status != constants.PurchaseStatusPending {
		return false, nil
	}
	if purchase.ExpiresAt == nil || purchase.ExpiresAt.After(time.Now()) {
		return false, nil
	}

	now := time.Now()
	affected, err := s.purchaseRepo.TransitionStatus(purchase.ID, constants.PurchaseStatusPending, constants.PurchaseStatusCanceled, map[string]interface{}{
		"canceled_at": now,
	})
	if err != nil {
		return false, err
	}
	// 0 行说明用户在读取后抢先完成了结算，保持 completed 不动
	if affected == 0 {
		return false, nil
	}
	return true, nil
}
