package service

import (
	"time"

	"github.com/libris-next/internal/config"
	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/logger"
	"github.com/libris-next/internal/models"
	"github.com/libris-next/internal/queue"
	"github.com/libris-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartService 购物车服务。购物车即用户当前的 pending 订单。
type CartService struct {
	cfg          *config.Config
	purchaseRepo repository.PurchaseRepository
	bookRepo     repository.BookRepository
	queueClient  *queue.Client
}

// NewCartService 创建购物车服务
func NewCartService(cfg *config.Config, purchaseRepo repository.PurchaseRepository, bookRepo repository.BookRepository, queueClient *queue.Client) *CartService {
	return &CartService{
		cfg:          cfg,
		purchaseRepo: purchaseRepo,
		bookRepo:     bookRepo,
		queueClient:  queueClient,
	}
}

// GetCart 获取用户购物车（pending 订单），不存在时返回 nil
func (s *CartService) GetCart(userID uint) (*models.Purchase, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	return s.purchaseRepo.GetPendingByUser(userID)
}

// AddToCart 将有库存的图书加入购物车：懒创建 pending 订单，
// 已存在的订单项数量 +1，否则以数量 1 创建，随后重算订单总额。
func (s *CartService) AddToCart(userID, bookID uint) (*models.Purchase, error) {
	if userID == 0 || bookID == 0 {
		return nil, ErrInvalidCartItem
	}
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	// 无库存的图书在加入时即拒绝，而不是等到结算才失败
	if !book.InStock() {
		return nil, ErrBookOutOfStock
	}

	var purchaseID uint
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		purchaseRepo := s.purchaseRepo.WithTx(tx)

		purchase, err := s.getOrCreatePending(purchaseRepo, userID)
		if err != nil {
			return err
		}
		purchaseID = purchase.ID

		item, err := purchaseRepo.GetItem(purchase.ID, bookID)
		if err != nil {
			return err
		}
		if item == nil {
			now := time.Now()
			item = &models.PurchaseItem{
				PurchaseID: purchase.ID,
				BookID:     bookID,
				Quantity:   1,
				UnitPrice:  book.Price,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := purchaseRepo.CreateItem(item); err != nil {
				return err
			}
		} else {
			item.Quantity++
			item.UpdatedAt = time.Now()
			if err := purchaseRepo.SaveItem(item); err != nil {
				return err
			}
		}

		return recomputeTotal(purchaseRepo, purchase.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.purchaseRepo.GetByID(purchaseID)
}

// RemoveFromCart 从购物车删除图书并重算总额
func (s *CartService) RemoveFromCart(userID, bookID uint) (*models.Purchase, error) {
	if userID == 0 || bookID == 0 {
		return nil, ErrInvalidCartItem
	}
	purchase, err := s.purchaseRepo.GetPendingByUser(userID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		purchaseRepo := s.purchaseRepo.WithTx(tx)
		if err := purchaseRepo.DeleteItem(purchase.ID, bookID); err != nil {
			return err
		}
		return recomputeTotal(purchaseRepo, purchase.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.purchaseRepo.GetByID(purchase.ID)
}

// UpdateQuantities 按 bookID→数量 批量设置订单项数量并重算总额。
// 数量必须 ≥1；购物车中不存在的图书直接忽略。
func (s *CartService) UpdateQuantities(userID uint, quantities map[uint]int) (*models.Purchase, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	for _, qty := range quantities {
		if qty < 1 {
			return nil, ErrInvalidQuantity
		}
	}
	purchase, err := s.purchaseRepo.GetPendingByUser(userID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		purchaseRepo := s.purchaseRepo.WithTx(tx)
		for bookID, qty := range quantities {
			item, err := purchaseRepo.GetItem(purchase.ID, bookID)
			if err != nil {
				return err
			}
			if item == nil {
				continue
			}
			item.Quantity = qty
			item.UpdatedAt = time.Now()
			if err := purchaseRepo.SaveItem(item); err != nil {
				return err
			}
		}
		return recomputeTotal(purchaseRepo, purchase.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.purchaseRepo.GetByID(purchase.ID)
}

// getOrCreatePending 获取或创建用户的 pending 订单。
// 新订单带过期时间，并推送延迟取消任务（队列未启用时跳过）。
func (s *CartService) getOrCreatePending(purchaseRepo repository.PurchaseRepository, userID uint) (*models.Purchase, error) {
	purchase, err := purchaseRepo.GetPendingByUser(userID)
	if err != nil {
		return nil, err
	}
	if purchase != nil {
		return purchase, nil
	}

	now := time.Now()
	ttl := s.pendingTTL()
	expiresAt := now.Add(ttl)
	purchase = &models.Purchase{
		UserID:    userID,
		Status:    constants.PurchaseStatusPending,
		ExpiresAt: &expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}

	if s.queueClient.Enabled() {
		payload := queue.PurchaseTimeoutCancelPayload{PurchaseID: purchase.ID}
		if err := s.queueClient.EnqueuePurchaseTimeoutCancel(payload, ttl); err != nil {
			logger.Warnw("cart_enqueue_timeout_cancel_failed", "purchase_id", purchase.ID, "error", err)
		}
	}
	return purchase, nil
}

func (s *CartService) pendingTTL() time.Duration {
	minutes := 0
	if s.cfg != nil {
		minutes = s.cfg.Purchase.PendingExpireMinutes
	}
	if minutes <= 0 {
		minutes = 60 * 24
	}
	return time.Duration(minutes) * time.Minute
}

// recomputeTotal 以当前订单项重算订单总额并持久化。
func recomputeTotal(purchaseRepo repository.PurchaseRepository, purchaseID uint) error {
	items, err := purchaseRepo.ListItems(purchaseID)
	if err != nil {
		return err
	}
	total := models.NewMoneyFromDecimal(decimal.Zero)
	for _, item := range items {
		total = total.AddMoney(item.Subtotal())
	}
	return purchaseRepo.UpdateTotal(purchaseID, total)
}
