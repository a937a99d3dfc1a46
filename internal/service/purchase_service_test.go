package service

import (
	"errors"
	"testing"
	"time"

	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/models"
	"github.com/libris-next/internal/repository"

	"gorm.io/gorm"
)

func newTestPurchaseService(db *gorm.DB) *PurchaseService {
	return NewPurchaseService(
		repository.NewPurchaseRepository(db),
		repository.NewBookRepository(db),
	)
}

func reloadBook(t *testing.T, db *gorm.DB, id uint) *models.Book {
	t.Helper()
	var book models.Book
	if err := db.First(&book, id).Error; err != nil {
		t.Fatalf("reload book failed: %v", err)
	}
	return &book
}

func TestCheckoutCompletesPurchase(t *testing.T) {
	db := setupServiceDB(t)
	cartSvc := newTestCartService(db)
	svc := newTestPurchaseService(db)

	book := createTestBook(t, db, "A Wizard of Earthsea", 3, "11.00")
	if _, err := cartSvc.AddToCart(1, book.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := cartSvc.AddToCart(1, book.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	purchase, err := svc.Checkout(1)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if purchase.Status != constants.PurchaseStatusCompleted {
		t.Fatalf("status want completed got %s", purchase.Status)
	}
	if purchase.CompletedAt == nil {
		t.Fatal("completed_at should be set")
	}
	if purchase.ExpiresAt != nil {
		t.Fatalf("expires_at should be cleared, got %v", purchase.ExpiresAt)
	}
	assertTotal(t, purchase, "22.00")

	if got := reloadBook(t, db, book.ID).Quantity; got != 1 {
		t.Fatalf("stock want 1 got %d", got)
	}

	// 结算后购物车为空
	cart, err := cartSvc.GetCart(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if cart != nil {
		t.Fatalf("cart should be empty after checkout, got %+v", cart)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := setupServiceDB(t)
	cartSvc := newTestCartService(db)
	svc := newTestPurchaseService(db)

	plenty := createTestBook(t, db, "Plenty", 5, "10.00")
	scarce := createTestBook(t, db, "Scarce", 1, "20.00")
	if _, err := cartSvc.AddToCart(1, plenty.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := cartSvc.AddToCart(1, scarce.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	pending, err := cartSvc.UpdateQuantities(1, map[uint]int{scarce.ID: 2})
	if err != nil {
		t.Fatalf("update quantities failed: %v", err)
	}

	_, err = svc.Checkout(1)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("want InsufficientStockError got %T", err)
	}
	if stockErr.BookID != scarce.ID || stockErr.Title != "Scarce" || stockErr.Available != 1 {
		t.Fatalf("stock error unexpected: %+v", stockErr)
	}

	// 整体回滚：已扣减的库存恢复，订单保持 pending 可修改重试
	if got := reloadBook(t, db, plenty.ID).Quantity; got != 5 {
		t.Fatalf("rolled back stock want 5 got %d", got)
	}
	if got := reloadBook(t, db, scarce.ID).Quantity; got != 1 {
		t.Fatalf("untouched stock want 1 got %d", got)
	}
	cart, err := cartSvc.GetCart(1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if cart == nil || cart.ID != pending.ID || cart.Status != constants.PurchaseStatusPending {
		t.Fatalf("cart should stay pending, got %+v", cart)
	}
}

func TestCheckoutLastUnitSingleWinner(t *testing.T) {
	db := setupServiceDB(t)
	cartSvc := newTestCartService(db)
	svc := newTestPurchaseService(db)

	book := createTestBook(t, db, "Last Copy", 1, "9.00")
	if _, err := cartSvc.AddToCart(1, book.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := cartSvc.AddToCart(2, book.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	// 两个用户购物车里都有最后一本，只有一个结算能成功
	winner, err := svc.Checkout(1)
	if err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}
	if winner.Status != constants.PurchaseStatusCompleted {
		t.Fatalf("winner status want completed got %s", winner.Status)
	}
	if got := reloadBook(t, db, book.ID).Quantity; got != 0 {
		t.Fatalf("stock want 0 got %d", got)
	}

	_, err = svc.Checkout(2)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("second checkout want ErrInsufficientStock got %v", err)
	}
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("want InsufficientStockError got %T", err)
	}
	if stockErr.Available != 0 {
		t.Fatalf("available want 0 got %d", stockErr.Available)
	}

	cart, err := cartSvc.GetCart(2)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if cart == nil || cart.Status != constants.PurchaseStatusPending {
		t.Fatalf("loser cart should stay pending, got %+v", cart)
	}
}

// stalePurchaseRepo 返回固定的订单快照，模拟读取与状态转移之间的并发窗口。
type stalePurchaseRepo struct {
	repository.PurchaseRepository
	stale *models.Purchase
}

func (r *stalePurchaseRepo) GetPendingByUser(userID uint) (*models.Purchase, error) {
	return r.stale, nil
}

func (r *stalePurchaseRepo) GetByID(id uint) (*models.Purchase, error) {
	return r.stale, nil
}

func (r *stalePurchaseRepo) WithTx(tx *gorm.DB) repository.PurchaseRepository {
	return &stalePurchaseRepo{PurchaseRepository: r.PurchaseRepository.WithTx(tx), stale: r.stale}
}

func TestCheckoutStalePendingSnapshot(t *testing.T) {
	db := setupServiceDB(t)
	cartSvc := newTestCartService(db)
	svc := newTestPurchaseService(db)

	book := createTestBook(t, db, "Contested", 3, "10.00")
	if _, err := cartSvc.AddToCart(1, book.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	completed, err := svc.Checkout(1)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if got := reloadBook(t, db, book.ID).Quantity; got != 2 {
		t.Fatalf("stock want 2 got %d", got)
	}

	// 第二个请求仍持有结算前读到的 pending 快照：
	// 状态转移以数据库中的当前状态为准，不能重复扣减库存
	staleCopy := *completed
	staleCopy.Status = constants.PurchaseStatusPending
	raceSvc := NewPurchaseService(&stalePurchaseRepo{
		PurchaseRepository: repository.NewPurchaseRepository(db),
		stale:              &staleCopy,
	}, repository.NewBookRepository(db))

	_, err = raceSvc.Checkout(1)
	if !errors.Is(err, ErrPurchaseNotPending) {
		t.Fatalf("want ErrPurchaseNotPending got %v", err)
	}
	if got := reloadBook(t, db, book.ID).Quantity; got != 2 {
		t.Fatalf("stock must not be deducted twice, want 2 got %d", got)
	}
	got, err := svc.GetByIDAndUser(completed.ID, 1)
	if err != nil {
		t.Fatalf("reload purchase failed: %v", err)
	}
	if got.Status != constants.PurchaseStatusCompleted {
		t.Fatalf("status want completed got %s", got.Status)
	}
}

func TestCancelExpiredLosesRaceToCheckout(t *testing.T) {
	db := setupServiceDB(t)
	cartSvc := newTestCartService(db)
	svc := newTestPurchaseService(db)

	book := createTestBook(t, db, "Narrow Window", 2, "7.00")
	if _, err := cartSvc.AddToCart(1, book.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	completed, err := svc.Checkout(1)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// worker 读到的还是过期的 pending 快照，但结算已先提交：
	// 取消必须落空，completed 订单不可回退
	past := time.Now().Add(-time.Minute)
	staleCopy := *completed
	staleCopy.Status = constants.PurchaseStatusPending
	staleCopy.ExpiresAt = &past
	raceSvc := NewPurchaseService(&stalePurchaseRepo{
		PurchaseRepository: repository.NewPurchaseRepository(db),
		stale:              &staleCopy,
	}, repository.NewBookRepository(db))

	canceled, err := raceSvc.CancelExpiredPurchase(completed.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if canceled {
		t.Fatal("completed purchase must not be canceled")
	}
	got, err := svc.GetByIDAndUser(completed.ID, 1)
	if err != nil {
		t.Fatalf("reload purchase failed: %v", err)
	}
	if got.Status != constants.PurchaseStatusCompleted || got.CanceledAt != nil {
		t.Fatalf("purchase should stay completed, got %+v", got)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupServiceDB(t)
	svc := newTestPurchaseService(db)

	if _, err := svc.Checkout(1); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart got %v", err)
	}

	// 删空的购物车同样不可结算
	cartSvc := newTestCartService(db)
	book := createTestBook(t, db, "Transient", 2, "5.00")
	if _, err := cartSvc.AddToCart(1, book.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := cartSvc.RemoveFromCart(1, book.ID); err != nil {
		t.Fatalf("remove from cart failed: %v", err)
	}
	if _, err := svc.Checkout(1); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart got %v", err)
	}
}

func TestGetByIDAndUser(t *testing.T) {
	db := setupServiceDB(t)
	cartSvc := newTestCartService(db)
	svc := newTestPurchaseService(db)

	book := createTestBook(t, db, "Owned", 2, "5.00")
	if _, err := cartSvc.AddToCart(1, book.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	purchase, err := svc.Checkout(1)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	got, err := svc.GetByIDAndUser(purchase.ID, 1)
	if err != nil {
		t.Fatalf("get purchase failed: %v", err)
	}
	if got.ID != purchase.ID {
		t.Fatalf("purchase id want %d got %d", purchase.ID, got.ID)
	}

	// 其他用户不可见
	if _, err := svc.GetByIDAndUser(purchase.ID, 2); !errors.Is(err, ErrPurchaseNotFound) {
		t.Fatalf("want ErrPurchaseNotFound got %v", err)
	}
}

func TestListByUser(t *testing.T) {
	db := setupServiceDB(t)
	cartSvc := newTestCartService(db)
	svc := newTestPurchaseService(db)

	book := createTestBook(t, db, "History", 5, "5.00")
	if _, err := cartSvc.AddToCart(1, book.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if _, err := svc.Checkout(1); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := cartSvc.AddToCart(1, book.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	purchases, total, err := svc.ListByUser(1, 1, 10)
	if err != nil {
		t.Fatalf("list purchases failed: %v", err)
	}
	if total != 2 || len(purchases) != 2 {
		t.Fatalf("purchases want 2 got total=%d len=%d", total, len(purchases))
	}

	purchases, total, err = svc.ListByUser(2, 1, 10)
	if err != nil {
		t.Fatalf("list purchases failed: %v", err)
	}
	if total != 0 || len(purchases) != 0 {
		t.Fatalf("other user should have no purchases, got total=%d len=%d", total, len(purchases))
	}
}

func TestCancelExpiredPurchase(t *testing.T) {
	db := setupServiceDB(t)
	cartSvc := newTestCartService(db)
	svc := newTestPurchaseService(db)

	book := createTestBook(t, db, "Abandoned", 2, "5.00")
	cart, err := cartSvc.AddToCart(1, book.ID)
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	// 未过期的 pending 订单不取消
	canceled, err := svc.CancelExpiredPurchase(cart.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if canceled {
		t.Fatal("unexpired purchase should not be canceled")
	}

	past := time.Now().Add(-time.Minute)
	if err := db.Model(&models.Purchase{}).Where("id = ?", cart.ID).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("age purchase failed: %v", err)
	}

	canceled, err = svc.CancelExpiredPurchase(cart.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if !canceled {
		t.Fatal("expired purchase should be canceled")
	}
	got, err := svc.purchaseRepo.GetByID(cart.ID)
	if err != nil {
		t.Fatalf("reload purchase failed: %v", err)
	}
	if got.Status != constants.PurchaseStatusCanceled || got.CanceledAt == nil {
		t.Fatalf("purchase should be canceled, got %+v", got)
	}

	// 重复取消为空操作
	canceled, err = svc.CancelExpiredPurchase(cart.ID)
	if err != nil {
		t.Fatalf("repeat cancel failed: %v", err)
	}
	if canceled {
		t.Fatal("repeat cancel should be a no-op")
	}

	if _, err := svc.CancelExpiredPurchase(999); !errors.Is(err, ErrPurchaseNotFound) {
		t.Fatalf("want ErrPurchaseNotFound got %v", err)
	}
}
