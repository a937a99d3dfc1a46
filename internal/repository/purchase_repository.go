package repository

import (
	"errors"
	"time"

	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/models"

	"gorm.io/gorm"
)

// PurchaseRepository 订单数据访问接口（pending 订单即购物车）
type PurchaseRepository interface {
	GetByID(id uint) (*models.Purchase, error)
	GetByIDAndUser(id, userID uint) (*models.Purchase, error)
	GetPendingByUser(userID uint) (*models.Purchase, error)
	Create(purchase *models.Purchase) error
	TransitionStatus(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error)
	UpdateTotal(id uint, total models.Money) error
	List(filter PurchaseListFilter) ([]models.Purchase, int64, error)
	GetItem(purchaseID, bookID uint) (*models.PurchaseItem, error)
	ListItems(purchaseID uint) ([]models.PurchaseItem, error)
	CreateItem(item *models.PurchaseItem) error
	SaveItem(item *models.PurchaseItem) error
	DeleteItem(purchaseID, bookID uint) error
	WithTx(tx *gorm.DB) PurchaseRepository
}

// GormPurchaseRepository GORM 实现
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建订单仓库
func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// WithTx 返回绑定事务的仓库
func (r *GormPurchaseRepository) WithTx(tx *gorm.DB) PurchaseRepository {
	if tx == nil {
		return r
	}
	return &GormPurchaseRepository{db: tx}
}

// GetByID 根据 ID 获取订单（含订单项与图书）
func (r *GormPurchaseRepository) GetByID(id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.Preload("Items").Preload("Items.Book").First(&purchase, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// GetByIDAndUser 根据 ID 和用户获取订单
func (r *GormPurchaseRepository) GetByIDAndUser(id, userID uint) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.Preload("Items").Preload("Items.Book").
		Where("id = ? AND user_id = ?", id, userID).
		First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// GetPendingByUser 获取用户当前的 pending 订单（购物车），不存在时返回 nil
func (r *GormPurchaseRepository) GetPendingByUser(userID uint) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.Preload("Items").Preload("Items.Book").
		Where("user_id = ? AND status = ?", userID, constants.PurchaseStatusPending).
		Order("id ASC").
		First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

// Create 创建订单
func (r *GormPurchaseRepository) Create(purchase *models.Purchase) error {
	return r.db.Create(purchase).Error
}

// TransitionStatus 条件更新订单状态：仅当当前状态为 fromStatus 时生效，
// 附带额外字段更新。返回受影响行数，0 表示状态已被并发修改。
func (r *GormPurchaseRepository) TransitionStatus(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Purchase{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateTotal 更新订单总金额
func (r *GormPurchaseRepository) UpdateTotal(id uint, total models.Money) error {
	return r.db.Model(&models.Purchase{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_amount": total,
			"updated_at":   time.Now(),
		}).Error
}

// List 订单列表
func (r *GormPurchaseRepository) List(filter PurchaseListFilter) ([]models.Purchase, int64, error) {
	query := r.db.Model(&models.Purchase{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var purchases []models.Purchase
	if err := query.Preload("Items").Preload("Items.Book").Order("id DESC").Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// GetItem 获取订单中指定图书的订单项
func (r *GormPurchaseRepository) GetItem(purchaseID, bookID uint) (*models.PurchaseItem, error) {
	var item models.PurchaseItem
	err := r.db.Where("purchase_id = ? AND book_id = ?", purchaseID, bookID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListItems 获取订单的全部订单项
func (r *GormPurchaseRepository) ListItems(purchaseID uint) ([]models.PurchaseItem, error) {
	var items []models.PurchaseItem
	if err := r.db.Preload("Book").Where("purchase_id = ?", purchaseID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem 创建订单项
func (r *GormPurchaseRepository) CreateItem(item *models.PurchaseItem) error {
	return r.db.Create(item).Error
}

// SaveItem 保存订单项
func (r *GormPurchaseRepository) SaveItem(item *models.PurchaseItem) error {
	return r.db.Save(item).Error
}

// DeleteItem 删除订单项
func (r *GormPurchaseRepository) DeleteItem(purchaseID, bookID uint) error {
	return r.db.Where("purchase_id = ? AND book_id = ?", purchaseID, bookID).
		Delete(&models.PurchaseItem{}).Error
}
