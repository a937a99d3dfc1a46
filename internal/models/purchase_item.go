package models

import (
	"time"

	"gorm.io/gorm"
)

// PurchaseItem 订单项
type PurchaseItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                          // 主键
	PurchaseID uint           `gorm:"not null;uniqueIndex:idx_purchase_book" json:"purchase_id"`     // 订单ID
	BookID     uint           `gorm:"not null;uniqueIndex:idx_purchase_book" json:"book_id"`         // 图书ID
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`                            // 数量（≥1）
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`       // 加入时单价
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"` // 关联图书
}

// TableName 指定表名
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// Subtotal 行小计 = 单价 × 数量
func (i *PurchaseItem) Subtotal() Money {
	return i.UnitPrice.MulInt(i.Quantity)
}
