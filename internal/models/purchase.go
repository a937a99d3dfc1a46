package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase 订单表（pending 状态即购物车）
type Purchase struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	UserID      uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status      string         `gorm:"index;not null" json:"status"`                              // 订单状态
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 总金额（由订单项汇总）
	ExpiresAt   *time.Time     `gorm:"index" json:"expires_at"`                                   // 待结算订单过期时间
	CompletedAt *time.Time     `gorm:"index" json:"completed_at"`                                 // 结算完成时间
	CanceledAt  *time.Time     `gorm:"index" json:"canceled_at"`                                  // 取消时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Purchase) TableName() string {
	return "purchases"
}
