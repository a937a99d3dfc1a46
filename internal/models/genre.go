package models

import (
	"time"

	"gorm.io/gorm"
)

// Genre 图书分类表
type Genre struct {
	ID        uint           `gorm:"primarykey" json:"id"`           // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"` // 分类名（唯一）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`        // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`        // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                 // 软删除时间
}

// TableName 指定表名
func (Genre) TableName() string {
	return "genres"
}
