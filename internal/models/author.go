package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Author 作者表
type Author struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                        // 主键
	FirstName string         `gorm:"not null;uniqueIndex:idx_author_name" json:"first_name"`      // 名
	LastName  string         `gorm:"not null;uniqueIndex:idx_author_name" json:"last_name"`       // 姓
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (Author) TableName() string {
	return "authors"
}

// FullName 返回完整姓名
func (a *Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
