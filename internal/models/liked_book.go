package models

import (
	"time"
)

// LikedBook 用户收藏表（用户与图书的唯一组合）
type LikedBook struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                 // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_liked_user_book" json:"user_id"` // 用户ID
	BookID    uint      `gorm:"not null;uniqueIndex:idx_liked_user_book" json:"book_id"` // 图书ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                              // 收藏时间

	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"` // 关联图书
}

// TableName 指定表名
func (LikedBook) TableName() string {
	return "liked_books"
}
