package models

import (
	"time"

	"gorm.io/gorm"
)

// Book 图书表
type Book struct {
	ID              uint           `gorm:"primarykey" json:"id"`                         // 主键
	Title           string         `gorm:"index;not null" json:"title"`                  // 书名
	Description     string         `gorm:"type:text" json:"description"`                 // 简介
	PublicationYear int            `gorm:"index" json:"publication_year"`                // 出版年份
	Quantity        int            `gorm:"not null;default:0" json:"quantity"`           // 库存数量（不允许为负）
	Price           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                      // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间

	Authors []Author `gorm:"many2many:book_authors" json:"authors,omitempty"` // 作者（多对多）
	Genres  []Genre  `gorm:"many2many:book_genres" json:"genres,omitempty"`   // 分类（多对多）
}

// TableName 指定表名
func (Book) TableName() string {
	return "books"
}

// InStock 是否有库存
func (b *Book) InStock() bool {
	return b.Quantity > 0
}
