package repository

import "github.com/libris-next/internal/models"

// BookListFilter 查询图书列表的过滤条件（所有条件取交集）
type BookListFilter struct {
	Page     int
	PageSize int
	GenreID  uint
	AuthorID uint
	Query    string
	Stock    string
	PriceMin *models.Money
	PriceMax *models.Money
	SortBy   string
	SortDesc bool
	// WithRelations 为 true 时预加载作者与分类
	WithRelations bool
}

// PurchaseListFilter 查询订单列表的过滤条件
type PurchaseListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
}

// LikedBookListFilter 查询收藏列表的过滤条件
type LikedBookListFilter struct {
	Page     int
	PageSize int
	UserID   uint
}
