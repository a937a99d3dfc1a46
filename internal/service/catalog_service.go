package service

import (
	"strings"

	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/models"
	"github.com/libris-next/internal/repository"
)

// BookListResult 目录查询结果
type BookListResult struct {
	Books []models.Book
	Total int64
	// Page 实际提供的页码（超界页码回退到最后一页）
	Page     int
	PageSize int
}

// BookDetail 图书详情（含请求者的收藏状态）
type BookDetail struct {
	Book  *models.Book `json:"book"`
	Liked bool         `json:"liked"`
}

// CatalogService 图书目录服务
type CatalogService struct {
	bookRepo  repository.BookRepository
	likedRepo repository.LikedBookRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(bookRepo repository.BookRepository, likedRepo repository.LikedBookRepository) *CatalogService {
	return &CatalogService{
		bookRepo:  bookRepo,
		likedRepo: likedRepo,
	}
}

// ListBooks 按过滤条件查询图书列表
func (s *CatalogService) ListBooks(filter repository.BookListFilter) (*BookListResult, error) {
	filter.WithRelations = true
	books, total, page, err := s.bookRepo.List(filter)
	if err != nil {
		return nil, err
	}
	return &BookListResult{
		Books:    books,
		Total:    total,
		Page:     page,
		PageSize: filter.PageSize,
	}, nil
}

// GetBook 获取图书详情。userID 不为 0 时附带收藏状态。
func (s *CatalogService) GetBook(bookID, userID uint) (*BookDetail, error) {
	if bookID == 0 {
		return nil, ErrBookNotFound
	}
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	liked := false
	if userID != 0 {
		liked, err = s.likedRepo.Exists(userID, bookID)
		if err != nil {
			return nil, err
		}
	}
	return &BookDetail{Book: book, Liked: liked}, nil
}

// ResolveSort 从原始排序参数解析出唯一生效的排序字段。
// 同时出现多个字段时按 price > year > title 的固定优先级取一个，
// 前缀 "-" 表示降序。无法识别的值直接忽略。
func ResolveSort(orderBy []string) (string, bool) {
	selected := ""
	desc := false
	rank := func(key string) int {
		switch key {
		case constants.SortByPrice:
			return 3
		case constants.SortByYear:
			return 2
		case constants.SortByTitle:
			return 1
		default:
			return 0
		}
	}
	for _, raw := range orderBy {
		value := strings.ToLower(strings.TrimSpace(raw))
		descending := strings.HasPrefix(value, "-")
		key := strings.TrimPrefix(value, "-")
		if rank(key) == 0 {
			continue
		}
		if rank(key) > rank(selected) {
			selected = key
			desc = descending
		}
	}
	return selected, desc
}
