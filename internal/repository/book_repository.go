package repository

import (
	"errors"
	"strings"

	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/models"

	"gorm.io/gorm"
)

// BookRepository 图书数据访问接口
type BookRepository interface {
	GetByID(id uint) (*models.Book, error)
	List(filter BookListFilter) ([]models.Book, int64, int, error)
	Create(book *models.Book) error
	Update(book *models.Book) error
	DecrementStock(bookID uint, quantity int) (int64, error)
	WithTx(tx *gorm.DB) BookRepository
}

// GormBookRepository GORM 实现
type GormBookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓库
func NewBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// WithTx 返回绑定事务的仓库
func (r *GormBookRepository) WithTx(tx *gorm.DB) BookRepository {
	if tx == nil {
		return r
	}
	return &GormBookRepository{db: tx}
}

// GetByID 根据 ID 获取图书
func (r *GormBookRepository) GetByID(id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.Preload("Authors").Preload("Genres").First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

// List 图书列表。过滤条件取交集；返回实际提供的页码，
// 超出范围的页码回退到最后一页。
func (r *GormBookRepository) List(filter BookListFilter) ([]models.Book, int64, int, error) {
	query := applyBookFilter(r.db.Model(&models.Book{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	page := clampPage(filter.Page, filter.PageSize, total)
	query = applyPagination(query, page, filter.PageSize)
	query = applyBookSort(query, filter.SortBy, filter.SortDesc)

	if filter.WithRelations {
		query = query.Preload("Authors").Preload("Genres")
	}

	var books []models.Book
	if err := query.Find(&books).Error; err != nil {
		return nil, 0, 0, err
	}
	return books, total, page, nil
}

// applyBookFilter 将过滤条件组合到查询上，所有谓词按 AND 叠加。
func applyBookFilter(query *gorm.DB, filter BookListFilter) *gorm.DB {
	if filter.GenreID != 0 {
		query = query.
			Joins("JOIN book_genres ON book_genres.book_id = books.id").
			Where("book_genres.genre_id = ?", filter.GenreID)
	}
	if filter.AuthorID != 0 {
		query = query.
			Joins("JOIN book_authors ON book_authors.book_id = books.id").
			Where("book_authors.author_id = ?", filter.AuthorID)
	}
	if text := strings.TrimSpace(filter.Query); text != "" {
		like := "%" + strings.ToLower(text) + "%"
		query = query.Where(caseInsensitiveLikeCondition(query, "title"), like)
	}
	switch filter.Stock {
	case constants.StockFilterIn:
		query = query.Where("quantity > 0")
	case constants.StockFilterOut:
		query = query.Where("quantity = 0")
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", filter.PriceMin.Decimal)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", filter.PriceMax.Decimal)
	}
	return query
}

// applyBookSort 应用排序字段，只接受受支持的字段。
func applyBookSort(query *gorm.DB, sortBy string, desc bool) *gorm.DB {
	column := ""
	switch sortBy {
	case constants.SortByPrice:
		column = "price"
	case constants.SortByYear:
		column = "publication_year"
	case constants.SortByTitle:
		column = "title"
	default:
		return query.Order("id ASC")
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	return query.Order(column + " " + direction)
}

// Create 创建图书
func (r *GormBookRepository) Create(book *models.Book) error {
	return r.db.Create(book).Error
}

// Update 更新图书
func (r *GormBookRepository) Update(book *models.Book) error {
	return r.db.Save(book).Error
}

// DecrementStock 条件扣减库存，库存足够时才生效。
// 返回受影响行数，0 表示库存不足（或图书不存在）。
func (r *GormBookRepository) DecrementStock(bookID uint, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Book{}).
		Where("id = ? AND quantity >= ?", bookID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
