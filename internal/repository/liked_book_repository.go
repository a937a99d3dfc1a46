package repository

import (
	"errors"

	"github.com/libris-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikedBookRepository 收藏数据访问接口
type LikedBookRepository interface {
	Add(userID, bookID uint) error
	Remove(userID, bookID uint) error
	Exists(userID, bookID uint) (bool, error)
	ListByUser(filter LikedBookListFilter) ([]models.LikedBook, int64, error)
}

// GormLikedBookRepository GORM 实现
type GormLikedBookRepository struct {
	db *gorm.DB
}

// NewLikedBookRepository 创建收藏仓库
func NewLikedBookRepository(db *gorm.DB) *GormLikedBookRepository {
	return &GormLikedBookRepository{db: db}
}

// Add 收藏图书。(user, book) 组合唯一，重复收藏不产生新行。
func (r *GormLikedBookRepository) Add(userID, bookID uint) error {
	like := models.LikedBook{UserID: userID, BookID: bookID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoNothing: true,
	}).Create(&like).Error
}

// Remove 取消收藏
func (r *GormLikedBookRepository) Remove(userID, bookID uint) error {
	return r.db.Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.LikedBook{}).Error
}

// Exists 判断是否已收藏
func (r *GormLikedBookRepository) Exists(userID, bookID uint) (bool, error) {
	var like models.LikedBook
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByUser 用户收藏列表
func (r *GormLikedBookRepository) ListByUser(filter LikedBookListFilter) ([]models.LikedBook, int64, error) {
	query := r.db.Model(&models.LikedBook{}).Where("user_id = ?", filter.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var likes []models.LikedBook
	if err := query.Preload("Book").Order("id DESC").Find(&likes).Error; err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}
