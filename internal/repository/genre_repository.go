package repository

import (
	"errors"

	"github.com/libris-next/internal/models"

	"gorm.io/gorm"
)

// GenreRepository 分类数据访问接口
type GenreRepository interface {
	GetByID(id uint) (*models.Genre, error)
	List() ([]models.Genre, error)
	GetOrCreate(name string) (*models.Genre, error)
}

// GormGenreRepository GORM 实现
type GormGenreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建分类仓库
func NewGenreRepository(db *gorm.DB) *GormGenreRepository {
	return &GormGenreRepository{db: db}
}

// GetByID 根据 ID 获取分类
func (r *GormGenreRepository) GetByID(id uint) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &genre, nil
}

// List 分类列表
func (r *GormGenreRepository) List() ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.Order("name ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

// GetOrCreate 按名称获取或创建分类
func (r *GormGenreRepository) GetOrCreate(name string) (*models.Genre, error) {
	var genre models.Genre
	err := r.db.Where("name = ?", name).First(&genre).Error
	if err == nil {
		return &genre, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	genre = models.Genre{Name: name}
	if err := r.db.Create(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}
