package repository

import (
	"errors"

	"github.com/libris-next/internal/models"

	"gorm.io/gorm"
)

// AuthorRepository 作者数据访问接口
type AuthorRepository interface {
	GetByID(id uint) (*models.Author, error)
	List() ([]models.Author, error)
	GetOrCreate(firstName, lastName string) (*models.Author, error)
}

// GormAuthorRepository GORM 实现
type GormAuthorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓库
func NewAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

// GetByID 根据 ID 获取作者
func (r *GormAuthorRepository) GetByID(id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.First(&author, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &author, nil
}

// List 作者列表（姓名排序）
func (r *GormAuthorRepository) List() ([]models.Author, error) {
	var authors []models.Author
	if err := r.db.Order("last_name ASC, first_name ASC").Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// GetOrCreate 按姓名组合获取或创建作者
func (r *GormAuthorRepository) GetOrCreate(firstName, lastName string) (*models.Author, error) {
	var author models.Author
	err := r.db.Where("first_name = ? AND last_name = ?", firstName, lastName).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	author = models.Author{FirstName: firstName, LastName: lastName}
	if err := r.db.Create(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}
