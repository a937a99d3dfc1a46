package service

import (
	"github.com/libris-next/internal/models"
	"github.com/libris-next/internal/repository"
)

// LikeService 图书收藏服务
type LikeService struct {
	likedRepo repository.LikedBookRepository
	bookRepo  repository.BookRepository
}

// NewLikeService 创建收藏服务
func NewLikeService(likedRepo repository.LikedBookRepository, bookRepo repository.BookRepository) *LikeService {
	return &LikeService{
		likedRepo: likedRepo,
		bookRepo:  bookRepo,
	}
}

// Like 收藏图书。重复收藏是幂等空操作。
func (s *LikeService) Like(userID, bookID uint) error {
	if userID == 0 || bookID == 0 {
		return ErrBookNotFound
	}
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return ErrBookNotFound
	}
	return s.likedRepo.Add(userID, bookID)
}

// Unlike 取消收藏
func (s *LikeService) Unlike(userID, bookID uint) error {
	if userID == 0 || bookID == 0 {
		return ErrBookNotFound
	}
	return s.likedRepo.Remove(userID, bookID)
}

// ListLiked 收藏列表
func (s *LikeService) ListLiked(userID uint, page, pageSize int) ([]models.LikedBook, int64, error) {
	return s.likedRepo.ListByUser(repository.LikedBookListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}
