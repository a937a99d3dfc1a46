package repository

import (
	"testing"

	"github.com/libris-next/internal/models"
)

func TestLikedBookAddIsIdempotent(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewLikedBookRepository(db)

	book := createBook(t, db, "Liked", 2001, 1, "9.99", nil, nil)

	if err := repo.Add(7, book.ID); err != nil {
		t.Fatalf("add like failed: %v", err)
	}
	// 重复收藏不产生新行
	if err := repo.Add(7, book.ID); err != nil {
		t.Fatalf("repeat add like failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.LikedBook{}).Where("user_id = ? AND book_id = ?", 7, book.ID).Count(&count).Error; err != nil {
		t.Fatalf("count likes failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("like rows want 1 got %d", count)
	}

	exists, err := repo.Exists(7, book.ID)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Fatal("like should exist")
	}
}

func TestLikedBookRemove(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewLikedBookRepository(db)

	book := createBook(t, db, "Unliked", 2002, 1, "9.99", nil, nil)

	if err := repo.Add(7, book.ID); err != nil {
		t.Fatalf("add like failed: %v", err)
	}
	if err := repo.Remove(7, book.ID); err != nil {
		t.Fatalf("remove like failed: %v", err)
	}
	exists, err := repo.Exists(7, book.ID)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatal("like should be removed")
	}

	// 删除不存在的收藏为空操作
	if err := repo.Remove(7, book.ID); err != nil {
		t.Fatalf("remove missing like failed: %v", err)
	}
}

func TestLikedBookListByUser(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewLikedBookRepository(db)

	first := createBook(t, db, "First", 2001, 1, "5.00", nil, nil)
	second := createBook(t, db, "Second", 2002, 1, "6.00", nil, nil)
	other := createBook(t, db, "Other", 2003, 1, "7.00", nil, nil)

	for _, bookID := range []uint{first.ID, second.ID} {
		if err := repo.Add(7, bookID); err != nil {
			t.Fatalf("add like failed: %v", err)
		}
	}
	if err := repo.Add(8, other.ID); err != nil {
		t.Fatalf("add like failed: %v", err)
	}

	likes, total, err := repo.ListByUser(LikedBookListFilter{UserID: 7, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list likes failed: %v", err)
	}
	if total != 2 || len(likes) != 2 {
		t.Fatalf("likes want 2 got total=%d len=%d", total, len(likes))
	}
	for _, like := range likes {
		if like.UserID != 7 {
			t.Fatalf("unexpected user in result: %+v", like)
		}
		if like.Book == nil {
			t.Fatalf("book should be preloaded: %+v", like)
		}
	}
}
