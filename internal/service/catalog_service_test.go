package service

import (
	"errors"
	"testing"

	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/repository"
)

func TestResolveSort(t *testing.T) {
	cases := []struct {
		name     string
		orderBy  []string
		want     string
		wantDesc bool
	}{
		{"empty", nil, "", false},
		{"single", []string{"title"}, constants.SortByTitle, false},
		{"descending prefix", []string{"-price"}, constants.SortByPrice, true},
		{"price beats year", []string{"year", "price"}, constants.SortByPrice, false},
		{"year beats title", []string{"title", "-year"}, constants.SortByYear, true},
		{"unknown values ignored", []string{"isbn", "rating"}, "", false},
		{"unknown mixed with known", []string{"isbn", "-title"}, constants.SortByTitle, true},
		{"whitespace and case", []string{"  -PRICE  "}, constants.SortByPrice, true},
		{"direction follows winner", []string{"-title", "year"}, constants.SortByYear, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, desc := ResolveSort(tc.orderBy)
			if got != tc.want || desc != tc.wantDesc {
				t.Fatalf("ResolveSort(%v) want (%q, %v) got (%q, %v)", tc.orderBy, tc.want, tc.wantDesc, got, desc)
			}
		})
	}
}

func TestGetBookLikedFlag(t *testing.T) {
	db := setupServiceDB(t)
	likedRepo := repository.NewLikedBookRepository(db)
	svc := NewCatalogService(repository.NewBookRepository(db), likedRepo)

	book := createTestBook(t, db, "The Lathe of Heaven", 2, "13.00")
	if err := likedRepo.Add(1, book.ID); err != nil {
		t.Fatalf("add like failed: %v", err)
	}

	detail, err := svc.GetBook(book.ID, 1)
	if err != nil {
		t.Fatalf("get book failed: %v", err)
	}
	if detail.Book.ID != book.ID || !detail.Liked {
		t.Fatalf("detail unexpected: %+v", detail)
	}

	// 匿名请求不带收藏状态
	detail, err = svc.GetBook(book.ID, 0)
	if err != nil {
		t.Fatalf("get book failed: %v", err)
	}
	if detail.Liked {
		t.Fatal("anonymous request should not report liked")
	}

	if _, err := svc.GetBook(999, 1); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("want ErrBookNotFound got %v", err)
	}
}

func TestListBooksReportsEffectivePage(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewCatalogService(repository.NewBookRepository(db), repository.NewLikedBookRepository(db))

	for _, title := range []string{"One", "Two", "Three"} {
		createTestBook(t, db, title, 1, "10.00")
	}

	result, err := svc.ListBooks(repository.BookListFilter{Page: 9, PageSize: 2})
	if err != nil {
		t.Fatalf("list books failed: %v", err)
	}
	if result.Total != 3 || result.Page != 2 || len(result.Books) != 1 {
		t.Fatalf("result unexpected: total=%d page=%d len=%d", result.Total, result.Page, len(result.Books))
	}
}
