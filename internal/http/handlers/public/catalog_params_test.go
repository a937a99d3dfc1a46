package public

import (
	"net/http/httptest"
	"testing"

	"github.com/libris-next/internal/config"
	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/provider"

	"github.com/gin-gonic/gin"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/books?"+rawQuery, nil)
	return c
}

func TestParseUintParam(t *testing.T) {
	cases := []struct {
		raw  string
		want uint
	}{
		{"42", 42},
		{" 7 ", 7},
		{"", 0},
		{"abc", 0},
		{"-3", 0},
		{"1.5", 0},
	}
	for _, tc := range cases {
		if got := parseUintParam(tc.raw); got != tc.want {
			t.Fatalf("parseUintParam(%q) want %d got %d", tc.raw, tc.want, got)
		}
	}
}

func TestParseMoneyParam(t *testing.T) {
	if got := parseMoneyParam("12.5"); got == nil || got.String() != "12.50" {
		t.Fatalf("valid price should parse, got %v", got)
	}
	// 非法或负值直接忽略
	for _, raw := range []string{"", "  ", "abc", "-1"} {
		if got := parseMoneyParam(raw); got != nil {
			t.Fatalf("parseMoneyParam(%q) should be nil, got %v", raw, got)
		}
	}
}

func TestParseStockParam(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  string
	}{
		{"in stock", "in_stock=true", constants.StockFilterIn},
		{"out of stock", "not_in_stock=1", constants.StockFilterOut},
		{"both set", "in_stock=true&not_in_stock=true", ""},
		{"neither", "", ""},
		{"invalid value ignored", "in_stock=maybe", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := queryContext(t, tc.query)
			if got := parseStockParam(c); got != tc.want {
				t.Fatalf("parseStockParam(%s) want %q got %q", tc.query, tc.want, got)
			}
		})
	}
}

func TestNormalizePaginationUsesCatalogConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Catalog = config.CatalogConfig{DefaultPageSize: 30, MaxPageSize: 50}
	h := New(&provider.Container{Config: cfg})

	page, pageSize := h.normalizePagination(0, 0)
	if page != 1 || pageSize != 30 {
		t.Fatalf("configured default want (1, 30) got (%d, %d)", page, pageSize)
	}
	page, pageSize = h.normalizePagination(2, 500)
	if page != 2 || pageSize != 50 {
		t.Fatalf("configured cap want (2, 50) got (%d, %d)", page, pageSize)
	}

	// 未配置时回退到 20/100
	h = New(&provider.Container{})
	page, pageSize = h.normalizePagination(0, 500)
	if page != 1 || pageSize != 100 {
		t.Fatalf("fallback bounds want (1, 100) got (%d, %d)", page, pageSize)
	}
	if _, pageSize = h.normalizePagination(1, 0); pageSize != 20 {
		t.Fatalf("fallback default want 20 got %d", pageSize)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 0, 0},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.pageSize); got != tc.want {
			t.Fatalf("totalPages(%d, %d) want %d got %d", tc.total, tc.pageSize, tc.want, got)
		}
	}
}
