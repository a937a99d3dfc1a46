package repository

import "testing"

func TestClampPage(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		pageSize int
		total    int64
		want     int
	}{
		{"first page", 1, 20, 100, 1},
		{"middle page", 3, 20, 100, 3},
		{"exact last page", 5, 20, 100, 5},
		{"beyond last page", 9, 20, 100, 5},
		{"partial last page", 4, 20, 61, 4},
		{"zero page", 0, 20, 100, 1},
		{"negative page", -3, 20, 100, 1},
		{"empty result", 5, 20, 0, 5},
		{"no page size", 7, 0, 100, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampPage(tc.page, tc.pageSize, tc.total); got != tc.want {
				t.Fatalf("clampPage(%d, %d, %d) want %d got %d", tc.page, tc.pageSize, tc.total, tc.want, got)
			}
		})
	}
}
