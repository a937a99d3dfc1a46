package shared

// NormalizePagination 使用默认边界归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	return NormalizePaginationWithBounds(page, pageSize, 0, 0)
}

// NormalizePaginationWithBounds 按配置的默认页长与上限归一化分页参数，
// 非法边界回退到 20/100。
func NormalizePaginationWithBounds(page, pageSize, defaultSize, maxSize int) (int, int) {
	if defaultSize <= 0 {
		defaultSize = 20
	}
	if maxSize <= 0 {
		maxSize = 100
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
