package repository

import "gorm.io/gorm"

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return query.Limit(pageSize).Offset(offset)
}

// clampPage 将页码收敛到有效范围，超出最后一页时回退到最后一页。
func clampPage(page, pageSize int, total int64) int {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || total <= 0 {
		return page
	}
	last := int((total + int64(pageSize) - 1) / int64(pageSize))
	if last < 1 {
		last = 1
	}
	if page > last {
		page = last
	}
	return page
}
