package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// caseInsensitiveLikeCondition 构建大小写不敏感的模糊匹配条件。
// postgres 直接使用 ILIKE，sqlite 的 LIKE 对 ASCII 本身不敏感，
// 统一再套一层 LOWER 以保证行为一致。
func caseInsensitiveLikeCondition(db *gorm.DB, column string) string {
	switch dbDialectName(db) {
	case "postgres", "postgresql":
		return fmt.Sprintf("%s ILIKE ?", column)
	default:
		return fmt.Sprintf("LOWER(%s) LIKE ?", column)
	}
}
