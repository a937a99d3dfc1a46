package public

import (
	handlershared "github.com/libris-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

// normalizePagination 按目录配置的页长边界收敛分页参数。
func (h *Handler) normalizePagination(page, pageSize int) (int, int) {
	defaultSize, maxSize := 0, 0
	if h.Config != nil {
		defaultSize = h.Config.Catalog.DefaultPageSize
		maxSize = h.Config.Catalog.MaxPageSize
	}
	return handlershared.NormalizePaginationWithBounds(page, pageSize, defaultSize, maxSize)
}
