package public

import "github.com/libris-next/internal/provider"

// Handler 前台接口处理器入口
// 说明：该处理器仅用于读者侧 API（目录、购物车、结算、收藏、账号）。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
