package constants

// 订单状态常量
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusCanceled  = "canceled"
)

// 库存筛选常量
const (
	StockFilterIn  = "in"
	StockFilterOut = "out"
)

// 目录排序字段常量
const (
	SortByPrice = "price"
	SortByYear  = "year"
	SortByTitle = "title"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列常量
const (
	QueueDefault              = "default"
	TaskPurchaseTimeoutCancel = "purchase:timeout_cancel"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "libris"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleZhCN}
