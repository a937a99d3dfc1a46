package i18n

import (
	"fmt"
	"strings"

	"github.com/libris-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// ResolveLocale 解析请求语言：query 参数 lang 优先，
// 其次 Accept-Language 头，最后回退到默认语言。
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleEnUS
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang := normalizeLocale(tag); lang != "" {
			return lang
		}
	}
	return constants.LocaleEnUS
}

// T 返回指定语言的文案，缺失时回退英文，再缺失时返回 key 本身。
func T(locale, key string) string {
	if messages, ok := catalog[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[constants.LocaleEnUS][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回带格式化参数的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

func normalizeLocale(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	lower := strings.ToLower(tag)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return constants.LocaleZhCN
	case strings.HasPrefix(lower, "en"):
		return constants.LocaleEnUS
	default:
		return ""
	}
}

var catalog = map[string]map[string]string{
	constants.LocaleEnUS: {
		"error.bad_request":              "invalid request",
		"error.unauthorized":             "unauthorized",
		"error.internal":                 "internal error",
		"error.user_id_invalid":          "invalid user id",
		"error.user_id_type_invalid":     "invalid user context",
		"error.rate_limited":             "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":   "rate limiter unavailable",
		"error.book_not_found":           "book not found",
		"error.catalog_list_failed":      "failed to list books",
		"error.book_detail_failed":       "failed to load book",
		"error.cart_empty":               "cart is empty",
		"error.cart_item_invalid":        "invalid cart item",
		"error.quantity_invalid":         "quantity must be at least 1",
		"error.purchase_not_found":       "purchase not found",
		"error.cart_failed":              "cart operation failed",
		"error.checkout_failed":          "checkout failed",
		"error.insufficient_stock":       "insufficient stock for %q: %d available",
		"error.book_out_of_stock":        "book is out of stock",
		"error.purchase_not_pending":     "purchase is no longer pending",
		"error.like_failed":              "like operation failed",
		"error.email_invalid":            "invalid email address",
		"error.email_exists":             "email already registered",
		"error.invalid_credentials":      "invalid email or password",
		"error.user_disabled":            "account disabled",
		"error.weak_password":            "password too weak",
		"error.password_min_length":      "password must be at least %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a digit",
		"error.password_require_special": "password must contain a special character",
		"error.profile_empty":            "nothing to update",
		"error.register_failed":          "registration failed",
		"error.login_failed":             "login failed",
		"error.profile_update_failed":    "profile update failed",
		"error.user_not_found":           "user not found",
		"error.user_fetch_failed":        "failed to load user",
		"error.user_update_failed":       "failed to update user",
		"error.jwt_secret_missing":       "authentication not configured",
		"error.auth_header_missing":      "authorization header required",
		"error.auth_header_invalid":      "authorization header malformed",
		"error.token_invalid":            "invalid token",
		"error.token_revoked":            "token revoked",
		"error.login_too_many":           "too many login attempts, retry in %d seconds",
	},
	constants.LocaleZhCN: {
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未登录或登录已过期",
		"error.internal":                 "服务器内部错误",
		"error.user_id_invalid":          "用户ID无效",
		"error.user_id_type_invalid":     "用户上下文无效",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"error.book_not_found":           "图书不存在",
		"error.catalog_list_failed":      "获取图书列表失败",
		"error.book_detail_failed":       "获取图书详情失败",
		"error.cart_empty":               "购物车为空",
		"error.cart_item_invalid":        "购物车项无效",
		"error.quantity_invalid":         "数量至少为 1",
		"error.purchase_not_found":       "订单不存在",
		"error.cart_failed":              "购物车操作失败",
		"error.checkout_failed":          "结算失败",
		"error.insufficient_stock":       "《%s》库存不足，仅剩 %d 件",
		"error.book_out_of_stock":        "图书已无库存",
		"error.purchase_not_pending":     "订单已不是待结算状态",
		"error.like_failed":              "收藏操作失败",
		"error.email_invalid":            "邮箱格式不正确",
		"error.email_exists":             "邮箱已被注册",
		"error.invalid_credentials":      "邮箱或密码错误",
		"error.user_disabled":            "账号已被禁用",
		"error.weak_password":            "密码强度不足",
		"error.password_min_length":      "密码长度至少 %d 位",
		"error.password_require_upper":   "密码需包含大写字母",
		"error.password_require_lower":   "密码需包含小写字母",
		"error.password_require_number":  "密码需包含数字",
		"error.password_require_special": "密码需包含特殊字符",
		"error.profile_empty":            "没有可更新的内容",
		"error.register_failed":          "注册失败",
		"error.login_failed":             "登录失败",
		"error.profile_update_failed":    "资料更新失败",
		"error.user_not_found":           "用户不存在",
		"error.user_fetch_failed":        "获取用户信息失败",
		"error.user_update_failed":       "用户信息更新失败",
		"error.jwt_secret_missing":       "认证服务未配置",
		"error.auth_header_missing":      "缺少认证头",
		"error.auth_header_invalid":      "认证头格式错误",
		"error.token_invalid":            "登录凭证无效",
		"error.token_revoked":            "登录凭证已失效",
		"error.login_too_many":           "登录尝试过于频繁，请 %d 秒后重试",
	},
}
