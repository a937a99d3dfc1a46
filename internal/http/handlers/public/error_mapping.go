package public

import (
	"errors"

	"github.com/libris-next/internal/http/response"
	"github.com/libris-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrBookNotFound, code: response.CodeNotFound, key: "error.book_not_found"},
	{target: service.ErrPurchaseNotFound, code: response.CodeNotFound, key: "error.purchase_not_found"},
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrPurchaseNotPending, code: response.CodeBadRequest, key: "error.purchase_not_pending"},
	{target: service.ErrBookOutOfStock, code: response.CodeBadRequest, key: "error.book_out_of_stock"},
}

var likeErrorRules = []mappedHandlerError{
	{target: service.ErrBookNotFound, code: response.CodeNotFound, key: "error.book_not_found"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_failed")
}

func respondLikeError(c *gin.Context, err error) {
	respondWithMappedError(c, err, likeErrorRules, response.CodeInternal, "error.like_failed")
}
