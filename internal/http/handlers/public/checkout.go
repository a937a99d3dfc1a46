package public

import (
	"errors"
	"strconv"

	"github.com/libris-next/internal/http/response"
	"github.com/libris-next/internal/i18n"
	"github.com/libris-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Checkout 结算购物车。
// 任意一项库存不足则整体失败，订单保持 pending；成功后订单转为 completed。
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	purchase, err := h.PurchaseService.Checkout(uid)
	if err != nil {
		var stockErr *service.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			locale := i18n.ResolveLocale(c)
			msg := i18n.Sprintf(locale, "error.insufficient_stock", stockErr.Title, stockErr.Available)
			response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{
				"book_id":   stockErr.BookID,
				"available": stockErr.Available,
			})
		case errors.Is(err, service.ErrEmptyCart):
			respondError(c, response.CodeBadRequest, "error.cart_empty", nil)
		case errors.Is(err, service.ErrPurchaseNotPending):
			respondError(c, response.CodeBadRequest, "error.purchase_not_pending", nil)
		default:
			respondError(c, response.CodeInternal, "error.checkout_failed", err)
		}
		return
	}

	response.Success(c, purchase)
}

// GetPurchase 获取订单详情
func (h *Handler) GetPurchase(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	purchaseID := parseUintParam(c.Param("id"))
	if purchaseID == 0 {
		respondError(c, response.CodeBadRequest, "error.purchase_not_found", nil)
		return
	}

	purchase, err := h.PurchaseService.GetByIDAndUser(purchaseID, uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPurchaseNotFound):
			respondError(c, response.CodeNotFound, "error.purchase_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.checkout_failed", err)
		}
		return
	}
	response.Success(c, purchase)
}

// GetPurchases 历史订单列表
func (h *Handler) GetPurchases(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("per_page"))
	page, pageSize = h.normalizePagination(page, pageSize)

	purchases, total, err := h.PurchaseService.ListByUser(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.checkout_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages(total, pageSize),
	}
	response.SuccessWithPage(c, purchases, pagination)
}
