package public

import (
	"github.com/libris-next/internal/http/response"
	"github.com/libris-next/internal/models"

	"github.com/gin-gonic/gin"
)

// CartResponse 购物车响应
type CartResponse struct {
	PurchaseID  uint                  `json:"purchase_id"`
	Status      string                `json:"status"`
	TotalAmount models.Money          `json:"total_amount"`
	Items       []models.PurchaseItem `json:"items"`
}

func buildCartResponse(purchase *models.Purchase) CartResponse {
	resp := CartResponse{Items: []models.PurchaseItem{}}
	if purchase == nil {
		return resp
	}
	resp.PurchaseID = purchase.ID
	resp.Status = purchase.Status
	resp.TotalAmount = purchase.TotalAmount
	if purchase.Items != nil {
		resp.Items = purchase.Items
	}
	return resp
}

// GetCart 获取购物车（用户当前 pending 订单）
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	purchase, err := h.CartService.GetCart(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, buildCartResponse(purchase))
}

// AddCartItem 将一本图书加入购物车（数量 +1）
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookID := parseUintParam(c.Param("book_id"))
	if bookID == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
		return
	}

	purchase, err := h.CartService.AddToCart(uid, bookID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, buildCartResponse(purchase))
}

// DeleteCartItem 从购物车移除一本图书
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookID := parseUintParam(c.Param("book_id"))
	if bookID == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
		return
	}

	purchase, err := h.CartService.RemoveFromCart(uid, bookID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, buildCartResponse(purchase))
}

// UpdateCartRequest 批量更新购物车数量请求
type UpdateCartRequest struct {
	// Quantities 图书ID → 目标数量（≥1）
	Quantities map[uint]int `json:"quantities" binding:"required"`
}

// UpdateCartItems 批量设置购物车数量
func (h *Handler) UpdateCartItems(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	purchase, err := h.CartService.UpdateQuantities(uid, req.Quantities)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, buildCartResponse(purchase))
}
