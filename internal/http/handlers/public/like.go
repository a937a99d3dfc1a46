package public

import (
	"strconv"

	"github.com/libris-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LikeBook 收藏图书（重复收藏为幂等操作）
func (h *Handler) LikeBook(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookID := parseUintParam(c.Param("id"))
	if bookID == 0 {
		respondError(c, response.CodeBadRequest, "error.book_not_found", nil)
		return
	}

	if err := h.LikeService.Like(uid, bookID); err != nil {
		respondLikeError(c, err)
		return
	}
	response.Success(c, gin.H{"liked": true})
}

// UnlikeBook 取消收藏
func (h *Handler) UnlikeBook(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	bookID := parseUintParam(c.Param("id"))
	if bookID == 0 {
		respondError(c, response.CodeBadRequest, "error.book_not_found", nil)
		return
	}

	if err := h.LikeService.Unlike(uid, bookID); err != nil {
		respondLikeError(c, err)
		return
	}
	response.Success(c, gin.H{"liked": false})
}

// GetLikedBooks 收藏列表
func (h *Handler) GetLikedBooks(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("per_page"))
	page, pageSize = h.normalizePagination(page, pageSize)

	likes, total, err := h.LikeService.ListLiked(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.like_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPages(total, pageSize),
	}
	response.SuccessWithPage(c, likes, pagination)
}
