package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/libris-next/internal/constants"
	"github.com/libris-next/internal/http/response"
	"github.com/libris-next/internal/models"
	"github.com/libris-next/internal/repository"
	"github.com/libris-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetBooks 获取图书列表。
// 过滤参数全部可选且取交集；非法的数字参数按策略直接忽略。
func (h *Handler) GetBooks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("per_page"))
	page, pageSize = h.normalizePagination(page, pageSize)

	filter := repository.BookListFilter{
		Page:     page,
		PageSize: pageSize,
		Query:    strings.TrimSpace(c.Query("query")),
		Stock:    parseStockParam(c),
	}
	if id := parseUintParam(c.Query("genre")); id != 0 {
		filter.GenreID = id
	}
	if id := parseUintParam(c.Query("author")); id != 0 {
		filter.AuthorID = id
	}
	if price := parseMoneyParam(c.Query("price_min")); price != nil {
		filter.PriceMin = price
	}
	if price := parseMoneyParam(c.Query("price_max")); price != nil {
		filter.PriceMax = price
	}
	filter.SortBy, filter.SortDesc = service.ResolveSort(c.QueryArray("order_by"))

	result, err := h.CatalogService.ListBooks(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.catalog_list_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      result.Page,
		PageSize:  result.PageSize,
		Total:     result.Total,
		TotalPage: totalPages(result.Total, result.PageSize),
	}
	response.SuccessWithPage(c, result.Books, pagination)
}

// GetBook 获取图书详情（登录用户附带收藏状态）
func (h *Handler) GetBook(c *gin.Context) {
	bookID := parseUintParam(c.Param("id"))
	if bookID == 0 {
		respondError(c, response.CodeBadRequest, "error.book_not_found", nil)
		return
	}

	detail, err := h.CatalogService.GetBook(bookID, optionalUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			respondError(c, response.CodeNotFound, "error.book_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.book_detail_failed", err)
		}
		return
	}

	response.Success(c, detail)
}

// GetGenres 获取分类列表
func (h *Handler) GetGenres(c *gin.Context) {
	genres, err := h.GenreRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.catalog_list_failed", err)
		return
	}
	response.Success(c, gin.H{"genres": genres})
}

// GetAuthors 获取作者列表
func (h *Handler) GetAuthors(c *gin.Context) {
	authors, err := h.AuthorRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.catalog_list_failed", err)
		return
	}
	response.Success(c, gin.H{"authors": authors})
}

// parseUintParam 宽松解析 uint 参数，非法值返回 0（即忽略该过滤条件）。
func parseUintParam(raw string) uint {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}

// parseMoneyParam 宽松解析金额参数，非法或负值返回 nil。
func parseMoneyParam(raw string) *models.Money {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	money, err := models.NewMoneyFromString(trimmed)
	if err != nil || money.IsNegative() {
		return nil
	}
	return &money
}

// parseStockParam 解析库存过滤参数。in_stock 与 not_in_stock 互斥，
// 同时给出时视为无过滤。
func parseStockParam(c *gin.Context) string {
	inStock := parseBoolParam(c.Query("in_stock"))
	outStock := parseBoolParam(c.Query("not_in_stock"))
	switch {
	case inStock && !outStock:
		return constants.StockFilterIn
	case outStock && !inStock:
		return constants.StockFilterOut
	default:
		return ""
	}
}

func parseBoolParam(raw string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return value
}

func totalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
