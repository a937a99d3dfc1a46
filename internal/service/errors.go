package service

import (
	"errors"
	"fmt"
)

// 业务错误定义，供处理器用 errors.Is 映射到接口错误码。
var (
	ErrBookNotFound       = errors.New("book not found")
	ErrBookOutOfStock     = errors.New("book out of stock")
	ErrPurchaseNotFound   = errors.New("purchase not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCartItem    = errors.New("invalid cart item")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrPurchaseNotPending = errors.New("purchase is not pending")

	ErrNotFound           = errors.New("record not found")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("weak password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrProfileEmpty       = errors.New("profile update is empty")
)

// InsufficientStockError 库存不足错误，携带图书与当前可售数量。
type InsufficientStockError struct {
	BookID    uint
	Title     string
	Available int
}

// Error 实现 error 接口
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for book %d (%s): %d available", e.BookID, e.Title, e.Available)
}

// Is 支持 errors.Is(err, ErrInsufficientStock)
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
