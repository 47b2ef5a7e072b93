// internal/service/order/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound 表示引用的订单不存在。
var ErrOrderNotFound = errors.New("order not found")

// OrderNotPlacedError 是订单确认失败的统一出口。
// 始终携带一个可读的原因（定价失败、购物车为空、支付失败、提交预留失败）。
// OrderID 只在订单已经落库之后的步骤失败时才有值。
type OrderNotPlacedError struct {
	SessionID string
	OrderID   string
	Reason    string
	Cause     error
}

func (e *OrderNotPlacedError) Error() string {
	return fmt.Sprintf("no order placed for session %s: %s", e.SessionID, e.Reason)
}

func (e *OrderNotPlacedError) Unwrap() error {
	return e.Cause
}
