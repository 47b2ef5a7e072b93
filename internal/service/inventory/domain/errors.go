// internal/service/inventory/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrProductNotFound 表示引用的商品不存在。
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidArgument 表示调用方传入了非法参数（负数数量、空标识等），
// 属于本地错误，不应重试。
var ErrInvalidArgument = errors.New("invalid argument")

// InsufficientUnitsError 是业务拒绝：可用库存不足以覆盖本次预留。
// 不产生任何状态变更。
type InsufficientUnitsError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientUnitsError) Error() string {
	return fmt.Sprintf("insufficient units of product %s: tried to reserve %d units, but only %d are available",
		e.ProductID, e.Requested, e.Available)
}

// InconsistentStateError 表示不变量被破坏：预留总量超过了库存。
// 这是一个缺陷信号而不是正常的拒绝路径，调用方应当告警而不是重试。
type InconsistentStateError struct {
	ProductID string
	Units     int
	Reserved  int
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("inconsistent state of product %s: %d units reserved, even though only %d are in stock",
		e.ProductID, e.Reserved, e.Units)
}
