// internal/service/order/domain/port/cart.go
package port

import "context"

// CartService 是订单模块看到的购物车出站端口。
type CartService interface {
	// GetCart 返回会话购物车的 productId -> units 映射。
	// 购物车不存在时返回空映射，不算错误。
	GetCart(ctx context.Context, sessionID string) (map[string]int, error)

	// DeleteCart 删除会话的购物车。
	DeleteCart(ctx context.Context, sessionID string) error
}
