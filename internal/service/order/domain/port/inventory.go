// internal/service/order/domain/port/inventory.go
package port

import "context"

// InventoryService 是订单模块看到的库存出站端口。
type InventoryService interface {
	// ProductPrice 返回商品单价。商品不存在时返回错误。
	ProductPrice(ctx context.Context, productID string) (float64, error)

	// CommitReservations 提交会话名下的全部预留，永久扣减库存。
	CommitReservations(ctx context.Context, sessionID string) error
}
