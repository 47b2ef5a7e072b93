package adapter

import (
	"context"

	invapp "storefront/internal/service/inventory/application"
)

// InventoryLocalAdapter 实现了 port.InventoryService 接口。
// 库存模块与订单模块同进程部署，直接进程内调用。
type InventoryLocalAdapter struct {
	inventory *invapp.InventoryService
}

func NewInventoryLocalAdapter(inventory *invapp.InventoryService) *InventoryLocalAdapter {
	return &InventoryLocalAdapter{inventory: inventory}
}

// ProductPrice 返回商品单价。商品不存在时透传存储层错误。
func (a *InventoryLocalAdapter) ProductPrice(ctx context.Context, productID string) (float64, error) {
	p, err := a.inventory.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	return p.Price, nil
}

// CommitReservations 提交会话名下的全部预留。
func (a *InventoryLocalAdapter) CommitReservations(ctx context.Context, sessionID string) error {
	return a.inventory.CommitReservations(ctx, sessionID)
}
