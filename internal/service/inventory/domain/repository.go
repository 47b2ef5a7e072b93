// internal/service/inventory/domain/repository.go
package domain

import "context"

// InventoryRepository 定义了库存聚合的持久化接口。
// 它位于领域层，但由基础设施层实现。
//
// 预留嵌入在商品聚合里，所以一次 Save 对存储来说就是一个原子单元；
// 针对同一商品的并发 读取-修改-写回 必须由调用方（应用层）串行化。
type InventoryRepository interface {
	// FindByID 根据商品 ID 查找聚合，不存在时返回 ErrProductNotFound。
	FindByID(ctx context.Context, id string) (*InventoryItem, error)

	// FindAll 返回所有商品聚合，含各自的预留。
	FindAll(ctx context.Context) ([]*InventoryItem, error)

	// Save 保存一个商品聚合（用于创建或更新），连同其预留一起写回。
	Save(ctx context.Context, item *InventoryItem) error

	// SaveAll 批量写回。
	SaveAll(ctx context.Context, items []*InventoryItem) error

	// Count 返回商品总数，数据生成器用它判断是否需要补种数据。
	Count(ctx context.Context) (int64, error)
}
