// internal/service/inventory/infrastructure/memory_repository.go
package infrastructure

import (
	"context"
	"sort"
	"sync"

	"storefront/internal/service/inventory/domain"
)

// MemoryInventoryRepository 是进程内的 InventoryRepository 实现，
// 供单元测试和本地演示使用。
type MemoryInventoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.InventoryItem
}

func NewMemoryInventoryRepository() *MemoryInventoryRepository {
	return &MemoryInventoryRepository{items: make(map[string]*domain.InventoryItem)}
}

func (r *MemoryInventoryRepository) FindByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneItem(item), nil
}

func (r *MemoryInventoryRepository) FindAll(ctx context.Context) ([]*domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]*domain.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, cloneItem(item))
	}
	// 稳定的遍历顺序让测试断言更简单
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *MemoryInventoryRepository) Save(ctx context.Context, item *domain.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *MemoryInventoryRepository) SaveAll(ctx context.Context, items []*domain.InventoryItem) error {
	for _, item := range items {
		if err := r.Save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryInventoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

// cloneItem 深拷贝聚合，模拟真实存储的 加载-修改-写回 语义：
// 调用方拿到的必须是快照而不是共享内存。
func cloneItem(item *domain.InventoryItem) *domain.InventoryItem {
	clone := *item
	clone.Reservations = append([]domain.Reservation(nil), item.Reservations...)
	return &clone
}
