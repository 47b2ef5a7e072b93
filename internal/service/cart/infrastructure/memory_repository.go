// internal/service/cart/infrastructure/memory_repository.go
package infrastructure

import (
	"context"
	"sync"

	"storefront/internal/service/cart/domain"
)

// MemoryCartRepository 是进程内的 CartRepository 实现，
// 供单元测试和本地演示使用。
type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.CartItem
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[string]*domain.CartItem)}
}

func (r *MemoryCartRepository) FindByID(ctx context.Context, sessionID string) (*domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.carts[sessionID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return cloneCart(item), nil
}

func (r *MemoryCartRepository) FindAll(ctx context.Context) ([]*domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]*domain.CartItem, 0, len(r.carts))
	for _, item := range r.carts {
		items = append(items, cloneCart(item))
	}
	return items, nil
}

func (r *MemoryCartRepository) Save(ctx context.Context, item *domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[item.SessionID] = cloneCart(item)
	return nil
}

func (r *MemoryCartRepository) DeleteByID(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

func (r *MemoryCartRepository) DeleteByIDIn(ctx context.Context, sessionIDs []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted := 0
	for _, sessionID := range sessionIDs {
		if _, ok := r.carts[sessionID]; ok {
			delete(r.carts, sessionID)
			deleted++
		}
	}
	return deleted, nil
}

func cloneCart(item *domain.CartItem) *domain.CartItem {
	clone := *item
	clone.Content = domain.NewCartContent()
	for k, v := range item.Content.Content {
		clone.Content.Content[k] = v
	}
	return &clone
}
