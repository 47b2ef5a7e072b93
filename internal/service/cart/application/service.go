// internal/service/cart/application/service.go
package application

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"

	cartdomain "storefront/internal/service/cart/domain"
	invdomain "storefront/internal/service/inventory/domain"
	inventory "storefront/internal/service/inventory/application"
)

// CartService 管理各会话购物车里的商品。
// 会话之间互不可见，购物车只属于它的会话。
type CartService struct {
	repo      cartdomain.CartRepository
	inventory *inventory.InventoryService
	tracer    trace.Tracer
}

func NewCartService(repo cartdomain.CartRepository, inventorySvc *inventory.InventoryService, tracer trace.Tracer) *CartService {
	return &CartService{repo: repo, inventory: inventorySvc, tracer: tracer}
}

// GetCart 返回会话的购物车内容。没有记录时返回 ErrCartNotFound。
func (s *CartService) GetCart(ctx context.Context, sessionID string) (cartdomain.CartContent, error) {
	item, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return cartdomain.CartContent{}, err
	}
	return item.Content, nil
}

// GetProductsInCart 返回购物车中商品的读模型，数量为购物车内数量。
func (s *CartService) GetProductsInCart(ctx context.Context, sessionID string) ([]invdomain.Product, error) {
	content, err := s.GetCart(ctx, sessionID)
	if err != nil {
		if pkgerrors.Is(err, cartdomain.ErrCartNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var products []invdomain.Product
	for _, productID := range content.ProductIDs() {
		p, err := s.inventory.GetProduct(ctx, productID)
		if err != nil {
			// 下架或丢失的商品直接跳过，购物车展示尽力而为
			continue
		}
		p.Units = content.Units(productID)
		products = append(products, p)
	}
	return products, nil
}

// AddItem 向购物车添加 units 个商品。商品已在购物车时数量累加。
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, units int) error {
	ctx, span := s.tracer.Start(ctx, "cart.AddItem")
	defer span.End()

	if units < 0 {
		return invdomain.ErrInvalidArgument
	}

	item, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		if !pkgerrors.Is(err, cartdomain.ErrCartNotFound) {
			return err
		}
		item = cartdomain.NewCartItem(sessionID)
	}

	item.Content.Content[productID] += units
	return s.repo.Save(ctx, item)
}

// RemoveItem 从购物车中减少 units 个商品。
// 减到零或以下时整个条目被移除；商品不在购物车时什么都不做。
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string, units int) error {
	ctx, span := s.tracer.Start(ctx, "cart.RemoveItem")
	defer span.End()

	if units < 0 {
		return invdomain.ErrInvalidArgument
	}

	item, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		if pkgerrors.Is(err, cartdomain.ErrCartNotFound) {
			return nil
		}
		return err
	}

	remaining := item.Content.Units(productID) - units
	if remaining > 0 {
		item.Content.Content[productID] = remaining
	} else {
		delete(item.Content.Content, productID)
	}
	return s.repo.Save(ctx, item)
}

// DeleteCart 删除整个购物车。
func (s *CartService) DeleteCart(ctx context.Context, sessionID string) error {
	return s.repo.DeleteByID(ctx, sessionID)
}
