package adapter

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	cartapp "storefront/internal/service/cart/application"
	cartdomain "storefront/internal/service/cart/domain"
)

// CartLocalAdapter 实现了 port.CartService 接口。
// 购物车模块与订单模块同进程部署，直接进程内调用。
type CartLocalAdapter struct {
	carts *cartapp.CartService
}

func NewCartLocalAdapter(carts *cartapp.CartService) *CartLocalAdapter {
	return &CartLocalAdapter{carts: carts}
}

// GetCart 返回会话购物车的 productId -> units 映射。
// 购物车不存在时返回空映射。
func (a *CartLocalAdapter) GetCart(ctx context.Context, sessionID string) (map[string]int, error) {
	content, err := a.carts.GetCart(ctx, sessionID)
	if err != nil {
		if pkgerrors.Is(err, cartdomain.ErrCartNotFound) {
			return map[string]int{}, nil
		}
		return nil, err
	}
	return content.Content, nil
}

// DeleteCart 删除会话的购物车。
func (a *CartLocalAdapter) DeleteCart(ctx context.Context, sessionID string) error {
	return a.carts.DeleteCart(ctx, sessionID)
}
