package saga

import (
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"storefront/internal/service/order/domain"
)

// PricingHandler 负责计算购物车总价的步骤。
//
// 商店不支持部分下单：要么购物车里的商品全部可以定价，要么整单失败。
// 任何一个商品查不到价格、购物车为空或不存在，都在这里快速失败，
// 不产生任何副作用。
type PricingHandler struct {
	NextHandler
}

func (h *PricingHandler) Handle(orderCtx *OrderContext) error {
	ctx, span := orderCtx.Tracer.Start(orderCtx.Ctx, "saga.Pricing")
	defer span.End()

	cart, err := orderCtx.Cart.GetCart(ctx, orderCtx.SessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Cart lookup failed")
		return &domain.OrderNotPlacedError{
			SessionID: orderCtx.SessionID,
			Reason:    "calculating total failed",
			Cause:     err,
		}
	}
	if len(cart) == 0 {
		return &domain.OrderNotPlacedError{
			SessionID: orderCtx.SessionID,
			Reason:    "cart is either empty or not available",
		}
	}

	// 并发查询每个商品的价格，任何一个失败都会中断整单
	var (
		mu    sync.Mutex
		total float64
	)
	g, gctx := errgroup.WithContext(ctx)
	for productID, units := range cart {
		productID, units := productID, units
		g.Go(func() error {
			price, err := orderCtx.Inventory.ProductPrice(gctx, productID)
			if err != nil {
				return err
			}
			mu.Lock()
			total += price * float64(units)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product pricing failed")
		return &domain.OrderNotPlacedError{
			SessionID: orderCtx.SessionID,
			Reason:    "cart is either empty or not available",
			Cause:     err,
		}
	}

	if total <= 0 {
		return &domain.OrderNotPlacedError{
			SessionID: orderCtx.SessionID,
			Reason:    "cart is either empty or not available",
		}
	}

	orderCtx.Total = total
	span.SetAttributes(attribute.Float64("order.total", total))
	span.AddEvent("Cart priced successfully.")

	return h.executeNext(orderCtx)
}
