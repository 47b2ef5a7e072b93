package saga

import (
	"storefront/internal/pkg/logger"
)

// ClearCartHandler 在订单成功后删除会话的购物车。
//
// 删除失败不升级为整单失败：对用户来说订单已经成立，
// 残留的购物车会被超时回收器最终清掉。
type ClearCartHandler struct {
	NextHandler
}

func (h *ClearCartHandler) Handle(orderCtx *OrderContext) error {
	ctx, span := orderCtx.Tracer.Start(orderCtx.Ctx, "saga.ClearCart")
	defer span.End()

	if err := orderCtx.Cart.DeleteCart(ctx, orderCtx.SessionID); err != nil {
		span.RecordError(err)
		logger.Ctx(ctx).Warn().Err(err).
			Str("session", orderCtx.SessionID).
			Msg("deleting cart failed, leaving it to the timeout collector")
	} else {
		logger.Ctx(ctx).Info().Str("session", orderCtx.SessionID).Msg("deleted cart")
	}

	return h.executeNext(orderCtx)
}
