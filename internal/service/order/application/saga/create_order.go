package saga

import (
	"context"

	"storefront/internal/pkg/logger"
	"storefront/internal/service/order/domain"
)

// CreateOrderHandler 负责持久化订单。
//
// 订单以乐观的 SUCCESS 状态先行落库，这样后续支付失败时
// 有一个可归因的订单 ID。同时注册补偿动作：一旦后面的
// 步骤失败，把这张订单拒绝为 FAILURE。
type CreateOrderHandler struct {
	NextHandler
}

func (h *CreateOrderHandler) Handle(orderCtx *OrderContext) error {
	ctx, span := orderCtx.Tracer.Start(orderCtx.Ctx, "saga.CreateOrder")
	defer span.End()

	order := domain.NewOrder(orderCtx.SessionID)
	if err := orderCtx.Orders.Save(ctx, order); err != nil {
		span.RecordError(err)
		// 建单失败直接中止，此时还没有任何需要补偿的副作用
		return &domain.OrderNotPlacedError{
			SessionID: orderCtx.SessionID,
			Reason:    "creating order failed",
			Cause:     err,
		}
	}
	orderCtx.Order = order
	span.AddEvent("Order saved with optimistic SUCCESS status.")
	logger.Ctx(ctx).Info().
		Str("order", order.ID).
		Str("session", orderCtx.SessionID).
		Msg("order created")

	// 补偿动作：拒绝订单。FAILURE 是终态，重复执行是幂等的。
	orderCtx.AddCompensation(func(compCtx context.Context) {
		compCtx, compSpan := orderCtx.Tracer.Start(compCtx, "saga.compensation.RejectOrder")
		defer compSpan.End()

		if err := orderCtx.Orders.UpdateStatus(compCtx, order.ID, domain.StatusFailure); err != nil {
			// 补偿失败需要记录严重错误，可能需要人工介入
			compSpan.RecordError(err)
			logger.Ctx(compCtx).Error().Err(err).Str("order", order.ID).Msg("CRITICAL: failed to reject order during compensation")
		}
	})

	return h.executeNext(orderCtx)
}
