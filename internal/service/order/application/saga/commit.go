package saga

import (
	"go.opentelemetry.io/otel/codes"

	"storefront/internal/pkg/logger"
	"storefront/internal/service/order/domain"
)

// CommitReservationsHandler 把会话名下的预留全部提交，永久扣减库存。
//
// 已知的正确性缺口：走到这一步时支付已经成功，这里再失败就会出现
// 已扣款未发货的不一致。和支付一起做不到原子提交，只能大声记录，
// 留给人工或对账处理。
type CommitReservationsHandler struct {
	NextHandler
}

func (h *CommitReservationsHandler) Handle(orderCtx *OrderContext) error {
	ctx, span := orderCtx.Tracer.Start(orderCtx.Ctx, "saga.CommitReservations")
	defer span.End()

	if err := orderCtx.Inventory.CommitReservations(ctx, orderCtx.SessionID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Reservation commit failed after successful payment")
		logger.Ctx(ctx).Error().Err(err).
			Str("order", orderCtx.Order.ID).
			Str("session", orderCtx.SessionID).
			Msg("CRITICAL: payment succeeded but committing reservations failed, stock was not decremented")
		return &domain.OrderNotPlacedError{
			SessionID: orderCtx.SessionID,
			OrderID:   orderCtx.Order.ID,
			Reason:    "committing reservations failed",
			Cause:     err,
		}
	}

	span.AddEvent("All reservations committed, stock decremented.")
	return h.executeNext(orderCtx)
}
