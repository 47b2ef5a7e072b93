package saga

import (
	"go.opentelemetry.io/otel/attribute"

	"storefront/internal/pkg/logger"
)

// NotificationHandler 是 Saga 流程的最后一步，负责广播订单结果。
type NotificationHandler struct {
	NextHandler
}

func (h *NotificationHandler) Handle(orderCtx *OrderContext) error {
	ctx, span := orderCtx.Tracer.Start(orderCtx.Ctx, "saga.Notification")
	defer span.End()

	span.SetAttributes(
		attribute.String("messaging.system", "kafka"),
		attribute.String("order.id", orderCtx.Order.ID),
	)

	// 发送通知失败是非关键路径的失败：只记录警告，
	// 让整个 Saga 成功结束，后续靠监控告警补偿。
	err := orderCtx.Notifier.OrderPlaced(ctx, orderCtx.Order.ID, orderCtx.SessionID, orderCtx.Total)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("order", orderCtx.Order.ID).Msg("failed to publish order placed notification")
		span.RecordError(err)
	}

	span.AddEvent("Saga finalized and notification sent (or attempted).")
	return h.executeNext(orderCtx)
}
