package saga

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"storefront/internal/pkg/metrics"
	"storefront/internal/service/order/domain"
)

// PaymentHandler 负责调用支付提供方扣款的步骤。
//
// 支付失败时订单被补偿为 FAILURE，但购物车和预留被刻意保留，
// 用户可以直接重试结账。
type PaymentHandler struct {
	NextHandler
}

func (h *PaymentHandler) Handle(orderCtx *OrderContext) error {
	ctx, span := orderCtx.Tracer.Start(orderCtx.Ctx, "saga.Payment")
	defer span.End()

	span.SetAttributes(attribute.Float64("payment.total", orderCtx.Total))

	if err := orderCtx.Payment.Charge(ctx, orderCtx.Details, orderCtx.Total); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Payment failed")
		metrics.PaymentFailures.Inc()
		return &domain.OrderNotPlacedError{
			SessionID: orderCtx.SessionID,
			OrderID:   orderCtx.Order.ID,
			Reason:    "payment failed",
			Cause:     err,
		}
	}

	span.AddEvent("Payment executed successfully.")
	return h.executeNext(orderCtx)
}
