// internal/service/order/application/service.go
package application

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/metrics"
	"storefront/internal/service/order/application/saga"
	"storefront/internal/service/order/domain"
	"storefront/internal/service/order/domain/port"
)

// OrderApplicationService 只关注订单确认的业务流程编排。
//
// 订单确认是一个本地 Saga：定价、建单、扣款、提交预留、清空购物车，
// 各步骤独立提交，失败时通过补偿动作（拒绝订单）收场，
// 而不是一个跨服务的 ACID 事务。
type OrderApplicationService struct {
	orderRepo         domain.OrderRepository
	processingTimeout time.Duration
	tracer            trace.Tracer

	cartService      port.CartService
	inventoryService port.InventoryService
	paymentService   port.PaymentService
	notifier         port.OrderNotifier
}

func NewOrderApplicationService(orderRepo domain.OrderRepository, processingTimeout time.Duration, tracer trace.Tracer,
	cartService port.CartService, inventoryService port.InventoryService,
	paymentService port.PaymentService, notifier port.OrderNotifier) *OrderApplicationService {
	return &OrderApplicationService{
		orderRepo: orderRepo, processingTimeout: processingTimeout, tracer: tracer,
		cartService: cartService, inventoryService: inventoryService,
		paymentService: paymentService, notifier: notifier,
	}
}

// ConfirmOrder 为一个会话确认订单，成功时返回订单 ID。
//
// 失败时统一返回 *domain.OrderNotPlacedError。定价和建单阶段失败
// 没有任何副作用；扣款或提交预留失败会触发补偿，把订单拒绝为
// FAILURE 后再向上返回。
func (s *OrderApplicationService) ConfirmOrder(ctx context.Context, sessionID string, details port.PaymentDetails) (string, error) {
	ctx, span := s.tracer.Start(ctx, "order.ConfirmOrder")
	defer span.End()

	// 为每次确认流程设置独立的超时时间
	processingCtx, cancel := context.WithTimeout(ctx, s.processingTimeout)
	defer cancel()

	orderContext := &saga.OrderContext{
		Ctx:       processingCtx,
		Tracer:    s.tracer,
		SessionID: sessionID,
		Details:   details,
		Cart:      s.cartService,
		Inventory: s.inventoryService,
		Payment:   s.paymentService,
		Orders:    s.orderRepo,
		Notifier:  s.notifier,
	}

	if err := s.buildChain().Handle(orderContext); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order confirmation failed")
		logger.Ctx(processingCtx).Error().Err(err).
			Str("session", sessionID).
			Msg("order confirmation chain failed, triggering saga compensation")

		// 一旦扣款步骤被触发过，流程就有责任执行补偿而不是悄悄中止
		orderContext.TriggerCompensation(processingCtx)
		metrics.OrdersPlaced.WithLabelValues(string(domain.StatusFailure)).Inc()

		var notPlaced *domain.OrderNotPlacedError
		if pkgerrors.As(err, &notPlaced) {
			return "", err
		}
		return "", &domain.OrderNotPlacedError{SessionID: sessionID, Reason: "order confirmation failed", Cause: err}
	}

	metrics.OrdersPlaced.WithLabelValues(string(domain.StatusSuccess)).Inc()
	logger.Ctx(processingCtx).Info().
		Str("order", orderContext.Order.ID).
		Str("session", sessionID).
		Msg("order confirmed")
	return orderContext.Order.ID, nil
}

// RejectOrder 把订单置为 FAILURE。幂等：订单永远不会从
// FAILURE 回到其它状态。
func (s *OrderApplicationService) RejectOrder(ctx context.Context, orderID string) error {
	return s.orderRepo.UpdateStatus(ctx, orderID, domain.StatusFailure)
}

// GetOrder 按 ID 查询订单。
func (s *OrderApplicationService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

// buildChain 组装订单确认的责任链。
// 顺序即语义：先有订单再扣款（失败可归因到订单 ID），
// 扣款成功之后才提交预留（避免为从未扣减的库存收钱）。
func (s *OrderApplicationService) buildChain() saga.Handler {
	pricing := &saga.PricingHandler{}
	createOrder := &saga.CreateOrderHandler{}
	payment := &saga.PaymentHandler{}
	commit := &saga.CommitReservationsHandler{}
	clearCart := &saga.ClearCartHandler{}
	notify := &saga.NotificationHandler{}

	pricing.SetNext(createOrder)
	createOrder.SetNext(payment)
	payment.SetNext(commit)
	commit.SetNext(clearCart)
	clearCart.SetNext(notify)

	return pricing
}
