package application

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	cartapp "storefront/internal/service/cart/application"
	cartinfra "storefront/internal/service/cart/infrastructure"
	invapp "storefront/internal/service/inventory/application"
	invdomain "storefront/internal/service/inventory/domain"
	invinfra "storefront/internal/service/inventory/infrastructure"
	"storefront/internal/service/order/domain"
	"storefront/internal/service/order/domain/port"
	orderinfra "storefront/internal/service/order/infrastructure"
	"storefront/internal/service/order/infrastructure/adapter"
)

// fakePaymentService 按编排好的结果应答扣款请求。
type fakePaymentService struct {
	failWith error
	charges  int
	lastSum  float64
}

func (f *fakePaymentService) Charge(ctx context.Context, details port.PaymentDetails, total float64) error {
	f.charges++
	f.lastSum = total
	if f.failWith != nil {
		return &port.PaymentFailedError{Cause: f.failWith}
	}
	return nil
}

type fakeNotifier struct {
	placed int
}

func (f *fakeNotifier) OrderPlaced(ctx context.Context, orderID, sessionID string, total float64) error {
	f.placed++
	return nil
}

func (f *fakeNotifier) Close() error { return nil }

// confirmFixture 用内存存储把整条确认流程端到端组装起来。
type confirmFixture struct {
	service   *OrderApplicationService
	invRepo   *invinfra.MemoryInventoryRepository
	cartRepo  *cartinfra.MemoryCartRepository
	orderRepo *orderinfra.MemoryOrderRepository
	inventory *invapp.InventoryService
	carts     *cartapp.CartService
	payment   *fakePaymentService
	notifier  *fakeNotifier
}

func newConfirmFixture(t *testing.T) *confirmFixture {
	t.Helper()
	tracer := otel.Tracer("test")

	invRepo := invinfra.NewMemoryInventoryRepository()
	cartRepo := cartinfra.NewMemoryCartRepository()
	orderRepo := orderinfra.NewMemoryOrderRepository()

	inventory := invapp.NewInventoryService(invRepo, invinfra.NewMutexItemLocker(), tracer)
	carts := cartapp.NewCartService(cartRepo, inventory, tracer)
	payment := &fakePaymentService{}
	notifier := &fakeNotifier{}

	service := NewOrderApplicationService(orderRepo, 5*time.Second, tracer,
		adapter.NewCartLocalAdapter(carts),
		adapter.NewInventoryLocalAdapter(inventory),
		payment, notifier)

	return &confirmFixture{
		service: service, invRepo: invRepo, cartRepo: cartRepo, orderRepo: orderRepo,
		inventory: inventory, carts: carts, payment: payment, notifier: notifier,
	}
}

// seedCheckout 准备一个标准场景：10 件库存，会话预留并加购 3 件。
func (f *confirmFixture) seedCheckout(t *testing.T, sessionID string) {
	t.Helper()
	ctx := context.Background()

	item := invdomain.NewInventoryItem("tea-1", "Matcha 30 g", "very nice Matcha 30 g tea", 10, 2.0)
	require.NoError(t, f.invRepo.Save(ctx, item))

	_, err := f.inventory.MakeReservation(ctx, "tea-1", sessionID, 3)
	require.NoError(t, err)
	require.NoError(t, f.carts.AddItem(ctx, sessionID, "tea-1", 3))
}

func testDetails() port.PaymentDetails {
	return port.PaymentDetails{CardNumber: "4111-1111-1111-1111", CardOwner: "Jane Doe", Checksum: "42"}
}

func TestConfirmOrder_HappyPath(t *testing.T) {
	f := newConfirmFixture(t)
	f.seedCheckout(t, "session-a")
	ctx := context.Background()

	orderID, err := f.service.ConfirmOrder(ctx, "session-a", testDetails())
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	order, err := f.orderRepo.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, order.Status)
	assert.Equal(t, "session-a", order.SessionID)

	// 提交预留后库存被永久扣减，预留消失
	item, err := f.invRepo.FindByID(ctx, "tea-1")
	require.NoError(t, err)
	assert.Equal(t, 7, item.Units)
	assert.Empty(t, item.Reservations)

	// 购物车被清空，通知已发送，按总价扣款一次
	_, err = f.cartRepo.FindByID(ctx, "session-a")
	assert.Error(t, err)
	assert.Equal(t, 1, f.notifier.placed)
	assert.Equal(t, 1, f.payment.charges)
	assert.InDelta(t, 6.0, f.payment.lastSum, 1e-9)
}

func TestConfirmOrder_EmptyCartFailsFast(t *testing.T) {
	f := newConfirmFixture(t)
	ctx := context.Background()

	_, err := f.service.ConfirmOrder(ctx, "session-a", testDetails())

	var notPlaced *domain.OrderNotPlacedError
	require.ErrorAs(t, err, &notPlaced)
	assert.Contains(t, notPlaced.Error(), "cart is either empty or not available")

	// 定价阶段失败不产生任何副作用，连订单记录都没有
	assert.Equal(t, 0, f.payment.charges)
	assert.Equal(t, 0, f.notifier.placed)
}

func TestConfirmOrder_UnpriceableProductFailsFast(t *testing.T) {
	f := newConfirmFixture(t)
	ctx := context.Background()
	require.NoError(t, f.carts.AddItem(ctx, "session-a", "no-such-product", 2))

	_, err := f.service.ConfirmOrder(ctx, "session-a", testDetails())

	var notPlaced *domain.OrderNotPlacedError
	require.ErrorAs(t, err, &notPlaced)
	assert.Equal(t, 0, f.payment.charges)
}

func TestConfirmOrder_PaymentFailureCompensates(t *testing.T) {
	f := newConfirmFixture(t)
	f.seedCheckout(t, "session-a")
	f.payment.failWith = pkgerrors.New("card declined")
	ctx := context.Background()

	_, err := f.service.ConfirmOrder(ctx, "session-a", testDetails())

	var notPlaced *domain.OrderNotPlacedError
	require.ErrorAs(t, err, &notPlaced)
	assert.Contains(t, notPlaced.Error(), "payment failed")

	var paymentErr *port.PaymentFailedError
	assert.True(t, pkgerrors.As(err, &paymentErr), "cause chain keeps the payment error")

	// 补偿把订单翻转为 FAILURE
	order, err := f.orderRepo.FindByID(ctx, notPlaced.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailure, order.Status)

	// 库存和预留原封不动，购物车还在，等待回收器处理
	item, err := f.invRepo.FindByID(ctx, "tea-1")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Units)
	require.Len(t, item.Reservations, 1)

	_, err = f.cartRepo.FindByID(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, 0, f.notifier.placed)
}

// failingDeleteCart 让清空购物车这一步失败，其余照常。
type failingDeleteCart struct {
	port.CartService
}

func (f *failingDeleteCart) DeleteCart(ctx context.Context, sessionID string) error {
	return pkgerrors.New("cart store unavailable")
}

func TestConfirmOrder_ClearCartFailureIsNotFatal(t *testing.T) {
	f := newConfirmFixture(t)
	f.seedCheckout(t, "session-a")
	ctx := context.Background()

	tracer := otel.Tracer("test")
	service := NewOrderApplicationService(f.orderRepo, 5*time.Second, tracer,
		&failingDeleteCart{CartService: adapter.NewCartLocalAdapter(f.carts)},
		adapter.NewInventoryLocalAdapter(f.inventory),
		f.payment, f.notifier)

	orderID, err := service.ConfirmOrder(ctx, "session-a", testDetails())
	require.NoError(t, err, "a leftover cart must not fail a paid order")

	order, err := f.orderRepo.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, order.Status)

	// 购物车留给超时回收器
	_, err = f.cartRepo.FindByID(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, 1, f.notifier.placed, "notification still goes out")
}

// failingCommit 让提交预留这一步失败，其余照常。
type failingCommit struct {
	port.InventoryService
}

func (f *failingCommit) CommitReservations(ctx context.Context, sessionID string) error {
	return pkgerrors.New("inventory store unavailable")
}

func TestConfirmOrder_CommitFailureAfterPayment(t *testing.T) {
	f := newConfirmFixture(t)
	f.seedCheckout(t, "session-a")
	ctx := context.Background()

	tracer := otel.Tracer("test")
	service := NewOrderApplicationService(f.orderRepo, 5*time.Second, tracer,
		adapter.NewCartLocalAdapter(f.carts),
		&failingCommit{InventoryService: adapter.NewInventoryLocalAdapter(f.inventory)},
		f.payment, f.notifier)

	_, err := service.ConfirmOrder(ctx, "session-a", testDetails())

	var notPlaced *domain.OrderNotPlacedError
	require.ErrorAs(t, err, &notPlaced)
	assert.Contains(t, notPlaced.Error(), "committing reservations failed")

	// 扣款已经发生，订单被补偿为 FAILURE
	assert.Equal(t, 1, f.payment.charges)
	order, err := f.orderRepo.FindByID(ctx, notPlaced.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailure, order.Status)

	// 库存没有被扣减
	item, err := f.invRepo.FindByID(ctx, "tea-1")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Units)
	assert.Equal(t, 0, f.notifier.placed)
}

func TestRejectOrder_IsIdempotent(t *testing.T) {
	f := newConfirmFixture(t)
	ctx := context.Background()

	order := domain.NewOrder("session-a")
	require.NoError(t, f.orderRepo.Save(ctx, order))

	require.NoError(t, f.service.RejectOrder(ctx, order.ID))
	require.NoError(t, f.service.RejectOrder(ctx, order.ID))

	got, err := f.orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailure, got.Status)
}

func TestGetOrder_Missing(t *testing.T) {
	f := newConfirmFixture(t)

	_, err := f.service.GetOrder(context.Background(), "no-such-order")
	assert.True(t, pkgerrors.Is(err, domain.ErrOrderNotFound))
}
