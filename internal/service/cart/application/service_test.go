package application

import (
	"context"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	cartdomain "storefront/internal/service/cart/domain"
	cartinfra "storefront/internal/service/cart/infrastructure"
	invapp "storefront/internal/service/inventory/application"
	invdomain "storefront/internal/service/inventory/domain"
	invinfra "storefront/internal/service/inventory/infrastructure"
)

func newTestCartService(t *testing.T) (*CartService, *invinfra.MemoryInventoryRepository) {
	t.Helper()
	invRepo := invinfra.NewMemoryInventoryRepository()
	invSvc := invapp.NewInventoryService(invRepo, invinfra.NewMutexItemLocker(), otel.Tracer("test"))
	return NewCartService(cartinfra.NewMemoryCartRepository(), invSvc, otel.Tracer("test")), invRepo
}

func TestAddItem_AccumulatesUnits(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "session-a", "tea-1", 2))
	require.NoError(t, svc.AddItem(ctx, "session-a", "tea-1", 3))

	content, err := svc.GetCart(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, 5, content.Units("tea-1"))
}

func TestAddItem_NegativeUnits(t *testing.T) {
	svc, _ := newTestCartService(t)

	err := svc.AddItem(context.Background(), "session-a", "tea-1", -1)
	assert.True(t, pkgerrors.Is(err, invdomain.ErrInvalidArgument))
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "session-a", "tea-1", 5))
	require.NoError(t, svc.RemoveItem(ctx, "session-a", "tea-1", 2))

	content, err := svc.GetCart(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, 3, content.Units("tea-1"))

	// 减到零以下时整个条目被移除
	require.NoError(t, svc.RemoveItem(ctx, "session-a", "tea-1", 10))
	content, err = svc.GetCart(ctx, "session-a")
	require.NoError(t, err)
	assert.Zero(t, content.Units("tea-1"))
	assert.Empty(t, content.ProductIDs())
}

func TestRemoveItem_MissingCartIsNoop(t *testing.T) {
	svc, _ := newTestCartService(t)

	require.NoError(t, svc.RemoveItem(context.Background(), "no-such-session", "tea-1", 1))
}

func TestGetCart_Missing(t *testing.T) {
	svc, _ := newTestCartService(t)

	_, err := svc.GetCart(context.Background(), "no-such-session")
	assert.True(t, pkgerrors.Is(err, cartdomain.ErrCartNotFound))
}

func TestGetProductsInCart(t *testing.T) {
	svc, invRepo := newTestCartService(t)
	ctx := context.Background()

	item := invdomain.NewInventoryItem("tea-1", "Sencha", "very nice Sencha tea", 10, 1.5)
	require.NoError(t, invRepo.Save(ctx, item))

	require.NoError(t, svc.AddItem(ctx, "session-a", "tea-1", 4))
	require.NoError(t, svc.AddItem(ctx, "session-a", "gone-product", 1))

	products, err := svc.GetProductsInCart(ctx, "session-a")
	require.NoError(t, err)
	require.Len(t, products, 1, "unknown products are skipped")
	assert.Equal(t, "tea-1", products[0].ID)
	assert.Equal(t, 4, products[0].Units, "units reflect the cart, not the stock")
	assert.Equal(t, 1.5, products[0].Price)
}

func TestDeleteCart(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "session-a", "tea-1", 2))
	require.NoError(t, svc.DeleteCart(ctx, "session-a"))

	_, err := svc.GetCart(ctx, "session-a")
	assert.True(t, pkgerrors.Is(err, cartdomain.ErrCartNotFound))
}
