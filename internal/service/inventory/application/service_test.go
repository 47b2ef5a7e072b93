package application

import (
	"context"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"storefront/internal/service/inventory/domain"
	"storefront/internal/service/inventory/infrastructure"
)

func newTestService(t *testing.T) (*InventoryService, *infrastructure.MemoryInventoryRepository) {
	t.Helper()
	repo := infrastructure.NewMemoryInventoryRepository()
	svc := NewInventoryService(repo, infrastructure.NewMutexItemLocker(), otel.Tracer("test"))
	return svc, repo
}

func seedItem(t *testing.T, repo *infrastructure.MemoryInventoryRepository, id string, units int, price float64) {
	t.Helper()
	item := domain.NewInventoryItem(id, "Assam", "very nice Assam tea", units, price)
	require.NoError(t, repo.Save(context.Background(), item))
}

func TestMakeReservation(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "tea-1", 10, 2.5)
	ctx := context.Background()

	product, err := svc.MakeReservation(ctx, "tea-1", "session-a", 3)
	require.NoError(t, err)
	assert.Equal(t, 7, product.Units, "read model exposes available units")

	// 预留不会扣减在库数量
	item, err := repo.FindByID(ctx, "tea-1")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Units)
	require.Len(t, item.Reservations, 1)
}

func TestMakeReservation_MergesSameSession(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "tea-1", 10, 2.5)
	ctx := context.Background()

	_, err := svc.MakeReservation(ctx, "tea-1", "session-a", 2)
	require.NoError(t, err)
	product, err := svc.MakeReservation(ctx, "tea-1", "session-a", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Units)

	item, err := repo.FindByID(ctx, "tea-1")
	require.NoError(t, err)
	require.Len(t, item.Reservations, 1)
	assert.Equal(t, 5, item.Reservations[0].Units)
}

func TestMakeReservation_InsufficientUnits(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "tea-1", 5, 2.5)
	ctx := context.Background()

	_, err := svc.MakeReservation(ctx, "tea-1", "session-a", 6)
	var insufficient *domain.InsufficientUnitsError
	require.ErrorAs(t, err, &insufficient)

	item, err := repo.FindByID(ctx, "tea-1")
	require.NoError(t, err)
	assert.Empty(t, item.Reservations, "rejected reservation must not be persisted")
}

func TestMakeReservation_UnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.MakeReservation(context.Background(), "missing", "session-a", 1)
	assert.True(t, pkgerrors.Is(err, domain.ErrProductNotFound))
}

func TestMakeReservation_InvalidArguments(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "tea-1", 5, 2.5)
	ctx := context.Background()

	_, err := svc.MakeReservation(ctx, "tea-1", "session-a", -1)
	assert.True(t, pkgerrors.Is(err, domain.ErrInvalidArgument))
	_, err = svc.MakeReservation(ctx, "tea-1", "", 1)
	assert.True(t, pkgerrors.Is(err, domain.ErrInvalidArgument))
	_, err = svc.MakeReservation(ctx, "", "session-a", 1)
	assert.True(t, pkgerrors.Is(err, domain.ErrInvalidArgument))
}

func TestCommitReservations_DecrementsStockOnEveryReservedItem(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "tea-1", 10, 2.5)
	seedItem(t, repo, "tea-2", 20, 3.0)
	ctx := context.Background()

	_, err := svc.MakeReservation(ctx, "tea-1", "session-a", 3)
	require.NoError(t, err)
	_, err = svc.MakeReservation(ctx, "tea-2", "session-a", 5)
	require.NoError(t, err)
	_, err = svc.MakeReservation(ctx, "tea-2", "session-b", 4)
	require.NoError(t, err)

	require.NoError(t, svc.CommitReservations(ctx, "session-a"))

	item1, err := repo.FindByID(ctx, "tea-1")
	require.NoError(t, err)
	assert.Equal(t, 7, item1.Units)
	assert.Empty(t, item1.Reservations)

	item2, err := repo.FindByID(ctx, "tea-2")
	require.NoError(t, err)
	assert.Equal(t, 15, item2.Units)
	require.Len(t, item2.Reservations, 1, "other sessions keep their reservations")
	assert.Equal(t, "session-b", item2.Reservations[0].SessionID)
}

func TestReleaseReservations_LeavesStockUntouched(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "tea-1", 10, 2.5)
	ctx := context.Background()

	_, err := svc.MakeReservation(ctx, "tea-1", "session-a", 3)
	require.NoError(t, err)

	require.NoError(t, svc.ReleaseReservations(ctx, "session-a"))

	item, err := repo.FindByID(ctx, "tea-1")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Units)
	assert.Empty(t, item.Reservations)
}

func TestGetAllProducts_SkipsInconsistentItems(t *testing.T) {
	svc, repo := newTestService(t)
	seedItem(t, repo, "tea-1", 10, 2.5)
	ctx := context.Background()

	broken := domain.NewInventoryItem("tea-broken", "Broken", "inconsistent", 1, 1.0)
	broken.Reservations = []domain.Reservation{domain.NewReservation("session-x", 5)}
	require.NoError(t, repo.Save(ctx, broken))

	products, err := svc.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "tea-1", products[0].ID)
}
