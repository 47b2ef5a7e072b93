package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/service/inventory/domain"
	"storefront/internal/service/inventory/infrastructure"
)

func TestCleanup_DeletesOnlyExpiredReservations(t *testing.T) {
	repo := infrastructure.NewMemoryInventoryRepository()
	ctx := context.Background()

	item := domain.NewInventoryItem("tea-1", "Darjeeling", "very nice Darjeeling tea", 10, 3.1)
	expired := domain.NewReservation("session-old", 4)
	expired.CreatedAt = time.Now().Add(-2 * time.Hour)
	fresh := domain.NewReservation("session-new", 2)
	item.Reservations = []domain.Reservation{expired, fresh}
	require.NoError(t, repo.Save(ctx, item))

	collector := NewReservationTimeoutCollector(time.Hour, time.Minute, repo, infrastructure.NewMutexItemLocker())
	collector.Cleanup(ctx)

	got, err := repo.FindByID(ctx, "tea-1")
	require.NoError(t, err)
	require.Len(t, got.Reservations, 1)
	assert.Equal(t, "session-new", got.Reservations[0].SessionID)

	// 过期只是丢弃预留，库存不变，可用数量恢复
	assert.Equal(t, 10, got.Units)
	available, err := got.AvailableUnits()
	require.NoError(t, err)
	assert.Equal(t, 8, available)
}

func TestCleanup_RenewedReservationSurvives(t *testing.T) {
	repo := infrastructure.NewMemoryInventoryRepository()
	ctx := context.Background()

	item := domain.NewInventoryItem("tea-1", "Darjeeling", "very nice Darjeeling tea", 10, 3.1)
	r := domain.NewReservation("session-a", 2)
	r.CreatedAt = time.Now().Add(-50 * time.Minute)
	item.Reservations = []domain.Reservation{r}

	// 追加预留会刷新时间戳，存活时间从最近一次修改起算
	item.Reservations[0].AddUnits(1)
	require.NoError(t, repo.Save(ctx, item))

	collector := NewReservationTimeoutCollector(time.Hour, time.Minute, repo, infrastructure.NewMutexItemLocker())
	collector.Cleanup(ctx)

	got, err := repo.FindByID(ctx, "tea-1")
	require.NoError(t, err)
	require.Len(t, got.Reservations, 1)
	assert.Equal(t, 3, got.Reservations[0].Units)
}

func TestStart_DisabledWhenTaskRateNonPositive(t *testing.T) {
	repo := infrastructure.NewMemoryInventoryRepository()
	collector := NewReservationTimeoutCollector(time.Hour, 0, repo, infrastructure.NewMutexItemLocker())

	collector.Start(context.Background())
	// 没有任何任务被调度，Stop 不会阻塞
	collector.Stop()
}
