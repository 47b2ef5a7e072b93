package application

import (
	"context"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/service/cart/domain"
	"storefront/internal/service/cart/infrastructure"
)

func TestCartCleanup_DeletesOnlyExpiredCarts(t *testing.T) {
	repo := infrastructure.NewMemoryCartRepository()
	ctx := context.Background()

	old := domain.NewCartItem("session-old")
	old.Content.Content["tea-1"] = 2
	old.CreatedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, repo.Save(ctx, old))

	fresh := domain.NewCartItem("session-new")
	fresh.Content.Content["tea-2"] = 1
	require.NoError(t, repo.Save(ctx, fresh))

	collector := NewCartTimeoutCollector(time.Hour, time.Minute, repo)
	collector.Cleanup(ctx)

	_, err := repo.FindByID(ctx, "session-old")
	assert.True(t, pkgerrors.Is(err, domain.ErrCartNotFound))

	kept, err := repo.FindByID(ctx, "session-new")
	require.NoError(t, err)
	assert.Equal(t, 1, kept.Content.Units("tea-2"))
}

func TestCartStart_DisabledWhenTaskRateNonPositive(t *testing.T) {
	collector := NewCartTimeoutCollector(time.Hour, 0, infrastructure.NewMemoryCartRepository())

	collector.Start(context.Background())
	collector.Stop()
}
