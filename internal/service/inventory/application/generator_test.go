package application

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/service/inventory/infrastructure"
)

func TestGenerateProducts(t *testing.T) {
	repo := infrastructure.NewMemoryInventoryRepository()
	ctx := context.Background()

	require.NoError(t, NewDataGenerator(repo, 5).GenerateProducts(ctx))

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 5)
	for _, item := range items {
		assert.NotEmpty(t, item.ID)
		assert.NotEmpty(t, item.Name)
		assert.GreaterOrEqual(t, item.Units, 42)
		assert.Greater(t, item.Price, 0.0)
	}
}

func TestGenerateProducts_SkipsPopulatedInventory(t *testing.T) {
	repo := infrastructure.NewMemoryInventoryRepository()
	ctx := context.Background()

	require.NoError(t, NewDataGenerator(repo, 3).GenerateProducts(ctx))
	require.NoError(t, NewDataGenerator(repo, 3).GenerateProducts(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestGenerateProducts_CappedByNameList(t *testing.T) {
	repo := infrastructure.NewMemoryInventoryRepository()
	ctx := context.Background()

	require.NoError(t, NewDataGenerator(repo, 1000).GenerateProducts(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(productNames)), count)
}

func TestRestockProducts(t *testing.T) {
	repo := infrastructure.NewMemoryInventoryRepository()
	ctx := context.Background()
	gen := NewDataGenerator(repo, 2)

	require.NoError(t, gen.GenerateProducts(ctx))
	require.NoError(t, gen.RestockProducts(ctx))

	items, err := repo.FindAll(ctx)
	require.NoError(t, err)
	for _, item := range items {
		assert.Equal(t, math.MaxInt32, item.Units)
	}
}
