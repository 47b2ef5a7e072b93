// internal/service/inventory/application/generator.go
package application

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"storefront/internal/pkg/logger"
	"storefront/internal/service/inventory/domain"
)

// 预置的茶叶商品名，数据生成的上限就是这个列表的长度。
var productNames = []string{
	"Earl Grey (loose)", "Assam (loose)", "Darjeeling (loose)", "Frisian Black Tee (loose)",
	"Anatolian Assam (loose)", "Earl Grey (20 bags)", "Assam (20 bags)", "Darjeeling (20 bags)",
	"Ceylon (loose)", "Ceylon (20 bags)", "House blend (20 bags)", "Sencha (loose)",
	"Sencha (15 bags)", "Earl Grey Green (loose)", "Earl Grey Green (15 bags)", "Matcha 30 g",
	"Matcha 50 g", "Matcha 100 g", "Gunpowder Tea (loose)", "Gunpowder Tea (15 bags)",
	"Camomile (loose)", "Camomile (15 bags)", "Peepermint (loose)", "Peppermint (15 bags)",
	"Sage (loose)", "Sage (15 bags)",
}

// DataGenerator 向空的库存表里播种商品，或者给已有商品补货。
// 服务启动时总会触发一次播种。
type DataGenerator struct {
	repo          domain.InventoryRepository
	inventorySize int
	rng           *rand.Rand
}

func NewDataGenerator(repo domain.InventoryRepository, inventorySize int) *DataGenerator {
	if inventorySize > len(productNames) {
		inventorySize = len(productNames)
	}
	return &DataGenerator{
		repo:          repo,
		inventorySize: inventorySize,
		// 固定种子，让每次演示环境的初始数据一致
		rng: rand.New(rand.NewSource(5)),
	}
}

// GenerateProducts 补足商品数量到配置的目标值。
// 已有数量足够时不做任何事。
func (g *DataGenerator) GenerateProducts(ctx context.Context) error {
	count, err := g.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count >= int64(g.inventorySize) {
		logger.Ctx(ctx).Info().Int64("count", count).Msg("inventory already populated, not adding new entries")
		return nil
	}

	logger.Ctx(ctx).Info().Int("target", g.inventorySize).Msg("inventory too small, generating new entries")

	for i := int(count); i < g.inventorySize; i++ {
		name := productNames[i]
		units := g.rng.Intn(500) + 42
		price := float64(g.rng.Intn(10)) + g.rng.Float64()
		description := fmt.Sprintf("very nice %s tea", name)

		item := domain.NewInventoryItem(uuid.NewString(), name, description, units, price)
		if err := g.repo.Save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// RestockProducts 把所有商品补货到最大值。
// 商品终究会卖完，演示场景需要一个一键回满的入口。
func (g *DataGenerator) RestockProducts(ctx context.Context) error {
	items, err := g.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		item.Restock(math.MaxInt32)
	}
	if err := g.repo.SaveAll(ctx, items); err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Int("count", len(items)).Msg("restocked all products")
	return nil
}
