// internal/service/inventory/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"storefront/internal/service/inventory/domain"
)

// GormInventoryRepository 是 InventoryRepository 的 GORM 实现。
//
// 商品和它的预留在一个事务里整体写回，对存储来说一次 Save 是原子的；
// 同一商品上的并发写由应用层的 ItemLocker 串行化，这里不做乐观锁。
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository 创建一个新的 GORM 仓储实例
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// AutoMigrate 建表。演示场景直接用 gorm 的迁移。
func (r *GormInventoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&InventoryItemModel{}, &ReservationModel{})
}

func (r *GormInventoryRepository) FindByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var model InventoryItemModel
	err := r.db.WithContext(ctx).Preload("Reservations").First(&model, "id = ?", id).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, pkgerrors.Wrapf(err, "find inventory item %s", id)
	}
	return ToDomainItem(&model), nil
}

func (r *GormInventoryRepository) FindAll(ctx context.Context) ([]*domain.InventoryItem, error) {
	var models []InventoryItemModel
	if err := r.db.WithContext(ctx).Preload("Reservations").Find(&models).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "find all inventory items")
	}
	items := make([]*domain.InventoryItem, 0, len(models))
	for i := range models {
		items = append(items, ToDomainItem(&models[i]))
	}
	return items, nil
}

func (r *GormInventoryRepository) Save(ctx context.Context, item *domain.InventoryItem) error {
	model := FromDomainItem(item)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&InventoryItemModel{
			ID:          model.ID,
			Name:        model.Name,
			Description: model.Description,
			Units:       model.Units,
			Price:       model.Price,
		}).Error; err != nil {
			return err
		}
		// 预留整体替换：先删后插，保证嵌入列表和领域状态一致
		if err := tx.Where("item_id = ?", model.ID).Delete(&ReservationModel{}).Error; err != nil {
			return err
		}
		if len(model.Reservations) == 0 {
			return nil
		}
		return tx.Create(&model.Reservations).Error
	})
	return pkgerrors.Wrapf(err, "save inventory item %s", item.ID)
}

func (r *GormInventoryRepository) SaveAll(ctx context.Context, items []*domain.InventoryItem) error {
	for _, item := range items {
		if err := r.Save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *GormInventoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&InventoryItemModel{}).Count(&count).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "count inventory items")
	}
	return count, nil
}
