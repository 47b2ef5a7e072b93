// internal/service/inventory/infrastructure/mapper.go
package infrastructure

import (
	"storefront/internal/service/inventory/domain"
)

// ToDomainItem 将数据库模型转换为领域模型
func ToDomainItem(model *InventoryItemModel) *domain.InventoryItem {
	if model == nil {
		return nil
	}
	item := &domain.InventoryItem{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Units:       model.Units,
		Price:       model.Price,
	}
	for _, r := range model.Reservations {
		item.Reservations = append(item.Reservations, domain.Reservation{
			SessionID: r.SessionID,
			Units:     r.Units,
			CreatedAt: r.CreatedOn,
		})
	}
	return item
}

// FromDomainItem 将领域模型转换为数据库模型 (用于插入或整体替换)
func FromDomainItem(item *domain.InventoryItem) *InventoryItemModel {
	if item == nil {
		return nil
	}
	model := &InventoryItemModel{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Units:       item.Units,
		Price:       item.Price,
	}
	for _, r := range item.Reservations {
		model.Reservations = append(model.Reservations, ReservationModel{
			ItemID:    item.ID,
			SessionID: r.SessionID,
			Units:     r.Units,
			CreatedOn: r.CreatedAt,
		})
	}
	return model
}
