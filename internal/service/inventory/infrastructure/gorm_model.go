// internal/service/inventory/infrastructure/gorm_model.go
package infrastructure

import "time"

// InventoryItemModel 对应数据库中的 inventory_item 表
type InventoryItemModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string
	Description string
	Units       int
	Price       float64 `gorm:"type:decimal(10,2)"`
	// 预留与商品级联：商品写回时预留一起替换，删除商品时预留一起删除
	Reservations []ReservationModel `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName 指定 GORM 应该使用的表名
func (InventoryItemModel) TableName() string {
	return "inventory_item"
}

// ReservationModel 对应数据库中的 reservations 表
type ReservationModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ItemID    string `gorm:"index;size:64"`
	SessionID string `gorm:"column:session_id;index;size:64"`
	Units     int
	CreatedOn time.Time `gorm:"column:created_on"`
}

// TableName 指定 GORM 应该使用的表名
func (ReservationModel) TableName() string {
	return "reservations"
}
