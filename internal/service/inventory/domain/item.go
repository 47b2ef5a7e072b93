// internal/service/inventory/domain/item.go
package domain

// InventoryItem 是库存聚合的根实体。
//
// 商品除名称、描述、单价之外还持有在库数量 Units，以及一组会话预留。
// 不变量：Units 永远不小于所有预留数量之和。在库数量只能通过
// CommitReservation 减少，预留列表只能通过下面三个方法修改，
// 这样不变量才能集中维护。
type InventoryItem struct {
	ID           string
	Name         string
	Description  string
	Units        int
	Price        float64
	Reservations []Reservation
}

// NewInventoryItem 创建一个没有任何预留的商品。
func NewInventoryItem(id, name, description string, units int, price float64) *InventoryItem {
	return &InventoryItem{
		ID:          id,
		Name:        name,
		Description: description,
		Units:       units,
		Price:       price,
	}
}

// AvailableUnits 计算尚未被预留的数量：units - Σ reservations。
// 如果结果为负说明不变量已经被破坏，返回 InconsistentStateError。
func (i *InventoryItem) AvailableUnits() (int, error) {
	reserved := 0
	for _, r := range i.Reservations {
		reserved += r.Units
	}
	if reserved > i.Units {
		return 0, &InconsistentStateError{ProductID: i.ID, Units: i.Units, Reserved: reserved}
	}
	return i.Units - reserved, nil
}

// AddReservation 为 sessionID 预留 units 个单位。
//
// 同一会话已有预留时在原预留上累加并刷新时间戳，而不是新增一条；
// units 为 0 时直接成功；可用数量不足时返回 InsufficientUnitsError，
// 且商品不发生任何变化。调用方负责把修改后的商品写回存储。
func (i *InventoryItem) AddReservation(sessionID string, units int) error {
	if units < 0 || sessionID == "" {
		return ErrInvalidArgument
	}

	available, err := i.AvailableUnits()
	if err != nil {
		return err
	}
	if units > available {
		return &InsufficientUnitsError{ProductID: i.ID, Requested: units, Available: available}
	}
	if units == 0 {
		return nil
	}

	for idx := range i.Reservations {
		if i.Reservations[idx].SessionID == sessionID {
			i.Reservations[idx].AddUnits(units)
			return nil
		}
	}
	i.Reservations = append(i.Reservations, NewReservation(sessionID, units))
	return nil
}

// CommitReservation 把 sessionID 的预留转换为永久的库存扣减。
// 这是减少在库数量的唯一合法途径。没有对应预留时是幂等的空操作。
func (i *InventoryItem) CommitReservation(sessionID string) {
	for idx, r := range i.Reservations {
		if r.SessionID == sessionID {
			i.Units -= r.Units
			i.Reservations = append(i.Reservations[:idx], i.Reservations[idx+1:]...)
			return
		}
	}
}

// DeleteReservation 丢弃 sessionID 的预留，不触碰在库数量。
// 用于取消或补偿不再兑现的预留。没有对应预留时是幂等的空操作。
func (i *InventoryItem) DeleteReservation(sessionID string) {
	for idx, r := range i.Reservations {
		if r.SessionID == sessionID {
			i.Reservations = append(i.Reservations[:idx], i.Reservations[idx+1:]...)
			return
		}
	}
}

// Restock 上调在库数量。只允许增加，传入小于当前值的数量会被忽略。
func (i *InventoryItem) Restock(units int) {
	if units > i.Units {
		i.Units = units
	}
}
