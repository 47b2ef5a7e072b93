// internal/service/inventory/domain/reservation.go
package domain

import "time"

// Reservation 是某个会话对一件商品若干单位的临时占用。
// 它完全从属于自己的 InventoryItem（嵌入，不单独寻址），
// 每个 (商品, 会话) 至多存在一条。
type Reservation struct {
	SessionID string
	Units     int

	// CreatedAt 记录最近一次修改时间。预留的存活时间
	// 始终按最近修改时间计算，而不是首次创建时间。
	CreatedAt time.Time
}

// NewReservation 创建一条新的预留。
func NewReservation(sessionID string, units int) Reservation {
	return Reservation{
		SessionID: sessionID,
		Units:     units,
		CreatedAt: time.Now(),
	}
}

// AddUnits 在已有预留上追加数量，并刷新时间戳以延长存活时间。
func (r *Reservation) AddUnits(units int) {
	r.Units += units
	r.CreatedAt = time.Now()
}

// ExpiredBefore 判断该预留在 cutoff 之前是否已经过期。
func (r *Reservation) ExpiredBefore(cutoff time.Time) bool {
	return r.CreatedAt.Before(cutoff)
}
