// internal/service/order/domain/event.go
package domain

import "time"

// OrderPlacedEvent 定义了订单确认成功后发送到 Kafka 的消息结构
type OrderPlacedEvent struct {
	OrderID   string    `json:"orderId"`
	SessionID string    `json:"sessionId"`
	Total     float64   `json:"total"`
	PlacedAt  time.Time `json:"placedAt"`
}
