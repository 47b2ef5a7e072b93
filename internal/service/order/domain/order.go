// internal/service/order/domain/order.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order 是订单聚合的根实体。
//
// 订单在确认流程开始时就以乐观的 SUCCESS 状态落库，
// 后续只可能保持 SUCCESS 或被 Reject 翻转为 FAILURE。
type Order struct {
	ID        string
	SessionID string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// 工厂函数: NewOrder 为一个会话创建新的订单实例
func NewOrder(sessionID string) *Order {
	return &Order{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Status:    StatusSuccess, // 乐观初始状态
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// Reject 将订单标记为 FAILURE。
// FAILURE 是终态，重复调用是幂等的，订单不会再回到其它状态。
func (o *Order) Reject() {
	o.Status = StatusFailure
	o.UpdatedAt = time.Now()
}
