// internal/service/order/domain/port/notification.go
package port

import "context"

// OrderNotifier 把订单结果通知给下游（出站端口）。
// 发送失败属于非关键路径错误，调用方只记录不中断。
type OrderNotifier interface {
	// OrderPlaced 广播一笔确认成功的订单。
	OrderPlaced(ctx context.Context, orderID, sessionID string, total float64) error

	Close() error
}
