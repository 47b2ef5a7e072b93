// internal/service/order/domain/port/payment.go
package port

import (
	"context"
	"fmt"
)

// PaymentDetails 是执行扣款所需的支付信息。
type PaymentDetails struct {
	CardNumber string `json:"cardNumber"`
	CardOwner  string `json:"cardOwner"`
	Checksum   string `json:"checksum"`
}

// PaymentFailedError 表示支付提供方拒绝或调用超时。
type PaymentFailedError struct {
	Cause error
}

func (e *PaymentFailedError) Error() string {
	return fmt.Sprintf("payment failed: %v", e.Cause)
}

func (e *PaymentFailedError) Unwrap() error {
	return e.Cause
}

// PaymentService 是支付提供方（例如某个信用机构）的出站端口。
// 调用可能超时、可能被拒绝，实现方负责有限次数的重试。
type PaymentService interface {
	// Charge 执行一笔扣款。失败时返回 *PaymentFailedError。
	Charge(ctx context.Context, details PaymentDetails, total float64) error
}
