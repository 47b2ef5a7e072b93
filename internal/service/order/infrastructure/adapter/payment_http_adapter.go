// internal/service/order/infrastructure/adapter/payment_http_adapter.go
package adapter

import (
	"context"
	"time"

	"storefront/internal/pkg/httpclient"
	"storefront/internal/pkg/logger"
	"storefront/internal/service/order/domain/port"
)

// 瞬时失败最多再重试一次
const paymentMaxAttempts = 2

// paymentRequest 是发给支付提供方的报文。
type paymentRequest struct {
	CardNumber string  `json:"cardNumber"`
	CardOwner  string  `json:"cardOwner"`
	Checksum   string  `json:"checksum"`
	Total      float64 `json:"total"`
}

// PaymentHTTPAdapter 是 port.PaymentService 的 HTTP 实现。
// 联系支付提供方（例如某个信用机构）执行扣款，
// 调用可能超时、可能被拒绝，也可能成功。
type PaymentHTTPAdapter struct {
	client      *httpclient.Client
	providerURL string
	timeout     time.Duration
	enabled     bool
}

// NewPaymentHTTPAdapter 创建一个新的支付适配器实例。
func NewPaymentHTTPAdapter(client *httpclient.Client, providerURL string, timeout time.Duration, enabled bool) *PaymentHTTPAdapter {
	return &PaymentHTTPAdapter{
		client:      client,
		providerURL: providerURL,
		timeout:     timeout,
		enabled:     enabled,
	}
}

// Charge 执行一笔扣款，失败时返回 *port.PaymentFailedError。
func (a *PaymentHTTPAdapter) Charge(ctx context.Context, details port.PaymentDetails, total float64) error {
	if !a.enabled {
		// 测试场景下可以关闭真实扣款，直接视为成功
		logger.Ctx(ctx).Warn().Msg("payment provider disabled by configuration, treating payment as successful")
		return nil
	}

	payload := paymentRequest{
		CardNumber: details.CardNumber,
		CardOwner:  details.CardOwner,
		Checksum:   details.Checksum,
		Total:      total,
	}

	var lastErr error
	for attempt := 1; attempt <= paymentMaxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		err := a.client.PostJSON(callCtx, a.providerURL, payload)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		logger.Ctx(ctx).Warn().Err(err).Int("attempt", attempt).Msg("payment provider call failed")

		// 外层 context 已经取消就不再重试
		if ctx.Err() != nil {
			break
		}
	}

	return &port.PaymentFailedError{Cause: lastErr}
}
