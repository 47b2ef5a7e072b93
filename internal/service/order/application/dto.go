// internal/service/order/application/dto.go
package application

import "storefront/internal/service/order/domain/port"

// ConfirmOrderRequest 是确认订单用例的输入数据
type ConfirmOrderRequest struct {
	SessionID  string `json:"sessionId"`
	CardNumber string `json:"cardNumber"`
	CardOwner  string `json:"cardOwner"`
	Checksum   string `json:"checksum"`
}

// PaymentDetails 把请求里的支付字段转换成出站端口需要的结构
func (req *ConfirmOrderRequest) PaymentDetails() port.PaymentDetails {
	return port.PaymentDetails{
		CardNumber: req.CardNumber,
		CardOwner:  req.CardOwner,
		Checksum:   req.Checksum,
	}
}

// ConfirmOrderResponse 是确认订单用例的输出数据
type ConfirmOrderResponse struct {
	OrderID string `json:"orderId"`
}
