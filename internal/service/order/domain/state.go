// internal/service/order/domain/state.go
package domain

// Status 定义了订单的生命周期状态
type Status string

const (
	StatusSuccess Status = "SUCCESS" // 创建即成功，直到被拒绝为止
	StatusFailure Status = "FAILURE" // 终态，不允许再流转回 SUCCESS
)
