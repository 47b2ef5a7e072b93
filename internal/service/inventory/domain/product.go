// internal/service/inventory/domain/product.go
package domain

// Product 是对外暴露的商品读模型。
// Units 是扣除预留之后的可售数量，而不是在库数量。
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Units       int     `json:"units"`
	Price       float64 `json:"price"`
}
