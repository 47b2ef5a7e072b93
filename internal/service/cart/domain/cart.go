// internal/service/cart/domain/cart.go
package domain

import "time"

// CartContent 保存一个购物车里的商品和数量：productId -> units。
type CartContent struct {
	Content map[string]int `json:"content"`
}

func NewCartContent() CartContent {
	return CartContent{Content: make(map[string]int)}
}

// ProductIDs 返回购物车中所有商品的 ID。
func (c CartContent) ProductIDs() []string {
	ids := make([]string, 0, len(c.Content))
	for id := range c.Content {
		ids = append(ids, id)
	}
	return ids
}

// Units 返回某个商品在购物车中的数量，不存在时为 0。
func (c CartContent) Units(productID string) int {
	return c.Content[productID]
}

// CartItem 是以会话 ID 为标识的购物车记录。
// 记录创建时间，超过存活时间后由回收器删除。
type CartItem struct {
	SessionID string      `json:"sessionId"`
	Content   CartContent `json:"content"`
	CreatedAt time.Time   `json:"createdAt"`
}

func NewCartItem(sessionID string) *CartItem {
	return &CartItem{
		SessionID: sessionID,
		Content:   NewCartContent(),
		CreatedAt: time.Now(),
	}
}
