// internal/service/cart/domain/repository.go
package domain

import (
	"context"
	"errors"
)

// ErrCartNotFound 表示该会话没有购物车记录。
var ErrCartNotFound = errors.New("cart not found")

// CartRepository 定义了购物车记录的持久化接口。
type CartRepository interface {
	// FindByID 按会话 ID 查找购物车，不存在时返回 ErrCartNotFound。
	FindByID(ctx context.Context, sessionID string) (*CartItem, error)

	// FindAll 全量扫描所有购物车。回收器用，演示规模下可以接受。
	FindAll(ctx context.Context) ([]*CartItem, error)

	// Save 创建或覆盖购物车记录。
	Save(ctx context.Context, item *CartItem) error

	// DeleteByID 删除单个购物车。删除不存在的记录不算错误。
	DeleteByID(ctx context.Context, sessionID string) error

	// DeleteByIDIn 批量删除。单个删除失败不应中断其余部分。
	DeleteByIDIn(ctx context.Context, sessionIDs []string) (int, error)
}
