// internal/service/cart/infrastructure/redis_repository.go
package infrastructure

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"storefront/internal/service/cart/domain"
)

const cartKeyPrefix = "cart:"

// RedisCartRepository 是 CartRepository 的 Redis 实现。
// 每个会话一个 key（cart:<sessionId>），值为 JSON 文档。
//
// 不使用 Redis 自带的 key 过期：存活时间由超时回收器统一管理，
// 过期策略和库存预留保持一致。
type RedisCartRepository struct {
	client *redis.Client
}

// NewRedisCartRepository 创建一个新的 Redis 仓储实例
func NewRedisCartRepository(client *redis.Client) *RedisCartRepository {
	return &RedisCartRepository{client: client}
}

func (r *RedisCartRepository) FindByID(ctx context.Context, sessionID string) (*domain.CartItem, error) {
	data, err := r.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if err != nil {
		if pkgerrors.Is(err, redis.Nil) {
			return nil, domain.ErrCartNotFound
		}
		return nil, pkgerrors.Wrapf(err, "get cart %s", sessionID)
	}

	var item domain.CartItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, pkgerrors.Wrapf(err, "decode cart %s", sessionID)
	}
	return &item, nil
}

// FindAll 用 SCAN 遍历所有购物车 key。
// 全量扫描在演示规模下可以接受，是已知的扩展性上限。
func (r *RedisCartRepository) FindAll(ctx context.Context) ([]*domain.CartItem, error) {
	var items []*domain.CartItem

	iter := r.client.Scan(ctx, 0, cartKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			// 可能在扫描和读取之间被删除，跳过即可
			if pkgerrors.Is(err, redis.Nil) {
				continue
			}
			return nil, pkgerrors.Wrapf(err, "get cart key %s", iter.Val())
		}
		var item domain.CartItem
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, pkgerrors.Wrapf(err, "decode cart key %s", iter.Val())
		}
		items = append(items, &item)
	}
	if err := iter.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "scan cart keys")
	}
	return items, nil
}

func (r *RedisCartRepository) Save(ctx context.Context, item *domain.CartItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return pkgerrors.Wrapf(err, "encode cart %s", item.SessionID)
	}
	return pkgerrors.Wrapf(
		r.client.Set(ctx, cartKeyPrefix+item.SessionID, data, 0).Err(),
		"save cart %s", item.SessionID)
}

func (r *RedisCartRepository) DeleteByID(ctx context.Context, sessionID string) error {
	return pkgerrors.Wrapf(
		r.client.Del(ctx, cartKeyPrefix+sessionID).Err(),
		"delete cart %s", sessionID)
}

// DeleteByIDIn 批量删除。单个 key 删除失败不中断其余部分，
// 返回成功删除的数量和最后一个错误。
func (r *RedisCartRepository) DeleteByIDIn(ctx context.Context, sessionIDs []string) (int, error) {
	deleted := 0
	var lastErr error
	for _, sessionID := range sessionIDs {
		n, err := r.client.Del(ctx, cartKeyPrefix+sessionID).Result()
		if err != nil {
			lastErr = pkgerrors.Wrapf(err, "delete cart %s", sessionID)
			continue
		}
		deleted += int(n)
	}
	return deleted, lastErr
}
