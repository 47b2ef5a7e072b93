// internal/service/cart/application/collector.go
package application

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/metrics"
	"storefront/internal/service/cart/domain"
)

// CartTimeoutCollector 周期性扫描所有购物车，
// 删除超过存活时间的那些。
type CartTimeoutCollector struct {
	ttl      time.Duration
	taskRate time.Duration

	repo domain.CartRepository

	running atomic.Bool // 防止两次扫描重叠执行
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewCartTimeoutCollector 创建回收器。
// taskRate <= 0 表示该功能被配置关闭，Start 不会调度任何任务。
func NewCartTimeoutCollector(ttl, taskRate time.Duration, repo domain.CartRepository) *CartTimeoutCollector {
	return &CartTimeoutCollector{
		ttl:      ttl,
		taskRate: taskRate,
		repo:     repo,
		stop:     make(chan struct{}),
	}
}

// Start 启动周期任务。由 Stop 显式终止。
func (c *CartTimeoutCollector) Start(ctx context.Context) {
	if c.taskRate <= 0 {
		logger.Ctx(ctx).Info().Msg("cart timeout collector disabled by configuration")
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.taskRate)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Cleanup(ctx)
			case <-c.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop 终止周期任务并等待正在进行的扫描结束。
func (c *CartTimeoutCollector) Stop() {
	close(c.stop)
	c.wg.Wait()
}

// Cleanup 执行一次扫描。上一轮还没结束时本轮直接跳过。
// 读和删分开做：筛选 ID 不需要锁表，删除才需要。
func (c *CartTimeoutCollector) Cleanup(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		logger.Ctx(ctx).Warn().Msg("cart cleanup still in progress, skipping this run")
		return
	}
	defer c.running.Store(false)

	carts, err := c.repo.FindAll(ctx)
	if err != nil {
		// 本轮失败，等下一个周期重试
		logger.Ctx(ctx).Error().Err(err).Msg("cart cleanup cannot read cart store")
		return
	}

	cutoff := time.Now().Add(-c.ttl)
	var expired []string
	for _, item := range carts {
		if item.CreatedAt.Before(cutoff) {
			expired = append(expired, item.SessionID)
		}
	}

	deleted, err := c.repo.DeleteByIDIn(ctx, expired)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("cart cleanup failed to delete some carts")
	}

	metrics.CartsExpired.Add(float64(deleted))
	logger.Ctx(ctx).Info().Int("count", deleted).Msg("deleted expired carts")
}
