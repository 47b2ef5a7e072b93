// internal/service/inventory/application/collector.go
package application

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/metrics"
	"storefront/internal/service/inventory/domain"
	"storefront/internal/service/inventory/domain/port"
)

// ReservationTimeoutCollector 周期性扫描所有预留，
// 删除超过存活时间的那些。过期的预留被视为用户放弃结账，
// 只是被丢弃，不会扣减库存。
type ReservationTimeoutCollector struct {
	ttl      time.Duration
	taskRate time.Duration

	repo   domain.InventoryRepository
	locker port.ItemLocker

	running atomic.Bool // 防止两次扫描重叠执行
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewReservationTimeoutCollector 创建回收器。
// taskRate <= 0 表示该功能被配置关闭，Start 不会调度任何任务。
func NewReservationTimeoutCollector(ttl, taskRate time.Duration, repo domain.InventoryRepository, locker port.ItemLocker) *ReservationTimeoutCollector {
	return &ReservationTimeoutCollector{
		ttl:      ttl,
		taskRate: taskRate,
		repo:     repo,
		locker:   locker,
		stop:     make(chan struct{}),
	}
}

// Start 启动周期任务。这是一个长期运行的 goroutine，
// 由 Stop 显式终止。
func (c *ReservationTimeoutCollector) Start(ctx context.Context) {
	if c.taskRate <= 0 {
		logger.Ctx(ctx).Info().Msg("reservation timeout collector disabled by configuration")
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
func (c *ReservationTimeoutCollector) Stop() {
	close(c.stop)
	c.wg.Wait()
}

// Cleanup 执行一次扫描。固定频率语义：上一轮还没结束时本轮直接跳过，
// 而不是并行执行。单个商品清理失败不会中断剩余部分。
func (c *ReservationTimeoutCollector) Cleanup(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		logger.Ctx(ctx).Warn().Msg("reservation cleanup still in progress, skipping this run")
		return
	}
	defer c.running.Store(false)

	items, err := c.repo.FindAll(ctx)
	if err != nil {
		// 本轮失败，等下一个周期重试
		logger.Ctx(ctx).Error().Err(err).Msg("reservation cleanup cannot read inventory")
		return
	}

	cutoff := time.Now().Add(-c.ttl)
	deleted := 0

	for _, stale := range items {
		expired := expiredSessions(stale, cutoff)
		if len(expired) == 0 {
			continue
		}
		n, err := c.deleteAtItem(ctx, stale.ID, cutoff)
		if err != nil {
			logger.Ctx(ctx).Error().Err(err).Str("product", stale.ID).Msg("failed to clean up expired reservations")
			continue
		}
		deleted += n
	}

	metrics.ReservationsExpired.Add(float64(deleted))
	logger.Ctx(ctx).Info().Int("count", deleted).Msg("deleted expired reservations")
}

// deleteAtItem 在商品写锁内重新加载并删除过期预留。
// 预留被丢弃时不触碰在库数量，只有提交才会扣减库存。
func (c *ReservationTimeoutCollector) deleteAtItem(ctx context.Context, productID string, cutoff time.Time) (int, error) {
	unlock, err := c.locker.Lock(productID)
	if err != nil {
		return 0, err
	}
	defer unlock()

	item, err := c.repo.FindByID(ctx, productID)
	if err != nil {
		return 0, err
	}

	sessions := expiredSessions(item, cutoff)
	for _, sessionID := range sessions {
		item.DeleteReservation(sessionID)
	}
	if len(sessions) == 0 {
		return 0, nil
	}
	if err := c.repo.Save(ctx, item); err != nil {
		return 0, err
	}
	return len(sessions), nil
}

func expiredSessions(item *domain.InventoryItem, cutoff time.Time) []string {
	var sessions []string
	for _, r := range item.Reservations {
		if r.ExpiredBefore(cutoff) {
			sessions = append(sessions, r.SessionID)
		}
	}
	return sessions
}
