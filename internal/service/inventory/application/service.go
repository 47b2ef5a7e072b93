// internal/service/inventory/application/service.go
package application

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/metrics"
	"storefront/internal/service/inventory/domain"
	"storefront/internal/service/inventory/domain/port"
)

// InventoryService 是库存模块的应用服务。
// 它负责加载聚合、调用领域方法、写回存储，并对同一商品的
// 读取-修改-写回 周期加锁，防止并发会话互相覆盖。
type InventoryService struct {
	repo   domain.InventoryRepository
	locker port.ItemLocker
	tracer trace.Tracer
}

func NewInventoryService(repo domain.InventoryRepository, locker port.ItemLocker, tracer trace.Tracer) *InventoryService {
	return &InventoryService{repo: repo, locker: locker, tracer: tracer}
}

// GetAllProducts 返回所有商品的读模型。
func (s *InventoryService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		p, err := toProduct(item)
		if err != nil {
			// 不变量被破坏属于缺陷，大声记录后跳过该商品
			logger.Ctx(ctx).Error().Err(err).Str("product", item.ID).Msg("inventory item in inconsistent state")
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// GetProduct 返回单个商品的读模型。
func (s *InventoryService) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	item, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	return toProduct(item)
}

// MakeReservation 为会话在某个商品上预留 units 个单位。
//
// 同一会话重复预留会在已有预留上累加。整个 读取-修改-写回 周期
// 在商品写锁内执行。
func (s *InventoryService) MakeReservation(ctx context.Context, productID, sessionID string, units int) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.MakeReservation")
	defer span.End()

	span.SetAttributes(
		attribute.String("product.id", productID),
		attribute.Int("reservation.units", units),
	)

	if productID == "" || sessionID == "" || units < 0 {
		return domain.Product{}, domain.ErrInvalidArgument
	}

	unlock, err := s.locker.Lock(productID)
	if err != nil {
		span.RecordError(err)
		return domain.Product{}, err
	}
	defer unlock()

	item, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		span.RecordError(err)
		return domain.Product{}, err
	}

	if err := item.AddReservation(sessionID, units); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reservation rejected")
		return domain.Product{}, err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		span.RecordError(err)
		return domain.Product{}, err
	}

	metrics.ReservationsCreated.Inc()
	span.AddEvent("Reservation attached and item persisted.")
	return toProduct(item)
}

// CommitReservations 提交会话名下的所有预留，永久扣减库存。
// 这是订单确认 Saga 的正向动作。
func (s *InventoryService) CommitReservations(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "inventory.CommitReservations")
	defer span.End()

	return s.forEachReservedItem(ctx, sessionID, func(item *domain.InventoryItem) {
		item.CommitReservation(sessionID)
	})
}

// ReleaseReservations 丢弃会话名下的所有预留，库存不受影响。
// 这是订单确认 Saga 的补偿动作。
func (s *InventoryService) ReleaseReservations(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "inventory.ReleaseReservations")
	defer span.End()

	return s.forEachReservedItem(ctx, sessionID, func(item *domain.InventoryItem) {
		item.DeleteReservation(sessionID)
	})
}

// forEachReservedItem 对持有该会话预留的每个商品，在各自的写锁内
// 应用 mutate 并写回。
func (s *InventoryService) forEachReservedItem(ctx context.Context, sessionID string, mutate func(*domain.InventoryItem)) error {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, stale := range items {
		if !hasReservation(stale, sessionID) {
			continue
		}
		if err := s.mutateLocked(ctx, stale.ID, sessionID, mutate); err != nil {
			return err
		}
	}
	return nil
}

func (s *InventoryService) mutateLocked(ctx context.Context, productID, sessionID string, mutate func(*domain.InventoryItem)) error {
	unlock, err := s.locker.Lock(productID)
	if err != nil {
		return err
	}
	defer unlock()

	// 拿到锁之后重新加载，避免基于过期快照写回
	item, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	mutate(item)
	return s.repo.Save(ctx, item)
}

func hasReservation(item *domain.InventoryItem, sessionID string) bool {
	for _, r := range item.Reservations {
		if r.SessionID == sessionID {
			return true
		}
	}
	return false
}

func toProduct(item *domain.InventoryItem) (domain.Product, error) {
	available, err := item.AvailableUnits()
	if err != nil {
		return domain.Product{}, err
	}
	return domain.Product{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Units:       available,
		Price:       item.Price,
	}, nil
}
