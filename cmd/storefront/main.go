// cmd/storefront/main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"storefront/internal/pkg/bootstrap"
	"storefront/internal/pkg/httpclient"
	"storefront/internal/pkg/mq"
	"storefront/internal/zookeeper"

	cartapp "storefront/internal/service/cart/application"
	cartinfra "storefront/internal/service/cart/infrastructure"
	cartiface "storefront/internal/service/cart/interfaces"
	invapp "storefront/internal/service/inventory/application"
	invinfra "storefront/internal/service/inventory/infrastructure"
	invdomainport "storefront/internal/service/inventory/domain/port"
	inviface "storefront/internal/service/inventory/interfaces"
	orderapp "storefront/internal/service/order/application"
	orderinfra "storefront/internal/service/order/infrastructure"
	orderadapter "storefront/internal/service/order/infrastructure/adapter"
	orderiface "storefront/internal/service/order/interfaces"
)

const (
	serviceName            = "storefront"
	servicePort            = 8090
	orderProcessingTimeout = 30 * time.Second // 单个订单确认流程的超时上限
)

// main 函数是应用的"组装根" (Composition Root)
// 它的核心职责是：创建并组装所有依赖项，然后启动应用。
func main() {
	bootstrap.Init()
	cfg := bootstrap.GetCurrentConfig()

	// 1. 存储层
	db, err := gorm.Open(mysql.Open(cfg.Infra.Mysql.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}

	inventoryRepo := invinfra.NewGormInventoryRepository(db)
	if err := inventoryRepo.AutoMigrate(); err != nil {
		log.Fatalf("failed to migrate inventory tables: %v", err)
	}
	orderRepo := orderinfra.NewGormOrderRepository(db)
	if err := orderRepo.AutoMigrate(); err != nil {
		log.Fatalf("failed to migrate order tables: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Infra.Redis.Addrs[0]})
	cartRepo := cartinfra.NewRedisCartRepository(redisClient)

	// 2. 商品写锁。多实例部署时通过 ZooKeeper 串行化同一商品的写回。
	var locker invdomainport.ItemLocker
	zkConn, err := zookeeper.Connect(cfg.Infra.Zookeeper.Hosts, 5*time.Second)
	if err != nil {
		log.Printf("WARN: zookeeper unavailable (%v), falling back to in-process locks", err)
		locker = invinfra.NewMutexItemLocker()
	} else {
		locker = invinfra.NewZkItemLocker(zkConn)
	}

	// 3. 消息队列
	kafkaWriter := mq.NewKafkaWriter(cfg.Infra.Kafka.Brokers, cfg.Infra.Kafka.NotificationTopic)
	notifier := orderadapter.NewNotificationKafkaAdapter(kafkaWriter)

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        servicePort,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			tracer := otel.Tracer(serviceName)

			// 4. 应用服务
			inventoryService := invapp.NewInventoryService(inventoryRepo, locker, tracer)
			cartService := cartapp.NewCartService(cartRepo, inventoryService, tracer)

			httpClient := httpclient.NewClient(tracer)
			paymentAdapter := orderadapter.NewPaymentHTTPAdapter(httpClient,
				cfg.App.Payment.ProviderURL, cfg.App.Payment.Timeout, cfg.App.Payment.Enabled)

			orderService := orderapp.NewOrderApplicationService(
				orderRepo, orderProcessingTimeout, tracer,
				orderadapter.NewCartLocalAdapter(cartService),
				orderadapter.NewInventoryLocalAdapter(inventoryService),
				paymentAdapter, notifier)

			// 5. 初始数据
			generator := invapp.NewDataGenerator(inventoryRepo, cfg.App.Inventory.Size)
			if err := generator.GenerateProducts(context.Background()); err != nil {
				log.Printf("WARN: could not generate initial products: %v", err)
			}

			// 6. 超时回收器
			reservationCollector = invapp.NewReservationTimeoutCollector(
				cfg.App.Inventory.TTL, cfg.App.Inventory.TaskRate, inventoryRepo, locker)
			reservationCollector.Start(context.Background())
			cartCollector = cartapp.NewCartTimeoutCollector(
				cfg.App.Cart.TTL, cfg.App.Cart.TaskRate, cartRepo)
			cartCollector.Start(context.Background())

			// 7. HTTP 路由
			inviface.NewInventoryHandler(inventoryService, generator).RegisterRoutes(appCtx.Mux)
			cartiface.NewCartHandler(cartService).RegisterRoutes(appCtx.Mux)
			orderiface.NewOrderHandler(orderService).RegisterRoutes(appCtx.Mux)
		},
		OnShutdown: func(ctx context.Context) {
			if reservationCollector != nil {
				reservationCollector.Stop()
			}
			if cartCollector != nil {
				cartCollector.Stop()
			}
			if err := notifier.Close(); err != nil {
				log.Printf("Error closing kafka writer: %v", err)
			}
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing redis client: %v", err)
			}
			if zkConn != nil {
				zkConn.Close()
			}
		},
	})
}

// 回收器在 RegisterHandlers 里创建、在 OnShutdown 里停止
var (
	reservationCollector *invapp.ReservationTimeoutCollector
	cartCollector        *cartapp.CartTimeoutCollector
)
