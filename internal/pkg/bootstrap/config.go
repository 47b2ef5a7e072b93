// internal/pkg/bootstrap/config.go
package bootstrap

import (
	"log"
	"os"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 是整个进程的配置根。
// 通过 yaml 文件加载，个别字段允许被环境变量覆盖。
type Config struct {
	App struct {
		// Inventory 控制库存模块的行为
		Inventory struct {
			Size int `yaml:"size"` // 数据生成器的目标商品数量

			// 预留(reservation)的存活时间与清理周期。
			// taskRate <= 0 表示禁用清理任务。
			TTL      time.Duration `yaml:"ttl"`
			TaskRate time.Duration `yaml:"taskRate"`
		} `yaml:"inventory"`

		Cart struct {
			TTL      time.Duration `yaml:"ttl"`
			TaskRate time.Duration `yaml:"taskRate"`
		} `yaml:"cart"`

		Payment struct {
			ProviderURL string        `yaml:"providerUrl"`
			Timeout     time.Duration `yaml:"timeout"`
			Enabled     bool          `yaml:"enabled"` // 测试场景下可以关闭真实扣款
		} `yaml:"payment"`
	} `yaml:"app"`

	Infra struct {
		Mysql struct {
			DSN string `yaml:"dsn"`
		} `yaml:"mysql"`
		Redis struct {
			Addrs []string `yaml:"addrs"`
		} `yaml:"redis"`
		Kafka struct {
			Brokers           []string `yaml:"brokers"`
			NotificationTopic string   `yaml:"notificationTopic"`
		} `yaml:"kafka"`
		Zookeeper struct {
			Hosts []string `yaml:"hosts"`
		} `yaml:"zookeeper"`
		Jaeger struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"jaeger"`
		Nacos struct {
			ServerAddrs string `yaml:"serverAddrs"`
			Namespace   string `yaml:"namespace"`
			Group       string `yaml:"group"`
		} `yaml:"nacos"`
	} `yaml:"infra"`
}

var currentConfig atomic.Pointer[Config]

// Init 加载配置文件并放入进程级的配置槽。
// 配置文件路径从 CONFIG_PATH 读取，默认 config.yaml。
func Init() {
	path := getEnv("CONFIG_PATH", "config.yaml")

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("WARN: cannot read config file %s: %v. Using defaults.", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Fatalf("FATAL: cannot parse config file %s: %v", path, err)
	}

	applyEnvOverrides(cfg)
	currentConfig.Store(cfg)
}

// GetCurrentConfig 返回当前配置。必须先调用 Init。
func GetCurrentConfig() *Config {
	cfg := currentConfig.Load()
	if cfg == nil {
		// 单元测试等场景可能跳过 Init，退回默认值
		cfg = defaultConfig()
		currentConfig.Store(cfg)
	}
	return cfg
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Inventory.Size = 25
	cfg.App.Inventory.TTL = 10 * time.Minute
	cfg.App.Inventory.TaskRate = time.Minute
	cfg.App.Cart.TTL = time.Hour
	cfg.App.Cart.TaskRate = 5 * time.Minute
	cfg.App.Payment.ProviderURL = "https://pay.credit-institute.example/pay"
	cfg.App.Payment.Timeout = 5 * time.Second
	cfg.App.Payment.Enabled = true
	cfg.Infra.Mysql.DSN = "root:root@tcp(localhost:3306)/storefront?charset=utf8mb4&parseTime=True&loc=Local"
	cfg.Infra.Redis.Addrs = []string{"localhost:6379"}
	cfg.Infra.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Infra.Kafka.NotificationTopic = "notifications"
	cfg.Infra.Zookeeper.Hosts = []string{"localhost:2181"}
	cfg.Infra.Jaeger.Endpoint = "http://localhost:14268/api/traces"
	cfg.Infra.Nacos.ServerAddrs = "localhost:8848"
	cfg.Infra.Nacos.Group = "DEFAULT_GROUP"
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("MYSQL_DSN"); ok {
		cfg.Infra.Mysql.DSN = v
	}
	if v, ok := os.LookupEnv("JAEGER_ENDPOINT"); ok {
		cfg.Infra.Jaeger.Endpoint = v
	}
	if v, ok := os.LookupEnv("NACOS_SERVER_ADDRS"); ok {
		cfg.Infra.Nacos.ServerAddrs = v
	}
	if v, ok := os.LookupEnv("NACOS_NAMESPACE"); ok {
		cfg.Infra.Nacos.Namespace = v
	}
	if v, ok := os.LookupEnv("NACOS_GROUP"); ok {
		cfg.Infra.Nacos.Group = v
	}
	if v, ok := os.LookupEnv("PAYMENT_PROVIDER_URL"); ok {
		cfg.App.Payment.ProviderURL = v
	}
}

// getEnv 是一个内部辅助函数，从环境变量中读取配置。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
