// internal/service/inventory/domain/port/lock.go
package port

// ItemLocker 对单个商品的写操作做串行化。
//
// 预留和库存同处一个聚合，读取-修改-写回 周期本身不是原子的，
// 并发会话对同一商品操作时如果不加锁会丢失更新。具体实现可以是
// ZooKeeper 分布式锁，也可以是测试用的进程内互斥。
type ItemLocker interface {
	// Lock 阻塞直到拿到 productID 的写锁，返回解锁函数。
	Lock(productID string) (unlock func(), err error)
}
