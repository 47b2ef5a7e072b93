// internal/service/inventory/infrastructure/zk_locker.go
package infrastructure

import (
	"sync"

	"storefront/internal/zookeeper"
)

// ZkItemLocker 用 ZooKeeper 分布式锁实现 port.ItemLocker。
// 多实例部署时对同一商品的写操作跨进程串行化。
type ZkItemLocker struct {
	conn *zookeeper.Conn
}

func NewZkItemLocker(conn *zookeeper.Conn) *ZkItemLocker {
	return &ZkItemLocker{conn: conn}
}

func (l *ZkItemLocker) Lock(productID string) (func(), error) {
	lock := zookeeper.NewItemLock(l.conn, productID)
	if err := lock.Lock(); err != nil {
		return nil, err
	}
	return func() {
		_ = lock.Unlock()
	}, nil
}

// MutexItemLocker 是进程内互斥实现，用于单实例部署和测试。
type MutexItemLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMutexItemLocker() *MutexItemLocker {
	return &MutexItemLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *MutexItemLocker) Lock(productID string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[productID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[productID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
