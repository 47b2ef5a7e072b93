// internal/zookeeper/lock.go
package zookeeper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"
)

const (
	lockRoot = "/storefront/item_locks" // 按商品维度串行化写入的锁根节点
)

// ItemLock 是针对单个库存商品的分布式写锁。
// 库存商品的 读取-修改-写回 周期必须在持有该锁的情况下执行，
// 否则并发的预留/提交会互相覆盖。
type ItemLock struct {
	conn     *Conn
	path     string // 锁的路径，例如 /storefront/item_locks/<productId>
	lockNode string // 成功获取锁后，自己创建的节点路径
}

// NewItemLock 创建针对 productID 的锁实例。
func NewItemLock(conn *Conn, productID string) *ItemLock {
	ensurePath(conn, lockRoot)

	lockPath := lockRoot + "/" + productID
	ensurePath(conn, lockPath)

	return &ItemLock{
		conn: conn,
		path: lockPath,
	}
}

func ensurePath(conn *Conn, path string) {
	// 逐级创建，节点已存在不算错误
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	current := ""
	for _, part := range parts {
		current += "/" + part
		if exists, _, err := conn.Exists(current); err == nil && exists {
			continue
		}
		_, createErr := conn.Create(current, []byte(""), 0, zk.WorldACL(zk.PermAll))
		if createErr != nil && createErr != zk.ErrNodeExists {
			panic(fmt.Sprintf("Failed to create lock path node %s: %v", current, createErr))
		}
	}
}

// Lock 尝试获取锁，如果获取不到则阻塞等待。
func (l *ItemLock) Lock() error {
	// 1. 在锁路径下创建一个临时顺序节点
	nodePath, err := l.conn.CreateProtectedEphemeralSequential(l.path+"/lock-", []byte(""), zk.WorldACL(zk.PermAll))
	if err != nil {
		return fmt.Errorf("failed to create sequential node: %w", err)
	}
	l.lockNode = nodePath

	for {
		// 2. 获取锁路径下的所有子节点
		children, _, err := l.conn.Children(l.path)
		if err != nil {
			return fmt.Errorf("failed to get children nodes: %w", err)
		}
		sort.Strings(children)

		// 3. 判断自己是否是最小的节点
		myNodeName := strings.TrimPrefix(l.lockNode, l.path+"/")
		if myNodeName == children[0] {
			return nil
		}

		// 4. 不是最小节点，监听前一个节点
		prevNodeIndex := -1
		for i, child := range children {
			if child == myNodeName {
				prevNodeIndex = i - 1
				break
			}
		}
		if prevNodeIndex < 0 {
			return errors.New("cannot find previous node, something is wrong")
		}
		prevNodePath := l.path + "/" + children[prevNodeIndex]

		_, _, eventChan, err := l.conn.ExistsW(prevNodePath)
		if err != nil {
			// 前一个节点在检查时刚好被删除，重试循环
			if err == zk.ErrNoNode {
				continue
			}
			return fmt.Errorf("failed to watch previous node: %w", err)
		}

		select {
		case event := <-eventChan:
			if event.Type == zk.EventNodeDeleted {
				continue
			}
		case <-time.After(30 * time.Second): // 防止死等
			return errors.New("timeout waiting for lock")
		}
	}
}

// Unlock 释放锁。
func (l *ItemLock) Unlock() error {
	if l.lockNode == "" {
		return errors.New("no lock to unlock")
	}
	err := l.conn.Delete(l.lockNode, -1)
	if err != nil && err != zk.ErrNoNode {
		return fmt.Errorf("failed to delete lock node: %w", err)
	}
	l.lockNode = ""
	return nil
}
