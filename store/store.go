// Package store 提供 core.Store / core.KeyValueStore 的基础设施实现
// （内存版与 Redis 版），以及把通用 KV 适配成场所/评论数据源的适配器。
package store

import "github.com/rushteam/placekit/core"

// 包内统一使用领域层的错误定义。
var (
	ErrNotFound     = core.ErrStoreNotFound
	ErrNotSupported = core.ErrStoreNotSupported
)
