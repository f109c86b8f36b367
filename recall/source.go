// Package recall 实现召回阶段：从各数据源生成候选场所集。
// 半径/类目检索本身是协作方的事；这里只约定取数形状并做并发编排。
package recall

import (
	"context"

	"github.com/rushteam/placekit/core"
)

// Source 是召回源的抽象：给定请求上下文，产出一批候选场所。
type Source interface {
	// Name 返回召回源名称（写入 recall_source 标签）
	Name() string

	// Recall 产出候选；查不到时返回空集而不是错误
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Place, error)
}
