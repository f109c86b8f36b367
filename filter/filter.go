// Package filter 实现过滤阶段：在打分之前剔除不满足硬约束的候选场所
// （预算、无障碍需求、营业时间、黑名单、自定义规则）。
package filter

import (
	"context"

	"github.com/rushteam/placekit/core"
)

// Filter 是过滤器的抽象接口，用于判断一个场所是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断场所是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, place *core.Place) (bool, error)
}
