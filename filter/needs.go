package filter

import (
	"context"

	"github.com/rushteam/placekit/core"
)

// NeedsFilter 按用户声明的设施/无障碍需求过滤：
// 任一需求项被场所显式标记为 false 时剔除。
// 未知（map 中无该 key）默认保留，避免数据缺失导致整城无结果。
//
// Strict 模式下未知也剔除，用于轮椅通道这类不能赌的需求。
type NeedsFilter struct {
	Strict bool
}

func (f *NeedsFilter) Name() string { return "filter.needs" }

func (f *NeedsFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	place *core.Place,
) (bool, error) {
	if place == nil {
		return true, nil
	}
	if rctx == nil || rctx.User == nil || len(rctx.User.SpecialNeeds) == 0 {
		return false, nil
	}
	for _, need := range rctx.User.SpecialNeeds {
		v, known := place.Amenities[need]
		if known && !v {
			return true, nil
		}
		if !known && f.Strict {
			return true, nil
		}
	}
	return false, nil
}
