package filter

import (
	"context"

	"github.com/rushteam/placekit/core"
)

// OpenNowFilter 按请求情境的时间过滤未营业的场所。
// 没有营业时间数据的场所保留；情境缺失时不过滤。
type OpenNowFilter struct{}

func (f *OpenNowFilter) Name() string { return "filter.open_now" }

func (f *OpenNowFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	place *core.Place,
) (bool, error) {
	if place == nil {
		return true, nil
	}
	if rctx == nil || rctx.Situation == nil || place.Hours == nil {
		return false, nil
	}
	s := rctx.Situation
	return !place.Hours.IsOpenAt(s.DayOfWeek, s.Minute), nil
}
