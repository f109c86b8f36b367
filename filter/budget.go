package filter

import (
	"context"

	"github.com/rushteam/placekit/core"
)

// BudgetFilter 按用户预算过滤：价位档（0-4）高于预算的场所被剔除。
// 价位未知的场所保留（宁滥勿缺，交给后续打分压序）。
type BudgetFilter struct{}

func (f *BudgetFilter) Name() string { return "filter.budget" }

func (f *BudgetFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	place *core.Place,
) (bool, error) {
	if place == nil {
		return true, nil
	}
	if rctx == nil || rctx.User == nil || rctx.User.Budget == nil {
		return false, nil
	}
	if place.PriceLevel == nil {
		return false, nil
	}
	return *place.PriceLevel > *rctx.User.Budget, nil
}
