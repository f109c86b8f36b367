package filter

import (
	"context"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pkg/dsl"
)

// ExprFilter 是基于 CEL 表达式的可配置过滤器：表达式命中即剔除。
// 例如 `place.price_level >= 3 && ctx.companion == "colleagues"`。
type ExprFilter struct {
	expr string
	eval *dsl.Eval
}

// NewExprFilter 编译过滤表达式；表达式非法在配置期报错。
func NewExprFilter(expr string) (*ExprFilter, error) {
	eval, err := dsl.NewEval(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{expr: expr, eval: eval}, nil
}

func (f *ExprFilter) Name() string { return "filter.expr" }

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	place *core.Place,
) (bool, error) {
	if place == nil {
		return true, nil
	}
	return f.eval.Evaluate(place, rctx)
}
