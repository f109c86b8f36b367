package filter

import (
	"context"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器。
// 任何一个过滤器返回 true，该场所就会被移除；
// 过滤器自身报错时按“不过滤”处理，不中断链路。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string        { return "filter.node" }
func (n *FilterNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	if len(n.Filters) == 0 || len(places) == 0 {
		return places, nil
	}

	out := make([]*core.Place, 0, len(places))
	for _, place := range places {
		if place == nil {
			continue
		}

		filtered := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, place)
			if err != nil {
				continue
			}
			if ok {
				filtered = true
				// 记录过滤原因，用于调试/观测
				place.PutLabel("filtered", utils.Label{Value: "true", Source: f.Name()})
				break
			}
		}
		if !filtered {
			out = append(out, place)
		}
	}
	return out, nil
}
