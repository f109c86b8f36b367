package feature

import (
	"context"
	"math"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/utils"
)

// EnrichNode 是特征补充节点，在打分前用特征服务刷新场所统计字段。
//
// 回填规则：
//   - venue_stats:rating -> Place.Rating（限定 [0, 5]）
//   - venue_stats:review_count -> Place.ReviewCount（非负取整）
//   - 其余数值特征 -> Place.Meta["feature:<name>"]
//
// Overwrite 为 false（默认）时只补缺：候选记录已带的字段不动，
// 只填 nil 的 Rating / ReviewCount。特征服务失败时整批跳过，不中断 Pipeline。
type EnrichNode struct {
	// FeatureService 特征服务（FeastService / StoreService / Fallback）
	FeatureService core.FeatureService

	// Overwrite 为 true 时特征值覆盖候选记录自带的统计字段
	Overwrite bool
}

var _ pipeline.Node = (*EnrichNode)(nil)

// NewEnrichNode 创建特征补充节点。
func NewEnrichNode(service core.FeatureService) *EnrichNode {
	return &EnrichNode{FeatureService: service}
}

func (n *EnrichNode) Name() string { return "feature.enrich" }

func (n *EnrichNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *EnrichNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	if len(places) == 0 || n.FeatureService == nil {
		return places, nil
	}

	ids := make([]string, len(places))
	for i, p := range places {
		ids[i] = p.ID
	}

	featuresByID, err := n.FeatureService.BatchGetPlaceFeatures(ctx, ids)
	if err != nil {
		// 特征服务失败不阻断推荐，打分阶段按候选自带数据退化处理
		return places, nil
	}

	out := make([]*core.Place, 0, len(places))
	for _, place := range places {
		features, ok := featuresByID[place.ID]
		if !ok || len(features) == 0 {
			out = append(out, place)
			continue
		}
		p := place.Clone()
		n.apply(p, features)
		p.PutLabel("enriched_by", utils.Label{Value: n.FeatureService.Name(), Source: n.Name()})
		out = append(out, p)
	}
	return out, nil
}

func (n *EnrichNode) apply(p *core.Place, features map[string]float64) {
	for name, value := range features {
		switch name {
		case FeatureRating:
			if n.Overwrite || p.Rating == nil {
				p.Rating = core.Float64Ptr(clampRating(value))
			}
		case FeatureReviewCount:
			if n.Overwrite || p.ReviewCount == nil {
				count := int(math.Round(value))
				if count < 0 {
					count = 0
				}
				p.ReviewCount = core.IntPtr(count)
			}
		default:
			if p.Meta == nil {
				p.Meta = make(map[string]any)
			}
			p.Meta["feature:"+name] = value
		}
	}
}

func clampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}
