package rank

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/utils"
)

// ConfidenceNode 是置信度收缩 Node：把每个场所的 MatchScore 按其评论量
// 向固定中性先验收缩，写入 FinalScore，并按排序分（SortingScore）降序排列。
//
// - FinalScore 存收缩后的展示分
// - 排序用 SortingScore（收缩分 + 有界样本量奖励），只影响顺序不影响展示
// - 评论量低于 MinReviews 的场所打 low_evidence 标签
type ConfidenceNode struct {
	Options ConfidenceOptions
}

func (n *ConfidenceNode) Name() string        { return "rank.confidence" }
func (n *ConfidenceNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ConfidenceNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	if len(places) == 0 {
		return places, nil
	}
	opts := n.Options.withDefaults()

	out := make([]*core.Place, 0, len(places))
	for _, place := range places {
		if place == nil {
			continue
		}
		p := place.Clone()

		reviewCount := 0
		if p.ReviewCount != nil && *p.ReviewCount > 0 {
			reviewCount = *p.ReviewCount
		}

		adjusted := AdjustScoreByReviewCount(p.MatchScore, reviewCount, opts)
		p.FinalScore = core.ClampScore(float64(adjusted))
		p.PutDetail("confidence_adjusted", p.FinalScore)
		p.PutLabel("confidence_method", utils.Label{Value: string(opts.Method), Source: "rank"})
		if reviewCount < opts.MinReviews {
			p.PutLabel("low_evidence", utils.Label{
				Value:  strconv.Itoa(reviewCount),
				Source: "rank",
			})
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return sortingScoreOf(out[i]) > sortingScoreOf(out[j])
	})
	return out, nil
}

func sortingScoreOf(p *core.Place) float64 {
	reviewCount := 0
	if p.ReviewCount != nil && *p.ReviewCount > 0 {
		reviewCount = *p.ReviewCount
	}
	return SortingScore(p.MatchScore, reviewCount)
}
