package rerank

import (
	"context"
	"math"
	"sort"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/utils"
)

// 多样性相关默认值。
const (
	DefaultNoveltyBonus   = 5.0
	DefaultDiversityBonus = 3.0
	DefaultMinDiversity   = 0.3

	dislikePenalty = -10.0
)

// DiversityOptions 是多样性重排的请求级配置，不持久化。
// History/Likes/Dislikes 为空时回退到 rctx.User 的对应字段。
type DiversityOptions struct {
	History  []string // 看过的场所 ID，新颖度加分的依据
	Likes    []string // 点赞记录；当前版本只透传给解释标签，预留给偏好扩展
	Dislikes []string // 踩过的场所 ID，命中扣 10 分

	NoveltyBonus float64 // 默认 5

	// DiversityBonus / MinDiversity 用指针表达“未设置”：0 对两者都是
	// 合法配置（关闭多样性加减分 / 阈值取 0），不能作为缺省哨兵
	DiversityBonus *float64 // 默认 3
	MinDiversity   *float64 // 相似度阈值，默认 0.3

	// DisableNovelty 关闭新颖度加分（NoveltyBonus 的零值表示“用默认”，
	// 所以显式关闭需要单独的开关）
	DisableNovelty bool
}

func (o DiversityOptions) withDefaults(profile *core.UserProfile) DiversityOptions {
	if o.NoveltyBonus == 0 {
		o.NoveltyBonus = DefaultNoveltyBonus
	}
	if o.DiversityBonus == nil {
		o.DiversityBonus = core.Float64Ptr(DefaultDiversityBonus)
	}
	if o.MinDiversity == nil {
		o.MinDiversity = core.Float64Ptr(DefaultMinDiversity)
	}
	if profile != nil {
		if len(o.History) == 0 {
			o.History = profile.History
		}
		if len(o.Likes) == 0 {
			o.Likes = profile.Likes
		}
		if len(o.Dislikes) == 0 {
			o.Dislikes = profile.Dislikes
		}
	}
	return o
}

// DiversityNode 是多样性重排 Node——唯一不是逐场所独立的阶段：
// 按输入顺序逐个处理，第 i 个场所与所有已处理场所求最大相似度，
//
//	maxSim <  MinDiversity  → +DiversityBonus
//	maxSim >= MinDiversity  → −(maxSim − MinDiversity) × DiversityBonus × 2
//
// 叠加新颖度加分（不在浏览历史中 +NoveltyBonus）与踩惩罚（−10），
// 全部加到 FinalScore 后钳制，最终按
// FinalScore desc → MatchScore desc → Distance asc 排序。
//
// 相似度两两计算是 O(n²)，调用方应把候选集压到请求 limit 的小倍数
// （通常 ≤50）再进入本阶段。
type DiversityNode struct {
	Options DiversityOptions
}

func (n *DiversityNode) Name() string        { return "rerank.diversity" }
func (n *DiversityNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *DiversityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	if len(places) == 0 {
		return places, nil
	}

	var profile *core.UserProfile
	if rctx != nil {
		profile = rctx.User
	}
	opts := n.Options.withDefaults(profile)

	history := toSet(opts.History)
	dislikes := toSet(opts.Dislikes)

	out := make([]*core.Place, 0, len(places))
	for _, place := range places {
		if place == nil {
			continue
		}
		p := place.Clone()

		var delta float64

		if !opts.DisableNovelty && !history[p.ID] {
			delta += opts.NoveltyBonus
			p.PutLabel("novelty", utils.Label{Value: "new", Source: "rerank"})
		}

		if len(out) > 0 {
			maxSim := 0.0
			for _, prev := range out {
				if sim := Similarity(p, prev); sim > maxSim {
					maxSim = sim
				}
			}
			var divDelta float64
			if maxSim < *opts.MinDiversity {
				divDelta = *opts.DiversityBonus
			} else {
				divDelta = -(maxSim - *opts.MinDiversity) * *opts.DiversityBonus * 2
			}
			delta += divDelta
			p.PutDetail("max_similarity", maxSim)
			p.PutDetail("diversity_bonus", divDelta)
		}

		if dislikes[p.ID] {
			delta += dislikePenalty
			p.PutLabel("disliked", utils.Label{Value: "true", Source: "rerank"})
		}

		if delta != 0 {
			p.FinalScore = core.ClampScore(p.FinalScore + delta)
			p.PutDetail("rerank_delta", delta)
		}
		out = append(out, p)
	}

	sortPlaces(out)
	return out, nil
}

// sortPlaces 按 FinalScore desc → MatchScore desc → Distance asc 稳定排序。
// 距离未知按无穷远处理，排在同分末尾。
func sortPlaces(places []*core.Place) {
	sort.SliceStable(places, func(i, j int) bool {
		a, b := places[i], places[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		return distanceOrInf(a) < distanceOrInf(b)
	})
}

func distanceOrInf(p *core.Place) float64 {
	if p.Distance == nil {
		return math.Inf(1)
	}
	return *p.Distance
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
