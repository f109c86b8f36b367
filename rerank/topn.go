package rerank

import (
	"context"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
)

// TopNNode 是 Top-N 截断节点，用于在重排后截取前 N 个场所。
// 通常放在 DiversityNode 之后，把结果压到用户请求的 limit；
// 也可以放在 DiversityNode 之前，把 O(n²) 的相似度计算限制在
// 一个小候选集上（如 limit 的 2-3 倍）。
type TopNNode struct {
	// N 要保留的场所数量；N <= 0 时不截断。
	// 为 0 且 rctx.User.Limit > 0 时使用用户请求的 limit。
	N int
}

func (n *TopNNode) Name() string        { return "rerank.topn" }
func (n *TopNNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *TopNNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	limit := n.N
	if limit <= 0 && rctx != nil && rctx.User != nil {
		limit = rctx.User.Limit
	}
	if limit <= 0 || len(places) <= limit {
		return places, nil
	}
	return places[:limit], nil
}
