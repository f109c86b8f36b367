package pipeline

import (
	"context"

	"github.com/rushteam/placekit/core"
)

// Pipeline 是 placekit 的核心抽象：把推荐逻辑拆成可组合的 Node 链。
// 典型链路：recall → filter → rank.quality → rank.confidence →
// rerank.situation → rerank.diversity → rerank.topn。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	cur := places
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
