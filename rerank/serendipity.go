package rerank

import (
	"context"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/utils"
)

// 意外发现加分：高分且用户没看过的场所再推一把。
const (
	serendipityBonus    = 3.0
	serendipityMinScore = 70.0
)

// SerendipityNode 是可选的独立加分过程：FinalScore >= 70 且不在浏览历史
// 中的场所 +3（钳制后写回）。只改分值不换序；如需按新分值重排，
// 在其后接 DiversityNode 或自行排序。
type SerendipityNode struct {
	// History 为空时回退到 rctx.User.History
	History []string
}

func (n *SerendipityNode) Name() string        { return "rerank.serendipity" }
func (n *SerendipityNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *SerendipityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	if len(places) == 0 {
		return places, nil
	}

	history := n.History
	if len(history) == 0 && rctx != nil && rctx.User != nil {
		history = rctx.User.History
	}
	seen := toSet(history)

	out := make([]*core.Place, 0, len(places))
	for _, place := range places {
		if place == nil {
			continue
		}
		p := place.Clone()
		if p.FinalScore >= serendipityMinScore && !seen[p.ID] {
			p.FinalScore = core.ClampScore(p.FinalScore + serendipityBonus)
			p.PutDetail("serendipity_bonus", serendipityBonus)
			p.PutLabel("serendipity", utils.Label{Value: "true", Source: "rerank"})
		}
		out = append(out, p)
	}
	return out, nil
}
