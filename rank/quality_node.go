package rank

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/placekit/analyze"
	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/utils"
	"github.com/rushteam/placekit/sample"
)

// QualityNode 是质量打分 Node：逐场所拉取评论 → 采样 → 分析 →
// 写入 MatchScore 与解释标签。
//
// - 评论拉取并发执行（errgroup + 信号量限流），结果按下标写回，
//   不改变候选顺序
// - 评论源失败视为“该场所无评论”（分析器给出中性 50 分），
//   不中断整条 Pipeline
// - 写入 labels：analyzer / why / risks；类目分写入 MatchDetails
type QualityNode struct {
	// Analyzer 评论分析器；为 nil 时使用内置启发式
	Analyzer core.ReviewAnalyzer

	// Reviews 评论数据源；为 nil 时所有场所按无评论处理
	Reviews core.ReviewStore

	// Sampler 评论采样器（零值即默认策略）
	Sampler sample.Sampler

	// FetchLimit 每个场所最多拉取的评论数（0 表示不限）
	FetchLimit int

	// MaxConcurrent 最大并发拉取数（0 表示 8）
	MaxConcurrent int

	// Timeout 单场所拉取+分析的超时（0 表示不限）
	Timeout time.Duration
}

func (n *QualityNode) Name() string        { return "rank.quality" }
func (n *QualityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *QualityNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	if len(places) == 0 {
		return places, nil
	}

	analyzer := n.Analyzer
	if analyzer == nil {
		analyzer = &analyze.Heuristic{}
	}

	profile := rctx.GetUserProfile()

	maxConcurrent := n.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	sem := make(chan struct{}, maxConcurrent)

	out := make([]*core.Place, len(places))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, place := range places {
		if place == nil {
			continue
		}
		idx, p := i, place.Clone()
		out[idx] = p

		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			scoreCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				scoreCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			n.scorePlace(scoreCtx, analyzer, profile, p)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 去掉输入中的 nil 占位
	compact := out[:0]
	for _, p := range out {
		if p != nil {
			compact = append(compact, p)
		}
	}
	return compact, nil
}

func (n *QualityNode) scorePlace(
	ctx context.Context,
	analyzer core.ReviewAnalyzer,
	profile *core.UserProfile,
	p *core.Place,
) {
	var reviews []core.Review
	if n.Reviews != nil {
		// 评论源失败按无评论处理，协作方错误不进入打分阶段
		if fetched, err := n.Reviews.GetReviews(ctx, p.ID, n.FetchLimit); err == nil {
			reviews = fetched
		}
	}

	sampled := n.Sampler.Sample(reviews)

	res, err := analyzer.Analyze(ctx, sampled, profile.Category, profile.Companion)
	if err != nil || res == nil {
		// 分析器报错等价于结果缺席：中性分
		res = &core.AnalysisResult{Score: 50, Why: "insufficient review data"}
	}

	p.MatchScore = core.ClampScore(float64(res.Score))
	p.FinalScore = p.MatchScore
	if p.ReviewCount == nil {
		p.ReviewCount = core.IntPtr(len(reviews))
	}
	p.Meta["review_sample_size"] = len(sampled)

	p.PutLabel("analyzer", utils.Label{Value: analyzer.Name(), Source: "rank"})
	p.PutLabel("why", utils.Label{Value: res.Why, Source: "rank"})
	if res.Risks != "" {
		p.PutLabel("risks", utils.Label{Value: res.Risks, Source: "rank"})
	}
	for _, c := range res.Categories {
		p.PutDetail("category:"+c.Name, float64(c.Score))
	}
	p.PutDetail("quality", p.MatchScore)
}
