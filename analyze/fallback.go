package analyze

import (
	"context"

	"github.com/rushteam/placekit/core"
)

// Fallback 是主/备分析器包装：优先走 Primary（通常是外部 LLM 协作方），
// 失败（报错、panic、空结果）时无损降级到 Backup。
// 两条路径共用 core.AnalysisResult 形状，调用方感知不到切换。
type Fallback struct {
	Primary core.ReviewAnalyzer
	Backup  core.ReviewAnalyzer
}

// NewFallback 创建一个以启发式为兜底的分析器。
func NewFallback(primary core.ReviewAnalyzer) *Fallback {
	return &Fallback{Primary: primary, Backup: &Heuristic{}}
}

func (f *Fallback) Name() string { return "analyze.fallback" }

func (f *Fallback) Analyze(
	ctx context.Context,
	reviews []core.Review,
	category, companion string,
) (*core.AnalysisResult, error) {
	if f.Primary != nil {
		if res := f.tryPrimary(ctx, reviews, category, companion); res != nil {
			return res, nil
		}
	}
	backup := f.Backup
	if backup == nil {
		backup = &Heuristic{}
	}
	return backup.Analyze(ctx, reviews, category, companion)
}

// tryPrimary 在协作方边界吞掉错误与 panic：对排序阶段而言，
// 主实现失败等价于“结果缺席”。
func (f *Fallback) tryPrimary(
	ctx context.Context,
	reviews []core.Review,
	category, companion string,
) (res *core.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
		}
	}()
	out, err := f.Primary.Analyze(ctx, reviews, category, companion)
	if err != nil {
		return nil
	}
	return out
}
