package core

import "context"

// ReviewAnalyzer 是评论分析能力的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由 analyze 包及外部协作方实现
//   - LLM 分析与关键词启发式是同一能力的两种实现，按可用性选择，
//     不在调用方散落 if/else
//   - 实现必须是纯函数式的：相同输入给出相同输出，不做 I/O 以外的副作用
//
// 实现：
//   - analyze.Heuristic：关键词启发式（内置，永远可用）
//   - analyze.Fallback：主/备包装，主实现失败时无损降级
//   - 外部 LLM 协作方：自行实现此接口接入
type ReviewAnalyzer interface {
	// Name 返回分析器名称（用于解释标签/观测）
	Name() string

	// Analyze 对一组评论做类目化情感分析。
	// category 是场所类目（food / cafe ...），companion 是同伴类型；
	// 两者影响打分的类目融合与加减分。
	// 无评论时不报错，返回中性结果（score=50）。
	Analyze(ctx context.Context, reviews []Review, category, companion string) (*AnalysisResult, error)
}

// AnalysisResult 是评论分析的输出，LLM 路径与启发式路径共用同一形状，
// 保证降级无损。
type AnalysisResult struct {
	// Score 0-100 的整数适配分
	Score int

	// Why 是打分依据的一句话解释
	Why string

	// Risks 是风险提示（低分类目、样本量不足），可为空
	Risks string

	// Categories 是分类目的打分明细
	Categories []CategoryScore
}

// CategoryScore 是单个评论类目（服务/价格/口味...）的打分，按请求重算，
// 核心不持久化。
type CategoryScore struct {
	Name          string
	Score         int     // 0-100
	PositiveRatio float64 // 0-1
	// 正/负面例句，各至多 2 条，原文保留用于解释
	PositiveExamples []string
	NegativeExamples []string
}
