// Package placekit 是一个场所推荐工具包（Place Recommender Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank）
// - 可解释: 每个加减分都落在 MatchDetails / Labels 上，结果可以逐项解释
// - 证据优先: 评论证据不足时分数向全局先验收缩，冷门高分不会碾压热门稳定
// - Node 可扩展: 自定义 Node 即可插拔扩展（启发式或外部分析服务均可）
package placekit

import "github.com/rushteam/placekit/pipeline"

// 轻量 facade：便于用户直接 import "placekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
