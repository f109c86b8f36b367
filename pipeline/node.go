package pipeline

import (
	"context"

	"github.com/rushteam/placekit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：生成候选场所集
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不满足硬约束的场所
	KindRank        Kind = "rank"        // 排序阶段：质量打分 + 置信度收缩
	KindReRank      Kind = "rerank"      // 重排阶段：情境调整 / 多样性 / 意外发现
	KindPostProcess Kind = "postprocess" // 后处理阶段：特征补充或结果修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 places -> 输出 places”的形态：召回生成、过滤截断、
// 打分改写、重排换序都落在同一个签名上。
//
// 约定：Node 不原地修改输入元素的分数字段；写分数前先 Clone，
// 保证同一候选列表可以安全地并发参与多个请求。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		places []*core.Place,
	) ([]*core.Place, error)
}
