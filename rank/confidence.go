// Package rank 实现排序阶段：质量打分（QualityNode）与
// 置信度收缩（ConfidenceNode）。
package rank

import (
	"math"

	"github.com/rushteam/placekit/core"
)

// Method 是置信度收缩的计算方式。
type Method string

const (
	// MethodBayesian 贝叶斯收缩（默认，排序公平性依赖它）
	MethodBayesian Method = "bayesian"

	// MethodConfidence 对数置信度插值（备选）
	MethodConfidence Method = "confidence"
)

// ConfidenceOptions 是置信度收缩的参数。
//
// PriorMean 必须是固定常量（50），与场所自身评分无关：
// 用场所自己的评分当先验会让低证据分数向自身收缩，收缩完全失效
// （历史缺陷，已修正）；正确行为永远向全局中性先验收缩。
type ConfidenceOptions struct {
	Method             Method
	PriorMean          *float64 // 先验均值，nil 表示默认 50；0 是合法先验
	ConfidenceConstant float64  // 贝叶斯常数 C，默认 10
	MinReviews         int      // 低证据提示阈值，默认 10
	MaxReviews         int      // 对数置信度满格样本量，默认 100
}

// DefaultConfidenceOptions 返回默认参数。
func DefaultConfidenceOptions() ConfidenceOptions {
	return ConfidenceOptions{
		Method:             MethodBayesian,
		PriorMean:          core.Float64Ptr(50),
		ConfidenceConstant: 10,
		MinReviews:         10,
		MaxReviews:         100,
	}
}

func (o ConfidenceOptions) withDefaults() ConfidenceOptions {
	if o.Method == "" {
		o.Method = MethodBayesian
	}
	if o.PriorMean == nil {
		o.PriorMean = core.Float64Ptr(50)
	}
	if o.ConfidenceConstant == 0 {
		o.ConfidenceConstant = 10
	}
	if o.MinReviews == 0 {
		o.MinReviews = 10
	}
	if o.MaxReviews == 0 {
		o.MaxReviews = 100
	}
	return o
}

// AdjustScoreByReviewCount 按样本量把分数向中性先验收缩，返回 0-100 整数。
//
//	bayesian:   adjusted = round((C·m + n·score) / (C + n))，n=0 时恰好返回 m
//	confidence: f = min(1, log10(n+1)/log10(maxReviews+1))
//	            adjusted = round(score·f + m·(1－f))
//
// 越界输入一律钳制：score 钳到 [0,100]，负的 reviewCount 按 0 处理。
func AdjustScoreByReviewCount(score float64, reviewCount int, opts ConfidenceOptions) int {
	o := opts.withDefaults()
	score = core.ClampScore(score)
	if reviewCount < 0 {
		reviewCount = 0
	}
	n := float64(reviewCount)
	prior := *o.PriorMean

	var adjusted float64
	switch o.Method {
	case MethodConfidence:
		f := math.Log10(n+1) / math.Log10(float64(o.MaxReviews)+1)
		if f > 1 {
			f = 1
		}
		if f < 0 {
			f = 0
		}
		adjusted = score*f + prior*(1-f)
	default: // bayesian
		if reviewCount == 0 {
			return int(math.Round(core.ClampScore(prior)))
		}
		adjusted = (o.ConfidenceConstant*prior + n*score) / (o.ConfidenceConstant + n)
	}
	return int(math.Round(core.ClampScore(adjusted)))
}

// SortingScore 是仅用于排序的分数（不用于展示）：
// 贝叶斯收缩分（固定先验 50、C=10）+ 样本量奖励 min(5, n/20)。
// 奖励单调有界，奖励高评论量但不会重新抬高低证据分数。
func SortingScore(score float64, reviewCount int) float64 {
	if reviewCount < 0 {
		reviewCount = 0
	}
	base := AdjustScoreByReviewCount(score, reviewCount, ConfidenceOptions{
		Method:             MethodBayesian,
		PriorMean:          core.Float64Ptr(50),
		ConfidenceConstant: 10,
	})
	bonus := float64(reviewCount / 20)
	if bonus > 5 {
		bonus = 5
	}
	return float64(base) + bonus
}
