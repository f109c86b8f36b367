// Package sample 实现评论采样：把任意规模的评论集压缩为一个有界、
// 分布均衡的代表性子集，供质量打分阶段使用。
//
// 采样策略：按评分分层 + 组内按“新近度/长度”综合排名取额度。
// 纯函数实现，无副作用；相同输入永远给出相同子集。
package sample

import (
	"math"
	"sort"

	"github.com/rushteam/placekit/core"
)

// 默认采样边界。
const (
	DefaultMinCount = 50
	DefaultMaxCount = 200

	// FixedTarget 是关闭动态采样时的固定目标数
	FixedTarget = 100

	// 组内综合排名权重：0.6 新近度 + 0.4 文本长度
	recencyWeight = 0.6
	lengthWeight  = 0.4
)

// Sampler 是评论采样器。零值即可用：动态目标数、默认评分分布。
type Sampler struct {
	// MinCount 下界；输入不超过它时整组原样返回（默认 50）
	MinCount int

	// MaxCount 上界；输出永远不超过它（默认 200）
	MaxCount int

	// TargetCount 调用方指定的目标数；<=0 时按 FixedSize 决定
	TargetCount int

	// FixedSize 为 true 时不做动态估算，目标数固定为 FixedTarget
	FixedSize bool

	// Distribution 是各评分档（1-5）的采样占比。
	// nil 使用默认 30/30/20/10/10%（对应 5/4/3/2/1 星）；
	// 显式的空 map 表示不做分层，直接走兜底路径。
	Distribution map[int]float64
}

// DefaultDistribution 返回默认的评分占比：高分评论信息量更大，占比更高。
func DefaultDistribution() map[int]float64 {
	return map[int]float64{5: 0.30, 4: 0.30, 3: 0.20, 2: 0.10, 1: 0.10}
}

// OptimalSampleSize 按输入规模估算采样目标数。
// 随规模单调不减，且永远不超过 DefaultMaxCount：
//
//	<=50      全取
//	51-200    50%（向上取整），下限 50
//	201-500   25%，钳制到 [50,150]
//	501-1000  15%，钳制到 [75,200]
//	>1000     10%，钳制到 [100,200]
func OptimalSampleSize(total int) int {
	switch {
	case total <= 50:
		return total
	case total <= 200:
		n := int(math.Ceil(float64(total) * 0.5))
		if n < 50 {
			n = 50
		}
		return n
	case total <= 500:
		return clampInt(int(float64(total)*0.25), 50, 150)
	case total <= 1000:
		return clampInt(int(float64(total)*0.15), 75, 200)
	default:
		return clampInt(int(float64(total)*0.10), 100, 200)
	}
}

// Sample 返回评论集的代表性子集。
//
// 保证：
//   - len(reviews) <= MinCount 时原样返回（同一底层元素，零开销）
//   - 否则输出长度在 [MinCount, MaxCount] 内（唯一文本数足够的前提下），
//     且不含重复文本（首次出现保留）
func (s *Sampler) Sample(reviews []core.Review) []core.Review {
	minCount := s.MinCount
	if minCount <= 0 {
		minCount = DefaultMinCount
	}
	maxCount := s.MaxCount
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}

	if len(reviews) <= minCount {
		return reviews
	}

	target := s.TargetCount
	if target <= 0 {
		if s.FixedSize {
			target = FixedTarget
		} else {
			target = OptimalSampleSize(len(reviews))
		}
	}
	target = clampInt(target, minCount, maxCount)

	dist := s.Distribution
	if dist == nil {
		dist = DefaultDistribution()
	}

	out := stratifiedSample(reviews, target, dist)
	if len(out) == 0 {
		// 分层无产出（如显式关闭分布）：50% 最新 + 50% 最长兜底
		out = recentLongestSample(reviews, target)
	}
	if len(out) < minCount {
		out = topUp(out, reviews, minCount)
	}
	if len(out) > maxCount {
		out = out[:maxCount]
	}
	return out
}

// stratifiedSample 按评分分层采样：每个评分档按占比分配额度，
// 组内按新近度/长度综合排名取前额度名。
func stratifiedSample(reviews []core.Review, target int, dist map[int]float64) []core.Review {
	groups := make(map[int][]core.Review, 5)
	for _, r := range reviews {
		groups[ratingBucket(r)] = append(groups[ratingBucket(r)], r)
	}

	out := make([]core.Review, 0, target)
	seen := make(map[string]bool, target)

	// 固定 5..1 的遍历顺序，保证结果可复现
	for rating := 5; rating >= 1; rating-- {
		share, ok := dist[rating]
		if !ok || share <= 0 {
			continue
		}
		group := groups[rating]
		if len(group) == 0 {
			continue
		}
		quota := int(math.Round(float64(target) * share))
		if quota <= 0 {
			continue
		}
		for _, r := range rankByRecencyLength(group, quota) {
			if r.Text != "" && seen[r.Text] {
				continue
			}
			seen[r.Text] = true
			out = append(out, r)
		}
	}
	return out
}

// rankByRecencyLength 组内综合排名：新近度与长度各自按名次归一化后加权，
// 返回得分最高的前 quota 条。
func rankByRecencyLength(group []core.Review, quota int) []core.Review {
	n := len(group)
	if quota >= n {
		quota = n
	}

	byDate := orderOf(n, func(i, j int) bool { return group[i].Date.After(group[j].Date) })
	byLen := orderOf(n, func(i, j int) bool { return len(group[i].Text) > len(group[j].Text) })

	// 名次 0 得 1.0，末名趋近 0
	scores := make([]float64, n)
	for rank, idx := range byDate {
		scores[idx] += recencyWeight * float64(n-rank) / float64(n)
	}
	for rank, idx := range byLen {
		scores[idx] += lengthWeight * float64(n-rank) / float64(n)
	}

	order := orderOf(n, func(i, j int) bool { return scores[i] > scores[j] })
	picked := make([]core.Review, 0, quota)
	for _, idx := range order[:quota] {
		picked = append(picked, group[idx])
	}
	return picked
}

// recentLongestSample 是兜底采样：一半取最新、一半取最长，按文本去重。
func recentLongestSample(reviews []core.Review, target int) []core.Review {
	n := len(reviews)
	half := target / 2

	byDate := orderOf(n, func(i, j int) bool { return reviews[i].Date.After(reviews[j].Date) })
	byLen := orderOf(n, func(i, j int) bool { return len(reviews[i].Text) > len(reviews[j].Text) })

	out := make([]core.Review, 0, target)
	seen := make(map[string]bool, target)
	appendUnique := func(order []int, limit int) {
		taken := 0
		for _, idx := range order {
			if taken >= limit || len(out) >= target {
				return
			}
			r := reviews[idx]
			if r.Text != "" && seen[r.Text] {
				continue
			}
			seen[r.Text] = true
			out = append(out, r)
			taken++
		}
	}
	appendUnique(byDate, half)
	appendUnique(byLen, target-len(out))
	return out
}

// topUp 从剩余评论中按输入顺序补足到 want 条（仍然按文本去重）。
func topUp(picked []core.Review, reviews []core.Review, want int) []core.Review {
	seen := make(map[string]bool, len(picked))
	for _, r := range picked {
		seen[r.Text] = true
	}
	for _, r := range reviews {
		if len(picked) >= want {
			break
		}
		if r.Text != "" && seen[r.Text] {
			continue
		}
		seen[r.Text] = true
		picked = append(picked, r)
	}
	return picked
}

// ratingBucket 把评分取整并钳制到 1-5；缺失评分（<=0）归入 3 星档。
// 超出量程的评分视为已提供，钳制后分层。
func ratingBucket(r core.Review) int {
	if r.Rating <= 0 {
		return 3
	}
	b := int(math.Round(r.Rating))
	return clampInt(b, 1, 5)
}

// orderOf 返回按 less 稳定排序后的下标序列。
func orderOf(n int, less func(i, j int) bool) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return less(order[a], order[b]) })
	return order
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
