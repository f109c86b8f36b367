// Package analyze 实现评论分析：把一组评论转化为 0-100 的适配分、
// 分类目明细与可读解释。
//
// 两条路径实现同一个 core.ReviewAnalyzer 能力：
//   - Heuristic：内置关键词启发式，永远可用
//   - 外部 LLM 协作方：可选，经 Fallback 包装后失败时无损降级到 Heuristic
package analyze

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rushteam/placekit/core"
)

// 同伴/类目调整常量。手调值，保留原样，未经产品侧校准前不要改动。
const (
	companionPartnerDelta    = 5
	companionFamilyDelta     = 10
	companionColleaguesDelta = -5

	// category=food 时与 quality 类目分五五开融合
	foodQualityBlend = 0.5

	// companion=family 时向 cleanliness 类目分倾斜 30%
	familyCleanlinessBlend = 0.3
)

// 低样本量提示阈值：样本少于 10 条时在 Risks 中注明。
const lowEvidenceThreshold = 10

// Heuristic 是关键词启发式分析器，core.ReviewAnalyzer 的内置实现。
// 无状态、无 I/O；数据不足时退化为中性结果而不是报错。
type Heuristic struct{}

func (h *Heuristic) Name() string { return "analyze.heuristic" }

func (h *Heuristic) Analyze(
	_ context.Context,
	reviews []core.Review,
	category, companion string,
) (*core.AnalysisResult, error) {
	if len(reviews) == 0 {
		return &core.AnalysisResult{
			Score:      50,
			Why:        "insufficient review data",
			Categories: []core.CategoryScore{},
		}, nil
	}

	cats := extractCategories(reviews)
	score := baseScore(reviews, cats)
	score = adjustForContext(score, category, companion, cats)

	rounded := int(math.Round(core.ClampScore(score)))
	return &core.AnalysisResult{
		Score:      rounded,
		Why:        buildWhy(rounded, cats),
		Risks:      buildRisks(cats, len(reviews)),
		Categories: cats,
	}, nil
}

// extractCategories 按关键词把评论划入七个固定类目并统计正负面。
// 正面判定：正面词命中数 > 负面词命中数，或评分 >= 4（评分只向正面
// 方向覆盖关键词结论，不反向）。
func extractCategories(reviews []core.Review) []core.CategoryScore {
	out := make([]core.CategoryScore, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		keywords := categoryKeywords[name]

		var members, positives int
		var posExamples, negExamples []string
		for _, r := range reviews {
			text := strings.ToLower(r.Text)
			if !containsAny(text, keywords) {
				continue
			}
			members++
			if isPositive(text, r) {
				positives++
				if len(posExamples) < 2 {
					posExamples = append(posExamples, r.Text)
				}
			} else if len(negExamples) < 2 {
				negExamples = append(negExamples, r.Text)
			}
		}
		if members == 0 {
			continue
		}

		ratio := float64(positives) / float64(members)
		out = append(out, core.CategoryScore{
			Name:             name,
			Score:            int(math.Round(ratio * 100)),
			PositiveRatio:    ratio,
			PositiveExamples: posExamples,
			NegativeExamples: negExamples,
		})
	}
	return out
}

func isPositive(lowerText string, r core.Review) bool {
	if countMatches(lowerText, positiveKeywords) > countMatches(lowerText, negativeKeywords) {
		return true
	}
	return r.HasRating() && r.Rating >= 4
}

// baseScore 的信号优先级：数值评分均值 > 类目分均值 > 全样本正负投票 > 50。
func baseScore(reviews []core.Review, cats []core.CategoryScore) float64 {
	var ratingSum float64
	var rated int
	for _, r := range reviews {
		if r.HasRating() {
			ratingSum += r.Rating
			rated++
		}
	}
	if rated > 0 {
		return ratingSum / float64(rated) / 5 * 100
	}

	if len(cats) > 0 {
		var sum float64
		for _, c := range cats {
			sum += float64(c.Score)
		}
		return sum / float64(len(cats))
	}

	var pos, neg int
	for _, r := range reviews {
		text := strings.ToLower(r.Text)
		p, n := countMatches(text, positiveKeywords), countMatches(text, negativeKeywords)
		if p > n {
			pos++
		} else if n > p {
			neg++
		}
	}
	if pos+neg == 0 {
		return 50
	}
	return float64(pos) / float64(pos+neg) * 100
}

// adjustForContext 应用同伴加减分与类目融合，每次融合后钳制。
func adjustForContext(score float64, category, companion string, cats []core.CategoryScore) float64 {
	switch companion {
	case core.CompanionPartner:
		score += companionPartnerDelta
	case core.CompanionFamily:
		score += companionFamilyDelta
	case core.CompanionColleagues:
		score += companionColleaguesDelta
	}
	score = core.ClampScore(score)

	if category == "food" {
		if q, ok := categoryScore(cats, CategoryQuality); ok {
			score = core.ClampScore(score*(1-foodQualityBlend) + q*foodQualityBlend)
		}
	}
	if companion == core.CompanionFamily {
		if c, ok := categoryScore(cats, CategoryCleanliness); ok {
			score = core.ClampScore(score*(1-familyCleanlinessBlend) + c*familyCleanlinessBlend)
		}
	}
	return score
}

func categoryScore(cats []core.CategoryScore, name string) (float64, bool) {
	for _, c := range cats {
		if c.Name == name {
			return float64(c.Score), true
		}
	}
	return 0, false
}

// buildWhy 生成一句话解释：总评档位 + 得分最高的至多 3 个类目。
func buildWhy(score int, cats []core.CategoryScore) string {
	var tier string
	switch {
	case score >= 80:
		tier = "reviews are generally positive"
	case score >= 60:
		tier = "reviews are mostly positive"
	default:
		tier = "reviews are mixed"
	}
	if len(cats) == 0 {
		return tier
	}

	sorted := make([]core.CategoryScore, len(cats))
	copy(sorted, cats)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	top := make([]string, 0, 3)
	for _, c := range sorted {
		if len(top) == 3 {
			break
		}
		top = append(top, c.Name)
	}
	return tier + "; strongest aspects: " + strings.Join(top, ", ")
}

// buildRisks 列出低分类目（<60，至多 2 个），样本不足时附带样本量提示。
func buildRisks(cats []core.CategoryScore, sampleSize int) string {
	sorted := make([]core.CategoryScore, len(cats))
	copy(sorted, cats)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

	weak := make([]string, 0, 2)
	for _, c := range sorted {
		if c.Score >= 60 || len(weak) == 2 {
			break
		}
		weak = append(weak, c.Name)
	}

	var parts []string
	if len(weak) > 0 {
		parts = append(parts, "weak aspects: "+strings.Join(weak, ", "))
	}
	if sampleSize < lowEvidenceThreshold {
		parts = append(parts, "based on only "+strconv.Itoa(sampleSize)+" reviews")
	}
	return strings.Join(parts, "; ")
}

func containsAny(lowerText string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			return true
		}
	}
	return false
}

func countMatches(lowerText string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			count++
		}
	}
	return count
}
