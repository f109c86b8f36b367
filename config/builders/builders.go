// Package builders 注册内置 Node 的配置构建器。
// 只需匿名导入本包即可让 config.DefaultFactory 认识所有内置 Node 类型。
package builders

import (
	"fmt"
	"time"

	"github.com/rushteam/placekit/config"
	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/feature"
	"github.com/rushteam/placekit/filter"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/conv"
	"github.com/rushteam/placekit/rank"
	"github.com/rushteam/placekit/recall"
	"github.com/rushteam/placekit/rerank"
	"github.com/rushteam/placekit/sample"
)

func init() {
	config.Register("recall.fanout", BuildFanoutNode)
	config.Register("recall.hot", BuildHotNode)
	config.Register("recall.store", BuildStoreSourceNode)
	config.Register("filter", BuildFilterNode)
	config.Register("feature.enrich", BuildFeatureEnrichNode)
	config.Register("rank.quality", BuildQualityNode)
	config.Register("rank.confidence", BuildConfidenceNode)
	config.Register("rerank.situation", BuildSituationNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("rerank.serendipity", BuildSerendipityNode)
	config.Register("rerank.rule", BuildRuleNode)
	config.Register("rerank.topn", BuildTopNNode)
}

func BuildFanoutNode(cfg map[string]interface{}) (pipeline.Node, error) {
	sourcesConfig, ok := cfg["sources"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}
	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]interface{})
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet(sourceMap, "type", "")
		switch sourceType {
		case "hot":
			hot := &recall.Hot{
				IDs: conv.SliceAnyToString(sourceMap["ids"]),
				Key: conv.ConfigGet(sourceMap, "key", ""),
			}
			if k := conv.ConfigGetInt64(sourceMap, "top_k", 0); k > 0 {
				hot.TopK = int(k)
			}
			sources = append(sources, hot)
		case "store":
			sources = append(sources, &recall.StoreSource{
				IDs:      conv.SliceAnyToString(sourceMap["ids"]),
				ParamKey: conv.ConfigGet(sourceMap, "param_key", ""),
			})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}
	fanout := &recall.Fanout{
		Sources:       sources,
		Dedup:         conv.ConfigGet(cfg, "dedup", true),
		MergeStrategy: conv.ConfigGet(cfg, "merge_strategy", ""),
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		fanout.MaxConcurrent = int(n)
	}
	return fanout, nil
}

func BuildHotNode(cfg map[string]interface{}) (pipeline.Node, error) {
	hot := &recall.Hot{
		IDs: conv.SliceAnyToString(cfg["ids"]),
		Key: conv.ConfigGet(cfg, "key", ""),
	}
	if k := conv.ConfigGetInt64(cfg, "top_k", 0); k > 0 {
		hot.TopK = int(k)
	}
	return hot, nil
}

func BuildStoreSourceNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &recall.StoreSource{
		IDs:      conv.SliceAnyToString(cfg["ids"]),
		ParamKey: conv.ConfigGet(cfg, "param_key", ""),
	}, nil
}

func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "budget":
			filters = append(filters, &filter.BudgetFilter{})
		case "needs":
			filters = append(filters, &filter.NeedsFilter{
				Strict: conv.ConfigGet(filterMap, "strict", false),
			})
		case "open_now":
			filters = append(filters, &filter.OpenNowFilter{})
		case "blacklist":
			filters = append(filters, &filter.BlacklistFilter{
				PlaceIDs: conv.SliceAnyToString(filterMap["place_ids"]),
				Key:      conv.ConfigGet(filterMap, "key", ""),
			})
		case "expr":
			expr := conv.ConfigGet(filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("expr filter: expr not found")
			}
			ef, err := filter.NewExprFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("expr filter: %w", err)
			}
			filters = append(filters, ef)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

// BuildFeatureEnrichNode 从配置构建特征补充节点。
// FeatureService 无法从纯配置构建（需要客户端连接），由调用方
// 在 Build 后注入；未注入时节点原样透传。
func BuildFeatureEnrichNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &feature.EnrichNode{
		Overwrite: conv.ConfigGet(cfg, "overwrite", false),
	}, nil
}

func BuildQualityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	node := &rank.QualityNode{
		Sampler: sample.Sampler{
			MinCount:    int(conv.ConfigGetInt64(cfg, "sample_min_count", 0)),
			MaxCount:    int(conv.ConfigGetInt64(cfg, "sample_max_count", 0)),
			TargetCount: int(conv.ConfigGetInt64(cfg, "sample_target_count", 0)),
			FixedSize:   conv.ConfigGet(cfg, "sample_fixed_size", false),
		},
		FetchLimit: int(conv.ConfigGetInt64(cfg, "fetch_limit", 0)),
	}
	if n := conv.ConfigGetInt64(cfg, "max_concurrent", 0); n > 0 {
		node.MaxConcurrent = int(n)
	}
	if sec := conv.ConfigGetInt64(cfg, "timeout", 0); sec > 0 {
		node.Timeout = time.Duration(sec) * time.Second
	}
	return node, nil
}

func BuildConfidenceNode(cfg map[string]interface{}) (pipeline.Node, error) {
	opts := rank.ConfidenceOptions{
		Method:             rank.Method(conv.ConfigGet(cfg, "method", "")),
		ConfidenceConstant: conv.ConfigGetFloat64(cfg, "confidence_constant", 0),
		MinReviews:         int(conv.ConfigGetInt64(cfg, "min_reviews", 0)),
		MaxReviews:         int(conv.ConfigGetInt64(cfg, "max_reviews", 0)),
	}
	// 0 是合法先验，只在配置里出现时才设置
	if _, ok := cfg["prior_mean"]; ok {
		opts.PriorMean = core.Float64Ptr(conv.ConfigGetFloat64(cfg, "prior_mean", 50))
	}
	return &rank.ConfidenceNode{Options: opts}, nil
}

func BuildSituationNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.SituationNode{}, nil
}

func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	opts := rerank.DiversityOptions{
		History:        conv.SliceAnyToString(cfg["history"]),
		Dislikes:       conv.SliceAnyToString(cfg["dislikes"]),
		NoveltyBonus:   conv.ConfigGetFloat64(cfg, "novelty_bonus", 0),
		DisableNovelty: conv.ConfigGet(cfg, "disable_novelty", false),
	}
	// 两者都允许配置为 0，只在配置里出现时才设置
	if _, ok := cfg["diversity_bonus"]; ok {
		opts.DiversityBonus = core.Float64Ptr(conv.ConfigGetFloat64(cfg, "diversity_bonus", rerank.DefaultDiversityBonus))
	}
	if _, ok := cfg["min_diversity"]; ok {
		opts.MinDiversity = core.Float64Ptr(conv.ConfigGetFloat64(cfg, "min_diversity", rerank.DefaultMinDiversity))
	}
	return &rerank.DiversityNode{Options: opts}, nil
}

func BuildSerendipityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.SerendipityNode{
		History: conv.SliceAnyToString(cfg["history"]),
	}, nil
}

func BuildRuleNode(cfg map[string]interface{}) (pipeline.Node, error) {
	rulesConfig, ok := cfg["rules"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("rules not found or invalid")
	}
	rules := make([]rerank.BonusRule, 0, len(rulesConfig))
	for _, rc := range rulesConfig {
		ruleMap, ok := rc.(map[string]interface{})
		if !ok {
			continue
		}
		rules = append(rules, rerank.BonusRule{
			When:  conv.ConfigGet(ruleMap, "when", ""),
			Bonus: conv.ConfigGetFloat64(ruleMap, "bonus", 0),
			Tag:   conv.ConfigGet(ruleMap, "tag", ""),
		})
	}
	return rerank.NewRuleNode(rules)
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{
		N: int(conv.ConfigGetInt64(cfg, "n", 0)),
	}, nil
}
