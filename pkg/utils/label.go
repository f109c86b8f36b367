package utils

// Label 是推荐链路中的可解释性载体：每一个影响排序的决策（召回来源、打分依据、
// 情境加减分、过滤原因）都以 Label 的形式挂在 Place 上，全链路透传。
// Value 与 Source 的语义由业务自定义；placekit 只提供标准化的合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // recall / filter / rank / rerank / feature ...
}

// MergeLabel 用于合并同名 Label，遵循“保留历史、可追踪”的默认策略。
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
//
// 如果需要覆盖/优先级等更复杂的合并规则，可以在上层封装自己的 merge 策略。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}
	merged := Label{
		Value:  existing.Value + "|" + incoming.Value,
		Source: existing.Source,
	}
	if incoming.Source != "" && incoming.Source != existing.Source {
		if merged.Source == "" {
			merged.Source = incoming.Source
		} else {
			merged.Source = merged.Source + "," + incoming.Source
		}
	}
	return merged
}
