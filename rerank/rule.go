package rerank

import (
	"context"
	"fmt"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/dsl"
	"github.com/rushteam/placekit/pkg/utils"
)

// BonusRule 是一条规则加分配置：CEL 表达式命中则加（减）分。
type BonusRule struct {
	// When 是 CEL 表达式，见 pkg/dsl；空表达式恒命中
	When string

	// Bonus 加分值，可为负
	Bonus float64

	// Tag 解释标签名；为空时使用表达式本身
	Tag string
}

// RuleNode 是规则加分 Node：内置情境规则（SituationNode）之外的
// 运营可配置加减分。规则在构建时编译一次，逐场所求值；
// 单条规则求值失败只跳过该规则，不中断链路。
type RuleNode struct {
	rules []compiledRule
}

type compiledRule struct {
	rule BonusRule
	eval *dsl.Eval
}

// NewRuleNode 编译规则集；任何一条表达式非法都返回错误（配置期失败，
// 而不是请求期静默失效）。
func NewRuleNode(rules []BonusRule) (*RuleNode, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		eval, err := dsl.NewEval(r.When)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.When, err)
		}
		compiled = append(compiled, compiledRule{rule: r, eval: eval})
	}
	return &RuleNode{rules: compiled}, nil
}

func (n *RuleNode) Name() string        { return "rerank.rule" }
func (n *RuleNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *RuleNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	if len(n.rules) == 0 || len(places) == 0 {
		return places, nil
	}

	out := make([]*core.Place, 0, len(places))
	for _, place := range places {
		if place == nil {
			continue
		}
		p := place.Clone()
		for _, cr := range n.rules {
			ok, err := cr.eval.Evaluate(p, rctx)
			if err != nil || !ok {
				continue
			}
			tag := cr.rule.Tag
			if tag == "" {
				tag = cr.rule.When
			}
			p.FinalScore = core.ClampScore(p.FinalScore + cr.rule.Bonus)
			p.PutDetail("rule:"+tag, cr.rule.Bonus)
			p.PutLabel("rule", utils.Label{Value: tag, Source: "rerank"})
		}
		out = append(out, p)
	}
	return out, nil
}
