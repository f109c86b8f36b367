package recall

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/utils"
)

// 合并策略。
const (
	MergeFirst    = "first"    // 按 ID 去重，保留先到的（默认）
	MergeUnion    = "union"    // 按 ID 去重，字段更全/分数更高的版本胜出
	MergePriority = "priority" // 按 Sources 顺序的优先级排序后去重
)

// Fanout 是组合召回 Node：并发执行多个召回源并合并结果。
// 单个源失败/超时返回空集，不中断其他源；合并顺序只由源的声明顺序
// 与各源内部顺序决定，与并发调度无关（结果按源下标收集）。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示不限制）
	MergeStrategy string        // first / union / priority
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Place,
) ([]*core.Place, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	perSource := make([][]*core.Place, len(n.Sources))
	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)

	var sem chan struct{}
	if n.MaxConcurrent > 0 {
		sem = make(chan struct{}, n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		idx, s := i, src
		eg.Go(func() error {
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			places, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 单源失败按空集处理
				return nil
			}
			for _, p := range places {
				if p == nil {
					continue
				}
				p.PutLabel("recall_source", utils.Label{Value: s.Name(), Source: "recall"})
				p.PutLabel("recall_priority", utils.Label{Value: strconv.Itoa(idx), Source: "recall"})
			}
			mu.Lock()
			perSource[idx] = places
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 按源声明顺序拼接，保证确定性
	all := make([]*core.Place, 0)
	for _, places := range perSource {
		for _, p := range places {
			if p != nil {
				all = append(all, p)
			}
		}
	}

	switch n.MergeStrategy {
	case MergeUnion:
		return n.mergeUnion(all), nil
	case MergePriority:
		return n.mergeByPriority(all), nil
	default:
		return n.mergeFirst(all), nil
	}
}

// mergeFirst 按 ID 去重，保留第一个出现的；后到版本的标签并入。
func (n *Fanout) mergeFirst(all []*core.Place) []*core.Place {
	if !n.Dedup {
		return all
	}
	seen := make(map[string]*core.Place, len(all))
	out := make([]*core.Place, 0, len(all))
	for _, p := range all {
		if old, ok := seen[p.ID]; ok {
			for k, v := range p.Labels {
				old.PutLabel(k, v)
			}
			continue
		}
		seen[p.ID] = p
		out = append(out, p)
	}
	return out
}

// mergeUnion 按 ID 去重，保留 FinalScore 更高的版本（字段数据更全的
// 源通常给出更高初始分），标签合并。
func (n *Fanout) mergeUnion(all []*core.Place) []*core.Place {
	seen := make(map[string]int, len(all))
	out := make([]*core.Place, 0, len(all))
	for _, p := range all {
		if at, ok := seen[p.ID]; ok {
			if p.FinalScore > out[at].FinalScore {
				for k, v := range out[at].Labels {
					p.PutLabel(k, v)
				}
				out[at] = p
			} else {
				for k, v := range p.Labels {
					out[at].PutLabel(k, v)
				}
			}
			continue
		}
		seen[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}

// mergeByPriority 按来源优先级（Sources 下标）稳定排序后去重保首个。
func (n *Fanout) mergeByPriority(all []*core.Place) []*core.Place {
	sorted := make([]*core.Place, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityOf(sorted[i]) < priorityOf(sorted[j])
	})
	return (&Fanout{Dedup: true}).mergeFirst(sorted)
}

func priorityOf(p *core.Place) int {
	if lbl, ok := p.Labels["recall_priority"]; ok {
		if v, err := strconv.Atoi(lbl.Value); err == nil {
			return v
		}
	}
	return int(^uint(0) >> 1)
}
