package recall

import (
	"context"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/utils"
)

// StoreSource 是基于 PlaceStore 的召回源：按候选 ID 列表取出场所记录。
// 候选 ID 通常来自上游的地理/类目检索，经 rctx.Params 传入。
type StoreSource struct {
	Places core.PlaceStore

	// IDs 静态候选列表；为空时从 rctx.Params[ParamKey] 读取
	IDs []string

	// ParamKey 默认 "candidate_ids"
	ParamKey string
}

func (r *StoreSource) Name() string        { return "recall.store" }
func (r *StoreSource) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 让 StoreSource 也可以直接作为 Pipeline 首节点使用。
func (r *StoreSource) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Place,
) ([]*core.Place, error) {
	return r.Recall(ctx, rctx)
}

func (r *StoreSource) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Place, error) {
	if r.Places == nil {
		return nil, nil
	}

	ids := r.IDs
	if len(ids) == 0 && rctx != nil && rctx.Params != nil {
		key := r.ParamKey
		if key == "" {
			key = "candidate_ids"
		}
		switch v := rctx.Params[key].(type) {
		case []string:
			ids = v
		case []interface{}:
			for _, e := range v {
				if s, ok := e.(string); ok {
					ids = append(ids, s)
				}
			}
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	places, err := r.Places.BatchGetPlaces(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range places {
		if p != nil {
			p.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		}
	}
	return places, nil
}
