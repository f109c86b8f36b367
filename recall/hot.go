package recall

import (
	"context"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/utils"
)

// Hot 是热门召回源：从有序集合（按人气分）取 TopK 场所。
// 冷启动/兜底场景常用：新用户没有历史时也能给出合理候选。
type Hot struct {
	// Store 人气榜所在的 KV 存储；Key 是有序集合的 key
	Store core.KeyValueStore
	Key   string

	// Places 用于把 ID 物化成完整记录；为 nil 时只携带 ID
	Places core.PlaceStore

	// TopK 取榜单前多少名，默认 20
	TopK int

	// IDs 静态热门列表（测试/原型用，优先级低于 Store）
	IDs []string
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Place,
) ([]*core.Place, error) {
	return r.Recall(ctx, rctx)
}

func (r *Hot) Recall(ctx context.Context, _ *core.RecommendContext) ([]*core.Place, error) {
	topK := r.TopK
	if topK <= 0 {
		topK = 20
	}

	ids := r.IDs
	if r.Store != nil && r.Key != "" {
		ranked, err := r.Store.ZRange(ctx, r.Key, 0, int64(topK)-1)
		if err == nil && len(ranked) > 0 {
			ids = ranked
		}
	}
	if len(ids) > topK {
		ids = ids[:topK]
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var places []*core.Place
	if r.Places != nil {
		fetched, err := r.Places.BatchGetPlaces(ctx, ids)
		if err == nil {
			places = fetched
		}
	}
	if places == nil {
		places = make([]*core.Place, 0, len(ids))
		for _, id := range ids {
			places = append(places, core.NewPlace(id))
		}
	}

	for _, p := range places {
		if p != nil {
			p.PutLabel("recall_source", utils.Label{Value: r.Name(), Source: "recall"})
		}
	}
	return places, nil
}
