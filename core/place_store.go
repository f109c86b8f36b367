package core

import "context"

// PlaceStore 是场所数据接入的领域接口（数据接入协作方）。
//
// 核心自己不发起任何查询：候选集由协作方按调用方的检索条件
// （半径/类目等，均在核心范围之外）给出，这里只约定取数形状。
//
// 实现：
//   - store.PlaceAdapter（基于 core.Store 的 JSON 记录）
//   - 上游数据库/搜索服务的适配器
type PlaceStore interface {
	// Name 返回数据源名称（用于解释标签/观测）
	Name() string

	// GetPlace 读取单个场所记录
	GetPlace(ctx context.Context, id string) (*Place, error)

	// BatchGetPlaces 批量读取场所记录；不存在的 ID 直接缺席，不报错
	BatchGetPlaces(ctx context.Context, ids []string) ([]*Place, error)
}

// ReviewStore 是评论数据接入的领域接口。
//
// 实现：
//   - store.ReviewAdapter（基于 core.Store 的 JSON 列表）
//   - 上游点评源的适配器
type ReviewStore interface {
	// Name 返回数据源名称
	Name() string

	// GetReviews 读取某场所的评论；limit <= 0 表示不限
	GetReviews(ctx context.Context, placeID string, limit int) ([]Review, error)
}
