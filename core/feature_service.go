package core

import "context"

// FeatureService 是特征服务的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（feature）实现
//   - 领域层定义接口，基础设施层实现接口，避免循环依赖
//
// 使用场景：
//   - 打分前刷新场所的实时统计特征（rating / review_count / popularity）
//   - 请求级情境特征（时间、天气）不走 FeatureService，
//     而是通过 RecommendContext.Situation 显式传入
//
// 实现：
//   - feature.FeastService（Feast Feature Store）
//   - feature.StoreService（基于 core.KeyValueStore）
type FeatureService interface {
	// Name 返回特征服务名称（用于日志/监控）
	Name() string

	// GetPlaceFeatures 获取单个场所的数值特征
	GetPlaceFeatures(ctx context.Context, placeID string) (map[string]float64, error)

	// BatchGetPlaceFeatures 批量获取场所特征（推荐使用，减少网络往返）
	BatchGetPlaceFeatures(ctx context.Context, placeIDs []string) (map[string]map[string]float64, error)

	// Close 关闭特征服务，释放资源
	Close(ctx context.Context) error
}
