// Package feature 提供特征服务的基础设施实现。
//
// 领域层（core.FeatureService）定义接口，本包提供多种实现：
//   - FeastService：基于 Feast Feature Store（gRPC）
//   - StoreService：基于 core.Store（Redis/Memory）的 JSON 记录
//   - Fallback：主备降级包装
//
// 特征统一为 map[string]float64，调用方（feature.EnrichNode）
// 负责把数值特征回填到 Place 的统计字段上。
package feature

import (
	"context"
	"fmt"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/feast"
)

// 常用场所统计特征名（Feast 的 featureView:featureName 形式）。
const (
	FeatureRating      = "venue_stats:rating"
	FeatureReviewCount = "venue_stats:review_count"
	FeaturePopularity  = "venue_stats:popularity"
)

// ErrFeatureUnavailable 特征服务不可用。
var ErrFeatureUnavailable = core.NewDomainError(core.ModuleFeature, core.ErrorCodeUnavailable, "feature: service unavailable")

// FeastService 是基于 Feast Feature Store 的特征服务实现。
//
// 实体键固定为 place_id，特征列表可配置，默认取场所统计三件套
// （rating / review_count / popularity）。
type FeastService struct {
	// Client Feast 客户端（feast.NewGrpcClient 创建）
	Client feast.Client

	// Features 要获取的特征列表；为空时使用默认统计特征
	Features []string

	// EntityKey 实体键名；为空时使用 "place_id"
	EntityKey string
}

var _ core.FeatureService = (*FeastService)(nil)

// NewFeastService 创建 Feast 特征服务。
func NewFeastService(client feast.Client, features ...string) *FeastService {
	if len(features) == 0 {
		features = []string{FeatureRating, FeatureReviewCount, FeaturePopularity}
	}
	return &FeastService{
		Client:   client,
		Features: features,
	}
}

func (s *FeastService) Name() string { return "feature.feast" }

func (s *FeastService) entityKey() string {
	if s.EntityKey != "" {
		return s.EntityKey
	}
	return "place_id"
}

// GetPlaceFeatures 获取单个场所的数值特征。
func (s *FeastService) GetPlaceFeatures(ctx context.Context, placeID string) (map[string]float64, error) {
	all, err := s.BatchGetPlaceFeatures(ctx, []string{placeID})
	if err != nil {
		return nil, err
	}
	features, ok := all[placeID]
	if !ok {
		return map[string]float64{}, nil
	}
	return features, nil
}

// BatchGetPlaceFeatures 批量获取场所特征。
//
// 非数值特征会被丢弃；Feast 返回缺失的特征不会出现在结果 map 中。
func (s *FeastService) BatchGetPlaceFeatures(ctx context.Context, placeIDs []string) (map[string]map[string]float64, error) {
	if s.Client == nil {
		return nil, ErrFeatureUnavailable
	}
	if len(placeIDs) == 0 {
		return map[string]map[string]float64{}, nil
	}

	entityRows := make([]map[string]interface{}, len(placeIDs))
	for i, id := range placeIDs {
		entityRows[i] = map[string]interface{}{s.entityKey(): id}
	}

	resp, err := s.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   s.Features,
		EntityRows: entityRows,
	})
	if err != nil {
		return nil, fmt.Errorf("feature: feast query failed: %w", err)
	}

	result := make(map[string]map[string]float64, len(placeIDs))
	for i, vector := range resp.FeatureVectors {
		if i >= len(placeIDs) {
			break
		}
		features := make(map[string]float64, len(vector.Values))
		for name, value := range vector.Values {
			if fv, ok := toFloat64(value); ok {
				features[name] = fv
			}
		}
		result[placeIDs[i]] = features
	}
	return result, nil
}

// Close 关闭底层 Feast 连接。
func (s *FeastService) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Close()
}

// toFloat64 尝试把任意值转换为 float64。
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
