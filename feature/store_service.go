package feature

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rushteam/placekit/core"
)

// StoreService 是基于 core.Store 的特征服务实现，采用适配器模式。
// 特征以 JSON 编码的 map[string]float64 形式存放，key 为前缀 + placeID。
//
// 适合把离线计算好的场所统计特征物化到 Redis 后在线读取。
type StoreService struct {
	store     core.Store
	keyPrefix string
}

var _ core.FeatureService = (*StoreService)(nil)

// NewStoreService 创建基于 Store 的特征服务。
// keyPrefix 为空时使用 "place:features:"。
func NewStoreService(store core.Store, keyPrefix string) *StoreService {
	if keyPrefix == "" {
		keyPrefix = "place:features:"
	}
	return &StoreService{
		store:     store,
		keyPrefix: keyPrefix,
	}
}

func (s *StoreService) Name() string {
	return fmt.Sprintf("feature.store.%s", s.store.Name())
}

func (s *StoreService) key(placeID string) string {
	return s.keyPrefix + placeID
}

// GetPlaceFeatures 获取单个场所的数值特征。
// key 不存在时返回空 map，不报错。
func (s *StoreService) GetPlaceFeatures(ctx context.Context, placeID string) (map[string]float64, error) {
	data, err := s.store.Get(ctx, s.key(placeID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return map[string]float64{}, nil
		}
		return nil, err
	}
	return decodeFeatures(data)
}

// BatchGetPlaceFeatures 批量获取场所特征。
// 解码失败或缺失的 ID 直接缺席，不中断整批。
func (s *StoreService) BatchGetPlaceFeatures(ctx context.Context, placeIDs []string) (map[string]map[string]float64, error) {
	if len(placeIDs) == 0 {
		return map[string]map[string]float64{}, nil
	}

	keys := make([]string, len(placeIDs))
	for i, id := range placeIDs {
		keys[i] = s.key(id)
	}

	kvs, err := s.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	result := make(map[string]map[string]float64, len(placeIDs))
	for i, id := range placeIDs {
		data, ok := kvs[keys[i]]
		if !ok {
			continue
		}
		features, err := decodeFeatures(data)
		if err != nil {
			continue
		}
		result[id] = features
	}
	return result, nil
}

// SetPlaceFeatures 写入场所特征（用于离线物化/测试装配）。
func (s *StoreService) SetPlaceFeatures(ctx context.Context, placeID string, features map[string]float64, ttl ...int) error {
	data, err := json.Marshal(features)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.key(placeID), data, ttl...)
}

// Close 关闭底层存储。
func (s *StoreService) Close(ctx context.Context) error {
	return s.store.Close()
}

func decodeFeatures(data []byte) (map[string]float64, error) {
	var features map[string]float64
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, fmt.Errorf("feature: decode failed: %w", err)
	}
	return features, nil
}
