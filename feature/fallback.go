package feature

import (
	"context"

	"github.com/rushteam/placekit/core"
)

// Fallback 是主备降级的特征服务包装。
// 主服务（如 FeastService）不可用时自动切到备用服务（如 StoreService），
// 两者都失败才返回错误。
type Fallback struct {
	Primary core.FeatureService
	Backup  core.FeatureService
}

var _ core.FeatureService = (*Fallback)(nil)

// NewFallback 创建主备降级特征服务。
func NewFallback(primary, backup core.FeatureService) *Fallback {
	return &Fallback{Primary: primary, Backup: backup}
}

func (f *Fallback) Name() string { return "feature.fallback" }

func (f *Fallback) GetPlaceFeatures(ctx context.Context, placeID string) (map[string]float64, error) {
	if f.Primary != nil {
		features, err := f.Primary.GetPlaceFeatures(ctx, placeID)
		if err == nil {
			return features, nil
		}
	}
	if f.Backup != nil {
		return f.Backup.GetPlaceFeatures(ctx, placeID)
	}
	return nil, ErrFeatureUnavailable
}

func (f *Fallback) BatchGetPlaceFeatures(ctx context.Context, placeIDs []string) (map[string]map[string]float64, error) {
	if f.Primary != nil {
		features, err := f.Primary.BatchGetPlaceFeatures(ctx, placeIDs)
		if err == nil {
			return features, nil
		}
	}
	if f.Backup != nil {
		return f.Backup.BatchGetPlaceFeatures(ctx, placeIDs)
	}
	return nil, ErrFeatureUnavailable
}

// Close 依次关闭主备服务，返回最后一个错误。
func (f *Fallback) Close(ctx context.Context) error {
	var lastErr error
	if f.Primary != nil {
		if err := f.Primary.Close(ctx); err != nil {
			lastErr = err
		}
	}
	if f.Backup != nil {
		if err := f.Backup.Close(ctx); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
