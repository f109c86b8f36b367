package filter

import (
	"context"

	"github.com/rushteam/placekit/core"
)

// BlacklistFilter 是黑名单过滤器，过滤掉黑名单中的场所
// （下架、违规、运营临时屏蔽）。
type BlacklistFilter struct {
	// PlaceIDs 是内存中的黑名单场所 ID 列表
	PlaceIDs []string

	// Store 用于从存储中读取黑名单（可选）
	Store BlacklistStore

	// Key 是 Store 中的黑名单 key（与 Store 配合使用）
	Key string
}

// BlacklistStore 是黑名单存储接口。
type BlacklistStore interface {
	// GetBlacklist 获取黑名单场所 ID 列表
	GetBlacklist(ctx context.Context, key string) ([]string, error)
}

func (f *BlacklistFilter) Name() string { return "filter.blacklist" }

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	place *core.Place,
) (bool, error) {
	if place == nil {
		return true, nil
	}

	for _, id := range f.PlaceIDs {
		if place.ID == id {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		blacklist, err := f.Store.GetBlacklist(ctx, f.Key)
		if err == nil {
			for _, id := range blacklist {
				if place.ID == id {
					return true, nil
				}
			}
		}
	}
	return false, nil
}
