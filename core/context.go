package core

import "github.com/rushteam/placekit/pkg/utils"

// RecommendContext 承载用户/情境/请求级信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	UserID string
	Scene  string // 场景标识（feed / search / nearby ...）

	// User 是用户声明的情境画像
	User *UserProfile

	// Situation 是时间/季节/天气/事件情境；为 nil 时情境调整阶段跳过
	Situation *Situation

	// Labels 是请求级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数（latitude、longitude、radius、query 等）
	Params map[string]any
}

// GetUserProfile 获取用户画像；未设置时返回以 UserID 构造的空画像，
// 避免各 Node 重复判空。nil 接收者同样安全（rctx 本身是可选协作方）。
func (rctx *RecommendContext) GetUserProfile() *UserProfile {
	if rctx == nil {
		return NewUserProfile("")
	}
	if rctx.User != nil {
		return rctx.User
	}
	return NewUserProfile(rctx.UserID)
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
