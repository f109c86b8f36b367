// Package feast 是 Feast Feature Store 的客户端封装，为场所实时统计特征
// （评分、评论量、人气）提供在线取数能力。
//
// 领域层只暴露 Client 接口；具体实现基于官方 Go SDK 的 gRPC 客户端。
// 特征服务是可选协作方：不可用时打分链路照常工作（feature.EnrichNode
// 直接跳过刷新）。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast 在线特征客户端接口。
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征。
	//
	// 参数：
	//   - Features: 特征名称列表，例如 ["venue_stats:rating", "venue_stats:review_count"]
	//   - EntityRows: 实体行，例如 [{"place_id": "p1"}, {"place_id": "p2"}]
	//
	// 返回的 FeatureVector 与实体行一一对应。
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表（featureView:featureName 形式）
	Features []string

	// EntityRows 实体行，例如 [{"place_id": "p1"}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，缺省用客户端配置）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应。
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 是单个实体的特征值集合。
type FeatureVector struct {
	// Values 特征值，key 为特征名称
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// ClientOption 客户端配置选项。
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置。
type ClientConfig struct {
	Endpoint string
	Project  string
	Timeout  time.Duration

	// Auth 认证信息（可选）
	Auth *AuthConfig
}

// AuthConfig 认证配置；Type 目前支持 "static"（静态 Token）。
type AuthConfig struct {
	Type  string
	Token string
}

// WithTimeout 配置选项：设置超时时间。
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAuth 配置选项：设置认证信息。
func WithAuth(auth *AuthConfig) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = auth
	}
}
