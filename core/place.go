package core

import (
	"math"

	"github.com/rushteam/placekit/pkg/utils"
)

// 氛围取值（Atmosphere），空字符串表示未知。
const (
	AtmosphereQuiet    = "quiet"
	AtmosphereLively   = "lively"
	AtmosphereRomantic = "romantic"
	AtmosphereCasual   = "casual"
	AtmosphereFormal   = "formal"
)

// 便利设施（Amenities）的固定 key 集合。
// 相似度计算只统计双方都显式给出的 key；map 中不存在即视为“未知”而非“否”。
const (
	AmenityWheelchair  = "wheelchair_accessible"
	AmenityPetFriendly = "pet_friendly"
	AmenityKidFriendly = "kid_friendly"
	AmenityParking     = "parking"
	AmenityWiFi        = "wifi"
	AmenityVegetarian  = "vegetarian"
	AmenityVegan       = "vegan"
)

// AmenityKeys 返回固定顺序的设施 key 列表（顺序稳定，保证结果可复现）。
func AmenityKeys() []string {
	return []string{
		AmenityWheelchair,
		AmenityPetFriendly,
		AmenityKidFriendly,
		AmenityParking,
		AmenityWiFi,
		AmenityVegetarian,
		AmenityVegan,
	}
}

// Place 是推荐链路中的统一承载结构：一个候选场所（餐厅/咖啡馆等实体门店）
// 的画像特征、打分结果、元信息与解释标签。
//
// 打分字段语义：
//   - MatchScore: 质量打分阶段（评论分析）产出的 0-100 匹配分
//   - FinalScore: 经过置信度收缩、情境调整、多样性重排后的最终排序分
//
// 两个分数在每个阶段结束后都被钳制在 [0,100]；任何阶段都不得产出 NaN。
// 可选的标量属性（Rating/PriceLevel/Distance 等）用指针表达“未知”，
// 相似度计算依赖这种未知/存在的区分来重分配权重。
type Place struct {
	ID      string
	Name    string
	Address string
	Lat     float64
	Lng     float64

	// 质量信号
	Rating      *float64 // 0-5，nil 表示无评分
	ReviewCount *int     // nil 表示未知
	PriceLevel  *int     // 0-4，nil 表示未知

	// 情境属性
	CuisineType     string
	Atmosphere      string // quiet / lively / romantic / casual / formal，"" 表示未知
	OutdoorSeating  bool
	IndoorSeating   bool
	Hours           *OpeningHours
	ServesBreakfast bool
	ServesLunch     bool
	ServesDinner    bool

	// 设施/无障碍布尔集合，key 见 AmenityKeys；不存在的 key 表示未知
	Amenities map[string]bool

	// Distance 是本次请求中与用户的距离（公里），nil 表示未知
	Distance *float64

	// 打分结果
	MatchScore float64
	FinalScore float64

	// MatchDetails 是分项解释（类目分、加减分明细），key 由各阶段约定
	MatchDetails map[string]float64

	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewPlace(id string) *Place {
	return &Place{
		ID:           id,
		Amenities:    make(map[string]bool),
		MatchDetails: make(map[string]float64),
		Meta:         make(map[string]any),
		Labels:       make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (p *Place) PutLabel(key string, lbl utils.Label) {
	if p.Labels == nil {
		p.Labels = make(map[string]utils.Label)
	}
	if old, ok := p.Labels[key]; ok {
		p.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	p.Labels[key] = lbl
}

// PutDetail 写入分项解释。
func (p *Place) PutDetail(key string, v float64) {
	if p.MatchDetails == nil {
		p.MatchDetails = make(map[string]float64)
	}
	p.MatchDetails[key] = v
}

// Clone 返回 Place 的拷贝：标量字段与指针目标值复制，map 重新分配。
// 各阶段约定不原地修改输入，而是在拷贝上写结果。
func (p *Place) Clone() *Place {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Rating = clonePtr(p.Rating)
	cp.ReviewCount = clonePtr(p.ReviewCount)
	cp.PriceLevel = clonePtr(p.PriceLevel)
	cp.Distance = clonePtr(p.Distance)
	cp.Amenities = make(map[string]bool, len(p.Amenities))
	for k, v := range p.Amenities {
		cp.Amenities[k] = v
	}
	cp.MatchDetails = make(map[string]float64, len(p.MatchDetails))
	for k, v := range p.MatchDetails {
		cp.MatchDetails[k] = v
	}
	cp.Meta = make(map[string]any, len(p.Meta))
	for k, v := range p.Meta {
		cp.Meta[k] = v
	}
	cp.Labels = make(map[string]utils.Label, len(p.Labels))
	for k, v := range p.Labels {
		cp.Labels[k] = v
	}
	return &cp
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ClampScore 把分数钳制到 [0,100]；NaN 一律折算为 0。
// 所有阶段写回 MatchScore/FinalScore 前必须过这一层。
func ClampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Float64Ptr / IntPtr 是构造可选字段的便捷函数（测试与数据装配常用）。
func Float64Ptr(v float64) *float64 { return &v }
func IntPtr(v int) *int             { return &v }
