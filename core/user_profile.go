package core

// 同伴类型（Companion）。
const (
	CompanionAlone      = "alone"
	CompanionPartner    = "partner"
	CompanionFamily     = "family"
	CompanionFriends    = "friends"
	CompanionColleagues = "colleagues"
)

// 用餐时段（MealType）。
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
)

// UserProfile 是用户声明的情境画像，驱动整条 Pipeline 的匹配权重。
//
// 维度与作用：
//
//	维度           作用
//	Category       场所类目（food / cafe / bar ...），质量打分按类目调权
//	Companion      同伴（partner / family / colleagues ...），打分加减与类目融合
//	Budget         预算档位（0-4），过滤阶段使用
//	Atmosphere     期望氛围，情境调整阶段使用
//	MealType       用餐时段，情境调整阶段使用
//	SpecialNeeds   无障碍/设施需求（AmenityKeys 中的 key），过滤阶段使用
//	History/Likes/Dislikes  行为记录，多样性重排的新颖度/踩惩罚来源
//
// 全程只读；核心不回写画像。
type UserProfile struct {
	UserID string

	// 请求位置
	Lat float64
	Lng float64

	Category     string
	Companion    string
	Budget       *int   // 0-4，nil 表示不限
	Atmosphere   string // 期望氛围，"" 表示不限
	MealType     string // breakfast / lunch / dinner，"" 表示不限
	SpecialNeeds []string

	// 行为记录（由上游收集，核心只消费）
	History  []string // 看过的场所 ID
	Likes    []string
	Dislikes []string

	// Limit 期望返回的结果数
	Limit int
}

func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{UserID: userID}
}

// InHistory 判断场所是否出现在用户的浏览历史中。
func (p *UserProfile) InHistory(placeID string) bool {
	return containsID(p.History, placeID)
}

// Disliked 判断场所是否被用户踩过。
func (p *UserProfile) Disliked(placeID string) bool {
	return containsID(p.Dislikes, placeID)
}

// NeedsAmenity 判断用户是否声明了某项设施需求。
func (p *UserProfile) NeedsAmenity(key string) bool {
	return containsID(p.SpecialNeeds, key)
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
