package analyze

// 评论类目与情感词表。匹配规则是大小写不敏感的子串包含，不做词干化；
// 一条评论可以同时命中多个类目，也可以一个都不命中。

// 七个固定评论类目。
const (
	CategoryService     = "service"
	CategoryPrice       = "price"
	CategoryQuality     = "quality"
	CategoryAmbience    = "ambience"
	CategoryLocation    = "location"
	CategoryCleanliness = "cleanliness"
	CategorySpeed       = "speed"
)

// categoryKeywords 决定评论归属：文本包含任一关键词即属于该类目。
var categoryKeywords = map[string][]string{
	CategoryService: {
		"service", "staff", "waiter", "waitress", "server",
		"friendly", "rude", "attentive", "welcoming",
	},
	CategoryPrice: {
		"price", "expensive", "cheap", "value", "worth",
		"overpriced", "affordable", "cost", "pricey",
	},
	CategoryQuality: {
		"delicious", "tasty", "flavor", "flavour", "fresh",
		"bland", "quality", "dish", "portion", "stale",
	},
	CategoryAmbience: {
		"ambience", "ambiance", "atmosphere", "cozy", "decor",
		"music", "vibe", "romantic", "noisy", "interior",
	},
	CategoryLocation: {
		"location", "convenient", "view", "nearby", "central",
		"neighborhood", "street",
	},
	CategoryCleanliness: {
		"clean", "dirty", "hygiene", "spotless", "tidy",
		"restroom", "messy", "sanitary",
	},
	CategorySpeed: {
		"quick", "fast", "slow", "wait", "prompt", "speedy",
		"queue", "lined up",
	},
}

// categoryOrder 固定类目遍历顺序，保证输出可复现。
var categoryOrder = []string{
	CategoryService,
	CategoryPrice,
	CategoryQuality,
	CategoryAmbience,
	CategoryLocation,
	CategoryCleanliness,
	CategorySpeed,
}

// 全局情感词表：类目内外的正负判定共用一套。
var positiveKeywords = []string{
	"great", "good", "excellent", "amazing", "delicious", "friendly",
	"clean", "fresh", "perfect", "love", "wonderful", "fantastic",
	"attentive", "cozy", "quick", "worth", "affordable", "spotless",
	"best", "recommend", "pleasant",
}

var negativeKeywords = []string{
	"bad", "terrible", "awful", "rude", "dirty", "slow", "bland",
	"overpriced", "worst", "disappointing", "noisy", "messy", "stale",
	"horrible", "poor", "cramped", "unfriendly", "never again",
}
