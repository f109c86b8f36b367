package core

import "time"

// Review 是单条评论，由数据接入方提供，核心只读不改。
// 除文本+元信息外没有额外身份；去重以文本为准（首次出现保留）。
type Review struct {
	Text   string
	Rating float64   // 1-5；0 表示未提供
	Date   time.Time // 零值表示未提供
	Author string
}

// HasRating 判断评论是否带有效评分。
func (r Review) HasRating() bool {
	return r.Rating >= 1 && r.Rating <= 5
}
