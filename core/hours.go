package core

import "time"

// OpeningHours 是营业时间结构：按天给出若干开放区间。
// 区间用“当天第几分钟”表达（0-1439）；Close < Open 表示跨夜营业。
type OpeningHours struct {
	Periods []OpenPeriod
}

// OpenPeriod 是单个开放区间。
type OpenPeriod struct {
	Day   time.Weekday
	Open  int // 开门时刻，分钟（如 9:30 -> 570）
	Close int // 关门时刻，分钟；小于 Open 表示次日凌晨
}

// IsOpenAt 判断给定星期几的某分钟是否在营业时间内。
// 跨夜区间（如周五 22:00 - 02:00）同时覆盖周五深夜与周六凌晨。
func (h *OpeningHours) IsOpenAt(day time.Weekday, minute int) bool {
	if h == nil || len(h.Periods) == 0 {
		return false
	}
	prev := (day + 6) % 7
	for _, p := range h.Periods {
		if p.Close >= p.Open {
			if p.Day == day && minute >= p.Open && minute < p.Close {
				return true
			}
			continue
		}
		// 跨夜：当天 Open 之后，或次日 Close 之前
		if p.Day == day && minute >= p.Open {
			return true
		}
		if p.Day == prev && minute < p.Close {
			return true
		}
	}
	return false
}
