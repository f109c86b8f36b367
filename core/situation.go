package core

import "time"

// 季节常量。
const (
	SeasonSpring = "spring" // 3-5 月
	SeasonSummer = "summer" // 6-8 月
	SeasonFall   = "fall"   // 9-11 月
	SeasonWinter = "winter" // 12-2 月
)

// 事件常量；具体节日/节庆由调用方识别后写入，核心不内置节日日历。
const (
	EventWeekend  = "weekend"
	EventHoliday  = "holiday"
	EventFestival = "festival"
)

// Weather 是实时天气信号，由上游采集后注入。
type Weather struct {
	Condition   string  // sunny / cloudy / rain / snow ...
	Temperature float64 // 摄氏度
	IsBad       bool    // 雨雪大风等恶劣天气
}

// Situation 是本次请求的时间/季节/天气/事件情境。
// 时间必须由调用方显式传入（NewSituation），核心不读取墙钟，
// 保证相同输入永远给出相同的排序结果。
type Situation struct {
	Time      time.Time
	Hour      int // 0-23
	Minute    int // 当天第几分钟，营业时间判断使用
	DayOfWeek time.Weekday
	Month     time.Month
	Season    string

	Weather *Weather // 可选
	Event   string   // weekend / holiday / festival，"" 表示无
}

// NewSituation 从给定时间派生情境字段；周末自动识别为 weekend 事件。
func NewSituation(t time.Time) *Situation {
	s := &Situation{
		Time:      t,
		Hour:      t.Hour(),
		Minute:    t.Hour()*60 + t.Minute(),
		DayOfWeek: t.Weekday(),
		Month:     t.Month(),
		Season:    SeasonOf(t.Month()),
	}
	if s.IsWeekend() {
		s.Event = EventWeekend
	}
	return s
}

// SeasonOf 返回月份对应的季节。
func SeasonOf(m time.Month) string {
	switch {
	case m >= time.March && m <= time.May:
		return SeasonSpring
	case m >= time.June && m <= time.August:
		return SeasonSummer
	case m >= time.September && m <= time.November:
		return SeasonFall
	default:
		return SeasonWinter
	}
}

// IsWeekend 判断是否周末（周六/周日）。
func (s *Situation) IsWeekend() bool {
	return s.DayOfWeek == time.Saturday || s.DayOfWeek == time.Sunday
}

// IsLateNight 判断是否深夜时段（22:00 - 02:00）。
func (s *Situation) IsLateNight() bool {
	return s.Hour >= 22 || s.Hour < 2
}

// MealWindow 返回当前小时对应的用餐时段：
// 06-10 早餐、11-14 午餐、18-22 晚餐，其余返回 ""。
func (s *Situation) MealWindow() string {
	switch {
	case s.Hour >= 6 && s.Hour <= 10:
		return MealBreakfast
	case s.Hour >= 11 && s.Hour <= 14:
		return MealLunch
	case s.Hour >= 18 && s.Hour <= 22:
		return MealDinner
	default:
		return ""
	}
}
