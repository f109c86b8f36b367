// Package rerank 实现重排阶段：情境调整、多样性排序、意外发现加分、
// 规则加分与 TopN 截断。
package rerank

import (
	"context"
	"strings"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pipeline"
	"github.com/rushteam/placekit/pkg/utils"
)

// 情境加减分常量。全部为简单相加，无交互项，最后统一钳制。
const (
	mealMatchBonus = 5 // 用餐时段与供餐标记匹配
	lateNightBonus = 3 // 深夜时段（22-02 点）

	weekendSocialBonus = 3 // 周末 + lively/casual
	weekdayCalmBonus   = 2 // 工作日 + quiet/formal

	warmSeasonOutdoorBonus = 4 // 春夏 + 露天座位
	coldSeasonIndoorBonus  = 2 // 秋冬 + 无露天座位

	sunnyOutdoorBonus = 5 // 晴天 >15°C + 露天座位
	hotIndoorBonus    = 3 // >30°C + 室内

	badWeatherOutdoorOnlyPenalty = -10 // 恶劣天气 + 仅露天
	coldOutdoorOnlyPenalty       = -8  // 低温（<10°C）+ 仅露天
	badWeatherMixedPenalty       = -3  // 恶劣天气 + 露天兼室内

	weekendEventBonus  = 4 // weekend 事件 + lively/casual
	holidayEventBonus  = 5 // holiday 事件 + romantic/formal
	festivalEventBonus = 6 // festival 事件 + lively
)

const sunnyOutdoorMinTemp = 15.0
const hotIndoorMinTemp = 30.0
const coldOutdoorMaxTemp = 10.0

// SituationNode 是情境调整 Node：按时间/季节/天气/事件对 FinalScore 做
// 有界加减分。一进一出、保序；每个场所的 FinalScore 重新钳制到 [0,100]。
// 情境缺失（rctx.Situation == nil）时原样透传。
type SituationNode struct{}

func (n *SituationNode) Name() string        { return "rerank.situation" }
func (n *SituationNode) Kind() pipeline.Kind { return pipeline.KindReRank }

func (n *SituationNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	if len(places) == 0 || rctx == nil || rctx.Situation == nil {
		return places, nil
	}
	s := rctx.Situation

	out := make([]*core.Place, 0, len(places))
	for _, place := range places {
		if place == nil {
			continue
		}
		p := place.Clone()
		delta, applied := situationDelta(p, s)
		if delta != 0 {
			p.FinalScore = core.ClampScore(p.FinalScore + delta)
			p.PutDetail("situation_bonus", delta)
			p.PutLabel("situation", utils.Label{
				Value:  strings.Join(applied, "|"),
				Source: "rerank",
			})
		}
		out = append(out, p)
	}
	return out, nil
}

// situationDelta 计算单个场所的情境加减分总和与命中的规则名。
func situationDelta(p *core.Place, s *core.Situation) (float64, []string) {
	var delta float64
	var applied []string
	add := func(v float64, tag string) {
		delta += v
		applied = append(applied, tag)
	}

	// 用餐时段
	switch s.MealWindow() {
	case core.MealBreakfast:
		if p.ServesBreakfast {
			add(mealMatchBonus, "breakfast")
		}
	case core.MealLunch:
		if p.ServesLunch {
			add(mealMatchBonus, "lunch")
		}
	case core.MealDinner:
		if p.ServesDinner {
			add(mealMatchBonus, "dinner")
		}
	}
	if s.IsLateNight() {
		add(lateNightBonus, "late_night")
	}

	// 星期节奏与氛围
	social := p.Atmosphere == core.AtmosphereLively || p.Atmosphere == core.AtmosphereCasual
	calm := p.Atmosphere == core.AtmosphereQuiet || p.Atmosphere == core.AtmosphereFormal
	if s.IsWeekend() && social {
		add(weekendSocialBonus, "weekend_social")
	}
	if !s.IsWeekend() && calm {
		add(weekdayCalmBonus, "weekday_calm")
	}

	// 季节与露天座位
	warm := s.Season == core.SeasonSpring || s.Season == core.SeasonSummer
	if warm && p.OutdoorSeating {
		add(warmSeasonOutdoorBonus, "warm_season_outdoor")
	}
	if !warm && !p.OutdoorSeating {
		add(coldSeasonIndoorBonus, "cold_season_indoor")
	}

	// 天气
	if w := s.Weather; w != nil {
		if w.Condition == "sunny" && w.Temperature > sunnyOutdoorMinTemp && p.OutdoorSeating {
			add(sunnyOutdoorBonus, "sunny_outdoor")
		}
		if w.Temperature > hotIndoorMinTemp && !p.OutdoorSeating {
			add(hotIndoorBonus, "hot_indoor")
		}

		outdoorOnly := p.OutdoorSeating && !p.IndoorSeating
		if outdoorOnly {
			if w.IsBad {
				add(badWeatherOutdoorOnlyPenalty, "bad_weather_outdoor_only")
			} else if w.Temperature < coldOutdoorMaxTemp {
				add(coldOutdoorOnlyPenalty, "cold_outdoor_only")
			}
		} else if w.IsBad && p.OutdoorSeating && p.IndoorSeating {
			add(badWeatherMixedPenalty, "bad_weather_mixed")
		}
	}

	// 事件
	switch s.Event {
	case core.EventWeekend:
		if social {
			add(weekendEventBonus, "event_weekend")
		}
	case core.EventHoliday:
		if p.Atmosphere == core.AtmosphereRomantic || p.Atmosphere == core.AtmosphereFormal {
			add(holidayEventBonus, "event_holiday")
		}
	case core.EventFestival:
		if p.Atmosphere == core.AtmosphereLively {
			add(festivalEventBonus, "event_festival")
		}
	}

	return delta, applied
}
