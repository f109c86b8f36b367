// Package dsl 提供基于 CEL (Common Expression Language) 的规则表达式
// 解释器，用于规则加分（rerank.RuleNode）与规则过滤（filter.ExprFilter）。
//
// 表达式可访问三个变量：
//   - place: 场所字段，如 place.outdoor_seating、place.price_level、
//     place.final_score、place.amenities.parking
//   - label: 场所标签的 value 快捷访问，如 label.recall_source
//   - ctx:   请求情境，如 ctx.season == "summer"、ctx.hour >= 18、
//     ctx.companion == "family"、ctx.weather.is_bad
//
// 示例：
//   - `place.outdoor_seating && ctx.season == "summer"`
//   - `ctx.event == "festival" && place.atmosphere == "lively"`
//   - `label.recall_source.contains("hot")`
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/placekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("place", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("ctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Eval 是编译后的规则表达式，可对多个场所重复求值（编译一次）。
type Eval struct {
	expr string
	prg  cel.Program
}

// NewEval 编译一个规则表达式。空表达式合法，恒为 true。
func NewEval(expr string) (*Eval, error) {
	e := &Eval{expr: expr}
	if expr == "" {
		return e, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	e.prg = prg
	return e, nil
}

// Evaluate 对单个场所求值，返回布尔结果。
// 访问不存在的 key 会报错；用 `label.key != null` 判断存在性。
func (e *Eval) Evaluate(place *core.Place, rctx *core.RecommendContext) (bool, error) {
	if e.prg == nil {
		return true, nil
	}

	out, _, err := e.prg.Eval(buildInput(place, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 把场所与情境展开为 CEL 可访问的 map。
func buildInput(place *core.Place, rctx *core.RecommendContext) map[string]interface{} {
	placeMap := map[string]interface{}{
		"id":               "",
		"name":             "",
		"final_score":      0.0,
		"match_score":      0.0,
		"rating":           0.0,
		"review_count":     0,
		"price_level":      -1,
		"cuisine":          "",
		"atmosphere":       "",
		"outdoor_seating":  false,
		"indoor_seating":   false,
		"serves_breakfast": false,
		"serves_lunch":     false,
		"serves_dinner":    false,
		"distance":         -1.0,
		"amenities":        map[string]interface{}{},
	}
	labelMap := map[string]interface{}{}
	if place != nil {
		placeMap["id"] = place.ID
		placeMap["name"] = place.Name
		placeMap["final_score"] = place.FinalScore
		placeMap["match_score"] = place.MatchScore
		if place.Rating != nil {
			placeMap["rating"] = *place.Rating
		}
		if place.ReviewCount != nil {
			placeMap["review_count"] = *place.ReviewCount
		}
		if place.PriceLevel != nil {
			placeMap["price_level"] = *place.PriceLevel
		}
		placeMap["cuisine"] = place.CuisineType
		placeMap["atmosphere"] = place.Atmosphere
		placeMap["outdoor_seating"] = place.OutdoorSeating
		placeMap["indoor_seating"] = place.IndoorSeating
		placeMap["serves_breakfast"] = place.ServesBreakfast
		placeMap["serves_lunch"] = place.ServesLunch
		placeMap["serves_dinner"] = place.ServesDinner
		if place.Distance != nil {
			placeMap["distance"] = *place.Distance
		}
		amenities := make(map[string]interface{}, len(place.Amenities))
		for k, v := range place.Amenities {
			amenities[k] = v
		}
		placeMap["amenities"] = amenities
		for k, lbl := range place.Labels {
			labelMap[k] = lbl.Value
		}
	}

	ctxMap := map[string]interface{}{
		"user_id":   "",
		"scene":     "",
		"hour":      0,
		"season":    "",
		"weekend":   false,
		"event":     "",
		"category":  "",
		"companion": "",
		"meal_type": "",
		"weather": map[string]interface{}{
			"condition":   "",
			"temperature": 0.0,
			"is_bad":      false,
		},
	}
	if rctx != nil {
		ctxMap["user_id"] = rctx.UserID
		ctxMap["scene"] = rctx.Scene
		if s := rctx.Situation; s != nil {
			ctxMap["hour"] = s.Hour
			ctxMap["season"] = s.Season
			ctxMap["weekend"] = s.IsWeekend()
			ctxMap["event"] = s.Event
			if s.Weather != nil {
				ctxMap["weather"] = map[string]interface{}{
					"condition":   s.Weather.Condition,
					"temperature": s.Weather.Temperature,
					"is_bad":      s.Weather.IsBad,
				}
			}
		}
		if u := rctx.User; u != nil {
			ctxMap["category"] = u.Category
			ctxMap["companion"] = u.Companion
			ctxMap["meal_type"] = u.MealType
		}
	}

	return map[string]interface{}{
		"place": placeMap,
		"label": labelMap,
		"ctx":   ctxMap,
	}
}
