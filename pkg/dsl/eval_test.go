package dsl

import (
	"testing"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/pkg/utils"
)

func testPlace() *core.Place {
	p := core.NewPlace("p1")
	p.Name = "Garden Cafe"
	p.FinalScore = 82
	p.PriceLevel = core.IntPtr(2)
	p.CuisineType = "italian"
	p.Atmosphere = core.AtmosphereRomantic
	p.OutdoorSeating = true
	p.Amenities[core.AmenityParking] = true
	p.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
	return p
}

func testContext() *core.RecommendContext {
	return &core.RecommendContext{
		UserID: "u1",
		Situation: &core.Situation{
			Hour:    19,
			Season:  core.SeasonSummer,
			Weather: &core.Weather{Condition: "sunny", Temperature: 24},
		},
		User: &core.UserProfile{Companion: "date"},
	}
}

func TestEvalExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"empty expression is true", "", true},
		{"place field", `place.outdoor_seating && place.price_level <= 2`, true},
		{"place field false", `place.cuisine == "japanese"`, false},
		{"final score", `place.final_score >= 80.0`, true},
		{"amenity access", `place.amenities.parking`, true},
		{"label value", `label.recall_source.contains("hot")`, true},
		{"situation", `ctx.season == "summer" && ctx.hour >= 18`, true},
		{"weather", `ctx.weather.temperature > 20.0 && !ctx.weather.is_bad`, true},
		{"companion", `ctx.companion == "date" && place.atmosphere == "romantic"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEval(tt.expr)
			if err != nil {
				t.Fatalf("NewEval(%q) error = %v", tt.expr, err)
			}
			got, err := e.Evaluate(testPlace(), testContext())
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalDefaultsWhenContextMissing(t *testing.T) {
	e, err := NewEval(`ctx.season == "" && place.price_level == -1`)
	if err != nil {
		t.Fatalf("NewEval() error = %v", err)
	}
	got, err := e.Evaluate(core.NewPlace("p1"), nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !got {
		t.Error("missing context/price should fall back to defaults")
	}
}

func TestEvalCompileError(t *testing.T) {
	if _, err := NewEval(`place.price_level >=`); err == nil {
		t.Error("NewEval() accepted a malformed expression")
	}
}

func TestEvalNonBooleanResult(t *testing.T) {
	e, err := NewEval(`place.name`)
	if err != nil {
		t.Fatalf("NewEval() error = %v", err)
	}
	if _, err := e.Evaluate(testPlace(), nil); err == nil {
		t.Error("Evaluate() accepted a non-boolean result")
	}
}
