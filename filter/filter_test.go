package filter

import (
	"context"
	"testing"
	"time"

	"github.com/rushteam/placekit/core"
)

func TestBudgetFilter(t *testing.T) {
	f := &BudgetFilter{}

	tests := []struct {
		name       string
		budget     *int
		priceLevel *int
		want       bool
	}{
		{"within budget", core.IntPtr(2), core.IntPtr(2), false},
		{"over budget", core.IntPtr(2), core.IntPtr(3), true},
		{"cheap place", core.IntPtr(3), core.IntPtr(0), false},
		{"no budget set", nil, core.IntPtr(4), false},
		{"unknown price kept", core.IntPtr(1), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := core.NewPlace("a")
			p.PriceLevel = tt.priceLevel
			rctx := &core.RecommendContext{
				User: &core.UserProfile{UserID: "u1", Budget: tt.budget},
			}
			got, err := f.ShouldFilter(context.Background(), rctx, p)
			if err != nil {
				t.Fatalf("ShouldFilter() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeedsFilter(t *testing.T) {
	rctx := &core.RecommendContext{
		User: &core.UserProfile{
			UserID:       "u1",
			SpecialNeeds: []string{core.AmenityWheelchair},
		},
	}

	t.Run("explicit false filtered", func(t *testing.T) {
		p := core.NewPlace("a")
		p.Amenities[core.AmenityWheelchair] = false
		got, _ := (&NeedsFilter{}).ShouldFilter(context.Background(), rctx, p)
		if !got {
			t.Error("place without required amenity should be filtered")
		}
	})

	t.Run("explicit true kept", func(t *testing.T) {
		p := core.NewPlace("a")
		p.Amenities[core.AmenityWheelchair] = true
		got, _ := (&NeedsFilter{}).ShouldFilter(context.Background(), rctx, p)
		if got {
			t.Error("place with required amenity should be kept")
		}
	})

	t.Run("unknown kept by default", func(t *testing.T) {
		p := core.NewPlace("a")
		got, _ := (&NeedsFilter{}).ShouldFilter(context.Background(), rctx, p)
		if got {
			t.Error("unknown amenity should be kept in lenient mode")
		}
	})

	t.Run("unknown filtered in strict mode", func(t *testing.T) {
		p := core.NewPlace("a")
		got, _ := (&NeedsFilter{Strict: true}).ShouldFilter(context.Background(), rctx, p)
		if !got {
			t.Error("unknown amenity should be filtered in strict mode")
		}
	})
}

func TestOpenNowFilter(t *testing.T) {
	hours := &core.OpeningHours{
		Periods: []core.OpenPeriod{
			{Day: time.Tuesday, Open: 9 * 60, Close: 18 * 60},
		},
	}

	f := &OpenNowFilter{}

	t.Run("open kept", func(t *testing.T) {
		p := core.NewPlace("a")
		p.Hours = hours
		rctx := &core.RecommendContext{
			Situation: &core.Situation{DayOfWeek: time.Tuesday, Minute: 12 * 60},
		}
		got, _ := f.ShouldFilter(context.Background(), rctx, p)
		if got {
			t.Error("open place should be kept")
		}
	})

	t.Run("closed filtered", func(t *testing.T) {
		p := core.NewPlace("a")
		p.Hours = hours
		rctx := &core.RecommendContext{
			Situation: &core.Situation{DayOfWeek: time.Tuesday, Minute: 20 * 60},
		}
		got, _ := f.ShouldFilter(context.Background(), rctx, p)
		if !got {
			t.Error("closed place should be filtered")
		}
	})

	t.Run("no hours kept", func(t *testing.T) {
		p := core.NewPlace("a")
		rctx := &core.RecommendContext{
			Situation: &core.Situation{DayOfWeek: time.Tuesday, Minute: 20 * 60},
		}
		got, _ := f.ShouldFilter(context.Background(), rctx, p)
		if got {
			t.Error("place without hours data should be kept")
		}
	})

	t.Run("no situation kept", func(t *testing.T) {
		p := core.NewPlace("a")
		p.Hours = hours
		got, _ := f.ShouldFilter(context.Background(), &core.RecommendContext{}, p)
		if got {
			t.Error("missing situation should not filter")
		}
	})
}

func TestBlacklistFilter(t *testing.T) {
	f := &BlacklistFilter{PlaceIDs: []string{"banned"}}

	banned, _ := f.ShouldFilter(context.Background(), nil, core.NewPlace("banned"))
	if !banned {
		t.Error("blacklisted place should be filtered")
	}
	kept, _ := f.ShouldFilter(context.Background(), nil, core.NewPlace("fine"))
	if kept {
		t.Error("non-blacklisted place should be kept")
	}
}

func TestExprFilter(t *testing.T) {
	f, err := NewExprFilter(`place.price_level >= 3 && ctx.companion == "colleagues"`)
	if err != nil {
		t.Fatalf("NewExprFilter() error = %v", err)
	}

	rctx := &core.RecommendContext{
		User: &core.UserProfile{UserID: "u1", Companion: core.CompanionColleagues},
	}

	pricey := core.NewPlace("pricey")
	pricey.PriceLevel = core.IntPtr(3)
	got, err := f.ShouldFilter(context.Background(), rctx, pricey)
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if !got {
		t.Error("matching expression should filter")
	}

	cheap := core.NewPlace("cheap")
	cheap.PriceLevel = core.IntPtr(1)
	got, err = f.ShouldFilter(context.Background(), rctx, cheap)
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if got {
		t.Error("non-matching expression should keep")
	}
}

func TestFilterNodeCombinesFilters(t *testing.T) {
	node := &FilterNode{Filters: []Filter{
		&BudgetFilter{},
		&BlacklistFilter{PlaceIDs: []string{"banned"}},
	}}

	rctx := &core.RecommendContext{
		User: &core.UserProfile{UserID: "u1", Budget: core.IntPtr(2)},
	}

	cheap := core.NewPlace("cheap")
	cheap.PriceLevel = core.IntPtr(1)
	pricey := core.NewPlace("pricey")
	pricey.PriceLevel = core.IntPtr(4)
	banned := core.NewPlace("banned")

	out, err := node.Process(context.Background(), rctx, []*core.Place{cheap, pricey, banned})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "cheap" {
		t.Fatalf("expected only cheap to survive, got %d places", len(out))
	}
	if _, ok := banned.Labels["filtered"]; !ok {
		t.Error("filtered place should carry filtered label")
	}
}
