package core

import (
	"testing"
	"time"
)

func TestIsOpenAt(t *testing.T) {
	h := &OpeningHours{
		Periods: []OpenPeriod{
			{Day: time.Monday, Open: 9 * 60, Close: 18 * 60},
			{Day: time.Friday, Open: 22 * 60, Close: 2 * 60}, // 跨夜到周六凌晨
		},
	}

	tests := []struct {
		name   string
		day    time.Weekday
		minute int
		want   bool
	}{
		{"monday during hours", time.Monday, 12 * 60, true},
		{"monday opening minute", time.Monday, 9 * 60, true},
		{"monday closing minute excluded", time.Monday, 18 * 60, false},
		{"monday before open", time.Monday, 8 * 60, false},
		{"tuesday closed", time.Tuesday, 12 * 60, false},
		{"friday late night", time.Friday, 23 * 60, true},
		{"saturday after midnight", time.Saturday, 1 * 60, true},
		{"saturday past overnight close", time.Saturday, 3 * 60, false},
		{"friday before overnight open", time.Friday, 21 * 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.IsOpenAt(tt.day, tt.minute); got != tt.want {
				t.Errorf("IsOpenAt(%v, %d) = %v, want %v", tt.day, tt.minute, got, tt.want)
			}
		})
	}
}

func TestIsOpenAtNoData(t *testing.T) {
	var h *OpeningHours
	if h.IsOpenAt(time.Monday, 600) {
		t.Error("nil hours should report closed")
	}
	empty := &OpeningHours{}
	if empty.IsOpenAt(time.Monday, 600) {
		t.Error("empty hours should report closed")
	}
}
