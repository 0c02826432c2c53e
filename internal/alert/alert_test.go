package alert

import (
	"testing"
	"time"

	"github.com/TSCosta20/housing-project/internal/models"
)

func eventAgo(now time.Time, days int) models.DealEvent {
	return models.DealEvent{TriggeredAt: now.Add(-time.Duration(days) * 24 * time.Hour)}
}

func TestShouldTriggerP10(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		isDeal   bool
		previous []models.DealEvent
		want     bool
	}{
		{name: "not a deal", isDeal: false, want: false},
		{name: "no previous events", isDeal: true, want: true},
		{name: "event inside cooldown", isDeal: true, previous: []models.DealEvent{eventAgo(now, 10)}, want: false},
		{name: "event past cooldown", isDeal: true, previous: []models.DealEvent{eventAgo(now, 31)}, want: true},
		{name: "exactly at cutoff stays quiet", isDeal: true, previous: []models.DealEvent{eventAgo(now, 30)}, want: false},
		{
			name:     "any recent event blocks",
			isDeal:   true,
			previous: []models.DealEvent{eventAgo(now, 45), eventAgo(now, 10)},
			want:     false,
		},
		{
			name:     "all events past cooldown",
			isDeal:   true,
			previous: []models.DealEvent{eventAgo(now, 45), eventAgo(now, 31)},
			want:     true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ShouldTriggerP10(tc.isDeal, tc.previous, now, DefaultCooldownDays)
			if got != tc.want {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestShouldTriggerPriceDrop(t *testing.T) {
	cases := []struct {
		name     string
		previous float64
		current  float64
		want     bool
	}{
		{name: "5.5 percent drop", previous: 200000, current: 189000, want: true},
		{name: "4 percent drop", previous: 200000, current: 192000, want: false},
		{name: "exactly 5 percent", previous: 200000, current: 190000, want: true},
		{name: "price increase", previous: 200000, current: 210000, want: false},
		{name: "zero previous price", previous: 0, current: 100000, want: false},
		{name: "negative previous price", previous: -1, current: 100000, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ShouldTriggerPriceDrop(tc.previous, tc.current, DefaultDropThresholdPct)
			if got != tc.want {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
		})
	}
}
