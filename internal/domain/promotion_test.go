package domain

import (
	"testing"
	"time"
)

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		percent float64
		want    float64
	}{
		{"half off", 2000, 50, 1000},
		{"free", 1500, 100, 0},
		{"no discount", 1200, 0, 1200},
		{"ten percent", 990, 10, 891},
		{"over hundred floors at zero", 100, 150, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyDiscount(tt.amount, tt.percent); got != tt.want {
				t.Errorf("ApplyDiscount(%.2f, %.2f) = %.2f, want %.2f", tt.amount, tt.percent, got, tt.want)
			}
		})
	}
}

func TestPromotion_IsCurrentlyActive(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	tests := []struct {
		name  string
		promo Promotion
		want  bool
	}{
		{"active without bounds", Promotion{IsActive: true}, true},
		{"inactive flag wins", Promotion{IsActive: false}, false},
		{"inside window", Promotion{IsActive: true, ValidFrom: &past, ValidTo: &future}, true},
		{"not started yet", Promotion{IsActive: true, ValidFrom: &future}, false},
		{"already expired", Promotion{IsActive: true, ValidTo: &past}, false},
		{"open ended from", Promotion{IsActive: true, ValidFrom: &past}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.promo.IsCurrentlyActive(now); got != tt.want {
				t.Errorf("IsCurrentlyActive() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestDayMetrics_WeightedScore(t *testing.T) {
	cfg := &RatingConfig{
		ReviewsWeight:      40,
		ProductivityWeight: 30,
		LoyaltyWeight:      20,
		DisciplineWeight:   10,
	}

	m := &DayMetrics{
		Reviews:      80,
		Productivity: 60,
		Loyalty:      100,
		Discipline:   50,
	}

	// 80*0.4 + 60*0.3 + 100*0.2 + 50*0.1 = 75
	if got := m.WeightedScore(cfg); got != 75 {
		t.Errorf("WeightedScore() = %.2f, want 75.00", got)
	}
}
