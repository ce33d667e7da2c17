package domain

import "time"

// RatingEntityType distinguishes the kinds of entities that receive a rating
type RatingEntityType string

const (
	RatingEntityStaff    RatingEntityType = "staff"
	RatingEntityBranch   RatingEntityType = "branch"
	RatingEntityBusiness RatingEntityType = "business"
)

// RatingEntity identifies a single rated entity
type RatingEntity struct {
	Type RatingEntityType
	ID   int64
}

// RatingConfig is the global, versioned rating configuration.
// Exactly one row is active at a time; the four weights must sum to 100.
type RatingConfig struct {
	ID int64

	ReviewsWeight      int
	ProductivityWeight int
	LoyaltyWeight      int
	DisciplineWeight   int

	WindowDays int

	ValidFrom time.Time
	IsActive  bool
	CreatedAt time.Time
}

// WeightsSum returns the sum of the four metric weights
func (c *RatingConfig) WeightsSum() int {
	return c.ReviewsWeight + c.ProductivityWeight + c.LoyaltyWeight + c.DisciplineWeight
}

// DayMetrics are the per-day normalized sub-scores (0-100 each) of an entity,
// supplied by metric collaborators and aggregated into the final rating.
type DayMetrics struct {
	Entity RatingEntity
	Date   time.Time

	Reviews      float64
	Productivity float64
	Loyalty      float64
	Discipline   float64
}

// WeightedScore computes the weighted score of the day metrics under the given config
func (m *DayMetrics) WeightedScore(cfg *RatingConfig) float64 {
	return (m.Reviews*float64(cfg.ReviewsWeight) +
		m.Productivity*float64(cfg.ProductivityWeight) +
		m.Loyalty*float64(cfg.LoyaltyWeight) +
		m.Discipline*float64(cfg.DisciplineWeight)) / 100
}

// RatingScore is the derived, periodically recomputed score of an entity.
// A pure function of the active config and the entity's metrics inside the window;
// recomputation is idempotent for the same (entity, config, date) triple.
type RatingScore struct {
	Entity       RatingEntity
	Score        float64
	MetricDate   time.Time
	ConfigID     int64
	CalculatedAt time.Time
}

// RecalcError is a per-entity failure recorded during batch rating recalculation
type RecalcError struct {
	Entity     RatingEntity
	MetricDate time.Time
	Message    string
	OccurredAt time.Time
}
