package domain

import "time"

// PromotionType distinguishes the supported branch promotion kinds
type PromotionType string

const (
	PromotionFreeAfterNVisits   PromotionType = "free_after_n_visits"
	PromotionReferralFree       PromotionType = "referral_free"
	PromotionReferralDiscount50 PromotionType = "referral_discount_50"
	PromotionBirthdayDiscount   PromotionType = "birthday_discount"
	PromotionFirstVisitDiscount PromotionType = "first_visit_discount"
)

// PromotionParams holds type-specific parameters.
// Exactly one variant is non-nil and matches Promotion.Type;
// referral promotions carry a fixed discount and need no params.
type PromotionParams struct {
	FreeAfterNVisits *FreeAfterNVisitsParams
	Birthday         *BirthdayDiscountParams
	FirstVisit       *FirstVisitDiscountParams
}

// FreeAfterNVisitsParams parameters of the loyalty promotion
type FreeAfterNVisitsParams struct {
	VisitCount int
}

// BirthdayDiscountParams parameters of the birthday promotion
type BirthdayDiscountParams struct {
	DiscountPercent float64
	WindowDays      int
}

// FirstVisitDiscountParams parameters of the first-visit promotion
type FirstVisitDiscountParams struct {
	DiscountPercent float64
}

// Promotion is a branch-scoped promotion definition.
// Read-only for the booking flow; managed by branch managers elsewhere.
type Promotion struct {
	ID       int64
	BranchID int64
	Type     PromotionType
	Params   PromotionParams

	ValidFrom *time.Time
	ValidTo   *time.Time
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCurrentlyActive returns true if the promotion may be applied on the given date.
// Open-ended validity bounds are allowed.
func (p *Promotion) IsCurrentlyActive(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidTo != nil && now.After(*p.ValidTo) {
		return false
	}
	return true
}

// ClientPromotionUsage tracks how many times a client used a promotion
type ClientPromotionUsage struct {
	ClientID    int64
	PromotionID int64
	UsageCount  int
	LastUsedAt  time.Time
}

// ApplyDiscount computes the discounted amount for a percentage discount.
// The result is floored at zero.
func ApplyDiscount(originalAmount, discountPercent float64) (finalAmount float64) {
	discount := originalAmount * discountPercent / 100
	final := originalAmount - discount
	if final < 0 {
		return 0
	}
	return final
}
