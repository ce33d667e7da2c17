package domain

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours

	WeightsTotal  = 100
	MinWindowDays = 1
	MaxWindowDays = 365

	MinRecalcDaysBack = 1
	MaxRecalcDaysBack = 365

	DefaultBirthdayWindowDays = 3

	// Holds older than this are swept as stale (minutes)
	DefaultHoldTTLMinutes = 30

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveBookingStatuses статусы бронирований, занимающих слот.
// Используется при подсчете пересечений и в constraint на стороне БД.
var ActiveBookingStatuses = []BookingStatus{
	StatusHold,
	StatusConfirmed,
	StatusPaid,
	StatusNoShow,
}

// PromotionPrecedence порядок выбора акции, когда клиенту подходит несколько.
// Применяется ровно одна акция; реферальные и временные акции приоритетнее
// постоянных программ лояльности. Порядок меняется в одном месте.
var PromotionPrecedence = []PromotionType{
	PromotionReferralFree,
	PromotionReferralDiscount50,
	PromotionBirthdayDiscount,
	PromotionFirstVisitDiscount,
	PromotionFreeAfterNVisits,
}
