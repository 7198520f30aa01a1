package pricing

import (
	"time"

	"surfhouse/internal/domain/shared/daterange"
	"surfhouse/internal/domain/shared/money"
)

// SurfLessonRate picks the volume-discount rate for a booking's total lesson
// count. The whole booking is billed at the single bracket rate; lessons are
// never split across brackets. Non-positive totals fall back to the first
// bracket so callers gating on quantity never crash the schedule.
func (c Config) SurfLessonRate(totalLessons int) money.Money {
	if len(c.LessonTiers) == 0 {
		return money.BRL(0)
	}
	if totalLessons <= 0 {
		return c.LessonTiers[0].Rate
	}
	for _, tier := range c.LessonTiers {
		if tier.UpTo == -1 || totalLessons <= tier.UpTo {
			return tier.Rate
		}
	}
	return c.LessonTiers[len(c.LessonTiers)-1].Rate
}

// FreeYogaDays counts the Wednesdays and Fridays inside the stay, check-in
// inclusive and check-out exclusive. Guests attend those classes for free.
func FreeYogaDays(stay daterange.DateRange) int {
	return stay.CountWeekdays(time.Wednesday, time.Friday)
}

// SplitRetainedPending divides a quote into the portion committed at booking
// time (services plus fees) and the portion settled at the property
// (accommodation plus breakfast).
func SplitRetainedPending(services, fee, accommodation, breakfast money.Money) (retained, pending money.Money) {
	retained, _ = services.Add(fee)
	pending, _ = accommodation.Add(breakfast)
	return retained, pending
}
