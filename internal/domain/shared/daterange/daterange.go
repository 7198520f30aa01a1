package daterange

import "time"

// DateRange represents a half-open stay interval [checkIn, checkOut).
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// IsZero reports whether either endpoint is missing.
func (dr DateRange) IsZero() bool {
	return dr.CheckIn.IsZero() || dr.CheckOut.IsZero()
}

// Nights returns the calendar-day difference, clamped at zero so a reversed
// range never yields a negative stay length.
func (dr DateRange) Nights() int {
	if dr.IsZero() {
		return 0
	}
	in := dateOnly(dr.CheckIn)
	out := dateOnly(dr.CheckOut)
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

// CountWeekdays counts the days inside [checkIn, checkOut) whose weekday is
// one of the provided values.
func (dr DateRange) CountWeekdays(weekdays ...time.Weekday) int {
	if dr.IsZero() {
		return 0
	}
	wanted := make(map[time.Weekday]bool, len(weekdays))
	for _, wd := range weekdays {
		wanted[wd] = true
	}
	count := 0
	end := dateOnly(dr.CheckOut)
	for day := dateOnly(dr.CheckIn); day.Before(end); day = day.AddDate(0, 0, 1) {
		if wanted[day.Weekday()] {
			count++
		}
	}
	return count
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
