package daterange

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name string
		dr   DateRange
		want int
	}{
		{"five nights", DateRange{date(2026, 3, 2), date(2026, 3, 7)}, 5},
		{"one night", DateRange{date(2026, 3, 2), date(2026, 3, 3)}, 1},
		{"same day", DateRange{date(2026, 3, 2), date(2026, 3, 2)}, 0},
		{"reversed clamps to zero", DateRange{date(2026, 3, 7), date(2026, 3, 2)}, 0},
		{"zero range", DateRange{}, 0},
		{"month boundary", DateRange{date(2026, 2, 27), date(2026, 3, 2)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dr.Nights(); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNightsIgnoresTimeOfDay(t *testing.T) {
	dr := DateRange{
		CheckIn:  time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 7, 8, 0, 0, 0, time.UTC),
	}
	if got := dr.Nights(); got != 5 {
		t.Errorf("Nights() = %d, want 5", got)
	}
}

func TestCountWeekdays(t *testing.T) {
	// 2026-03-02 is a Monday.
	tests := []struct {
		name     string
		dr       DateRange
		weekdays []time.Weekday
		want     int
	}{
		{"one week, wed+fri", DateRange{date(2026, 3, 2), date(2026, 3, 9)}, []time.Weekday{time.Wednesday, time.Friday}, 2},
		{"checkout day excluded", DateRange{date(2026, 3, 2), date(2026, 3, 4)}, []time.Weekday{time.Wednesday}, 0},
		{"checkin day counted", DateRange{date(2026, 3, 4), date(2026, 3, 5)}, []time.Weekday{time.Wednesday}, 1},
		{"two weeks", DateRange{date(2026, 3, 2), date(2026, 3, 16)}, []time.Weekday{time.Wednesday, time.Friday}, 4},
		{"zero range", DateRange{}, []time.Weekday{time.Wednesday}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dr.CountWeekdays(tt.weekdays...); got != tt.want {
				t.Errorf("CountWeekdays() = %d, want %d", got, tt.want)
			}
		})
	}
}

