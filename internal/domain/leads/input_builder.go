package leads

import (
	"fmt"
	"time"

	"surfhouse/internal/domain/pricing"
	"surfhouse/internal/domain/shared/daterange"
)

const isoDate = "2006-01-02"

// legacyRoomLabels maps free-text room values from older lead records to
// config room-category ids. Values outside this table pass through unchanged;
// the engine then tries an id match and a display-name match, and prices no
// accommodation when neither hits.
var legacyRoomLabels = map[string]string{
	"Private: Single": "private_single",
	"Private: Double": "private_double",
	"Private: Triple": "private_triple",
	"Shared: Mixed":   "shared_mixed",
	"Shared: Female":  "shared_female",
	"Suite Master":    "suite_master",
	"Camping":         "camping",
}

// ResolveRoomCategory translates a stored room value into an engine reference.
func ResolveRoomCategory(raw string) string {
	if id, ok := legacyRoomLabels[raw]; ok {
		return id
	}
	return raw
}

// StayRange parses the lead's ISO stay dates. Both dates absent is not an
// error: it yields a zero range and the quote short-circuits to zero.
// A malformed date is the one hard failure in the mapping layer.
func (l *Lead) StayRange() (daterange.DateRange, error) {
	if l.CheckIn == "" || l.CheckOut == "" {
		return daterange.DateRange{}, nil
	}
	checkIn, err := time.Parse(isoDate, l.CheckIn)
	if err != nil {
		return daterange.DateRange{}, fmt.Errorf("%w: check-in %q", ErrMalformedDates, l.CheckIn)
	}
	checkOut, err := time.Parse(isoDate, l.CheckOut)
	if err != nil {
		return daterange.DateRange{}, fmt.Errorf("%w: check-out %q", ErrMalformedDates, l.CheckOut)
	}
	return daterange.DateRange{CheckIn: checkIn.UTC(), CheckOut: checkOut.UTC()}, nil
}

// BuildPricingInput normalizes the persisted record into the engine's input:
// same-concept counters are combined, boolean daily flags become day counts
// once the stay length is known, and legacy room labels are resolved.
//
// When either stay date is missing the input carries only the head count, so
// the engine returns a zero-valued result with an empty breakdown instead of
// guessing at a partial price.
func (l *Lead) BuildPricingInput() (pricing.Input, error) {
	people := l.People
	if people < 1 {
		people = 1
	}

	stay, err := l.StayRange()
	if err != nil {
		return pricing.Input{}, err
	}
	if stay.IsZero() {
		return pricing.Input{People: people}, nil
	}

	nights := stay.Nights()
	breakfastDays := 0
	if l.Breakfast {
		breakfastDays = nights
	}
	boardRentalDays := 0
	if l.BoardRental {
		boardRentalDays = nights
	}

	transferTotal := l.TransferPackage
	if l.Transfer {
		transferTotal++
	}
	if l.TransferExtra {
		transferTotal++
	}

	extras := map[pricing.ItemKey]int{
		pricing.ItemSurfLessons:       l.SurfLessons,
		pricing.ItemYogaLessons:       l.YogaLessons,
		pricing.ItemSurfSkate:         l.SurfSkate,
		pricing.ItemVideoAnalysis:     l.VideoAnalysisExtra + l.VideoAnalysisPackage,
		pricing.ItemMassage:           l.Massage,
		pricing.ItemSurfGuide:         l.SurfGuide,
		pricing.ItemTransfer:          transferTotal,
		pricing.ItemHike:              l.Hike,
		pricing.ItemRioCityTour:       l.RioCityTour,
		pricing.ItemCariocaExperience: l.CariocaExperience,
	}

	return pricing.Input{
		Stay:            stay,
		People:          people,
		RoomCategory:    ResolveRoomCategory(l.RoomCategory),
		PackageID:       l.PackageID,
		Extras:          extras,
		BreakfastDays:   breakfastDays,
		BoardRentalDays: boardRentalDays,
	}, nil
}
