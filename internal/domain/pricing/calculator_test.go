package pricing

import (
	"reflect"
	"testing"
	"time"

	"surfhouse/internal/domain/shared/daterange"
	"surfhouse/internal/domain/shared/money"
)

func testConfig() Config {
	return Config{
		RoomCategories: []RoomCategory{
			{ID: "private_double", Name: "Private: Double", PricePerNight: money.BRL(15000), Billing: BillingPerRoom},
			{ID: "shared_mixed", Name: "Shared: Mixed", PricePerNight: money.BRL(8500), Billing: BillingPerPerson},
			{ID: "suite_master", Name: "Suite Master", PricePerNight: money.BRL(0), Billing: BillingPerRoom},
		},
		Packages: []Package{
			{
				ID:         "pacote_completo",
				Name:       "Pacote Completo",
				FixedPrice: money.BRL(50000),
				Included: map[ItemKey]int{
					ItemSurfLessons: 5,
					ItemBreakfast:   1,
					ItemBoardRental: 1,
					ItemTransfer:    1,
				},
			},
		},
		Items: map[ItemKey]ItemPrice{
			ItemBreakfast:         {Key: ItemBreakfast, Name: "Breakfast", Price: money.BRL(2500), Basis: BillingPerPerson},
			ItemBoardRental:       {Key: ItemBoardRental, Name: "Board rental", Price: money.BRL(4000), Basis: BillingPerPerson},
			ItemSurfLessons:       {Key: ItemSurfLessons, Name: "Surf lessons", Price: money.BRL(18000), Basis: BillingPerPerson},
			ItemYogaLessons:       {Key: ItemYogaLessons, Name: "Yoga lessons", Price: money.BRL(4500), Basis: BillingPerPerson},
			ItemSurfSkate:         {Key: ItemSurfSkate, Name: "Surf skate", Price: money.BRL(6000), Basis: BillingPerPerson},
			ItemVideoAnalysis:     {Key: ItemVideoAnalysis, Name: "Video analysis", Price: money.BRL(9000), Basis: BillingPerReservation},
			ItemMassage:           {Key: ItemMassage, Name: "Massage", Price: money.BRL(12000), Basis: BillingPerPerson},
			ItemSurfGuide:         {Key: ItemSurfGuide, Name: "Surf guide", Price: money.BRL(15000), Basis: BillingPerPerson},
			ItemTransfer:          {Key: ItemTransfer, Name: "Transfer", Price: money.BRL(22000), Basis: BillingPerReservation},
			ItemHike:              {Key: ItemHike, Name: "Hike", Price: money.BRL(9500), Basis: BillingPerPerson},
			ItemRioCityTour:       {Key: ItemRioCityTour, Name: "Rio city tour", Price: money.BRL(26000), Basis: BillingPerPerson},
			ItemCariocaExperience: {Key: ItemCariocaExperience, Name: "Carioca experience", Price: money.BRL(18000), Basis: BillingPerPerson},
		},
		LessonTiers: testTiers(),
	}
}

// fiveNightStay runs Monday 2026-03-02 to Saturday 2026-03-07.
func fiveNightStay() daterange.DateRange {
	return daterange.DateRange{
		CheckIn:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
	}
}

func TestCalculateAccommodationOnly(t *testing.T) {
	input := Input{
		Stay:         fiveNightStay(),
		People:       2,
		RoomCategory: "Private: Double",
	}
	result := Calculate(input, testConfig())

	if result.Nights != 5 {
		t.Fatalf("nights = %d, want 5", result.Nights)
	}
	if result.AccommodationCost.Amount != 75000 {
		t.Errorf("accommodation = %d, want 75000", result.AccommodationCost.Amount)
	}
	if result.TotalCost.Amount != 75000 {
		t.Errorf("total = %d, want 75000", result.TotalCost.Amount)
	}
	if result.Breakdown.Accommodation == nil {
		t.Fatal("missing accommodation line")
	}
	if result.Breakdown.Accommodation.Quantity != 5 {
		t.Errorf("accommodation quantity = %d, want 5", result.Breakdown.Accommodation.Quantity)
	}
}

func TestCalculatePerPersonRoomBilling(t *testing.T) {
	input := Input{
		Stay:         fiveNightStay(),
		People:       3,
		RoomCategory: "shared_mixed",
	}
	result := Calculate(input, testConfig())
	// 85.00 x 5 nights x 3 people
	if result.AccommodationCost.Amount != 127500 {
		t.Errorf("accommodation = %d, want 127500", result.AccommodationCost.Amount)
	}
}

func TestCalculateSurfLessonVolumeDiscount(t *testing.T) {
	input := Input{
		Stay:         fiveNightStay(),
		People:       2,
		RoomCategory: "private_double",
		Extras:       map[ItemKey]int{ItemSurfLessons: 5},
	}
	result := Calculate(input, testConfig())

	var surfLine *Line
	for i := range result.Breakdown.FixedItems {
		if result.Breakdown.FixedItems[i].Key == ItemSurfLessons {
			surfLine = &result.Breakdown.FixedItems[i]
		}
	}
	if surfLine == nil {
		t.Fatal("missing surf lesson line")
	}
	if surfLine.Quantity != 10 {
		t.Errorf("quantity = %d, want 10", surfLine.Quantity)
	}
	if surfLine.UnitPrice.Amount != 14000 {
		t.Errorf("unit price = %d, want 14000", surfLine.UnitPrice.Amount)
	}
	if surfLine.Cost.Amount != 140000 {
		t.Errorf("cost = %d, want 140000", surfLine.Cost.Amount)
	}
	if result.TotalCost.Amount != 215000 {
		t.Errorf("total = %d, want 215000", result.TotalCost.Amount)
	}
}

func TestCalculatePackageReplacesAccommodation(t *testing.T) {
	input := Input{
		Stay:         fiveNightStay(),
		People:       2,
		RoomCategory: "private_double",
		PackageID:    "pacote_completo",
	}
	result := Calculate(input, testConfig())

	if result.AccommodationCost.Amount != 0 {
		t.Errorf("accommodation = %d, want 0 with package selected", result.AccommodationCost.Amount)
	}
	if result.PackageCost.Amount != 50000 {
		t.Errorf("package cost = %d, want 50000", result.PackageCost.Amount)
	}
	if result.Breakdown.Accommodation != nil {
		t.Error("accommodation line should be absent when a package is selected")
	}
	if result.Breakdown.Package == nil {
		t.Fatal("missing package line")
	}
}

func TestCalculatePackageSurfLessonRemainder(t *testing.T) {
	input := Input{
		Stay:      fiveNightStay(),
		People:    2,
		PackageID: "pacote_completo",
		Extras:    map[ItemKey]int{ItemSurfLessons: 7},
	}
	result := Calculate(input, testConfig())

	var surfLine *Line
	for i := range result.Breakdown.FixedItems {
		if result.Breakdown.FixedItems[i].Key == ItemSurfLessons {
			surfLine = &result.Breakdown.FixedItems[i]
		}
	}
	if surfLine == nil {
		t.Fatal("missing surf lesson line")
	}
	// 5 of 7 per-person lessons are bundled, so 2x2 = 4 lessons are charged.
	// The discount bracket still comes from the 14 requested lessons.
	if surfLine.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", surfLine.Quantity)
	}
	if surfLine.UnitPrice.Amount != 14000 {
		t.Errorf("unit price = %d, want 14000", surfLine.UnitPrice.Amount)
	}
	if surfLine.Cost.Amount != 56000 {
		t.Errorf("cost = %d, want 56000", surfLine.Cost.Amount)
	}
	if want := int64(50000 + 56000); result.TotalCost.Amount != want {
		t.Errorf("total = %d, want %d", result.TotalCost.Amount, want)
	}
}

func TestCalculateRequestedWithinPackageQuota(t *testing.T) {
	input := Input{
		Stay:      fiveNightStay(),
		People:    2,
		PackageID: "pacote_completo",
		Extras:    map[ItemKey]int{ItemSurfLessons: 3},
	}
	result := Calculate(input, testConfig())

	var surfLine *Line
	for i := range result.Breakdown.FixedItems {
		if result.Breakdown.FixedItems[i].Key == ItemSurfLessons {
			surfLine = &result.Breakdown.FixedItems[i]
		}
	}
	if surfLine == nil {
		t.Fatal("covered item should still appear in the breakdown")
	}
	if surfLine.Cost.Amount != 0 {
		t.Errorf("cost = %d, want 0 when fully covered", surfLine.Cost.Amount)
	}
	if surfLine.Note != NoteIncludedInPackage {
		t.Errorf("note = %q, want %q", surfLine.Note, NoteIncludedInPackage)
	}
	if result.TotalCost.Amount != 50000 {
		t.Errorf("total = %d, want package price only", result.TotalCost.Amount)
	}
}

func TestCalculateEmptyInput(t *testing.T) {
	result := Calculate(Input{People: 2}, testConfig())

	if result.Nights != 0 {
		t.Errorf("nights = %d, want 0", result.Nights)
	}
	if result.TotalCost.Amount != 0 {
		t.Errorf("total = %d, want 0", result.TotalCost.Amount)
	}
	if len(result.Breakdown.DailyItems) != 0 || len(result.Breakdown.FixedItems) != 0 {
		t.Error("breakdown should be empty for an empty input")
	}
	if result.Breakdown.Accommodation != nil || result.Breakdown.Package != nil {
		t.Error("no accommodation or package line expected")
	}
}

func TestCalculateManualPricingSentinel(t *testing.T) {
	input := Input{
		Stay:         fiveNightStay(),
		People:       2,
		RoomCategory: "suite_master",
	}
	result := Calculate(input, testConfig())

	if result.AccommodationCost.Amount != 0 {
		t.Errorf("accommodation = %d, want 0 for manual room", result.AccommodationCost.Amount)
	}
	if result.Breakdown.Accommodation == nil {
		t.Fatal("manual room should still emit a line")
	}
	if result.Breakdown.Accommodation.Note != NoteManualPricing {
		t.Errorf("note = %q, want %q", result.Breakdown.Accommodation.Note, NoteManualPricing)
	}
}

func TestCalculateUnknownRoomCategory(t *testing.T) {
	input := Input{
		Stay:         fiveNightStay(),
		People:       2,
		RoomCategory: "Igloo Deluxe",
	}
	result := Calculate(input, testConfig())
	if result.TotalCost.Amount != 0 {
		t.Errorf("total = %d, want 0 for unknown room", result.TotalCost.Amount)
	}
	if result.Breakdown.Accommodation != nil {
		t.Error("no accommodation line expected for unknown room")
	}
}

func TestCalculateUnknownPackageWarnsAndFallsBack(t *testing.T) {
	input := Input{
		Stay:         fiveNightStay(),
		People:       2,
		RoomCategory: "private_double",
		PackageID:    "pacote_fantasma",
	}
	result := Calculate(input, testConfig())
	if len(result.Warnings) == 0 {
		t.Error("expected a config warning for the unknown package")
	}
	if result.AccommodationCost.Amount != 75000 {
		t.Errorf("accommodation = %d, want 75000 fallback", result.AccommodationCost.Amount)
	}
}

func TestCalculateYogaFreeDays(t *testing.T) {
	// Monday to Monday: 7 nights containing one Wednesday and one Friday.
	stay := daterange.DateRange{
		CheckIn:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	}
	input := Input{
		Stay:   stay,
		People: 1,
		Extras: map[ItemKey]int{ItemYogaLessons: 4},
	}
	result := Calculate(input, testConfig())

	var yogaLine *Line
	for i := range result.Breakdown.FixedItems {
		if result.Breakdown.FixedItems[i].Key == ItemYogaLessons {
			yogaLine = &result.Breakdown.FixedItems[i]
		}
	}
	if yogaLine == nil {
		t.Fatal("missing yoga line")
	}
	if yogaLine.Quantity != 2 {
		t.Errorf("charged lessons = %d, want 2", yogaLine.Quantity)
	}
	if yogaLine.Cost.Amount != 9000 {
		t.Errorf("cost = %d, want 9000", yogaLine.Cost.Amount)
	}
}

func TestCalculateYogaFullyCoveredStillListed(t *testing.T) {
	stay := daterange.DateRange{
		CheckIn:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
	}
	input := Input{
		Stay:   stay,
		People: 2,
		Extras: map[ItemKey]int{ItemYogaLessons: 3},
	}
	result := Calculate(input, testConfig())

	found := false
	for _, line := range result.Breakdown.FixedItems {
		if line.Key == ItemYogaLessons {
			found = true
			if line.Cost.Amount != 0 {
				t.Errorf("cost = %d, want 0 when free days cover the request", line.Cost.Amount)
			}
		}
	}
	if !found {
		t.Error("yoga line should appear even at zero cost")
	}
}

func TestCalculateTransfer(t *testing.T) {
	tests := []struct {
		name      string
		packageID string
		requested int
		wantQty   int
		wantCost  int64
		wantNote  string
	}{
		{"no package charges per reservation", "", 2, 2, 44000, ""},
		{"package covers one", "pacote_completo", 2, 1, 22000, ""},
		{"fully covered keeps zero line", "pacote_completo", 1, 1, 0, NoteIncludedInPackage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := Input{
				Stay:      fiveNightStay(),
				People:    2,
				PackageID: tt.packageID,
				Extras:    map[ItemKey]int{ItemTransfer: tt.requested},
			}
			result := Calculate(input, testConfig())

			var line *Line
			for i := range result.Breakdown.FixedItems {
				if result.Breakdown.FixedItems[i].Key == ItemTransfer {
					line = &result.Breakdown.FixedItems[i]
				}
			}
			if line == nil {
				t.Fatal("missing transfer line")
			}
			if line.Quantity != tt.wantQty {
				t.Errorf("quantity = %d, want %d", line.Quantity, tt.wantQty)
			}
			if line.Cost.Amount != tt.wantCost {
				t.Errorf("cost = %d, want %d", line.Cost.Amount, tt.wantCost)
			}
			if line.Note != tt.wantNote {
				t.Errorf("note = %q, want %q", line.Note, tt.wantNote)
			}
		})
	}
}

func TestCalculateDailyItems(t *testing.T) {
	input := Input{
		Stay:            fiveNightStay(),
		People:          2,
		RoomCategory:    "private_double",
		BreakfastDays:   5,
		BoardRentalDays: 5,
	}
	result := Calculate(input, testConfig())

	// Breakfast: 25.00 x 5 days x 2 people, settled at the property.
	if result.DailyItemsCost.Amount != 25000 {
		t.Errorf("daily items = %d, want 25000", result.DailyItemsCost.Amount)
	}
	if result.BreakfastCost.Amount != 25000 {
		t.Errorf("breakfast cost = %d, want 25000", result.BreakfastCost.Amount)
	}
	// Board rental: 40.00 x 5 days x 2 people, booked under fixed items.
	if result.FixedItemsCost.Amount != 40000 {
		t.Errorf("fixed items = %d, want 40000", result.FixedItemsCost.Amount)
	}
	if result.PendingValue.Amount != 75000+25000 {
		t.Errorf("pending = %d, want accommodation+breakfast", result.PendingValue.Amount)
	}
	if result.RetainedValue.Amount != 40000 {
		t.Errorf("retained = %d, want board rental only", result.RetainedValue.Amount)
	}
}

func TestCalculateActivities(t *testing.T) {
	input := Input{
		Stay:   fiveNightStay(),
		People: 2,
		Extras: map[ItemKey]int{
			ItemHike:          1,
			ItemRioCityTour:   1,
			ItemVideoAnalysis: 2,
		},
	}
	result := Calculate(input, testConfig())

	// hike 95x1x2 + city tour 260x1x2 + video analysis 90x2 (per reservation)
	want := int64(19000 + 52000 + 18000)
	if result.FixedItemsCost.Amount != want {
		t.Errorf("fixed items = %d, want %d", result.FixedItemsCost.Amount, want)
	}
}

func TestCalculateReconciliation(t *testing.T) {
	input := Input{
		Stay:            fiveNightStay(),
		People:          2,
		RoomCategory:    "private_double",
		BreakfastDays:   5,
		BoardRentalDays: 5,
		Extras: map[ItemKey]int{
			ItemSurfLessons: 3,
			ItemYogaLessons: 2,
			ItemMassage:     1,
			ItemTransfer:    1,
		},
	}
	result := Calculate(input, testConfig())

	sum := result.RetainedValue.Amount + result.PendingValue.Amount
	if sum != result.TotalCost.Amount {
		t.Errorf("retained+pending = %d, total = %d; split must reconcile", sum, result.TotalCost.Amount)
	}
}

func TestCalculateIdempotent(t *testing.T) {
	input := Input{
		Stay:          fiveNightStay(),
		People:        2,
		RoomCategory:  "private_double",
		PackageID:     "",
		BreakfastDays: 5,
		Extras:        map[ItemKey]int{ItemSurfLessons: 4, ItemYogaLessons: 2},
	}
	cfg := testConfig()

	first := Calculate(input, cfg)
	second := Calculate(input, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs must produce identical results")
	}
}

func TestCalculateMissingItemPriceWarns(t *testing.T) {
	cfg := testConfig()
	delete(cfg.Items, ItemMassage)

	input := Input{
		Stay:   fiveNightStay(),
		People: 2,
		Extras: map[ItemKey]int{ItemMassage: 2},
	}
	result := Calculate(input, cfg)

	if result.TotalCost.Amount != 0 {
		t.Errorf("total = %d, want 0 when the only item has no price", result.TotalCost.Amount)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", result.Warnings)
	}
}

func TestCalculateReversedDatesClampToZero(t *testing.T) {
	input := Input{
		Stay: daterange.DateRange{
			CheckIn:  time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		People:       2,
		RoomCategory: "private_double",
	}
	result := Calculate(input, testConfig())

	if result.Nights != 0 {
		t.Errorf("nights = %d, want 0 for reversed dates", result.Nights)
	}
	if result.AccommodationCost.Amount != 0 {
		t.Errorf("accommodation = %d, want 0 for reversed dates", result.AccommodationCost.Amount)
	}
}

func TestCalculateDoesNotMutateArguments(t *testing.T) {
	cfg := testConfig()
	input := Input{
		Stay:      fiveNightStay(),
		People:    2,
		PackageID: "pacote_completo",
		Extras:    map[ItemKey]int{ItemSurfLessons: 7},
	}
	extrasBefore := map[ItemKey]int{ItemSurfLessons: 7}

	Calculate(input, cfg)

	if !reflect.DeepEqual(input.Extras, extrasBefore) {
		t.Error("input extras mutated by calculation")
	}
	if cfg.Packages[0].Included[ItemSurfLessons] != 5 {
		t.Error("config package quota mutated by calculation")
	}
}
