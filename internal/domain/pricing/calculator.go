package pricing

import (
	"fmt"

	"surfhouse/internal/domain/shared/daterange"
	"surfhouse/internal/domain/shared/money"
)

const (
	NoteManualPricing     = "manual pricing required"
	NoteIncludedInPackage = "included in package"
)

// Input is one calculation's worth of normalized parameters. Lead records are
// mapped into this shape by the leads package before the engine ever sees
// them; the engine itself never branches on legacy record shapes.
type Input struct {
	Stay         daterange.DateRange
	People       int
	RoomCategory string // config id, falling back to display-name match
	PackageID    string

	// Per-person requested quantities for lessons and fixed extras, absolute
	// counts for per-reservation items (transfer).
	Extras map[ItemKey]int

	// Daily items arrive as day counts, already expanded from booleans.
	BreakfastDays   int
	BoardRentalDays int
}

// ExtraQty returns a requested quantity, zero when absent.
func (in Input) ExtraQty(key ItemKey) int {
	if in.Extras == nil {
		return 0
	}
	return in.Extras[key]
}

// Line is one audit/display row of a quote breakdown.
type Line struct {
	Key       ItemKey     `json:"key,omitempty"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Money `json:"unit_price"`
	Cost      money.Money `json:"cost"`
	Note      string      `json:"note,omitempty"`
}

// Breakdown groups the quote lines the way the board UI renders them.
type Breakdown struct {
	Package       *Line  `json:"package,omitempty"`
	Accommodation *Line  `json:"accommodation,omitempty"`
	DailyItems    []Line `json:"daily_items"`
	FixedItems    []Line `json:"fixed_items"`
}

// Result is the full output of one calculation.
type Result struct {
	Nights int `json:"nights"`
	People int `json:"people"`

	PackageCost       money.Money `json:"package_cost"`
	AccommodationCost money.Money `json:"accommodation_cost"`
	DailyItemsCost    money.Money `json:"daily_items_cost"`
	FixedItemsCost    money.Money `json:"fixed_items_cost"`
	TotalCost         money.Money `json:"total_cost"`

	// BreakfastCost is the slice of DailyItemsCost that settles at the
	// property; it alone feeds PendingValue alongside accommodation.
	BreakfastCost money.Money `json:"breakfast_cost"`

	RetainedValue money.Money `json:"retained_value"`
	PendingValue  money.Money `json:"pending_value"`

	Breakdown Breakdown `json:"breakdown"`

	// Warnings records configuration gaps (unknown package id, missing item
	// price) that were skipped rather than failed.
	Warnings []string `json:"warnings,omitempty"`
}

// fixedExtraKeys are the package-deductible fixed items, in breakdown order.
var fixedExtraKeys = []ItemKey{ItemSurfSkate, ItemVideoAnalysis, ItemMassage, ItemSurfGuide}

// activityKeys have no package-inclusion concept.
var activityKeys = []ItemKey{ItemHike, ItemRioCityTour, ItemCariocaExperience}

// Calculate prices one normalized input against a configuration. It is a pure
// function: no I/O, no mutation of either argument, a fresh Result per call.
// Missing optional data degrades to omitted lines, never to an error.
func Calculate(in Input, cfg Config) Result {
	people := in.People
	if people < 1 {
		people = 1
	}

	result := Result{
		Nights: in.Stay.Nights(),
		People: people,
		Breakdown: Breakdown{
			DailyItems: []Line{},
			FixedItems: []Line{},
		},
	}
	zero := money.BRL(0)
	result.PackageCost = zero
	result.AccommodationCost = zero
	result.DailyItemsCost = zero
	result.FixedItemsCost = zero
	result.BreakfastCost = zero

	// Package and per-night accommodation are mutually exclusive: a selected
	// package replaces accommodation pricing with its fixed price.
	var selected Package
	var hasPackage bool
	if in.PackageID != "" {
		selected, hasPackage = cfg.PackageByID(in.PackageID)
		if !hasPackage {
			result.warnf("package %q not found in pricing config, skipping", in.PackageID)
		}
	}

	if hasPackage {
		result.PackageCost = selected.FixedPrice
		result.Breakdown.Package = &Line{
			Name:      selected.Name,
			Quantity:  1,
			UnitPrice: selected.FixedPrice,
			Cost:      selected.FixedPrice,
		}
	} else if category, ok := cfg.RoomCategoryByRef(in.RoomCategory); ok && result.Nights > 0 {
		line := Line{
			Name:      category.Name,
			Quantity:  result.Nights,
			UnitPrice: category.PricePerNight,
		}
		if category.PricePerNight.IsZero() {
			// Sentinel: the UI offers a manual override field for this room.
			line.Cost = zero
			line.Note = NoteManualPricing
		} else {
			multiplier := int64(result.Nights)
			if category.Billing == BillingPerPerson {
				multiplier *= int64(people)
			}
			line.Cost = category.PricePerNight.Multiply(multiplier)
		}
		result.AccommodationCost = line.Cost
		result.Breakdown.Accommodation = &line
	}

	result.applyBreakfast(in, cfg, selected, people)
	result.applyBoardRental(in, cfg, selected, people)
	result.applySurfLessons(in, cfg, selected, people)
	result.applyYogaLessons(in, cfg, people)
	result.applyFixedExtras(in, cfg, selected, people)
	result.applyTransfer(in, cfg, selected)
	result.applyActivities(in, cfg, people)

	total := result.PackageCost
	total = add(total, result.AccommodationCost)
	total = add(total, result.DailyItemsCost)
	total = add(total, result.FixedItemsCost)
	result.TotalCost = total

	services := add(result.PackageCost, result.FixedItemsCost)
	result.RetainedValue, result.PendingValue = SplitRetainedPending(
		services, money.BRL(0), result.AccommodationCost, result.BreakfastCost)

	return result
}

// applyBreakfast charges breakfast per person per day unless the package
// bundles it. Breakfast is the only daily item that settles at the property,
// so its cost is tracked separately for the pending-value split.
func (r *Result) applyBreakfast(in Input, cfg Config, pkg Package, people int) {
	if in.BreakfastDays <= 0 {
		return
	}
	price, ok := cfg.Item(ItemBreakfast)
	if !ok {
		r.warnf("no price configured for %s, skipping", ItemBreakfast)
		return
	}
	line := Line{Key: ItemBreakfast, Name: price.Name, Quantity: in.BreakfastDays, UnitPrice: price.Price}
	if pkg.IncludedQty(ItemBreakfast) > 0 {
		line.Cost = money.BRL(0)
		line.Note = NoteIncludedInPackage
	} else {
		multiplier := int64(in.BreakfastDays)
		if price.Basis == BillingPerPerson {
			multiplier *= int64(people)
		}
		line.Cost = price.Price.Multiply(multiplier)
	}
	r.DailyItemsCost = add(r.DailyItemsCost, line.Cost)
	r.BreakfastCost = add(r.BreakfastCost, line.Cost)
	r.Breakdown.DailyItems = append(r.Breakdown.DailyItems, line)
}

// applyBoardRental books board rental under fixed items on purpose: it counts
// as a service for the retained/pending split even though it is billed by day.
func (r *Result) applyBoardRental(in Input, cfg Config, pkg Package, people int) {
	if in.BoardRentalDays <= 0 {
		return
	}
	price, ok := cfg.Item(ItemBoardRental)
	if !ok {
		r.warnf("no price configured for %s, skipping", ItemBoardRental)
		return
	}
	line := Line{Key: ItemBoardRental, Name: price.Name, Quantity: in.BoardRentalDays, UnitPrice: price.Price}
	if pkg.IncludedQty(ItemBoardRental) > 0 {
		line.Cost = money.BRL(0)
		line.Note = NoteIncludedInPackage
	} else {
		multiplier := int64(in.BoardRentalDays)
		if price.Basis == BillingPerPerson {
			multiplier *= int64(people)
		}
		line.Cost = price.Price.Multiply(multiplier)
	}
	r.FixedItemsCost = add(r.FixedItemsCost, line.Cost)
	r.Breakdown.FixedItems = append(r.Breakdown.FixedItems, line)
}

// applySurfLessons charges the positive remainder beyond the package quota.
// The discount bracket is chosen from the total requested lesson count
// (per-person request times head count), not from the remainder; the chosen
// rate then applies to every charged lesson.
func (r *Result) applySurfLessons(in Input, cfg Config, pkg Package, people int) {
	requestedPP := in.ExtraQty(ItemSurfLessons)
	if requestedPP <= 0 {
		return
	}
	price, ok := cfg.Item(ItemSurfLessons)
	if !ok {
		r.warnf("no price configured for %s, skipping", ItemSurfLessons)
		return
	}
	chargedPP := requestedPP - pkg.IncludedQty(ItemSurfLessons)
	if chargedPP < 0 {
		chargedPP = 0
	}
	totalRequested := requestedPP * people
	totalCharged := chargedPP * people
	rate := cfg.SurfLessonRate(totalRequested)

	line := Line{Key: ItemSurfLessons, Name: price.Name, Quantity: totalCharged, UnitPrice: rate}
	if totalCharged == 0 {
		line.Quantity = totalRequested
		line.UnitPrice = money.BRL(0)
		line.Cost = money.BRL(0)
		line.Note = NoteIncludedInPackage
	} else {
		line.Cost = rate.Multiply(int64(totalCharged))
	}
	r.FixedItemsCost = add(r.FixedItemsCost, line.Cost)
	r.Breakdown.FixedItems = append(r.Breakdown.FixedItems, line)
}

// applyYogaLessons deducts the stay's free class days (Wednesdays and
// Fridays) from each person's requested count, flooring at zero. The line is
// always emitted for transparency, even when fully covered by free days.
func (r *Result) applyYogaLessons(in Input, cfg Config, people int) {
	requestedPP := in.ExtraQty(ItemYogaLessons)
	if requestedPP <= 0 {
		return
	}
	price, ok := cfg.Item(ItemYogaLessons)
	if !ok {
		r.warnf("no price configured for %s, skipping", ItemYogaLessons)
		return
	}
	free := FreeYogaDays(in.Stay)
	chargedPP := requestedPP - free
	if chargedPP < 0 {
		chargedPP = 0
	}
	line := Line{
		Key:       ItemYogaLessons,
		Name:      price.Name,
		Quantity:  chargedPP * people,
		UnitPrice: price.Price,
		Cost:      price.Price.Multiply(int64(chargedPP) * int64(people)),
	}
	if free > 0 {
		line.Note = fmt.Sprintf("%d free class day(s) deducted", free)
	}
	r.FixedItemsCost = add(r.FixedItemsCost, line.Cost)
	r.Breakdown.FixedItems = append(r.Breakdown.FixedItems, line)
}

func (r *Result) applyFixedExtras(in Input, cfg Config, pkg Package, people int) {
	for _, key := range fixedExtraKeys {
		requested := in.ExtraQty(key)
		if requested <= 0 {
			continue
		}
		price, ok := cfg.Item(key)
		if !ok {
			r.warnf("no price configured for %s, skipping", key)
			continue
		}
		charged := requested - pkg.IncludedQty(key)
		if charged < 0 {
			charged = 0
		}
		line := Line{Key: key, Name: price.Name, Quantity: charged, UnitPrice: price.Price}
		if charged == 0 {
			line.Quantity = requested
			line.UnitPrice = money.BRL(0)
			line.Cost = money.BRL(0)
			line.Note = NoteIncludedInPackage
		} else {
			multiplier := int64(charged)
			if price.Basis == BillingPerPerson {
				multiplier *= int64(people)
			}
			line.Cost = price.Price.Multiply(multiplier)
		}
		r.FixedItemsCost = add(r.FixedItemsCost, line.Cost)
		r.Breakdown.FixedItems = append(r.Breakdown.FixedItems, line)
	}
}

// applyTransfer is per reservation, never multiplied by head count.
func (r *Result) applyTransfer(in Input, cfg Config, pkg Package) {
	requested := in.ExtraQty(ItemTransfer)
	if requested <= 0 {
		return
	}
	price, ok := cfg.Item(ItemTransfer)
	if !ok {
		r.warnf("no price configured for %s, skipping", ItemTransfer)
		return
	}
	charged := requested - pkg.IncludedQty(ItemTransfer)
	line := Line{Key: ItemTransfer, Name: price.Name, Quantity: charged, UnitPrice: price.Price}
	if charged <= 0 {
		line.Quantity = requested
		line.UnitPrice = money.BRL(0)
		line.Cost = money.BRL(0)
		line.Note = NoteIncludedInPackage
	} else {
		line.Cost = price.Price.Multiply(int64(charged))
	}
	r.FixedItemsCost = add(r.FixedItemsCost, line.Cost)
	r.Breakdown.FixedItems = append(r.Breakdown.FixedItems, line)
}

func (r *Result) applyActivities(in Input, cfg Config, people int) {
	for _, key := range activityKeys {
		quantity := in.ExtraQty(key)
		if quantity <= 0 {
			continue
		}
		price, ok := cfg.Item(key)
		if !ok {
			r.warnf("no price configured for %s, skipping", key)
			continue
		}
		multiplier := int64(quantity)
		if price.Basis == BillingPerPerson {
			multiplier *= int64(people)
		}
		line := Line{
			Key:       key,
			Name:      price.Name,
			Quantity:  quantity,
			UnitPrice: price.Price,
			Cost:      price.Price.Multiply(multiplier),
		}
		r.FixedItemsCost = add(r.FixedItemsCost, line.Cost)
		r.Breakdown.FixedItems = append(r.Breakdown.FixedItems, line)
	}
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func add(total, m money.Money) money.Money {
	res, _ := total.Add(m)
	return res
}
