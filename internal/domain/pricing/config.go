package pricing

import (
	"errors"

	"surfhouse/internal/domain/shared/money"
)

var (
	ErrNoTiers          = errors.New("pricing: at least one lesson tier is required")
	ErrUnboundedTier    = errors.New("pricing: last lesson tier must be unlimited (-1)")
	ErrTierOrder        = errors.New("pricing: lesson tiers must be strictly increasing")
	ErrTierAfterLast    = errors.New("pricing: no tiers allowed after unlimited tier")
	ErrNegativeTierRate = errors.New("pricing: tier rates must be non-negative")
)

// ItemKey identifies an addable extra in configuration, lead records and
// calculation inputs.
type ItemKey string

const (
	ItemBreakfast         ItemKey = "breakfast"
	ItemBoardRental       ItemKey = "unlimited_board_rental"
	ItemSurfLessons       ItemKey = "surf_lessons"
	ItemYogaLessons       ItemKey = "yoga_lessons"
	ItemSurfSkate         ItemKey = "surf_skate"
	ItemVideoAnalysis     ItemKey = "video_analysis"
	ItemMassage           ItemKey = "massage"
	ItemSurfGuide         ItemKey = "surf_guide"
	ItemTransfer          ItemKey = "transfer"
	ItemHike              ItemKey = "hike"
	ItemRioCityTour       ItemKey = "rio_city_tour"
	ItemCariocaExperience ItemKey = "carioca_experience"
)

// BillingBasis states what a unit price multiplies against.
type BillingBasis string

const (
	BillingPerRoom        BillingBasis = "per_room"
	BillingPerPerson      BillingBasis = "per_person"
	BillingPerReservation BillingBasis = "per_reservation"
)

// RoomCategory prices accommodation per night. A zero PricePerNight is a
// sentinel meaning the room is priced manually outside the engine.
type RoomCategory struct {
	ID            string
	Name          string
	PricePerNight money.Money
	Billing       BillingBasis
}

// Package is a fixed-price bundle. Selecting one replaces per-night
// accommodation pricing entirely; Included quantities are subtracted from
// requested extras before anything is charged.
type Package struct {
	ID         string
	Name       string
	FixedPrice money.Money
	Included   map[ItemKey]int
}

// IncludedQty returns the bundled quantity for an item, zero when absent.
func (p Package) IncludedQty(key ItemKey) int {
	if p.Included == nil {
		return 0
	}
	return p.Included[key]
}

// ItemPrice is the per-unit price of one addable extra.
type ItemPrice struct {
	Key   ItemKey
	Name  string
	Price money.Money
	Basis BillingBasis
}

// LessonTier is one volume-discount bracket for surf lessons. UpTo is the
// inclusive upper bound on the total lesson count, -1 for the open last tier.
type LessonTier struct {
	UpTo int
	Rate money.Money
}

// Config is the caller-supplied pricing configuration. The engine treats it
// as read-only for the duration of a calculation.
type Config struct {
	RoomCategories []RoomCategory
	Packages       []Package
	Items          map[ItemKey]ItemPrice
	LessonTiers    []LessonTier
}

// ValidateTiers checks the lesson tier schedule is ordered and bounded.
func (c Config) ValidateTiers() error {
	if len(c.LessonTiers) == 0 {
		return ErrNoTiers
	}
	if c.LessonTiers[len(c.LessonTiers)-1].UpTo != -1 {
		return ErrUnboundedTier
	}
	for i := 1; i < len(c.LessonTiers); i++ {
		prev := c.LessonTiers[i-1]
		current := c.LessonTiers[i]
		if prev.UpTo == -1 {
			return ErrTierAfterLast
		}
		if current.UpTo != -1 && current.UpTo <= prev.UpTo {
			return ErrTierOrder
		}
	}
	for _, tier := range c.LessonTiers {
		if tier.Rate.Amount < 0 {
			return ErrNegativeTierRate
		}
	}
	return nil
}

// RoomCategoryByRef resolves a category by id first, then by display name.
// Legacy lead records store the display name.
func (c Config) RoomCategoryByRef(ref string) (RoomCategory, bool) {
	if ref == "" {
		return RoomCategory{}, false
	}
	for _, rc := range c.RoomCategories {
		if rc.ID == ref {
			return rc, true
		}
	}
	for _, rc := range c.RoomCategories {
		if rc.Name == ref {
			return rc, true
		}
	}
	return RoomCategory{}, false
}

// PackageByID resolves a package, reporting absence instead of failing.
func (c Config) PackageByID(id string) (Package, bool) {
	if id == "" {
		return Package{}, false
	}
	for _, p := range c.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// Item returns the configured price for an item key.
func (c Config) Item(key ItemKey) (ItemPrice, bool) {
	price, ok := c.Items[key]
	return price, ok
}
