package leads

import (
	domainleads "surfhouse/internal/domain/leads"
	"surfhouse/internal/domain/shared/money"
)

// Details carries the optional booking fields of a lead form. Nil pointers
// mean "leave as is", which gives create and partial update one apply path.
type Details struct {
	Email        *string
	Phone        *string
	Notes        *string
	People       *int
	CheckIn      *string
	CheckOut     *string
	RoomCategory *string
	PackageID    *string

	Breakfast   *bool
	BoardRental *bool

	SurfLessons *int
	YogaLessons *int
	SurfSkate   *int
	Massage     *int
	SurfGuide   *int

	VideoAnalysisExtra   *int
	VideoAnalysisPackage *int

	Transfer        *bool
	TransferExtra   *bool
	TransferPackage *int

	Hike              *int
	RioCityTour       *int
	CariocaExperience *int

	// Manual adjustments in centavos. A negative override clears it.
	AccommodationOverride *int64
	ExtraFee              *int64
}

func (d Details) Apply(l *domainleads.Lead) {
	setString(&l.Email, d.Email)
	setString(&l.Phone, d.Phone)
	setString(&l.Notes, d.Notes)
	setString(&l.CheckIn, d.CheckIn)
	setString(&l.CheckOut, d.CheckOut)
	setString(&l.RoomCategory, d.RoomCategory)
	setString(&l.PackageID, d.PackageID)
	if d.People != nil && *d.People > 0 {
		l.People = *d.People
	}
	setBool(&l.Breakfast, d.Breakfast)
	setBool(&l.BoardRental, d.BoardRental)
	setBool(&l.Transfer, d.Transfer)
	setBool(&l.TransferExtra, d.TransferExtra)
	setInt(&l.SurfLessons, d.SurfLessons)
	setInt(&l.YogaLessons, d.YogaLessons)
	setInt(&l.SurfSkate, d.SurfSkate)
	setInt(&l.Massage, d.Massage)
	setInt(&l.SurfGuide, d.SurfGuide)
	setInt(&l.VideoAnalysisExtra, d.VideoAnalysisExtra)
	setInt(&l.VideoAnalysisPackage, d.VideoAnalysisPackage)
	setInt(&l.TransferPackage, d.TransferPackage)
	setInt(&l.Hike, d.Hike)
	setInt(&l.RioCityTour, d.RioCityTour)
	setInt(&l.CariocaExperience, d.CariocaExperience)
	if d.AccommodationOverride != nil {
		if *d.AccommodationOverride < 0 {
			l.AccommodationOverride = nil
		} else {
			m := money.BRL(*d.AccommodationOverride)
			l.AccommodationOverride = &m
		}
	}
	if d.ExtraFee != nil {
		l.ExtraFee = money.BRL(*d.ExtraFee)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
