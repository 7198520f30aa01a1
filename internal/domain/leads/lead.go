package leads

import (
	"context"
	"errors"
	"time"

	"surfhouse/internal/domain/pricing"
	"surfhouse/internal/domain/shared/events"
	"surfhouse/internal/domain/shared/money"
)

var (
	ErrLeadNotFound   = errors.New("leads: not found")
	ErrNameRequired   = errors.New("leads: name required")
	ErrInvalidPeople  = errors.New("leads: people count must be positive")
	ErrUnknownStage   = errors.New("leads: unknown stage")
	ErrMalformedDates = errors.New("leads: malformed stay dates")
)

type LeadID string

// Stage is a kanban column. Board order follows the Stages slice.
type Stage string

const (
	StageNew         Stage = "NEW"
	StageContacted   Stage = "CONTACTED"
	StageQuoteSent   Stage = "QUOTE_SENT"
	StageNegotiating Stage = "NEGOTIATING"
	StageBooked      Stage = "BOOKED"
	StageLost        Stage = "LOST"
)

// Stages lists the board columns in display order.
func Stages() []Stage {
	return []Stage{StageNew, StageContacted, StageQuoteSent, StageNegotiating, StageBooked, StageLost}
}

// ValidStage reports whether a stage value is one of the board columns.
func ValidStage(s Stage) bool {
	for _, stage := range Stages() {
		if stage == s {
			return true
		}
	}
	return false
}

// Lead is a customer booking inquiry exactly as persisted, legacy shape
// included: some extras live as booleans, some as separate "extra" and
// "package" counters. Normalization into a pricing input happens in one place
// (BuildPricingInput), never deep inside pricing logic.
type Lead struct {
	ID    LeadID
	Name  string
	Email string
	Phone string
	Notes string
	Stage Stage

	// Stay parameters. Dates are stored as ISO calendar dates ("2006-01-02"),
	// empty string when the guest has not committed to dates yet.
	CheckIn      string
	CheckOut     string
	People       int
	RoomCategory string // free text, may be a legacy display label
	PackageID    string

	// Daily flags, expanded to day counts only once the stay length is known.
	Breakfast   bool
	BoardRental bool

	// Per-person lesson and extra counts.
	SurfLessons int
	YogaLessons int
	SurfSkate   int
	Massage     int
	SurfGuide   int

	// Video analysis keeps separate counters for sessions bought as extras
	// and sessions granted by a package deal.
	VideoAnalysisExtra   int
	VideoAnalysisPackage int

	// Transfer legacy shape: a base flag on the reservation, an extra flag
	// from the add-ons form, and a package-granted count.
	Transfer        bool
	TransferExtra   bool
	TransferPackage int

	// Activities, no package-inclusion concept.
	Hike              int
	RioCityTour       int
	CariocaExperience int

	// Manual adjustments applied after the engine runs, never inside it.
	AccommodationOverride *money.Money
	ExtraFee              money.Money

	Quote *QuoteSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

// QuoteSnapshot freezes one engine run plus the manual adjustments that were
// live when the quote was produced.
type QuoteSnapshot struct {
	Result                pricing.Result `json:"result"`
	AccommodationOverride *money.Money   `json:"accommodation_override,omitempty"`
	ExtraFee              money.Money    `json:"extra_fee"`
	FinalTotal            money.Money    `json:"final_total"`
	QuotedAt              time.Time      `json:"quoted_at"`
}

type Repository interface {
	ByID(ctx context.Context, id LeadID) (*Lead, error)
	Save(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id LeadID) error
	List(ctx context.Context) ([]*Lead, error)
	ListByStage(ctx context.Context, stage Stage) ([]*Lead, error)
}

type CreateParams struct {
	ID        LeadID
	Name      string
	Email     string
	Phone     string
	Notes     string
	People    int
	CreatedAt time.Time
}

func NewLead(params CreateParams) (*Lead, error) {
	if params.Name == "" {
		return nil, ErrNameRequired
	}
	if params.People < 0 {
		return nil, ErrInvalidPeople
	}
	people := params.People
	if people == 0 {
		people = 1
	}
	now := params.CreatedAt.UTC()
	l := &Lead{
		ID:        params.ID,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		Notes:     params.Notes,
		People:    people,
		Stage:     StageNew,
		ExtraFee:  money.BRL(0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	l.Record(LeadCreated{LeadID: l.ID, Name: l.Name, At: now})
	return l, nil
}

// MoveTo changes the kanban column.
func (l *Lead) MoveTo(stage Stage, now time.Time) error {
	if !ValidStage(stage) {
		return ErrUnknownStage
	}
	if stage == l.Stage {
		return nil
	}
	from := l.Stage
	l.Stage = stage
	l.UpdatedAt = now.UTC()
	l.Record(LeadStageChanged{LeadID: l.ID, From: from, To: stage, At: l.UpdatedAt})
	return nil
}

// ApplyQuote stores a fresh engine result on the lead, applying the manual
// accommodation override and the flat extra fee on top of the engine output.
func (l *Lead) ApplyQuote(result pricing.Result, now time.Time) {
	finalTotal := result.TotalCost
	if l.AccommodationOverride != nil {
		finalTotal, _ = finalTotal.Sub(result.AccommodationCost)
		finalTotal, _ = finalTotal.Add(*l.AccommodationOverride)
	}
	if !l.ExtraFee.IsZero() {
		finalTotal, _ = finalTotal.Add(l.ExtraFee)
	}
	l.Quote = &QuoteSnapshot{
		Result:                result,
		AccommodationOverride: l.AccommodationOverride,
		ExtraFee:              l.ExtraFee,
		FinalTotal:            finalTotal,
		QuotedAt:              now.UTC(),
	}
	l.UpdatedAt = now.UTC()
	l.Record(LeadQuoted{LeadID: l.ID, Total: finalTotal, At: l.UpdatedAt})
}
