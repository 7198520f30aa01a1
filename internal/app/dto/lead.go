package dto

import (
	"time"

	domainleads "surfhouse/internal/domain/leads"
	"surfhouse/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{
		Amount:    value.Amount,
		Currency:  value.Currency,
		Formatted: money.FormatBRL(value),
	}
}

type LeadSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Stage     string    `json:"stage"`
	CheckIn   string    `json:"check_in,omitempty"`
	CheckOut  string    `json:"check_out,omitempty"`
	People    int       `json:"people"`
	Total     *MoneyDTO `json:"total,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LeadDetail struct {
	LeadSummary
	Email                 string    `json:"email,omitempty"`
	Phone                 string    `json:"phone,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	RoomCategory          string    `json:"room_category,omitempty"`
	PackageID             string    `json:"package_id,omitempty"`
	Breakfast             bool      `json:"breakfast"`
	BoardRental           bool      `json:"board_rental"`
	SurfLessons           int       `json:"surf_lessons"`
	YogaLessons           int       `json:"yoga_lessons"`
	SurfSkate             int       `json:"surf_skate"`
	Massage               int       `json:"massage"`
	SurfGuide             int       `json:"surf_guide"`
	VideoAnalysisExtra    int       `json:"video_analysis_extra"`
	VideoAnalysisPackage  int       `json:"video_analysis_package"`
	Transfer              bool      `json:"transfer"`
	TransferExtra         bool      `json:"transfer_extra"`
	TransferPackage       int       `json:"transfer_package"`
	Hike                  int       `json:"hike"`
	RioCityTour           int       `json:"rio_city_tour"`
	CariocaExperience     int       `json:"carioca_experience"`
	AccommodationOverride *MoneyDTO `json:"accommodation_override,omitempty"`
	ExtraFee              MoneyDTO  `json:"extra_fee"`
	Quote                 *QuoteDTO `json:"quote,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// Board groups leads by kanban column in display order.
type Board struct {
	Columns []BoardColumn `json:"columns"`
}

type BoardColumn struct {
	Stage string        `json:"stage"`
	Leads []LeadSummary `json:"leads"`
}

func MapLeadSummary(l *domainleads.Lead) LeadSummary {
	s := LeadSummary{
		ID:        string(l.ID),
		Name:      l.Name,
		Stage:     string(l.Stage),
		CheckIn:   l.CheckIn,
		CheckOut:  l.CheckOut,
		People:    l.People,
		UpdatedAt: l.UpdatedAt,
	}
	if l.Quote != nil {
		total := MapMoney(l.Quote.FinalTotal)
		s.Total = &total
	}
	return s
}

func MapLeadDetail(l *domainleads.Lead) LeadDetail {
	d := LeadDetail{
		LeadSummary:          MapLeadSummary(l),
		Email:                l.Email,
		Phone:                l.Phone,
		Notes:                l.Notes,
		RoomCategory:         l.RoomCategory,
		PackageID:            l.PackageID,
		Breakfast:            l.Breakfast,
		BoardRental:          l.BoardRental,
		SurfLessons:          l.SurfLessons,
		YogaLessons:          l.YogaLessons,
		SurfSkate:            l.SurfSkate,
		Massage:              l.Massage,
		SurfGuide:            l.SurfGuide,
		VideoAnalysisExtra:   l.VideoAnalysisExtra,
		VideoAnalysisPackage: l.VideoAnalysisPackage,
		Transfer:             l.Transfer,
		TransferExtra:        l.TransferExtra,
		TransferPackage:      l.TransferPackage,
		Hike:                 l.Hike,
		RioCityTour:          l.RioCityTour,
		CariocaExperience:    l.CariocaExperience,
		ExtraFee:             MapMoney(l.ExtraFee),
		CreatedAt:            l.CreatedAt,
	}
	if l.AccommodationOverride != nil {
		override := MapMoney(*l.AccommodationOverride)
		d.AccommodationOverride = &override
	}
	if l.Quote != nil {
		quote := MapQuote(l.Quote)
		d.Quote = &quote
	}
	return d
}

// MapBoard arranges leads into kanban columns, keeping stage display order.
func MapBoard(all []*domainleads.Lead) Board {
	byStage := make(map[domainleads.Stage][]LeadSummary)
	for _, l := range all {
		byStage[l.Stage] = append(byStage[l.Stage], MapLeadSummary(l))
	}
	board := Board{}
	for _, stage := range domainleads.Stages() {
		column := BoardColumn{Stage: string(stage), Leads: byStage[stage]}
		if column.Leads == nil {
			column.Leads = []LeadSummary{}
		}
		board.Columns = append(board.Columns, column)
	}
	return board
}
