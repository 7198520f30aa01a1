package dto

import (
	"time"

	domainleads "surfhouse/internal/domain/leads"
	"surfhouse/internal/domain/pricing"
)

type LineDTO struct {
	Key       string   `json:"key,omitempty"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	UnitPrice MoneyDTO `json:"unit_price"`
	Cost      MoneyDTO `json:"cost"`
	Note      string   `json:"note,omitempty"`
}

type BreakdownDTO struct {
	Package       *LineDTO  `json:"package,omitempty"`
	Accommodation *LineDTO  `json:"accommodation,omitempty"`
	DailyItems    []LineDTO `json:"daily_items"`
	FixedItems    []LineDTO `json:"fixed_items"`
}

type CalculationDTO struct {
	Nights            int          `json:"nights"`
	People            int          `json:"people"`
	PackageCost       MoneyDTO     `json:"package_cost"`
	AccommodationCost MoneyDTO     `json:"accommodation_cost"`
	DailyItemsCost    MoneyDTO     `json:"daily_items_cost"`
	FixedItemsCost    MoneyDTO     `json:"fixed_items_cost"`
	TotalCost         MoneyDTO     `json:"total_cost"`
	RetainedValue     MoneyDTO     `json:"retained_value"`
	PendingValue      MoneyDTO     `json:"pending_value"`
	Breakdown         BreakdownDTO `json:"breakdown"`
	Warnings          []string     `json:"warnings,omitempty"`
}

type QuoteDTO struct {
	Calculation           CalculationDTO `json:"calculation"`
	AccommodationOverride *MoneyDTO      `json:"accommodation_override,omitempty"`
	ExtraFee              MoneyDTO       `json:"extra_fee"`
	FinalTotal            MoneyDTO       `json:"final_total"`
	QuotedAt              time.Time      `json:"quoted_at"`
}

func mapLine(line pricing.Line) LineDTO {
	return LineDTO{
		Key:       string(line.Key),
		Name:      line.Name,
		Quantity:  line.Quantity,
		UnitPrice: MapMoney(line.UnitPrice),
		Cost:      MapMoney(line.Cost),
		Note:      line.Note,
	}
}

func MapCalculation(result pricing.Result) CalculationDTO {
	out := CalculationDTO{
		Nights:            result.Nights,
		People:            result.People,
		PackageCost:       MapMoney(result.PackageCost),
		AccommodationCost: MapMoney(result.AccommodationCost),
		DailyItemsCost:    MapMoney(result.DailyItemsCost),
		FixedItemsCost:    MapMoney(result.FixedItemsCost),
		TotalCost:         MapMoney(result.TotalCost),
		RetainedValue:     MapMoney(result.RetainedValue),
		PendingValue:      MapMoney(result.PendingValue),
		Warnings:          result.Warnings,
		Breakdown: BreakdownDTO{
			DailyItems: []LineDTO{},
			FixedItems: []LineDTO{},
		},
	}
	if result.Breakdown.Package != nil {
		line := mapLine(*result.Breakdown.Package)
		out.Breakdown.Package = &line
	}
	if result.Breakdown.Accommodation != nil {
		line := mapLine(*result.Breakdown.Accommodation)
		out.Breakdown.Accommodation = &line
	}
	for _, line := range result.Breakdown.DailyItems {
		out.Breakdown.DailyItems = append(out.Breakdown.DailyItems, mapLine(line))
	}
	for _, line := range result.Breakdown.FixedItems {
		out.Breakdown.FixedItems = append(out.Breakdown.FixedItems, mapLine(line))
	}
	return out
}

func MapQuote(snapshot *domainleads.QuoteSnapshot) QuoteDTO {
	out := QuoteDTO{
		Calculation: MapCalculation(snapshot.Result),
		ExtraFee:    MapMoney(snapshot.ExtraFee),
		FinalTotal:  MapMoney(snapshot.FinalTotal),
		QuotedAt:    snapshot.QuotedAt,
	}
	if snapshot.AccommodationOverride != nil {
		override := MapMoney(*snapshot.AccommodationOverride)
		out.AccommodationOverride = &override
	}
	return out
}
