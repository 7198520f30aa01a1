package leads

import (
	"time"

	"surfhouse/internal/domain/shared/money"
)

type LeadCreated struct {
	LeadID LeadID
	Name   string
	At     time.Time
}

func (e LeadCreated) EventName() string     { return "lead.created" }
func (e LeadCreated) AggregateID() string   { return string(e.LeadID) }
func (e LeadCreated) OccurredAt() time.Time { return e.At }

type LeadStageChanged struct {
	LeadID LeadID
	From   Stage
	To     Stage
	At     time.Time
}

func (e LeadStageChanged) EventName() string     { return "lead.stage_changed" }
func (e LeadStageChanged) AggregateID() string   { return string(e.LeadID) }
func (e LeadStageChanged) OccurredAt() time.Time { return e.At }

type LeadQuoted struct {
	LeadID LeadID
	Total  money.Money
	At     time.Time
}

func (e LeadQuoted) EventName() string     { return "lead.quoted" }
func (e LeadQuoted) AggregateID() string   { return string(e.LeadID) }
func (e LeadQuoted) OccurredAt() time.Time { return e.At }
