package leads

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"surfhouse/internal/app/notify"
	domainleads "surfhouse/internal/domain/leads"
	"surfhouse/internal/domain/pricing"
)

const quoteLeadKey = "leads.quote"

type QuoteLeadCommand struct {
	LeadID string
}

func (c QuoteLeadCommand) Key() string { return quoteLeadKey }

type QuoteLeadResult struct {
	Lead *domainleads.Lead
	// Priced is false when the lead's stay dates could not be parsed; the
	// lead comes back unmodified instead of a failed request.
	Priced bool
}

type QuoteLeadHandler struct {
	Repo      domainleads.Repository
	Config    pricing.Store
	Publisher notify.Publisher
	Topic     string
	Logger    *slog.Logger
}

func (h *QuoteLeadHandler) Handle(ctx context.Context, cmd QuoteLeadCommand) (*QuoteLeadResult, error) {
	lead, err := h.Repo.ByID(ctx, domainleads.LeadID(cmd.LeadID))
	if err != nil {
		return nil, err
	}

	input, err := lead.BuildPricingInput()
	if err != nil {
		if errors.Is(err, domainleads.ErrMalformedDates) {
			if h.Logger != nil {
				h.Logger.Warn("lead has malformed stay dates, returned unpriced", "lead_id", lead.ID, "error", err)
			}
			return &QuoteLeadResult{Lead: lead}, nil
		}
		return nil, err
	}

	cfg, err := h.Config.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := pricing.Calculate(input, cfg)
	for _, warning := range result.Warnings {
		if h.Logger != nil {
			h.Logger.Warn("pricing config gap", "lead_id", lead.ID, "detail", warning)
		}
	}

	lead.ApplyQuote(result, time.Now().UTC())
	if err := h.Repo.Save(ctx, lead); err != nil {
		return nil, err
	}
	notify.Drain(ctx, h.Publisher, h.Topic, h.Logger, &lead.EventRecorder)
	return &QuoteLeadResult{Lead: lead, Priced: true}, nil
}
