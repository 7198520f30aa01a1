package leads

import (
	"context"
	"log/slog"
	"time"

	"surfhouse/internal/app/notify"
	domainleads "surfhouse/internal/domain/leads"
)

const moveLeadKey = "leads.move"

type MoveLeadCommand struct {
	LeadID string
	Stage  string
}

func (c MoveLeadCommand) Key() string { return moveLeadKey }

type MoveLeadResult struct {
	Lead *domainleads.Lead
}

type MoveLeadHandler struct {
	Repo      domainleads.Repository
	Publisher notify.Publisher
	Topic     string
	Logger    *slog.Logger
}

func (h *MoveLeadHandler) Handle(ctx context.Context, cmd MoveLeadCommand) (*MoveLeadResult, error) {
	lead, err := h.Repo.ByID(ctx, domainleads.LeadID(cmd.LeadID))
	if err != nil {
		return nil, err
	}
	if err := lead.MoveTo(domainleads.Stage(cmd.Stage), time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := h.Repo.Save(ctx, lead); err != nil {
		return nil, err
	}
	notify.Drain(ctx, h.Publisher, h.Topic, h.Logger, &lead.EventRecorder)
	return &MoveLeadResult{Lead: lead}, nil
}
