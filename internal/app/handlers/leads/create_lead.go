package leads

import (
	"context"
	"log/slog"
	"time"

	"surfhouse/internal/app/notify"
	domainleads "surfhouse/internal/domain/leads"
)

const createLeadKey = "leads.create"

type CreateLeadCommand struct {
	CommandID string
	Name      string
	People    int
	Details   Details
}

func (c CreateLeadCommand) Key() string { return createLeadKey }

type CreateLeadResult struct {
	LeadID string `json:"lead_id"`
}

type CreateLeadHandler struct {
	Repo      domainleads.Repository
	Publisher notify.Publisher
	Topic     string
	Logger    *slog.Logger
}

func (h *CreateLeadHandler) Handle(ctx context.Context, cmd CreateLeadCommand) (*CreateLeadResult, error) {
	lead, err := domainleads.NewLead(domainleads.CreateParams{
		ID:        domainleads.LeadID(cmd.CommandID),
		Name:      cmd.Name,
		People:    cmd.People,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	cmd.Details.Apply(lead)
	if err := h.Repo.Save(ctx, lead); err != nil {
		return nil, err
	}
	notify.Drain(ctx, h.Publisher, h.Topic, h.Logger, &lead.EventRecorder)
	return &CreateLeadResult{LeadID: string(lead.ID)}, nil
}
