package leads

import (
	"context"
	"time"

	domainleads "surfhouse/internal/domain/leads"
)

const updateLeadKey = "leads.update"

type UpdateLeadCommand struct {
	LeadID  string
	Name    *string
	Details Details
}

func (c UpdateLeadCommand) Key() string { return updateLeadKey }

type UpdateLeadResult struct {
	Lead *domainleads.Lead
}

type UpdateLeadHandler struct {
	Repo domainleads.Repository
}

func (h *UpdateLeadHandler) Handle(ctx context.Context, cmd UpdateLeadCommand) (*UpdateLeadResult, error) {
	lead, err := h.Repo.ByID(ctx, domainleads.LeadID(cmd.LeadID))
	if err != nil {
		return nil, err
	}
	if cmd.Name != nil && *cmd.Name != "" {
		lead.Name = *cmd.Name
	}
	cmd.Details.Apply(lead)
	lead.UpdatedAt = time.Now().UTC()
	if err := h.Repo.Save(ctx, lead); err != nil {
		return nil, err
	}
	return &UpdateLeadResult{Lead: lead}, nil
}
