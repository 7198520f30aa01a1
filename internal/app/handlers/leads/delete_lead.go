package leads

import (
	"context"

	domainleads "surfhouse/internal/domain/leads"
)

const deleteLeadKey = "leads.delete"

type DeleteLeadCommand struct {
	LeadID string
}

func (c DeleteLeadCommand) Key() string { return deleteLeadKey }

type DeleteLeadResult struct{}

type DeleteLeadHandler struct {
	Repo domainleads.Repository
}

func (h *DeleteLeadHandler) Handle(ctx context.Context, cmd DeleteLeadCommand) (*DeleteLeadResult, error) {
	if err := h.Repo.Delete(ctx, domainleads.LeadID(cmd.LeadID)); err != nil {
		return nil, err
	}
	return &DeleteLeadResult{}, nil
}
