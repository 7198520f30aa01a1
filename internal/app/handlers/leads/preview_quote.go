package leads

import (
	"context"

	domainleads "surfhouse/internal/domain/leads"
	"surfhouse/internal/domain/pricing"
)

const previewQuoteKey = "quotes.preview"

// PreviewQuoteCommand prices a transient lead shape without persisting
// anything. The board UI calls this on every form change; the engine is pure,
// so there is nothing to debounce here.
type PreviewQuoteCommand struct {
	Lead domainleads.Lead
}

func (c PreviewQuoteCommand) Key() string { return previewQuoteKey }

type PreviewQuoteHandler struct {
	Config pricing.Store
}

func (h *PreviewQuoteHandler) Handle(ctx context.Context, cmd PreviewQuoteCommand) (*pricing.Result, error) {
	input, err := cmd.Lead.BuildPricingInput()
	if err != nil {
		return nil, err
	}
	cfg, err := h.Config.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := pricing.Calculate(input, cfg)
	return &result, nil
}
