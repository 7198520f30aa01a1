package leads

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"surfhouse/internal/app/notify"
	domainleads "surfhouse/internal/domain/leads"
	"surfhouse/internal/domain/pricing"
	"surfhouse/internal/domain/shared/money"
	"surfhouse/internal/infra/storage/memory"
)

type capturePublisher struct {
	mu       sync.Mutex
	messages []capturedMessage
}

type capturedMessage struct {
	Topic string
	Key   string
	Body  []byte
}

func (p *capturePublisher) Publish(_ context.Context, topic, key string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, capturedMessage{Topic: topic, Key: key, Body: payload})
	return nil
}

func newQuoteFixture(t *testing.T) (*QuoteLeadHandler, *memory.LeadRepository, *capturePublisher) {
	t.Helper()
	repo := memory.NewLeadRepository()
	store := memory.NewPricingStore()
	cfg := pricing.Config{
		RoomCategories: []pricing.RoomCategory{
			{ID: "private_double", Name: "Private: Double", PricePerNight: money.BRL(15000), Billing: pricing.BillingPerRoom},
		},
		Items: map[pricing.ItemKey]pricing.ItemPrice{
			pricing.ItemSurfLessons: {Key: pricing.ItemSurfLessons, Name: "Surf lessons", Price: money.BRL(18000), Basis: pricing.BillingPerPerson},
		},
		LessonTiers: []pricing.LessonTier{
			{UpTo: 3, Rate: money.BRL(18000)},
			{UpTo: -1, Rate: money.BRL(14000)},
		},
	}
	if err := store.Replace(context.Background(), cfg); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	pub := &capturePublisher{}
	h := &QuoteLeadHandler{
		Repo:      repo,
		Config:    store,
		Publisher: pub,
		Topic:     "surfhouse.leads",
	}
	return h, repo, pub
}

func TestQuoteLeadHandler(t *testing.T) {
	h, repo, pub := newQuoteFixture(t)
	ctx := context.Background()

	lead := &domainleads.Lead{
		ID:           "lead-1",
		Name:         "Ana Souza",
		Stage:        domainleads.StageContacted,
		People:       2,
		CheckIn:      "2026-09-01",
		CheckOut:     "2026-09-06",
		RoomCategory: "Private: Double",
		ExtraFee:     money.BRL(0),
	}
	if err := repo.Save(ctx, lead); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res, err := h.Handle(ctx, QuoteLeadCommand{LeadID: "lead-1"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !res.Priced {
		t.Fatal("expected a priced result")
	}
	if res.Lead.Quote == nil {
		t.Fatal("quote snapshot missing")
	}
	// 150.00 x 5 nights
	if res.Lead.Quote.FinalTotal.Amount != 75000 {
		t.Errorf("final total = %d, want 75000", res.Lead.Quote.FinalTotal.Amount)
	}

	stored, err := repo.ByID(ctx, "lead-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if stored.Quote == nil {
		t.Error("quote not persisted")
	}

	if len(pub.messages) != 1 {
		t.Fatalf("published messages = %d, want 1", len(pub.messages))
	}
	if pub.messages[0].Topic != "surfhouse.leads" {
		t.Errorf("topic = %q", pub.messages[0].Topic)
	}
	if pub.messages[0].Key != "lead-1" {
		t.Errorf("key = %q, want the aggregate id", pub.messages[0].Key)
	}
}

func TestLeadCommandsPublishEachEventOnce(t *testing.T) {
	repo := memory.NewLeadRepository()
	pub := &capturePublisher{}
	ctx := context.Background()

	create := &CreateLeadHandler{Repo: repo, Publisher: pub, Topic: "surfhouse.leads"}
	created, err := create.Handle(ctx, CreateLeadCommand{CommandID: "lead-1", Name: "Ana Souza", People: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	move := &MoveLeadHandler{Repo: repo, Publisher: pub, Topic: "surfhouse.leads"}
	if _, err := move.Handle(ctx, MoveLeadCommand{LeadID: created.LeadID, Stage: "CONTACTED"}); err != nil {
		t.Fatalf("move: %v", err)
	}

	if len(pub.messages) != 2 {
		t.Fatalf("published messages = %d, want 2 (one per lifecycle event)", len(pub.messages))
	}
	var envelopes []notify.Envelope
	for _, msg := range pub.messages {
		var env notify.Envelope
		if err := json.Unmarshal(msg.Body, &env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		envelopes = append(envelopes, env)
	}
	if envelopes[0].Name != "lead.created" {
		t.Errorf("first event = %q, want lead.created", envelopes[0].Name)
	}
	if envelopes[1].Name != "lead.stage_changed" {
		t.Errorf("second event = %q, want lead.stage_changed; creation must not replay", envelopes[1].Name)
	}
}

func TestQuoteLeadHandlerMalformedDates(t *testing.T) {
	h, repo, pub := newQuoteFixture(t)
	ctx := context.Background()

	lead := &domainleads.Lead{
		ID:       "lead-1",
		Name:     "Ana Souza",
		Stage:    domainleads.StageNew,
		People:   2,
		CheckIn:  "01/09/2026",
		CheckOut: "2026-09-06",
		ExtraFee: money.BRL(0),
	}
	if err := repo.Save(ctx, lead); err != nil {
		t.Fatalf("seed: %v", err)
	}

	res, err := h.Handle(ctx, QuoteLeadCommand{LeadID: "lead-1"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if res.Priced {
		t.Error("malformed dates must come back unpriced, not errored")
	}
	if res.Lead.Quote != nil {
		t.Error("no quote expected for malformed dates")
	}
	if len(pub.messages) != 0 {
		t.Errorf("published messages = %d, want 0", len(pub.messages))
	}
}

func TestQuoteLeadHandlerNotFound(t *testing.T) {
	h, _, _ := newQuoteFixture(t)
	_, err := h.Handle(context.Background(), QuoteLeadCommand{LeadID: "missing"})
	if !errors.Is(err, domainleads.ErrLeadNotFound) {
		t.Fatalf("err = %v, want ErrLeadNotFound", err)
	}
}

func TestQuoteLeadHandlerConfigMissing(t *testing.T) {
	repo := memory.NewLeadRepository()
	h := &QuoteLeadHandler{
		Repo:   repo,
		Config: memory.NewPricingStore(),
	}
	ctx := context.Background()
	lead := &domainleads.Lead{
		ID:       "lead-1",
		Name:     "Ana",
		People:   1,
		CheckIn:  "2026-09-01",
		CheckOut: "2026-09-06",
	}
	if err := repo.Save(ctx, lead); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := h.Handle(ctx, QuoteLeadCommand{LeadID: "lead-1"})
	if !errors.Is(err, pricing.ErrConfigNotFound) {
		t.Fatalf("err = %v, want ErrConfigNotFound", err)
	}
}
