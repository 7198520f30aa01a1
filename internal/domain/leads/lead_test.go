package leads

import (
	"errors"
	"testing"
	"time"

	"surfhouse/internal/domain/pricing"
	"surfhouse/internal/domain/shared/money"
)

func newTestLead(t *testing.T) *Lead {
	t.Helper()
	l, err := NewLead(CreateParams{
		ID:        "lead-1",
		Name:      "Ana Souza",
		Email:     "ana@example.com",
		People:    2,
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewLead: %v", err)
	}
	return l
}

func TestNewLeadValidation(t *testing.T) {
	if _, err := NewLead(CreateParams{Name: ""}); !errors.Is(err, ErrNameRequired) {
		t.Errorf("empty name: err = %v, want ErrNameRequired", err)
	}
	if _, err := NewLead(CreateParams{Name: "Ana", People: -1}); !errors.Is(err, ErrInvalidPeople) {
		t.Errorf("negative people: err = %v, want ErrInvalidPeople", err)
	}

	l, err := NewLead(CreateParams{Name: "Ana"})
	if err != nil {
		t.Fatalf("NewLead: %v", err)
	}
	if l.People != 1 {
		t.Errorf("people = %d, want default 1", l.People)
	}
	if l.Stage != StageNew {
		t.Errorf("stage = %q, want %q", l.Stage, StageNew)
	}
}

func TestNewLeadRecordsEvent(t *testing.T) {
	l := newTestLead(t)
	events := l.PendingEvents()
	if len(events) != 1 {
		t.Fatalf("pending events = %d, want 1", len(events))
	}
	if events[0].EventName() != "lead.created" {
		t.Errorf("event = %q, want lead.created", events[0].EventName())
	}
}

func TestMoveTo(t *testing.T) {
	l := newTestLead(t)
	l.ClearEvents()
	now := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)

	if err := l.MoveTo(Stage("LIMBO"), now); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("unknown stage: err = %v, want ErrUnknownStage", err)
	}

	if err := l.MoveTo(StageNew, now); err != nil {
		t.Fatalf("same-stage move: %v", err)
	}
	if len(l.PendingEvents()) != 0 {
		t.Error("same-stage move should not record an event")
	}

	if err := l.MoveTo(StageContacted, now); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if l.Stage != StageContacted {
		t.Errorf("stage = %q, want %q", l.Stage, StageContacted)
	}
	events := l.PendingEvents()
	if len(events) != 1 {
		t.Fatalf("pending events = %d, want 1", len(events))
	}
	change, ok := events[0].(LeadStageChanged)
	if !ok {
		t.Fatalf("event type = %T, want LeadStageChanged", events[0])
	}
	if change.From != StageNew || change.To != StageContacted {
		t.Errorf("transition = %s->%s, want NEW->CONTACTED", change.From, change.To)
	}
}

func TestApplyQuote(t *testing.T) {
	result := pricing.Result{
		AccommodationCost: money.BRL(75000),
		TotalCost:         money.BRL(215000),
	}
	now := time.Date(2026, 8, 3, 15, 0, 0, 0, time.UTC)

	t.Run("plain", func(t *testing.T) {
		l := newTestLead(t)
		l.ExtraFee = money.BRL(0)
		l.ApplyQuote(result, now)
		if l.Quote == nil {
			t.Fatal("quote not stored")
		}
		if l.Quote.FinalTotal.Amount != 215000 {
			t.Errorf("final total = %d, want 215000", l.Quote.FinalTotal.Amount)
		}
	})

	t.Run("accommodation override", func(t *testing.T) {
		l := newTestLead(t)
		l.ExtraFee = money.BRL(0)
		override := money.BRL(60000)
		l.AccommodationOverride = &override
		l.ApplyQuote(result, now)
		// 215000 - 75000 + 60000
		if l.Quote.FinalTotal.Amount != 200000 {
			t.Errorf("final total = %d, want 200000", l.Quote.FinalTotal.Amount)
		}
	})

	t.Run("extra fee", func(t *testing.T) {
		l := newTestLead(t)
		l.ExtraFee = money.BRL(5000)
		l.ApplyQuote(result, now)
		if l.Quote.FinalTotal.Amount != 220000 {
			t.Errorf("final total = %d, want 220000", l.Quote.FinalTotal.Amount)
		}
	})

	t.Run("records event", func(t *testing.T) {
		l := newTestLead(t)
		l.ClearEvents()
		l.ExtraFee = money.BRL(0)
		l.ApplyQuote(result, now)
		events := l.PendingEvents()
		if len(events) != 1 {
			t.Fatalf("pending events = %d, want 1", len(events))
		}
		quoted, ok := events[0].(LeadQuoted)
		if !ok {
			t.Fatalf("event type = %T, want LeadQuoted", events[0])
		}
		if quoted.Total.Amount != 215000 {
			t.Errorf("event total = %d, want 215000", quoted.Total.Amount)
		}
	})
}

func TestValidStage(t *testing.T) {
	for _, s := range Stages() {
		if !ValidStage(s) {
			t.Errorf("ValidStage(%q) = false", s)
		}
	}
	if ValidStage(Stage("ARCHIVED")) {
		t.Error("ValidStage(ARCHIVED) = true, want false")
	}
}
