package validate

import (
	"strings"
	"testing"
)

type ticketForm struct {
	Title       string `validate:"required,min=5"`
	Description string `validate:"required,min=10"`
	Priority    string `validate:"required,oneof=low medium high urgent"`
	Category    string `validate:"required,oneof=Policy Payment Technical Billing"`
}

func TestStructPassesValidInput(t *testing.T) {
	fields := Struct(ticketForm{
		Title:       "Payment failed",
		Description: "Premium payment bounced twice this month",
		Priority:    "high",
		Category:    "Payment",
	})
	if len(fields) != 0 {
		t.Fatalf("expected no failures, got %v", fields)
	}
}

func TestStructReportsEveryFailingField(t *testing.T) {
	fields := Struct(ticketForm{
		Title:       "Hi",
		Description: "too short",
		Priority:    "asap",
		Category:    "Gardening",
	})
	for _, key := range []string{"title", "description", "priority", "category"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing failure for %q in %v", key, fields)
		}
	}
	if len(fields) != 4 {
		t.Fatalf("failures = %d, want 4: %v", len(fields), fields)
	}
}

func TestStructMessages(t *testing.T) {
	fields := Struct(ticketForm{
		Description: "long enough description",
		Priority:    "urgent",
		Category:    "Billing",
	})
	msg, ok := fields["title"].(string)
	if !ok {
		t.Fatalf("missing title failure in %v", fields)
	}
	if !strings.Contains(msg, "required") {
		t.Fatalf("title message = %q, want a required message", msg)
	}

	fields = Struct(ticketForm{
		Title:       "Valid title",
		Description: "long enough description",
		Priority:    "soon",
		Category:    "Billing",
	})
	msg, ok = fields["priority"].(string)
	if !ok {
		t.Fatalf("missing priority failure in %v", fields)
	}
	if !strings.Contains(msg, "invalid priority") {
		t.Fatalf("priority message = %q, want an invalid-value message", msg)
	}
}

type emailForm struct {
	Email string `validate:"required,email"`
}

func TestStructEmailTag(t *testing.T) {
	if fields := Struct(emailForm{Email: "amit@example.com"}); len(fields) != 0 {
		t.Fatalf("expected no failures, got %v", fields)
	}
	fields := Struct(emailForm{Email: "not-an-email"})
	if _, ok := fields["email"]; !ok {
		t.Fatalf("expected email failure, got %v", fields)
	}
}
