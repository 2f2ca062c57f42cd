package view

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/yungbote/pactify-backend/internal/domain/contracts"
	"github.com/yungbote/pactify-backend/internal/domain/user"
)

func TestStatusBadgeIsTotal(t *testing.T) {
	for _, s := range contracts.AllStatuses {
		raw := string(s)
		b := StatusBadge(&raw)
		if b.Label == "" || b.Label == "Unknown" {
			t.Fatalf("status %q rendered as %+v", s, b)
		}
	}
	for _, raw := range []string{"", "archived", "DRAFT"} {
		v := raw
		if got := StatusBadge(&v); got != unknownBadge {
			t.Fatalf("StatusBadge(%q) = %+v", raw, got)
		}
	}
	if got := StatusBadge(nil); got != unknownBadge {
		t.Fatalf("StatusBadge(nil) = %+v", got)
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(decimal.NewNullDecimal(decimal.RequireFromString("1500")), ""); got != "USD 1500.00" {
		t.Fatalf("got %q", got)
	}
	if got := FormatAmount(decimal.NewNullDecimal(decimal.RequireFromString("12.5")), "EUR"); got != "EUR 12.50" {
		t.Fatalf("got %q", got)
	}
	if got := FormatAmount(decimal.NullDecimal{}, "GBP"); got != "Not specified" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderDocumentEscapesAndSanitizes(t *testing.T) {
	doc := NormalizeDocument([]byte(`{"type":"doc","content":[
		{"type":"heading","attrs":{"level":3},"content":[{"type":"text","text":"Terms"}]},
		{"type":"paragraph","content":[
			{"type":"text","text":"<script>alert(1)</script>"},
			{"type":"text","text":"bold","marks":[{"type":"bold"}]},
			{"type":"text","text":"bad link","marks":[{"type":"link","attrs":{"href":"javascript:alert(1)"}}]}
		]}
	]}`))
	out := string(RenderDocument(doc))
	if !strings.Contains(out, "<h3>Terms</h3>") {
		t.Fatalf("missing heading: %s", out)
	}
	if strings.Contains(out, "<script>") || strings.Contains(out, "javascript:") {
		t.Fatalf("unsafe output: %s", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("missing mark: %s", out)
	}
}

func TestNewDetailFallbacks(t *testing.T) {
	d := NewDetail(&contracts.Contract{
		ID:     uuid.New(),
		Title:  "Empty",
		Status: "weird",
	})
	if d.Badge.Label != "Unknown" || d.CreatedOn != "N/A" || d.Description != "No description provided." {
		t.Fatalf("unexpected fallbacks: %+v", d)
	}
	if d.TemplateName != "Custom Contract" || d.Amount != "Not specified" {
		t.Fatalf("unexpected fallbacks: %+v", d)
	}
	if !strings.Contains(string(d.Content), contracts.EmptyDocumentText) {
		t.Fatalf("expected default skeleton, got %s", d.Content)
	}

	created := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	d = NewDetail(&contracts.Contract{
		Title:       "Full",
		Status:      contracts.StatusSigned,
		Description: "Scope",
		CreatedAt:   created,
		Template:    &contracts.ContractTemplate{Name: "Web Development Contract"},
		Content:     datatypes.JSON(`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Hello"}]}]}`),
	})
	if d.CreatedOn != "Mar 4, 2025" || d.TemplateName != "Web Development Contract" || d.Badge.Label != "Signed" {
		t.Fatalf("unexpected detail: %+v", d)
	}
	if !strings.Contains(string(d.Content), "<p>Hello</p>") {
		t.Fatalf("unexpected content %s", d.Content)
	}
}

func TestNewHeaderLabels(t *testing.T) {
	cases := map[user.UserType]string{
		user.UserTypeFreelancer: "Freelancer",
		user.UserTypeClient:     "Client",
		user.UserTypeBoth:       "Freelancer & Client",
	}
	for ut, want := range cases {
		h := NewHeader(&user.User{DisplayName: "ada", UserType: ut})
		if h.UserTypeLabel != want {
			t.Fatalf("%s: got %q", ut, h.UserTypeLabel)
		}
		if h.Initial != "A" {
			t.Fatalf("initial: got %q", h.Initial)
		}
	}
	if h := NewHeader(&user.User{Email: "zed@example.com"}); h.DisplayName != "zed" || h.Initial != "Z" {
		t.Fatalf("email fallback: %+v", h)
	}
}

func TestTemplateOptionsEndWithScratch(t *testing.T) {
	opts := TemplateOptions([]*contracts.ContractTemplate{
		{Name: "Basic Freelance Agreement", Description: "simple"},
		nil,
		{Name: "Web Development Contract"},
	})
	if len(opts) != 3 {
		t.Fatalf("got %d options", len(opts))
	}
	if opts[0].Name != "Basic Freelance Agreement" || opts[0].Description != "simple" {
		t.Fatalf("unexpected first option: %+v", opts[0])
	}
	last := opts[len(opts)-1]
	if !last.Custom || last.Name != contracts.CustomTemplate || last.Title != "Start from Scratch" {
		t.Fatalf("unexpected scratch option: %+v", last)
	}
}
