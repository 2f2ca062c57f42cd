package wizard

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yungbote/pactify-backend/internal/domain/contracts"
)

func filledDetails(t *testing.T) State {
	t.Helper()
	s := New()
	if err := s.SelectTemplate("Web Development Contract"); err != nil {
		t.Fatalf("SelectTemplate: %v", err)
	}
	for f, v := range map[Field]string{
		FieldTitle:       "Site rebuild",
		FieldDescription: "New marketing site",
		FieldClientEmail: "x@y.com",
		FieldPrice:       "10",
		FieldCurrency:    "EUR",
		FieldPaymentType: "hourly",
	} {
		if err := s.Set(f, v); err != nil {
			t.Fatalf("Set(%s): %v", f, err)
		}
	}
	return s
}

func TestSelectTemplateAdvancesAndRecords(t *testing.T) {
	s := New()
	if err := s.SelectTemplate("Web Development Contract"); err != nil {
		t.Fatalf("SelectTemplate: %v", err)
	}
	if s.Step != StepEnterDetails {
		t.Fatalf("expected step 2, got %d", s.Step)
	}
	if s.Draft.SelectedTemplate == nil || *s.Draft.SelectedTemplate != "Web Development Contract" {
		t.Fatalf("template not recorded: %+v", s.Draft.SelectedTemplate)
	}
}

func TestSelectTemplateRules(t *testing.T) {
	s := New()
	if err := s.SelectTemplate("  "); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if s.Step != StepSelectTemplate {
		t.Fatalf("step changed on invalid selection")
	}
	if err := s.Next(); !IsValidation(err) {
		t.Fatalf("Next without template: expected validation error, got %v", err)
	}

	if err := s.SelectTemplate(contracts.CustomTemplate); err != nil {
		t.Fatalf("SelectTemplate(custom): %v", err)
	}
	if err := s.SelectTemplate("Graphic Design Contract"); !errors.Is(err, ErrStepMismatch) {
		t.Fatalf("expected ErrStepMismatch, got %v", err)
	}
	if s.Draft.TemplateLabel() != "Custom Contract" {
		t.Fatalf("unexpected template label %q", s.Draft.TemplateLabel())
	}
}

func TestStepBoundsAreNoOps(t *testing.T) {
	s := New()
	before := s
	s.Back()
	if !reflect.DeepEqual(s, before) {
		t.Fatalf("Back at step 1 changed state: %+v", s)
	}

	s = filledDetails(t)
	if err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if s.Step != StepReviewSubmit {
		t.Fatalf("expected step 3, got %d", s.Step)
	}
	before = s
	if err := s.Next(); err != nil {
		t.Fatalf("Next at step 3: %v", err)
	}
	if !reflect.DeepEqual(s, before) {
		t.Fatalf("Next at step 3 changed state: %+v", s)
	}
}

func TestDraftSurvivesForwardThenBack(t *testing.T) {
	s := filledDetails(t)
	draft := s.Draft

	if err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	s.Back()
	if s.Step != StepEnterDetails || !reflect.DeepEqual(s.Draft, draft) {
		t.Fatalf("draft changed after 2→3→2: %+v", s.Draft)
	}
	s.Back()
	if s.Step != StepSelectTemplate || !reflect.DeepEqual(s.Draft, draft) {
		t.Fatalf("draft changed after 2→1: %+v", s.Draft)
	}
	if err := s.Next(); err != nil {
		t.Fatalf("Next with recorded template: %v", err)
	}
	if s.Step != StepEnterDetails {
		t.Fatalf("expected step 2, got %d", s.Step)
	}
}

func TestNextFromDetailsIgnoresEmptyFields(t *testing.T) {
	s := New()
	_ = s.SelectTemplate(contracts.CustomTemplate)
	if err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if s.Step != StepReviewSubmit {
		t.Fatalf("expected step 3, got %d", s.Step)
	}
}

func TestSetRejectsUnknownAndOutOfEnumValues(t *testing.T) {
	if _, err := ParseField("owner_id"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if f, err := ParseField("clientEmail"); err != nil || f != FieldClientEmail {
		t.Fatalf("ParseField(clientEmail) = %q, %v", f, err)
	}

	s := New()
	if err := s.Set(Field("status"), "signed"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := s.Set(FieldCurrency, "JPY"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := s.Set(FieldPaymentType, "milestone"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if s.Draft.Currency != contracts.CurrencyUSD || s.Draft.PaymentType != contracts.PaymentFixed {
		t.Fatalf("defaults overwritten: %+v", s.Draft)
	}
	if s.Draft.PriceLabel() != "Fixed Price" {
		t.Fatalf("unexpected price label %q", s.Draft.PriceLabel())
	}
	_ = s.Set(FieldPaymentType, "hourly")
	if s.Draft.PriceLabel() != "Hourly Rate" {
		t.Fatalf("unexpected price label %q", s.Draft.PriceLabel())
	}
}

func TestValidateOrder(t *testing.T) {
	cases := []struct {
		name  string
		title string
		email string
		price string
		want  string
	}{
		{"missing title", "", "x@y.com", "10", "title required"},
		{"missing everything", "", "", "", "title required"},
		{"missing email", "T", "", "10", "email required"},
		{"missing price", "T", "x@y.com", " ", "price required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			s.Draft.Title, s.Draft.ClientEmail, s.Draft.Price = tc.title, tc.email, tc.price
			err := s.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Message != tc.want {
				t.Fatalf("Validate() = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestRequestMapping(t *testing.T) {
	s := filledDetails(t)
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	tpl := "Web Development Contract"
	want := contracts.CreateRequest{
		Title:       "Site rebuild",
		Description: "New marketing site",
		ClientEmail: "x@y.com",
		Price:       "10",
		Currency:    "EUR",
		PaymentType: "hourly",
		Template:    &tpl,
	}
	if got := s.Request(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Request() = %+v, want %+v", got, want)
	}
}
