// Package wizard is the three-step contract creation flow: template selection,
// detail entry, then review and submit. It holds no IO; callers persist State.
package wizard

import (
	"strings"

	"github.com/yungbote/pactify-backend/internal/domain/contracts"
)

type Step int

const (
	StepSelectTemplate Step = 1
	StepEnterDetails   Step = 2
	StepReviewSubmit   Step = 3
)

func (s Step) String() string {
	switch s {
	case StepSelectTemplate:
		return "select_template"
	case StepEnterDetails:
		return "enter_details"
	case StepReviewSubmit:
		return "review_submit"
	default:
		return "unknown"
	}
}

// Draft is the not-yet-persisted contract input.
type Draft struct {
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	ClientEmail      string                `json:"clientEmail"`
	Price            string                `json:"price"`
	Currency         contracts.Currency    `json:"currency"`
	PaymentType      contracts.PaymentType `json:"paymentType"`
	SelectedTemplate *string               `json:"selectedTemplate"`
}

type State struct {
	Step  Step  `json:"step"`
	Draft Draft `json:"draft"`
}

func New() State {
	return State{
		Step: StepSelectTemplate,
		Draft: Draft{
			Currency:    contracts.CurrencyUSD,
			PaymentType: contracts.PaymentFixed,
		},
	}
}

// SelectTemplate records the choice (a catalog name or "custom") and advances to details.
func (s *State) SelectTemplate(name string) error {
	if s.Step != StepSelectTemplate {
		return ErrStepMismatch
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid("template required")
	}
	s.Draft.SelectedTemplate = &name
	s.Step = StepEnterDetails
	return nil
}

// Next moves forward one step. Leaving step 1 needs a selected template;
// field values are not checked until submission. No-op at step 3.
func (s *State) Next() error {
	switch s.Step {
	case StepSelectTemplate:
		if s.Draft.SelectedTemplate == nil {
			return invalid("template required")
		}
		s.Step = StepEnterDetails
	case StepEnterDetails:
		s.Step = StepReviewSubmit
	}
	return nil
}

// Back moves one step backward keeping every draft value. No-op at step 1.
func (s *State) Back() {
	if s.Step > StepSelectTemplate {
		s.Step--
	}
}

// Set assigns one draft field. Unknown fields and out-of-enum values leave the draft untouched.
func (s *State) Set(f Field, value string) error {
	set, ok := setters[f]
	if !ok {
		return ErrUnknownField
	}
	return set(&s.Draft, value)
}

// Validate is the synchronous gate run before any create call.
func (s State) Validate() error {
	switch {
	case strings.TrimSpace(s.Draft.Title) == "":
		return invalid("title required")
	case strings.TrimSpace(s.Draft.ClientEmail) == "":
		return invalid("email required")
	case strings.TrimSpace(s.Draft.Price) == "":
		return invalid("price required")
	}
	return nil
}

func (s State) Request() contracts.CreateRequest {
	var tpl *string
	if s.Draft.SelectedTemplate != nil {
		v := *s.Draft.SelectedTemplate
		tpl = &v
	}
	return contracts.CreateRequest{
		Title:       s.Draft.Title,
		Description: s.Draft.Description,
		ClientEmail: s.Draft.ClientEmail,
		Price:       s.Draft.Price,
		Currency:    string(s.Draft.Currency),
		PaymentType: string(s.Draft.PaymentType),
		Template:    tpl,
	}
}

// PriceLabel names the price input for the current payment type.
func (d Draft) PriceLabel() string {
	if d.PaymentType == contracts.PaymentHourly {
		return "Hourly Rate"
	}
	return "Fixed Price"
}

// TemplateLabel is the review-step name of the selected template.
func (d Draft) TemplateLabel() string {
	if d.SelectedTemplate == nil {
		return ""
	}
	if *d.SelectedTemplate == contracts.CustomTemplate {
		return "Custom Contract"
	}
	return *d.SelectedTemplate
}
