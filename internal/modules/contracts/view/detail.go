package view

import (
	"html/template"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/domain/contracts"
)

const (
	createdOnLayout = "Jan 2, 2006"
	noDescription   = "No description provided."
	customTemplate  = "Custom Contract"
)

// Detail is the read-only contract page model.
type Detail struct {
	ID           uuid.UUID
	Title        string
	Badge        Badge
	CreatedOn    string
	Description  string
	ClientEmail  string
	Amount       string
	PaymentType  string
	TemplateName string
	Content      template.HTML
}

func NewDetail(c *contracts.Contract) Detail {
	if c == nil {
		return Detail{}
	}
	status := string(c.Status)
	d := Detail{
		ID:           c.ID,
		Title:        c.Title,
		Badge:        StatusBadge(&status),
		CreatedOn:    "N/A",
		Description:  noDescription,
		ClientEmail:  c.ClientEmail,
		Amount:       FormatAmount(c.TotalAmount, string(c.Currency)),
		PaymentType:  paymentTypeLabel(c.PaymentType),
		TemplateName: customTemplate,
		Content:      RenderDocument(NormalizeDocument(c.Content)),
	}
	if !c.CreatedAt.IsZero() {
		d.CreatedOn = c.CreatedAt.Format(createdOnLayout)
	}
	if desc := strings.TrimSpace(c.Description); desc != "" {
		d.Description = desc
	}
	if c.Template != nil && strings.TrimSpace(c.Template.Name) != "" {
		d.TemplateName = c.Template.Name
	}
	return d
}

// Row is one line of the contracts list.
type Row struct {
	ID        uuid.UUID
	Title     string
	Badge     Badge
	Amount    string
	CreatedOn string
}

func NewRows(list []*contracts.Contract) []Row {
	out := make([]Row, 0, len(list))
	for _, c := range list {
		if c == nil {
			continue
		}
		d := NewDetail(c)
		out = append(out, Row{ID: d.ID, Title: d.Title, Badge: d.Badge, Amount: d.Amount, CreatedOn: d.CreatedOn})
	}
	return out
}

func paymentTypeLabel(p contracts.PaymentType) string {
	if p == contracts.PaymentHourly {
		return "Hourly Rate"
	}
	return "Fixed Price"
}
