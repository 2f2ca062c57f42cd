package view

import "github.com/yungbote/pactify-backend/internal/domain/contracts"

// TemplateOption is one card on the first wizard step.
type TemplateOption struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Custom      bool   `json:"custom,omitempty"`
}

var scratchOption = TemplateOption{
	Name:        contracts.CustomTemplate,
	Title:       "Start from Scratch",
	Description: "Create a custom contract with your own terms and conditions.",
	Custom:      true,
}

// TemplateOptions lists the catalog in order followed by the scratch option.
func TemplateOptions(catalog []*contracts.ContractTemplate) []TemplateOption {
	out := make([]TemplateOption, 0, len(catalog)+1)
	for _, t := range catalog {
		if t == nil || t.Name == contracts.CustomTemplate {
			continue
		}
		out = append(out, TemplateOption{Name: t.Name, Title: t.Name, Description: t.Description})
	}
	return append(out, scratchOption)
}
