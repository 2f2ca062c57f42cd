package seed

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/yungbote/pactify-backend/internal/data/repos"
	types "github.com/yungbote/pactify-backend/internal/domain"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

const templateCatalogEnv = "CONTRACT_TEMPLATES_YAML"

//go:embed templates.yaml
var templateCatalogFS embed.FS

type yamlCatalog struct {
	Catalog   string         `yaml:"catalog"`
	Version   int            `yaml:"version"`
	Templates []yamlTemplate `yaml:"templates"`
}

type yamlTemplate struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Sections    []yamlSection `yaml:"sections"`
}

type yamlSection struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// LoadTemplates parses the template catalog (embedded, or the file named by
// CONTRACT_TEMPLATES_YAML) into rows ready for upsert.
func LoadTemplates() ([]*types.ContractTemplate, error) {
	data, err := readTemplateCatalog()
	if err != nil {
		return nil, err
	}
	return parseTemplates(data)
}

// Templates upserts the catalog by name.
func Templates(dbc dbctx.Context, repo repos.ContractTemplateRepo, log *logger.Logger) (int, error) {
	rows, err := LoadTemplates()
	if err != nil {
		return 0, fmt.Errorf("load template catalog: %w", err)
	}
	if err := repo.Upsert(dbc, rows); err != nil {
		return 0, fmt.Errorf("upsert templates: %w", err)
	}
	if log != nil {
		log.Info("Seeded contract templates", "count", len(rows))
	}
	return len(rows), nil
}

func readTemplateCatalog() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(templateCatalogEnv)); path != "" {
		return os.ReadFile(path)
	}
	return templateCatalogFS.ReadFile("templates.yaml")
}

func parseTemplates(data []byte) ([]*types.ContractTemplate, error) {
	var catalog yamlCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	if err := validateCatalog(&catalog); err != nil {
		return nil, err
	}

	out := make([]*types.ContractTemplate, 0, len(catalog.Templates))
	for _, t := range catalog.Templates {
		content, err := json.Marshal(sectionsDocument(t.Sections))
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", t.Name, err)
		}
		out = append(out, &types.ContractTemplate{
			Name:        strings.TrimSpace(t.Name),
			Description: strings.TrimSpace(t.Description),
			Content:     datatypes.JSON(content),
		})
	}
	return out, nil
}

func validateCatalog(c *yamlCatalog) error {
	if strings.TrimSpace(c.Catalog) != "contract_templates" {
		return fmt.Errorf("unexpected catalog: %s", c.Catalog)
	}
	if len(c.Templates) == 0 {
		return errors.New("no templates defined")
	}
	seen := map[string]bool{}
	for _, t := range c.Templates {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return errors.New("template name is required")
		}
		if strings.EqualFold(name, types.CustomTemplate) {
			return fmt.Errorf("template name %q is reserved", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate template name: %s", name)
		}
		seen[name] = true
	}
	return nil
}

func sectionsDocument(sections []yamlSection) types.DocumentNode {
	doc := types.DocumentNode{Type: "doc"}
	for _, s := range sections {
		if h := strings.TrimSpace(s.Heading); h != "" {
			doc.Content = append(doc.Content, types.DocumentNode{
				Type:    "heading",
				Attrs:   map[string]any{"level": 2},
				Content: []types.DocumentNode{{Type: "text", Text: h}},
			})
		}
		if b := strings.TrimSpace(s.Body); b != "" {
			doc.Content = append(doc.Content, types.DocumentNode{
				Type:    "paragraph",
				Content: []types.DocumentNode{{Type: "text", Text: b}},
			})
		}
	}
	if len(doc.Content) == 0 {
		doc.Content = []types.DocumentNode{{Type: "paragraph"}}
	}
	return doc
}
