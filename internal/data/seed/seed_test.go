package seed

import (
	"context"
	"testing"

	"github.com/yungbote/pactify-backend/internal/data/repos"
	"github.com/yungbote/pactify-backend/internal/data/repos/testutil"
	"github.com/yungbote/pactify-backend/internal/domain/contracts"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
)

func TestLoadTemplatesEmbeddedCatalog(t *testing.T) {
	rows, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}
	want := map[string]bool{
		"Basic Freelance Agreement": false,
		"Web Development Contract":  false,
		"Graphic Design Contract":   false,
	}
	for _, r := range rows {
		if _, ok := want[r.Name]; !ok {
			t.Fatalf("unexpected template %q", r.Name)
		}
		want[r.Name] = true
		if _, ok := contracts.ParseDocument(r.Content); !ok {
			t.Fatalf("template %q content is not a valid document: %s", r.Name, r.Content)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("missing template %q", name)
		}
	}
}

func TestParseTemplatesRejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"wrong catalog": "catalog: other\ntemplates:\n  - name: A\n",
		"empty":         "catalog: contract_templates\ntemplates: []\n",
		"blank name":    "catalog: contract_templates\ntemplates:\n  - name: ' '\n",
		"reserved":      "catalog: contract_templates\ntemplates:\n  - name: custom\n",
		"duplicate":     "catalog: contract_templates\ntemplates:\n  - name: A\n  - name: A\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseTemplates([]byte(raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTemplatesIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewContractTemplateRepo(db, log)
	dbc := dbctx.Context{Ctx: context.Background()}

	for i := 0; i < 2; i++ {
		if _, err := Templates(dbc, repo, log); err != nil {
			t.Fatalf("Templates run %d: %v", i, err)
		}
	}
	all, err := repo.List(dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 templates after two seeds, got %d", len(all))
	}
}
