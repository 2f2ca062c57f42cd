package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsWritesPrometheusText(t *testing.T) {
	m := NewMetrics(time.Second)
	m.ObserveAPI("GET", "/api/contracts/:id", "200", 20*time.Millisecond)
	m.ObserveAPI("POST", "/api/contracts", "500", time.Second)
	m.ObserveWizardSubmission("created", 50*time.Millisecond)
	m.IncContractsCreated()

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`pactify_api_requests_total{method="GET",route="/api/contracts/:id",status="200"} 1.000000`,
		`pactify_api_requests_error_total 1.000000`,
		`pactify_wizard_submissions_total{status="created"} 1.000000`,
		`pactify_wizard_submit_duration_seconds_bucket{status="created",le="+Inf"} 1`,
		`pactify_contracts_created_total 1.000000`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveWizardSubmission("error", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil write: %v", err)
	}
}
