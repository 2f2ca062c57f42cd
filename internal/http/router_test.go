package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/data/repos"
	"github.com/yungbote/pactify-backend/internal/data/repos/testutil"
	"github.com/yungbote/pactify-backend/internal/data/seed"
	httpH "github.com/yungbote/pactify-backend/internal/http/handlers"
	httpMW "github.com/yungbote/pactify-backend/internal/http/middleware"
	"github.com/yungbote/pactify-backend/internal/http/pages"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
	"github.com/yungbote/pactify-backend/internal/realtime"
	"github.com/yungbote/pactify-backend/internal/services"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	auth   services.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn := testutil.DB(t)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(conn, log)
	tokenRepo := repos.NewUserTokenRepo(conn, log)
	contractRepo := repos.NewContractRepo(conn, log)
	templateRepo := repos.NewContractTemplateRepo(conn, log)
	if _, err := seed.Templates(dbctx.Context{Ctx: t.Context()}, templateRepo, log); err != nil {
		t.Fatalf("seed templates: %v", err)
	}

	hub := realtime.NewSSEHub(log)
	authService := services.NewAuthService(conn, log, userRepo, tokenRepo, "test-secret", time.Hour, 24*time.Hour)
	userService := services.NewUserService(conn, log, userRepo)
	contractService := services.NewContractService(conn, log, contractRepo, templateRepo)
	notifier := services.NewContractNotifier(&services.HubEmitter{Hub: hub})
	wizardService := services.NewWizardService(log, services.NewMemoryWizardStore(time.Hour), contractService, notifier)

	tmpl, err := pages.Templates()
	if err != nil {
		t.Fatalf("parse pages: %v", err)
	}
	authHandler := httpH.NewAuthHandler(log, authService, httpH.CookieConfig{})
	engine := NewRouter(RouterConfig{
		Log:             log,
		Pages:           tmpl,
		AuthMiddleware:  httpMW.NewAuthMiddleware(log, authService),
		AuthHandler:     authHandler,
		UserHandler:     httpH.NewUserHandler(userService),
		ContractHandler: httpH.NewContractHandler(log, contractService, nil),
		WizardHandler:   httpH.NewWizardHandler(wizardService),
		RealtimeHandler: httpH.NewRealtimeHandler(log, hub),
		PageHandler:     httpH.NewPageHandler(log, authHandler, userService, contractService, wizardService),
		HealthHandler:   httpH.NewHealthHandler(conn),
	})
	return &testServer{t: t, engine: engine, auth: authService}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(raw)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

// signUp registers a fresh user and returns its access token.
func (s *testServer) signUp() string {
	s.t.Helper()
	email := fmt.Sprintf("%s@example.com", uuid.NewString()[:8])
	rec := s.do(http.MethodPost, "/api/register", "", map[string]string{
		"email": email, "password": "correct-horse", "first_name": "Ada", "last_name": "Lovelace",
	})
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("register: status=%d body=%s", rec.Code, rec.Body.String())
	}
	rec = s.do(http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": "correct-horse"})
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	decode(s.t, rec, &out)
	return out.AccessToken
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode: %v (body=%s)", err, rec.Body.String())
	}
}

type wizardBody struct {
	Wizard struct {
		ID        uuid.UUID `json:"id"`
		FormError string    `json:"form_error"`
		State     struct {
			Step int `json:"step"`
		} `json:"state"`
		PriceLabel string `json:"price_label"`
	} `json:"wizard"`
	Outcome struct {
		Status     string `json:"status"`
		Message    string `json:"message"`
		Redirect   string `json:"redirect"`
		ContractID string `json:"contract_id"`
	} `json:"outcome"`
}

func (s *testServer) wizardAtReview(token string, fields map[string]string) uuid.UUID {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/contract-wizards", token, nil)
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("start wizard: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var w wizardBody
	decode(s.t, rec, &w)
	base := "/api/contract-wizards/" + w.Wizard.ID.String()

	rec = s.do(http.MethodPost, base+"/template", token, map[string]string{"template": "Web Development Contract"})
	decode(s.t, rec, &w)
	if w.Wizard.State.Step != 2 {
		s.t.Fatalf("after template: step=%d", w.Wizard.State.Step)
	}
	for k, v := range fields {
		rec = s.do(http.MethodPatch, base+"/fields", token, map[string]string{"field": k, "value": v})
		if rec.Code != http.StatusOK {
			s.t.Fatalf("set %s: status=%d body=%s", k, rec.Code, rec.Body.String())
		}
	}
	rec = s.do(http.MethodPost, base+"/next", token, nil)
	decode(s.t, rec, &w)
	if w.Wizard.State.Step != 3 {
		s.t.Fatalf("after next: step=%d", w.Wizard.State.Step)
	}
	return w.Wizard.ID
}

func TestAPIRequiresIdentity(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/contracts", "/api/me", "/api/contract-templates"} {
		rec := s.do(http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status=%d", path, rec.Code)
		}
		var env struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		decode(t, rec, &env)
		if env.Error.Code != "unauthorized" {
			t.Fatalf("%s: code=%q", path, env.Error.Code)
		}
	}
}

func TestHealthcheck(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/healthcheck", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestWizardSubmitCreatesOwnedContract(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp()
	id := s.wizardAtReview(token, map[string]string{
		"title": "Landing page", "clientEmail": "client@example.com", "price": "1500",
	})

	rec := s.do(http.MethodPost, "/api/contract-wizards/"+id.String()+"/submit", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var w wizardBody
	decode(t, rec, &w)
	if w.Outcome.Status != "created" || w.Outcome.Redirect != "/dashboard/contracts" || w.Outcome.ContractID == "" {
		t.Fatalf("unexpected outcome: %+v", w.Outcome)
	}

	// The session is consumed by a successful submission.
	if rec := s.do(http.MethodGet, "/api/contract-wizards/"+id.String(), token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("wizard after submit: status=%d", rec.Code)
	}

	rec = s.do(http.MethodGet, "/api/contracts/"+w.Outcome.ContractID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get contract: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var got struct {
		Contract struct {
			Title        string `json:"title"`
			Amount       string `json:"amount"`
			TemplateName string `json:"template_name"`
			Status       string `json:"status"`
		} `json:"contract"`
	}
	decode(t, rec, &got)
	if got.Contract.Title != "Landing page" || got.Contract.Amount != "USD 1500.00" ||
		got.Contract.TemplateName != "Web Development Contract" || got.Contract.Status != "draft" {
		t.Fatalf("unexpected contract: %+v", got.Contract)
	}

	// Another owner sees the same answer as for an id that does not exist.
	other := s.signUp()
	foreign := s.do(http.MethodGet, "/api/contracts/"+w.Outcome.ContractID, other, nil)
	missing := s.do(http.MethodGet, "/api/contracts/"+uuid.NewString(), other, nil)
	if foreign.Code != http.StatusNotFound || foreign.Code != missing.Code || foreign.Body.String() != missing.Body.String() {
		t.Fatalf("foreign=%d %s missing=%d %s", foreign.Code, foreign.Body.String(), missing.Code, missing.Body.String())
	}
}

func TestWizardSubmitValidationStaysOnReview(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp()
	id := s.wizardAtReview(token, map[string]string{"clientEmail": "x@y.com", "price": "10"})

	rec := s.do(http.MethodPost, "/api/contract-wizards/"+id.String()+"/submit", token, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("submit: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var w wizardBody
	decode(t, rec, &w)
	if w.Outcome.Status != "validation_error" || w.Outcome.Message != "title required" {
		t.Fatalf("unexpected outcome: %+v", w.Outcome)
	}
	if w.Wizard.State.Step != 3 || w.Wizard.FormError != "title required" {
		t.Fatalf("unexpected wizard: %+v", w.Wizard)
	}

	rec = s.do(http.MethodGet, "/api/contracts", token, nil)
	var list struct {
		Contracts []json.RawMessage `json:"contracts"`
	}
	decode(t, rec, &list)
	if len(list.Contracts) != 0 {
		t.Fatalf("expected no contracts, got %d", len(list.Contracts))
	}
}

func TestCreateContractEndpointShape(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp()

	rec := s.do(http.MethodPost, "/api/contracts", token, map[string]any{
		"title": "Logo", "clientEmail": "not-an-email", "price": "10",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad email: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var failed struct {
		Error string `json:"error"`
	}
	decode(t, rec, &failed)
	if failed.Error == "" {
		t.Fatalf("expected error string, body=%s", rec.Body.String())
	}

	rec = s.do(http.MethodPost, "/api/contracts", token, map[string]any{
		"title": "Logo", "clientEmail": "c@example.com", "price": "250.5", "template": "custom",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create: status=%d body=%s", rec.Code, rec.Body.String())
	}
	var ok struct {
		Success    bool   `json:"success"`
		ContractID string `json:"contractId"`
	}
	decode(t, rec, &ok)
	if !ok.Success || ok.ContractID == "" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestTemplatesEndWithScratchOption(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp()
	rec := s.do(http.MethodGet, "/api/contract-templates", token, nil)
	var out struct {
		Templates []struct {
			Name string `json:"name"`
		} `json:"templates"`
	}
	decode(t, rec, &out)
	if len(out.Templates) != 4 || out.Templates[3].Name != "custom" {
		t.Fatalf("unexpected templates: %+v", out.Templates)
	}
}

func (s *testServer) page(method, path, token string, form string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form))
	if form != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: httpMW.AccessTokenCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func TestDashboardPagesRedirectWithoutIdentity(t *testing.T) {
	s := newTestServer(t)
	rec := s.page(http.MethodGet, "/dashboard/contracts/"+uuid.NewString(), "", "")
	if rec.Code != http.StatusFound || !strings.HasPrefix(rec.Header().Get("Location"), "/sign-in") {
		t.Fatalf("status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestContractDetailPage(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp()
	rec := s.do(http.MethodPost, "/api/contracts", token, map[string]any{
		"title": "Brand <refresh>", "clientEmail": "c@example.com", "price": "99", "template": "Graphic Design Contract",
	})
	var created struct {
		ContractID string `json:"contractId"`
	}
	decode(t, rec, &created)

	rec = s.page(http.MethodGet, "/dashboard/contracts/"+created.ContractID, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail: status=%d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Brand &lt;refresh&gt;", "Draft", "USD 99.00", "Graphic Design Contract", "No description provided.", "Back to contracts"} {
		if !strings.Contains(body, want) {
			t.Fatalf("detail page missing %q", want)
		}
	}

	other := s.signUp()
	if rec := s.page(http.MethodGet, "/dashboard/contracts/"+created.ContractID, other, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("foreign detail: status=%d", rec.Code)
	}
}

func TestPageSignInAndOut(t *testing.T) {
	s := newTestServer(t)
	email := fmt.Sprintf("%s@example.com", uuid.NewString()[:8])
	s.do(http.MethodPost, "/api/register", "", map[string]string{
		"email": email, "password": "correct-horse", "first_name": "Grace", "last_name": "Hopper",
	})

	rec := s.page(http.MethodPost, "/sign-in", "", "email="+email+"&password=wrong-horse")
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "Invalid email or password.") {
		t.Fatalf("bad sign-in: status=%d", rec.Code)
	}

	rec = s.page(http.MethodPost, "/sign-in", "", "email="+email+"&password=correct-horse&next=https://evil.example")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard/contracts" {
		t.Fatalf("sign-in: status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == httpMW.AccessTokenCookie {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatalf("no access cookie set")
	}

	rec = s.page(http.MethodGet, "/dashboard/contracts", token, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Grace Hopper") {
		t.Fatalf("list page: status=%d", rec.Code)
	}

	rec = s.page(http.MethodPost, "/sign-out", token, "")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/sign-in" {
		t.Fatalf("sign-out: status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
	if rec := s.page(http.MethodGet, "/dashboard/contracts", token, ""); rec.Code != http.StatusFound {
		t.Fatalf("revoked token still accepted: status=%d", rec.Code)
	}

	// Signing out without a session still lands on the sign-in page.
	if rec := s.page(http.MethodPost, "/sign-out", "", ""); rec.Code != http.StatusSeeOther {
		t.Fatalf("anonymous sign-out: status=%d", rec.Code)
	}
}

func TestPageWizardFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp()

	rec := s.page(http.MethodGet, "/dashboard/contracts/new", token, "")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("new: status=%d", rec.Code)
	}
	base := rec.Header().Get("Location")

	rec = s.page(http.MethodGet, base, token, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Start from Scratch") {
		t.Fatalf("step 1: status=%d", rec.Code)
	}
	if rec := s.page(http.MethodPost, base+"/template", token, "template=custom"); rec.Code != http.StatusSeeOther {
		t.Fatalf("template: status=%d", rec.Code)
	}
	rec = s.page(http.MethodPost, base+"/details", token, "title=Retainer&clientEmail=c%40example.com&price=50&paymentType=hourly&currency=EUR")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("details: status=%d body=%s", rec.Code, rec.Body.String())
	}
	rec = s.page(http.MethodGet, base, token, "")
	body := rec.Body.String()
	for _, want := range []string{"Review &amp; Create", "Custom Contract", "Hourly Rate", "EUR 50"} {
		if !strings.Contains(body, want) {
			t.Fatalf("review page missing %q", want)
		}
	}

	rec = s.page(http.MethodPost, base+"/submit", token, "")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard/contracts?created=1" {
		t.Fatalf("submit: status=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}
	rec = s.page(http.MethodGet, "/dashboard/contracts?created=1", token, "")
	if !strings.Contains(rec.Body.String(), "Contract Created") || !strings.Contains(rec.Body.String(), "Retainer") {
		t.Fatalf("list after create missing toast or row")
	}
}
