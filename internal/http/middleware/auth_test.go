package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/pactify-backend/internal/domain"
	"github.com/yungbote/pactify-backend/internal/platform/ctxutil"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/services"
)

type stubAuth struct {
	valid  string
	userID uuid.UUID
}

func (s stubAuth) RegisterUser(context.Context, services.RegisterInput) (*types.User, error) {
	return nil, nil
}
func (s stubAuth) LoginUser(context.Context, string, string) (string, string, error) {
	return "", "", nil
}
func (s stubAuth) RefreshUser(context.Context, string) (string, string, error) { return "", "", nil }
func (s stubAuth) LogoutUser(context.Context) error                          { return nil }
func (s stubAuth) GetAccessTTL() time.Duration                               { return time.Hour }

func (s stubAuth) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	if token != s.valid {
		return ctx, services.ErrAuthenticationMissing
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{TokenString: token, UserID: s.userID}), nil
}

func newGuardedRouter(t *testing.T, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	am := NewAuthMiddleware(log, stubAuth{valid: "good", userID: userID})
	echo := func(c *gin.Context) { c.String(http.StatusOK, ctxutil.UserID(c.Request.Context()).String()) }

	r := gin.New()
	r.GET("/api/me", am.RequireAuth(), echo)
	r.GET("/dashboard/contracts", am.RequireSession(), echo)
	return r
}

func TestRequireAuthAcceptsHeaderQueryAndCookie(t *testing.T) {
	userID := uuid.New()
	r := newGuardedRouter(t, userID)

	cases := map[string]func(*http.Request){
		"bearer": func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") },
		"query":  func(req *http.Request) { req.URL.RawQuery = "token=good" },
		"cookie": func(req *http.Request) { req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"}) },
	}
	for name, set := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			set(req)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK || rec.Body.String() != userID.String() {
				t.Fatalf("got status=%d body=%q", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRequireAuthRejectsMissingAndBadTokens(t *testing.T) {
	r := newGuardedRouter(t, uuid.New())
	for _, header := range []string{"", "Bearer bad"} {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: got status=%d", header, rec.Code)
		}
	}
}

func TestRequireSessionRedirectsToSignIn(t *testing.T) {
	r := newGuardedRouter(t, uuid.New())
	req := httptest.NewRequest(http.MethodGet, "/dashboard/contracts", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("got status=%d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/sign-in?next=%2Fdashboard%2Fcontracts" {
		t.Fatalf("unexpected redirect: %q", loc)
	}
}
