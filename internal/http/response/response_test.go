package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pactify-backend/internal/platform/apierr"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, rec.Body.String())
	}
	return env
}

func TestRespondAPIErrorUsesCarriedStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondAPIError(c, apierr.New(http.StatusNotFound, "contract_not_found", errors.New("contract not found")))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
	env := decodeEnvelope(t, rec)
	if env.Error.Code != "contract_not_found" || env.Error.Message != "contract not found" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestRespondAPIErrorHidesUnmappedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondAPIError(c, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got=%d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error.Code != "internal_error" || env.Error.Message != "internal server error" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestRespondAPIErrorWithoutCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondAPIError(c, apierr.New(http.StatusNotFound, "user_not_found", nil))

	env := decodeEnvelope(t, rec)
	if env.Error.Message != "Not Found" || env.Error.Code != "user_not_found" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
