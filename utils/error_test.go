package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stayfinder/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respond(t *testing.T, env string, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := config.AppConfig.Env
	config.AppConfig.Env = env
	t.Cleanup(func() { config.AppConfig.Env = prev })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	RespondError(c, zap.NewNop(), err)

	var body ErrorResponse
	if jerr := json.Unmarshal(w.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), jerr)
	}
	return w, body
}

func TestRespondErrorHidesDetailInProduction(t *testing.T) {
	w, body := respond(t, "production", Internal("Error creating booking", errors.New("mongo: connection refused")))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if body.Message != "Error creating booking" || body.Error != "" {
		t.Errorf("unexpected body %+v", body)
	}
	if strings.Contains(w.Body.String(), "connection refused") || strings.Contains(w.Body.String(), `"error"`) {
		t.Errorf("detail leaked: %s", w.Body.String())
	}
}

func TestRespondErrorShowsDetailInDevelopment(t *testing.T) {
	_, body := respond(t, "development", Internal("Error creating booking", errors.New("mongo: connection refused")))

	if body.Error != "mongo: connection refused" {
		t.Errorf("error = %q, want the wrapped detail", body.Error)
	}
}

func TestRespondErrorForeignErrorIsInternal(t *testing.T) {
	w, body := respond(t, "production", fmt.Errorf("boom"))

	if w.Code != http.StatusInternalServerError || body.Message != "Internal Server Error" || body.Error != "" {
		t.Errorf("got %d %+v", w.Code, body)
	}
}

func TestRespondErrorClientKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NotFound("Booking not found"), http.StatusNotFound},
		{Forbidden("Not authorized"), http.StatusForbidden},
		{InvalidRange("Check-out must be after check-in"), http.StatusBadRequest},
		{InvalidTransition("cancelled", "confirmed"), http.StatusBadRequest},
		{Conflict("Email already registered"), http.StatusConflict},
		{Unauthenticated("Missing token"), http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w, body := respond(t, "development", tc.err)
		if w.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}
		if body.Error != "" {
			t.Errorf("%v: client errors carry no detail, got %q", tc.err, body.Error)
		}
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("listing: %w", NotFound("Listing not found"))
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("KindOf(wrapped) = %s", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("foreign errors are internal")
	}
}
