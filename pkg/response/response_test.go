package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
	"github.com/maxviazov/baseball-scorecard-service/pkg/response"
)

// fakeInvalid mimics service aggregated validation error to test mapping without reaching into internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "name", Message: "bad"}}}, 400, "invalid_input"},
		{"invalid_outcome", fmt.Errorf("%w: %q", stats.ErrInvalidOutcome, "E6"), 422, "invalid_outcome"},
		{"not_found", repository.ErrNotFound, 404, "not_found"},
		{"not_found_wrapped", fmt.Errorf("load game: %w", repository.ErrNotFound), 404, "not_found"},
		{"already_exists", repository.ErrAlreadyExists, 409, "already_exists"},
		{"conflict", repository.ErrConflict, 409, "conflict"},
		{"internal", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			if code != tc.wantCode || payload.Error != tc.wantErr {
				t.Fatalf("unexpected mapping: got (%d,%s) want (%d,%s)", code, payload.Error, tc.wantCode, tc.wantErr)
			}
			if tc.wantErr == "invalid_input" && len(payload.FieldErrors) == 0 {
				t.Fatalf("expected field errors in payload")
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	code, payload := response.MapError(nil)
	if code != http.StatusOK || payload.Error != "ok" {
		t.Fatalf("unexpected mapping for nil: (%d,%s)", code, payload.Error)
	}
}

func TestWriteError_AbortsWithEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.GET("/x", func(c *gin.Context) {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be > 0"}}))
	}, func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if reached {
		t.Fatalf("expected chain to be aborted")
	}
	var body response.ErrorPayload
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.FieldErrors) != 1 || body.FieldErrors[0].Field != "id" {
		t.Fatalf("unexpected field errors: %+v", body.FieldErrors)
	}
}
