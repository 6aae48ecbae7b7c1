package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"Go"}`, false},
		{"unknown field", `{"name":"Go","extra":1}`, true},
		{"trailing object", `{"name":"Go"}{"name":"Rust"}`, true},
		{"malformed", `{"name":`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Go", p.Name)
		})
	}
}

type customRequest struct {
	From int `validate:"gte=0"`
	To   int `validate:"gte=0"`
}

var errRange = errors.New("from must not exceed to")

func (r customRequest) Validate() error {
	if r.From > r.To {
		return errRange
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(&customRequest{From: 1, To: 2}))
	assert.ErrorIs(t, ValidateRequest(customRequest{From: 3, To: 2}), errRange)
	assert.Error(t, ValidateRequest(&customRequest{From: -1, To: 2}))
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/courses", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	RespondWithError(rec, req, http.StatusUnprocessableEntity, "Title must be unique.", WithField("name"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Title must be unique.", resp["error"])
	assert.Equal(t, "name", resp["field"])
	assert.Equal(t, GetTraceID(ctx), resp["trace_id"])
	assert.NotContains(t, resp, "Code")
}

func TestRespondWithErrorAndLog_HidesInternalError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Failed to list courses",
		errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to list courses", resp.Error)
	assert.Empty(t, resp.Field)
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)

	assert.Empty(t, GetTraceID(context.Background()))

	first := GetTraceID(SetTraceID(context.Background()))
	second := GetTraceID(SetTraceID(context.Background()))
	assert.Regexp(t, hex32, first)
	assert.NotEqual(t, first, second)

	assert.Regexp(t, hex32, fallbackTraceID())
}
