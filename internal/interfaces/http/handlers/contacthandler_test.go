package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/application/contact"
	"lumen/internal/interfaces/http/handlers/testutil"
	"lumen/internal/shared/errors"
	"lumen/internal/shared/logger"
)

type mockContactService struct {
	submitFn func(ctx context.Context, req contact.SubmitRequest, identity contact.Identity) (*contact.SubmitResponse, error)
}

func (m *mockContactService) Submit(ctx context.Context, req contact.SubmitRequest, identity contact.Identity) (*contact.SubmitResponse, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, req, identity)
	}
	return &contact.SubmitResponse{Message: "ok"}, nil
}

func discardLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Hello",
		"message": "I would like to get in touch about your work.",
	}
}

func TestContactHandler_Submit_Success(t *testing.T) {
	var captured contact.Identity
	svc := &mockContactService{submitFn: func(_ context.Context, _ contact.SubmitRequest, identity contact.Identity) (*contact.SubmitResponse, error) {
		captured = identity
		return &contact.SubmitResponse{Message: "Thank you for your message."}, nil
	}}
	handler := NewContactHandler(svc, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/contact", validBody())
	c.Request.Header.Set("User-Agent", "Mozilla/5.0")
	c.Request.Header.Set("X-Screen-Resolution", "1920x1080")
	c.Request.Header.Set("X-Timezone-Offset", "-120")

	handler.Submit(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	// Anonymous identity with fingerprint signals from headers.
	assert.Zero(t, captured.UserID)
	assert.Equal(t, "Mozilla/5.0", captured.Signals.UserAgent)
	assert.Equal(t, 1920, captured.Signals.ScreenWidth)
	assert.Equal(t, -120, captured.Signals.TimezoneOffsetMin)
}

func TestContactHandler_Submit_AuthenticatedIdentity(t *testing.T) {
	var captured contact.Identity
	svc := &mockContactService{submitFn: func(_ context.Context, _ contact.SubmitRequest, identity contact.Identity) (*contact.SubmitResponse, error) {
		captured = identity
		return &contact.SubmitResponse{Message: "ok"}, nil
	}}
	handler := NewContactHandler(svc, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/contact", validBody())
	testutil.SetAuthContext(c, 42)

	handler.Submit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), captured.UserID)
}

func TestContactHandler_Submit_InvalidJSON(t *testing.T) {
	svc := &mockContactService{submitFn: func(context.Context, contact.SubmitRequest, contact.Identity) (*contact.SubmitResponse, error) {
		t.Fatal("service must not be called for malformed bodies")
		return nil, nil
	}}
	handler := NewContactHandler(svc, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/contact", nil)

	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactHandler_Submit_RateLimitedSetsRetryAfter(t *testing.T) {
	svc := &mockContactService{submitFn: func(context.Context, contact.SubmitRequest, contact.Identity) (*contact.SubmitResponse, error) {
		return nil, errors.NewRateLimitedError(42500 * time.Millisecond)
	}}
	handler := NewContactHandler(svc, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/contact", validBody())

	handler.Submit(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	// Sub-second remainders round up.
	assert.Equal(t, "43", w.Header().Get("Retry-After"))

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "rate_limited", resp.Error.Type)
}

func TestContactHandler_Submit_Unavailable(t *testing.T) {
	svc := &mockContactService{submitFn: func(context.Context, contact.SubmitRequest, contact.Identity) (*contact.SubmitResponse, error) {
		return nil, errors.NewUnavailableError("contact form is temporarily unavailable")
	}}
	handler := NewContactHandler(svc, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/contact", validBody())

	handler.Submit(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestContactHandler_Submit_ValidationError(t *testing.T) {
	svc := &mockContactService{submitFn: func(context.Context, contact.SubmitRequest, contact.Identity) (*contact.SubmitResponse, error) {
		return nil, errors.NewValidationError("Validation failed", "name is invalid")
	}}
	handler := NewContactHandler(svc, discardLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/contact", validBody())

	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
}
