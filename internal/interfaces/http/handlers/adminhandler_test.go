package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/application/admin"
	"lumen/internal/interfaces/http/handlers/testutil"
)

type mockAdminVerifier struct {
	verifyFn func(ctx context.Context, token string) admin.Result
}

func (m *mockAdminVerifier) VerifyAdmin(ctx context.Context, token string) admin.Result {
	return m.verifyFn(ctx, token)
}

func TestAdminHandler_Verify_Admin(t *testing.T) {
	verifier := &mockAdminVerifier{verifyFn: func(_ context.Context, token string) admin.Result {
		assert.Equal(t, "sometoken", token)
		return admin.Result{Decision: admin.DecisionCompleted, IsAdmin: true, UserID: 7}
	}}
	handler := NewAdminHandler(verifier, discardLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/verify", nil)
	c.Request.Header.Set("Authorization", "Bearer sometoken")

	handler.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.True(t, resp.Success)

	var verdict VerifyResponse
	require.NoError(t, json.Unmarshal(resp.Data, &verdict))
	assert.True(t, verdict.IsAdmin)
	assert.Equal(t, uint(7), verdict.UserID)
}

func TestAdminHandler_Verify_NonAdminStillOK(t *testing.T) {
	verifier := &mockAdminVerifier{verifyFn: func(context.Context, string) admin.Result {
		return admin.Result{Decision: admin.DecisionCompleted, IsAdmin: false, UserID: 8}
	}}
	handler := NewAdminHandler(verifier, discardLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/verify", nil)
	c.Request.Header.Set("Authorization", "Bearer sometoken")

	handler.Verify(c)

	// A completed check is a 200 even when the verdict is "not admin".
	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var verdict VerifyResponse
	require.NoError(t, json.Unmarshal(resp.Data, &verdict))
	assert.False(t, verdict.IsAdmin)
}

func TestAdminHandler_Verify_MissingHeader(t *testing.T) {
	verifier := &mockAdminVerifier{verifyFn: func(_ context.Context, token string) admin.Result {
		assert.Empty(t, token)
		return admin.Result{Decision: admin.DecisionIdentityFailed}
	}}
	handler := NewAdminHandler(verifier, discardLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/verify", nil)

	handler.Verify(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminHandler_Verify_MalformedHeader(t *testing.T) {
	verifier := &mockAdminVerifier{verifyFn: func(_ context.Context, token string) admin.Result {
		assert.Empty(t, token)
		return admin.Result{Decision: admin.DecisionIdentityFailed}
	}}
	handler := NewAdminHandler(verifier, discardLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/verify", nil)
	c.Request.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	handler.Verify(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminHandler_Verify_StoreFailure(t *testing.T) {
	verifier := &mockAdminVerifier{verifyFn: func(context.Context, string) admin.Result {
		return admin.Result{Decision: admin.DecisionStoreFailed, Reason: "role check failed"}
	}}
	handler := NewAdminHandler(verifier, discardLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/verify", nil)
	c.Request.Header.Set("Authorization", "Bearer sometoken")

	handler.Verify(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
