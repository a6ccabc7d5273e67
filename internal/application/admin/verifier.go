// Package admin implements the admin verification flow: establish the
// caller's identity from a bearer credential, then answer the admin role
// predicate against the authoritative role store. Every failure path is
// fail-closed.
package admin

import (
	"context"
	"errors"
	"time"

	"lumen/internal/domain/user"
	"lumen/internal/infrastructure/auth"
	"lumen/internal/shared/authorization"
	"lumen/internal/shared/logger"
)

// roleCheckTimeout bounds the store round-trip so a hung database turns
// into a store error instead of a stuck request.
const roleCheckTimeout = 5 * time.Second

// Decision classifies the outcome of a verification attempt.
type Decision string

const (
	// DecisionCompleted means the check ran to completion; IsAdmin holds
	// the verdict, which may be false.
	DecisionCompleted Decision = "completed"

	// DecisionIdentityFailed means the credential did not establish an
	// identity (missing, malformed, expired, or unknown user).
	DecisionIdentityFailed Decision = "identity_failed"

	// DecisionStoreFailed means identity was fine but the role store
	// could not answer.
	DecisionStoreFailed Decision = "store_failed"
)

// Result is the verifier's answer. IsAdmin is meaningful only when
// Decision is DecisionCompleted.
type Result struct {
	Decision Decision
	IsAdmin  bool
	UserID   uint
	Reason   string
}

// CredentialVerifier establishes claims from a bearer credential.
// Satisfied by auth.JWTService.
type CredentialVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

type Verifier struct {
	credentials CredentialVerifier
	users       user.Repository
	roles       user.RoleChecker
	logger      logger.Interface
}

func NewVerifier(credentials CredentialVerifier, users user.Repository, roles user.RoleChecker, log logger.Interface) *Verifier {
	return &Verifier{
		credentials: credentials,
		users:       users,
		roles:       roles,
		logger:      log,
	}
}

// VerifyAdmin answers whether the bearer of token is an admin. The role
// claim inside the token is ignored; only the role store counts.
func (v *Verifier) VerifyAdmin(ctx context.Context, token string) Result {
	if token == "" {
		return Result{Decision: DecisionIdentityFailed, Reason: "missing credential"}
	}

	claims, err := v.credentials.Verify(token)
	if err != nil {
		v.logger.Debugw("admin verification rejected credential", "error", err)
		return Result{Decision: DecisionIdentityFailed, Reason: "invalid credential"}
	}
	if claims.TokenType != auth.TokenTypeAccess {
		return Result{Decision: DecisionIdentityFailed, Reason: "invalid credential"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, roleCheckTimeout)
	defer cancel()

	// The token may outlive the account; confirm the user still exists.
	u, err := v.users.GetByID(checkCtx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Result{Decision: DecisionIdentityFailed, Reason: "unknown user"}
		}
		v.logger.Errorw("admin verification user lookup failed", "error", err, "user_id", claims.UserID)
		return Result{Decision: DecisionStoreFailed, Reason: "user lookup failed"}
	}

	isAdmin, err := v.roles.HasRole(checkCtx, u.ID, string(authorization.RoleAdmin))
	if err != nil {
		v.logger.Errorw("admin verification role check failed", "error", err, "user_id", u.ID)
		return Result{Decision: DecisionStoreFailed, Reason: "role check failed"}
	}

	return Result{Decision: DecisionCompleted, IsAdmin: isAdmin, UserID: u.ID}
}
