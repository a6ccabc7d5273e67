// Package identity implements login and token refresh against the local
// identity store. There is no public registration; accounts are seeded.
package identity

import (
	"context"
	stderrors "errors"

	"lumen/internal/domain/user"
	"lumen/internal/infrastructure/auth"
	"lumen/internal/shared/authorization"
	"lumen/internal/shared/errors"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/utils"
)

// PasswordVerifier checks a candidate password against a stored hash.
// Satisfied by auth.BcryptPasswordHasher.
type PasswordVerifier interface {
	Verify(password, hash string) error
}

// TokenIssuer issues and rotates token pairs. Satisfied by auth.JWTService.
type TokenIssuer interface {
	Generate(userID uint, role authorization.UserRole) (*auth.TokenPair, error)
	Refresh(refreshToken string) (*auth.TokenPair, error)
}

type Service struct {
	users     user.Repository
	roles     user.RoleRepository
	passwords PasswordVerifier
	tokens    TokenIssuer
	logger    logger.Interface
}

func NewService(users user.Repository, roles user.RoleRepository, passwords PasswordVerifier, tokens TokenIssuer, log logger.Interface) *Service {
	return &Service{
		users:     users,
		roles:     roles,
		passwords: passwords,
		tokens:    tokens,
		logger:    log,
	}
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same error so accounts cannot be enumerated.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if stderrors.Is(err, user.ErrNotFound) {
			return nil, errors.NewUnauthorizedError("invalid email or password")
		}
		s.logger.Errorw("login user lookup failed", "error", err, "email", utils.MaskEmail(req.Email))
		return nil, errors.NewInternalError("login failed")
	}

	if err := s.passwords.Verify(req.Password, u.PasswordHash); err != nil {
		s.logger.Warnw("failed login attempt", "email", utils.MaskEmail(req.Email))
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}

	role := s.primaryRole(ctx, u.ID)
	pair, err := s.tokens.Generate(u.ID, role)
	if err != nil {
		s.logger.Errorw("token generation failed", "error", err, "user_id", u.ID)
		return nil, errors.NewInternalError("login failed")
	}

	s.logger.Infow("user logged in", "user_id", u.ID, "email", utils.MaskEmail(u.Email))
	return &LoginResponse{
		TokenResponse: tokenResponse(pair),
		User: UserInfo{
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
			Role:  role.String(),
		},
	}, nil
}

// Refresh exchanges a refresh token for a new pair. The old refresh token
// is superseded by the returned one.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	pair, err := s.tokens.Refresh(req.RefreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	resp := tokenResponse(pair)
	return &resp, nil
}

// primaryRole reduces the user's role set to the role embedded in tokens.
// A store failure degrades to the least-privileged role; the token role is
// advisory anyway and admin checks re-consult the store.
func (s *Service) primaryRole(ctx context.Context, userID uint) authorization.UserRole {
	roleNames, err := s.roles.GetRoles(ctx, userID)
	if err != nil {
		s.logger.Warnw("role lookup failed, defaulting to user role", "error", err, "user_id", userID)
		return authorization.RoleUser
	}
	for _, name := range roleNames {
		if authorization.ParseUserRole(name) == authorization.RoleAdmin {
			return authorization.RoleAdmin
		}
	}
	return authorization.RoleUser
}

func tokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}
}
