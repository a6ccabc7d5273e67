// Package contact orchestrates the contact-form submission pipeline:
// schema validation, sanitization, per-identifier rate limiting, and
// hand-off to the mail delivery collaborator.
package contact

import (
	"context"
	"fmt"

	"lumen/internal/infrastructure/ratelimit"
	"lumen/internal/shared/errors"
	"lumen/internal/shared/logger"
	"lumen/internal/shared/sanitize"
	"lumen/internal/shared/utils"
	"lumen/internal/shared/utils/logutil"
)

// fingerprintNamespace prefixes anonymous identifiers so contact-form
// windows never collide with other limiter uses of the same fingerprint.
const fingerprintNamespace = "contact-form-"

// Message is a sanitized payload ready to cross the delivery boundary.
type Message struct {
	FromName  string
	FromEmail string
	Subject   string
	Body      string
}

// Mailer is the external delivery collaborator.
type Mailer interface {
	IsConfigured() bool
	Deliver(msg Message) error
}

type Service struct {
	limiter ratelimit.Limiter
	mailer  Mailer
	logger  logger.Interface
}

func NewService(limiter ratelimit.Limiter, mailer Mailer, log logger.Interface) *Service {
	return &Service{
		limiter: limiter,
		mailer:  mailer,
		logger:  log,
	}
}

// identifierFor keys the rate limiter: the authenticated user ID when
// present, otherwise the namespaced fingerprint.
func identifierFor(identity Identity) string {
	if identity.UserID != 0 {
		return fmt.Sprintf("user-%d", identity.UserID)
	}
	return fingerprintNamespace + identity.Signals.Derive()
}

// Submit runs the full pipeline. All failures come back as AppErrors for
// the handler to translate; nothing here is fatal.
func (s *Service) Submit(ctx context.Context, req SubmitRequest, identity Identity) (*SubmitResponse, error) {
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	if err := s.checkInput(req); err != nil {
		return nil, err
	}

	identifier := identifierFor(identity)
	allowed, err := s.limiter.Allow(ctx, identifier)
	if err != nil {
		// A broken limiter backend should not take the contact form down
		// with it; log and let the submission through.
		s.logger.Errorw("rate limiter unavailable, allowing request",
			"error", err,
			"identifier", logutil.TruncateForLog(identifier, 16),
		)
		allowed = true
	}
	if !allowed {
		cooldown, cdErr := s.limiter.RemainingCooldown(ctx, identifier)
		if cdErr != nil {
			s.logger.Warnw("failed to read remaining cooldown", "error", cdErr)
		}
		// Log a truncated identifier only; full fingerprints stay out of logs.
		s.logger.Warnw("contact submission rate limited",
			"identifier", logutil.TruncateForLog(identifier, 16),
			"cooldown", cooldown,
		)
		return nil, errors.NewRateLimitedError(cooldown)
	}

	if !s.mailer.IsConfigured() {
		return nil, errors.NewUnavailableError("contact form is temporarily unavailable")
	}

	msg := Message{
		FromName:  sanitize.Clean(req.Name),
		FromEmail: req.Email,
		Subject:   sanitize.Clean(req.Subject),
		Body:      sanitize.Clean(req.Message),
	}
	if err := s.mailer.Deliver(msg); err != nil {
		s.logger.Errorw("contact delivery failed",
			"error", err,
			"from", utils.MaskEmail(req.Email),
		)
		return nil, errors.NewInternalError("failed to send your message, please try again later")
	}

	s.logger.Infow("contact message delivered", "from", utils.MaskEmail(req.Email))
	return &SubmitResponse{Message: "Thank you for your message."}, nil
}

// checkInput applies the sanitize contract on top of schema validation.
// Denylist hits are logged as a suspicious-input signal but surfaced as an
// ordinary validation error, never revealing the detection rule.
func (s *Service) checkInput(req SubmitRequest) error {
	valid, suspicious := sanitize.CheckName(req.Name)
	if suspicious {
		s.logger.Warnw("suspicious input detected",
			"field", "name",
			"value", logutil.TruncateForLog(req.Name, 20),
		)
		return errors.NewValidationError("Validation failed", "name is invalid")
	}
	if !valid {
		return errors.NewValidationError("Validation failed", "name must contain only letters, spaces, apostrophes or hyphens")
	}

	if !sanitize.IsValidEmail(req.Email) {
		return errors.NewValidationError("Validation failed", "email must be a valid email address")
	}

	for field, value := range map[string]string{"subject": req.Subject, "message": req.Message} {
		if sanitize.LooksSuspicious(value) {
			s.logger.Warnw("suspicious input detected",
				"field", field,
				"value", logutil.TruncateForLog(value, 20),
			)
		}
	}

	return nil
}
