package email

import (
	"errors"

	"lumen/internal/shared/config"
	"lumen/internal/shared/logger"
)

// ErrNotConfigured is returned when SMTP delivery has not been set up.
// Callers surface it as a disabled feature rather than a crash.
var ErrNotConfigured = errors.New("email service not configured")

// Manager owns the optional SMTP service. When the config carries no SMTP
// host the service stays nil and every send reports ErrNotConfigured.
type Manager struct {
	service   *SMTPEmailService
	recipient string
	logger    logger.Interface
}

func NewManager(emailCfg *config.EmailConfig, contactCfg *config.ContactConfig, log logger.Interface) *Manager {
	m := &Manager{
		recipient: contactCfg.Recipient,
		logger:    log,
	}

	if !emailCfg.IsConfigured() || contactCfg.Recipient == "" {
		log.Warnw("contact delivery disabled, smtp or recipient not configured",
			"smtp_configured", emailCfg.IsConfigured(),
			"recipient_set", contactCfg.Recipient != "",
		)
		return m
	}

	m.service = NewSMTPEmailService(SMTPConfig{
		Host:        emailCfg.SMTPHost,
		Port:        emailCfg.SMTPPort,
		Username:    emailCfg.SMTPUser,
		Password:    emailCfg.SMTPPassword,
		FromAddress: emailCfg.FromAddress,
		FromName:    emailCfg.FromName,
	})
	log.Infow("contact delivery initialized",
		"host", emailCfg.SMTPHost,
		"port", emailCfg.SMTPPort,
		"from", emailCfg.FromAddress,
	)
	return m
}

// IsConfigured reports whether delivery is available.
func (m *Manager) IsConfigured() bool {
	return m.service != nil
}

// Deliver sends a contact message to the configured site-owner inbox.
func (m *Manager) Deliver(msg ContactMessage) error {
	if m.service == nil {
		return ErrNotConfigured
	}
	return m.service.SendContactMessage(m.recipient, msg)
}
