package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// ContactMessage is a sanitized contact-form payload ready for delivery.
// All fields are expected to have passed the sanitize contract before they
// reach this boundary.
type ContactMessage struct {
	FromName  string
	FromEmail string
	Subject   string
	Message   string
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

// SendContactMessage relays a contact-form submission to the site owner's
// inbox. The envelope From is the configured sender; Reply-To points at the
// submitter so the owner can answer directly.
func (s *SMTPEmailService) SendContactMessage(recipient string, msg ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "Contact Form Submission"
	}

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New contact form message</h2>
			<p><strong>From:</strong> %s (%s)</p>
			<p><strong>Subject:</strong> %s</p>
			<hr>
			<p>%s</p>
		</body>
		</html>
	`, msg.FromName, msg.FromEmail, subject, msg.Message)

	plainBody := fmt.Sprintf(`New contact form message

From: %s (%s)
Subject: %s

%s
`, msg.FromName, msg.FromEmail, subject, msg.Message)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", recipient)
	m.SetHeader("Reply-To", msg.FromEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
