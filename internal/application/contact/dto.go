package contact

import "lumen/internal/shared/fingerprint"

// SubmitRequest is a contact-form submission. Length bounds mirror the
// public form; the sanitize layer applies its own checks on top.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Email   string `json:"email" validate:"required,max=254"`
	Subject string `json:"subject" validate:"max=150"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// Identity describes who is submitting. UserID is set for authenticated
// callers; anonymous callers are keyed by their fingerprint signals.
type Identity struct {
	UserID  uint // 0 when anonymous
	Signals fingerprint.Signals
}

// SubmitResponse is returned on accepted submissions.
type SubmitResponse struct {
	Message string `json:"message"`
}
