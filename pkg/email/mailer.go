package email

import "log"

// Mailer is the delivery collaborator. Actual transport lives outside the
// core; the bulk machinery only needs something to hand a rendered mail to.
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}

// LogMailer writes mail to the process log instead of delivering it. Used
// in development and as the default when no transport is configured.
type LogMailer struct{}

// NewLogMailer creates a new LogMailer
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// Send logs the mail envelope
func (m *LogMailer) Send(to, subject, textBody, _ string) error {
	log.Printf("mail to=%s subject=%q body=%q", to, subject, textBody)
	return nil
}
