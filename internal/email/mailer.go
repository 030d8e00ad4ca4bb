package email

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gomail "gopkg.in/gomail.v2"
)

// Message is a single outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	ReplyTo string
}

// Mailer delivers one message and reports the provider's id for it.  A nil
// Mailer on the dispatcher means delivery is unconfigured (preview mode).
type Mailer interface {
	Send(ctx context.Context, m Message) (string, error)
}

// SMTPMailer delivers mail over SMTP using gomail.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string

	// Timeout bounds a single delivery attempt when the context carries no
	// earlier deadline.  This is transport-client behavior, not a service
	// policy: it keeps a hung relay from pinning the request goroutine
	// forever.  When it fires, the background DialAndSend is abandoned and
	// may still deliver, so a "failed" audit entry can be a false negative
	// for deliveries that complete after the cutoff.
	Timeout time.Duration
}

// NewSMTPMailer constructs an SMTPMailer for the given relay.
func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, Timeout: 15 * time.Second}
}

// Send delivers m and returns a message id.  SMTP relays do not hand back an
// id, so one is synthesized for the audit trail.
func (s *SMTPMailer) Send(ctx context.Context, m Message) (string, error) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	if m.ReplyTo != "" {
		msg.SetHeader("Reply-To", m.ReplyTo)
	}
	msg.SetBody("text/html", m.HTML)

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(msg)
	}()

	wait := s.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if until := time.Until(dl); until > 0 && until < wait {
			wait = until
		}
	}

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("smtp send: %w", err)
		}
		return uuid.NewString(), nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(wait):
		return "", context.DeadlineExceeded
	}
}
