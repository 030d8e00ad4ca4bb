package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/comedyuo/shows-backend/internal/model"
)

// subjectPrefix starts every guest notification subject line.
const subjectPrefix = "Your ComedyUO Show Details: "

// domainHint is appended to delivery errors that point at an unverified
// sender domain, the most common misconfiguration.
const domainHint = "Hint: the sender domain is not verified with the mail provider. " +
	"Set MAIL_FROM to the sandbox address or verify the domain before sending."

// ShowGetter is the single store read the dispatcher needs.  Both the HTTP
// route and the dispatcher share the same underlying lookup.
type ShowGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Show, error)
}

// DeliveryError reports that the mail provider rejected the guest send.
type DeliveryError struct {
	Detail string
}

func (e *DeliveryError) Error() string { return e.Detail }

// Dispatcher orchestrates a guest inquiry: fetch show, compose the email,
// deliver it, best-effort notify the admin, and append an audit entry.
type Dispatcher struct {
	shows  ShowGetter
	mailer Mailer // nil means unconfigured: log-only preview mode
	audit  *AuditLog
	from   string
	admin  string
}

// NewDispatcher wires a Dispatcher.  mailer may be nil when no relay is
// configured; audit must not be nil.
func NewDispatcher(shows ShowGetter, mailer Mailer, audit *AuditLog, from, admin string) *Dispatcher {
	if shows == nil || audit == nil {
		panic("nil dependency passed to NewDispatcher")
	}
	return &Dispatcher{shows: shows, mailer: mailer, audit: audit, from: from, admin: admin}
}

// Send handles one inquiry and reports the outcome.  Every attempt, delivered
// or not, is appended to the audit log before returning.  No call is retried.
func (d *Dispatcher) Send(ctx context.Context, inq model.EmailInquiry) (*model.EmailResult, error) {
	show, err := d.shows.GetByID(ctx, inq.ShowID)
	if err != nil {
		// An inquiry for a nonexistent show is a hard failure; propagate
		// the store error unchanged.
		return nil, err
	}

	html, err := Compose(show, inq)
	if err != nil {
		return nil, err
	}
	subject := subjectPrefix + show.Title
	result := &model.EmailResult{
		Subject: subject,
		To:      inq.GuestEmail,
		Preview: fmt.Sprintf("Show details for %s sent to %s", show.Title, inq.GuestName),
	}

	if d.mailer == nil {
		if err := d.audit.NotSent(inq.GuestEmail, inq.GuestName, subject, show.Title, html); err != nil {
			return nil, err
		}
		return result, nil
	}

	id, err := d.mailer.Send(ctx, Message{
		From:    d.from,
		To:      inq.GuestEmail,
		Subject: subject,
		HTML:    html,
		ReplyTo: d.admin,
	})
	if err != nil {
		detail := err.Error()
		if strings.Contains(strings.ToLower(detail), "domain is not verified") {
			detail += "\n\n" + domainHint
		}
		if aerr := d.audit.Failed(detail, inq.GuestEmail, inq.GuestName, d.from, subject, show.Title); aerr != nil {
			return nil, aerr
		}
		return nil, &DeliveryError{Detail: "email could not be sent: " + detail}
	}

	// Best-effort admin copy: a failure here must never reach the caller.
	_, _ = d.mailer.Send(ctx, Message{
		From:    d.from,
		To:      d.admin,
		Subject: fmt.Sprintf("New guest inquiry: %s - %s", inq.GuestName, show.Title),
		HTML:    adminSummary(show, inq),
	})

	if err := d.audit.Sent(inq.GuestEmail, inq.GuestName, subject, show.Title, d.admin, id); err != nil {
		return nil, err
	}
	return result, nil
}

// adminSummary builds the short admin-copy body describing the inquiry.
func adminSummary(show *model.Show, inq model.EmailInquiry) string {
	msg := inq.Message
	if msg == "" {
		msg = "No message provided"
	}
	return fmt.Sprintf(
		"<p>A new guest has requested show information:</p>"+
			"<p><strong>Guest:</strong> %s (%s)</p>"+
			"<p><strong>Show:</strong> %s</p>"+
			"<p><strong>Message:</strong> %s</p>",
		inq.GuestName, inq.GuestEmail, show.Title, msg)
}
