package email

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// AuditLog is the append-only record of notification attempts.  Every entry
// is written as a single atomic multi-line block so concurrent requests never
// interleave partial lines.  The format is for operational forensics only and
// is not machine-parsed anywhere.
type AuditLog struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewAuditLog opens (or creates) the audit log at path.  The file rotates
// once it grows large so old entries are never rewritten in place.
func NewAuditLog(path string) *AuditLog {
	return &AuditLog{
		w: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
		},
		now: time.Now,
	}
}

// NewAuditLogWriter builds an AuditLog over an arbitrary writer.  Used in
// tests to capture entries in memory.
func NewAuditLogWriter(w io.Writer) *AuditLog {
	return &AuditLog{w: w, now: time.Now}
}

// append writes one complete block in a single Write call.
func (l *AuditLog) append(lines ...string) error {
	block := fmt.Sprintf("[%s] %s\n---\n",
		l.now().UTC().Format(time.RFC3339), strings.Join(lines, "\n"))
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := io.WriteString(l.w, block)
	return err
}

// Sent records a successful guest delivery.
func (l *AuditLog) Sent(to, guestName, subject, showTitle, adminEmail, messageID string) error {
	return l.append(
		"EMAIL SENT",
		fmt.Sprintf("To: %s (%s)", to, guestName),
		"Subject: "+subject,
		"Show: "+showTitle,
		"Admin notified: "+adminEmail,
		"Message ID: "+messageID,
	)
}

// Failed records a delivery attempt the relay rejected.
func (l *AuditLog) Failed(errText, to, guestName, from, subject, showTitle string) error {
	return l.append(
		"EMAIL SEND FAILED",
		"Error: "+errText,
		fmt.Sprintf("To: %s (%s)", to, guestName),
		"From Address: "+from,
		"Subject: "+subject,
		"Show: "+showTitle,
	)
}

// NotSent records a preview-mode inquiry, including the full composed HTML
// so operators can inspect exactly what would have gone out.
func (l *AuditLog) NotSent(to, guestName, subject, showTitle, html string) error {
	return l.append(
		"EMAIL NOT SENT (mailer not configured)",
		fmt.Sprintf("To: %s (%s)", to, guestName),
		"Subject: "+subject,
		"Show: "+showTitle,
		"---",
		html,
	)
}
