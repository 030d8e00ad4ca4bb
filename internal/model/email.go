package model

import (
	"errors"
	"net/mail"
	"strings"
)

// EmailInquiry is a guest's request for show details.  It is never persisted;
// handling one produces an EmailResult and an audit log entry.
type EmailInquiry struct {
	ShowID     int64  `json:"show_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	Message    string `json:"message"`
}

// Validate checks the inquiry fields.  Whether ShowID references an existing
// show is decided later, at send time.
func (in *EmailInquiry) Validate() error {
	if in.ShowID <= 0 {
		return errors.New("show_id is required")
	}
	if strings.TrimSpace(in.GuestName) == "" {
		return errors.New("guest_name is required")
	}
	addr, err := mail.ParseAddress(in.GuestEmail)
	if err != nil || addr.Address != in.GuestEmail {
		return errors.New("guest_email must be a valid email address")
	}
	return nil
}

// EmailResult is the response body for POST /emails/send.
type EmailResult struct {
	Subject string `json:"subject"`
	To      string `json:"to"`
	Preview string `json:"preview"`
}
