package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Show represents a scheduled comedy event.  It mirrors one row of the
// shows table.  StartTime is always UTC; it marshals to an RFC3339
// string in JSON responses.
//
// Fields:
//  ID          – primary key assigned by the store, immutable.
//  Title       – show title, at most 140 characters.
//  Location    – venue name or address, at most 140 characters.
//  StartTime   – when the show starts (doors open 30 minutes prior).
//  Description – free-form text, unbounded.
//  Status      – "upcoming" or "past".
type Show struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// Show status values.  Enforced at the validation boundary, not by the store.
const (
	StatusUpcoming = "upcoming"
	StatusPast     = "past"
)

// maxFieldLen bounds both title and location, counted in runes.
const maxFieldLen = 140

// ValidStatus reports whether s is one of the two allowed status values.
func ValidStatus(s string) bool {
	return s == StatusUpcoming || s == StatusPast
}

// ShowCreate is the request body for POST /shows.  StartTime is a pointer so
// a missing timestamp can be told apart from the zero value.  Status defaults
// to "upcoming" when omitted.
type ShowCreate struct {
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	StartTime   *time.Time `json:"start_time"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
}

// Validate checks the payload against the Show schema and fills in the
// default status.  It returns the first violation found.
func (in *ShowCreate) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(in.Title) > maxFieldLen {
		return errors.New("title must be at most 140 characters")
	}
	if strings.TrimSpace(in.Location) == "" {
		return errors.New("location is required")
	}
	if utf8.RuneCountInString(in.Location) > maxFieldLen {
		return errors.New("location must be at most 140 characters")
	}
	if in.StartTime == nil {
		return errors.New("start_time is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return errors.New("description is required")
	}
	if in.Status == "" {
		in.Status = StatusUpcoming
	}
	if !ValidStatus(in.Status) {
		return errors.New("status must be one of: upcoming, past")
	}
	return nil
}

// ShowPatch is the request body for PUT /shows/:id.  Every field is optional;
// a nil pointer means "leave unchanged", which is distinct from an explicit
// empty value.
//
// An explicit JSON null also decodes to a nil pointer and is therefore
// treated as absent.  Accepting null as "clear this field" would break the
// invariant that every persisted show has all five fields populated, so
// there is deliberately no way to null out a field through this type.
type ShowPatch struct {
	Title       *string    `json:"title"`
	Location    *string    `json:"location"`
	StartTime   *time.Time `json:"start_time"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *ShowPatch) IsEmpty() bool {
	return p.Title == nil && p.Location == nil && p.StartTime == nil &&
		p.Description == nil && p.Status == nil
}

// Validate checks each supplied field individually.  Absent fields are not
// validated; the caller decides whether an entirely empty patch is allowed.
func (p *ShowPatch) Validate() error {
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return errors.New("title must not be empty")
		}
		if utf8.RuneCountInString(*p.Title) > maxFieldLen {
			return errors.New("title must be at most 140 characters")
		}
	}
	if p.Location != nil {
		if strings.TrimSpace(*p.Location) == "" {
			return errors.New("location must not be empty")
		}
		if utf8.RuneCountInString(*p.Location) > maxFieldLen {
			return errors.New("location must be at most 140 characters")
		}
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return errors.New("description must not be empty")
	}
	if p.Status != nil && !ValidStatus(*p.Status) {
		return errors.New("status must be one of: upcoming, past")
	}
	return nil
}
