// Package repository contains the data access adapter for shows.  It wraps
// the SQL store behind a handful of narrow operations so the rest of the
// service never builds queries itself and tests can swap in a fake.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/comedyuo/shows-backend/internal/model"
)

// ErrShowNotFound indicates that no show row matched the requested id.
var ErrShowNotFound = errors.New("show not found")

// ErrInvalidStatus indicates a list filter outside {upcoming, past}.
var ErrInvalidStatus = errors.New("invalid status filter")

// ErrEmptyUpdate indicates an update call that supplied no fields.
var ErrEmptyUpdate = errors.New("no fields to update")

// ErrNoRowReturned indicates the store accepted an insert but the row could
// not be read back.
var ErrNoRowReturned = errors.New("store returned no row")

// dbTimeLayout is the DATETIME format rows are written in (UTC).
const dbTimeLayout = "2006-01-02 15:04:05"

// ParseStartTime normalizes a raw start_time value into a UTC time.Time.
// Stores hand back either an ISO-8601 string with a Z suffix or the plain
// DATETIME layout; both are interpreted as UTC.
func ParseStartTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(dbTimeLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized start_time %q", raw)
	}
	return t, nil
}

// FormatStartTime serializes a timestamp for a write, always in UTC.
func FormatStartTime(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// ShowStore manages persistence for shows.  The table name is configurable
// so deployments can point the service at a differently named table.
type ShowStore struct {
	db    *sql.DB
	table string
}

// NewShowStore constructs a ShowStore with the given DB handle and table
// name.  An empty table name falls back to "shows".
func NewShowStore(db *sql.DB, table string) *ShowStore {
	if table == "" {
		table = "shows"
	}
	return &ShowStore{db: db, table: table}
}

// scanShow reads one row into a model.Show, normalizing start_time.
func scanShow(row interface{ Scan(...any) error }) (*model.Show, error) {
	var s model.Show
	var rawStart string
	if err := row.Scan(&s.ID, &s.Title, &s.Location, &rawStart, &s.Description, &s.Status); err != nil {
		return nil, err
	}
	t, err := ParseStartTime(rawStart)
	if err != nil {
		return nil, err
	}
	s.StartTime = t
	return &s, nil
}

// List returns all shows ordered by start_time ascending.  When statusFilter
// is non-empty, only rows with that status are returned; a filter outside the
// status enum yields ErrInvalidStatus.
func (r *ShowStore) List(ctx context.Context, statusFilter string) ([]model.Show, error) {
	if statusFilter != "" && !model.ValidStatus(statusFilter) {
		return nil, ErrInvalidStatus
	}
	q := fmt.Sprintf(`SELECT id, title, location, start_time, description, status FROM %s`, r.table)
	args := []any{}
	if statusFilter != "" {
		q += ` WHERE status = ?`
		args = append(args, statusFilter)
	}
	q += ` ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Show{}
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a show by its id.  It returns ErrShowNotFound if there
// is no matching row.
func (r *ShowStore) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	q := fmt.Sprintf(`SELECT id, title, location, start_time, description, status FROM %s WHERE id = ?`, r.table)
	s, err := scanShow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return s, nil
}

// Create inserts a new show and returns the stored row including the
// assigned id.  The input must already be validated.
func (r *ShowStore) Create(ctx context.Context, in model.ShowCreate) (*model.Show, error) {
	q := fmt.Sprintf(`INSERT INTO %s (title, location, start_time, description, status) VALUES (?, ?, ?, ?, ?)`, r.table)
	res, err := r.db.ExecContext(ctx, q,
		in.Title, in.Location, FormatStartTime(*in.StartTime), in.Description, in.Status)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	// Read the inserted row back so the caller sees exactly what the store
	// persisted.
	s, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrShowNotFound) {
			return nil, ErrNoRowReturned
		}
		return nil, err
	}
	return s, nil
}

// Update applies a partial update to the show with the given id and returns
// the updated row.  Supplied fields change; absent fields are untouched.
// An empty patch yields ErrEmptyUpdate; a missing row yields ErrShowNotFound.
func (r *ShowStore) Update(ctx context.Context, id int64, patch model.ShowPatch) (*model.Show, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, v)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.StartTime != nil {
		add("start_time", FormatStartTime(*patch.StartTime))
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	q := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, r.table, set)
	args = append(args, id)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	// RowsAffected is 0 both for a missing row and for an update that set
	// identical values, so distinguish via the read-back.
	return r.GetByID(ctx, id)
}

// Delete removes the show with the given id.  It returns ErrShowNotFound
// when no row matched.
func (r *ShowStore) Delete(ctx context.Context, id int64) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrShowNotFound
	}
	return nil
}
