package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comedyuo/shows-backend/internal/model"
	"github.com/comedyuo/shows-backend/internal/repository"
)

// fakeStore is an in-memory ShowStore mirroring the SQL adapter's contract,
// including its sentinel errors.
type fakeStore struct {
	shows  map[int64]model.Show
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{shows: map[int64]model.Show{}, nextID: 1}
}

func (f *fakeStore) List(_ context.Context, statusFilter string) ([]model.Show, error) {
	if statusFilter != "" && !model.ValidStatus(statusFilter) {
		return nil, repository.ErrInvalidStatus
	}
	out := []model.Show{}
	for _, s := range f.shows {
		if statusFilter == "" || s.Status == statusFilter {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*model.Show, error) {
	s, ok := f.shows[id]
	if !ok {
		return nil, repository.ErrShowNotFound
	}
	return &s, nil
}

func (f *fakeStore) Create(_ context.Context, in model.ShowCreate) (*model.Show, error) {
	s := model.Show{
		ID:          f.nextID,
		Title:       in.Title,
		Location:    in.Location,
		StartTime:   in.StartTime.UTC(),
		Description: in.Description,
		Status:      in.Status,
	}
	f.nextID++
	f.shows[s.ID] = s
	return &s, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, patch model.ShowPatch) (*model.Show, error) {
	if patch.IsEmpty() {
		return nil, repository.ErrEmptyUpdate
	}
	s, ok := f.shows[id]
	if !ok {
		return nil, repository.ErrShowNotFound
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Location != nil {
		s.Location = *patch.Location
	}
	if patch.StartTime != nil {
		s.StartTime = patch.StartTime.UTC()
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	if patch.Status != nil {
		s.Status = *patch.Status
	}
	f.shows[id] = s
	return &s, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.shows[id]; !ok {
		return repository.ErrShowNotFound
	}
	delete(f.shows, id)
	return nil
}

func (f *fakeStore) seed(t *testing.T, title, status string, start time.Time) model.Show {
	t.Helper()
	s, err := f.Create(context.Background(), model.ShowCreate{
		Title:       title,
		Location:    "The Basement",
		StartTime:   &start,
		Description: "desc",
		Status:      status,
	})
	require.NoError(t, err)
	return *s
}

// do runs one request through an echo context and returns the recorder.
func do(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetPath("/shows/:id")
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	require.NoError(t, h(c))
	return rec
}

func TestListShows(t *testing.T) {
	store := newFakeStore()
	h := NewShowHandler(store)
	late := store.seed(t, "Late Show", model.StatusUpcoming, time.Date(2025, 12, 1, 21, 0, 0, 0, time.UTC))
	early := store.seed(t, "Early Show", model.StatusUpcoming, time.Date(2025, 11, 14, 20, 0, 0, 0, time.UTC))
	past := store.seed(t, "Old Show", model.StatusPast, time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC))

	t.Run("no filter returns all ordered by start time", func(t *testing.T) {
		rec := do(t, h.List, http.MethodGet, "/shows", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var got []model.Show
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 3)
		assert.Equal(t, []int64{past.ID, early.ID, late.ID}, []int64{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("status filter restricts results", func(t *testing.T) {
		rec := do(t, h.List, http.MethodGet, "/shows?status=upcoming", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var got []model.Show
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		for _, s := range got {
			assert.Equal(t, model.StatusUpcoming, s.Status)
		}
	})

	t.Run("invalid filter is 400", func(t *testing.T) {
		rec := do(t, h.List, http.MethodGet, "/shows?status=cancelled", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetShow(t *testing.T) {
	store := newFakeStore()
	h := NewShowHandler(store)
	s := store.seed(t, "Friday Night Standup", model.StatusUpcoming, time.Date(2025, 11, 14, 20, 0, 0, 0, time.UTC))

	t.Run("found", func(t *testing.T) {
		rec := do(t, h.Get, http.MethodGet, "/shows/1", "", "id", "1")
		require.Equal(t, http.StatusOK, rec.Code)
		var got model.Show
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, s, got)
		// start_time travels as RFC3339.
		assert.Contains(t, rec.Body.String(), `"2025-11-14T20:00:00Z"`)
	})

	t.Run("missing is 404", func(t *testing.T) {
		rec := do(t, h.Get, http.MethodGet, "/shows/99", "", "id", "99")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		rec := do(t, h.Get, http.MethodGet, "/shows/abc", "", "id", "abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateShow(t *testing.T) {
	store := newFakeStore()
	h := NewShowHandler(store)

	t.Run("round trip with defaulted status", func(t *testing.T) {
		body := `{"title":"Friday Night Standup","location":"The Basement","start_time":"2025-11-14T20:00:00Z","description":"Surprise lineups."}`
		rec := do(t, h.Create, http.MethodPost, "/shows", body)
		require.Equal(t, http.StatusCreated, rec.Code)
		var created model.Show
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, model.StatusUpcoming, created.Status)

		stored, err := store.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, *stored)
	})

	t.Run("validation failure is 422", func(t *testing.T) {
		rec := do(t, h.Create, http.MethodPost, "/shows", `{"title":"No Time","location":"X","description":"d"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed json is 400", func(t *testing.T) {
		rec := do(t, h.Create, http.MethodPost, "/shows", `{"title":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateShow(t *testing.T) {
	store := newFakeStore()
	h := NewShowHandler(store)
	orig := store.seed(t, "Friday Night Standup", model.StatusUpcoming, time.Date(2025, 11, 14, 20, 0, 0, 0, time.UTC))

	t.Run("partial update touches only supplied fields", func(t *testing.T) {
		rec := do(t, h.Update, http.MethodPut, "/shows/1", `{"status":"past"}`, "id", "1")
		require.Equal(t, http.StatusOK, rec.Code)
		var got model.Show
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, model.StatusPast, got.Status)
		assert.Equal(t, orig.Title, got.Title)
		assert.Equal(t, orig.Location, got.Location)
		assert.True(t, orig.StartTime.Equal(got.StartTime))
		assert.Equal(t, orig.Description, got.Description)
	})

	t.Run("empty payload is 400 for existing show", func(t *testing.T) {
		rec := do(t, h.Update, http.MethodPut, "/shows/1", `{}`, "id", "1")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("explicit nulls count as absent fields", func(t *testing.T) {
		// null must not clear a field; a patch of nothing but nulls is
		// an empty patch.
		rec := do(t, h.Update, http.MethodPut, "/shows/1", `{"title":null,"status":null}`, "id", "1")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		stored, err := store.GetByID(context.Background(), orig.ID)
		require.NoError(t, err)
		assert.Equal(t, orig.Title, stored.Title)
	})

	t.Run("empty payload is 400 for missing show too", func(t *testing.T) {
		rec := do(t, h.Update, http.MethodPut, "/shows/99", `{}`, "id", "99")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid field is 422", func(t *testing.T) {
		rec := do(t, h.Update, http.MethodPut, "/shows/1", `{"status":"soon"}`, "id", "1")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("missing show is 404", func(t *testing.T) {
		rec := do(t, h.Update, http.MethodPut, "/shows/99", `{"title":"New"}`, "id", "99")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteShow(t *testing.T) {
	store := newFakeStore()
	h := NewShowHandler(store)
	store.seed(t, "Friday Night Standup", model.StatusUpcoming, time.Date(2025, 11, 14, 20, 0, 0, 0, time.UTC))

	t.Run("existing show is 204", func(t *testing.T) {
		rec := do(t, h.Delete, http.MethodDelete, "/shows/1", "", "id", "1")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("second delete is 404", func(t *testing.T) {
		rec := do(t, h.Delete, http.MethodDelete, "/shows/1", "", "id", "1")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	rec := do(t, Health, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
