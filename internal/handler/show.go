package handler // handler contains the HTTP-facing CRUD handlers for shows

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/comedyuo/shows-backend/internal/model"
	"github.com/comedyuo/shows-backend/internal/repository"
)

// ShowStore is the narrow data-access interface the handlers depend on.  The
// SQL-backed repository.ShowStore satisfies it; tests substitute an in-memory
// fake.
type ShowStore interface {
	List(ctx context.Context, statusFilter string) ([]model.Show, error)
	GetByID(ctx context.Context, id int64) (*model.Show, error)
	Create(ctx context.Context, in model.ShowCreate) (*model.Show, error)
	Update(ctx context.Context, id int64, patch model.ShowPatch) (*model.Show, error)
	Delete(ctx context.Context, id int64) error
}

// ShowHandler bundles the store for the show CRUD endpoints.
type ShowHandler struct {
	Store ShowStore
}

// NewShowHandler constructs a ShowHandler and panics if the store is nil.
func NewShowHandler(store ShowStore) *ShowHandler {
	if store == nil {
		panic("nil store passed to NewShowHandler")
	}
	return &ShowHandler{Store: store}
}

// List handles GET /shows and returns all shows ordered by start time,
// optionally filtered by ?status=upcoming|past.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.Store.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		if errors.Is(err, repository.ErrInvalidStatus) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid status filter"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load shows"})
	}
	return c.JSON(http.StatusOK, shows)
}

// Get handles GET /shows/:id.
func (h *ShowHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	show, err := h.Store.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load show"})
	}
	return c.JSON(http.StatusOK, show)
}

// Create handles POST /shows.  Validation failures return 422; a store that
// accepts the insert but returns no row is a 500.
func (h *ShowHandler) Create(c echo.Context) error {
	var in model.ShowCreate
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := in.Validate(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	show, err := h.Store.Create(c.Request().Context(), in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create show"})
	}
	return c.JSON(http.StatusCreated, show)
}

// Update handles PUT /shows/:id with a partial body.  An empty patch is a
// 400 regardless of whether the show exists.
func (h *ShowHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var patch model.ShowPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if patch.IsEmpty() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no fields to update"})
	}
	if err := patch.Validate(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}
	show, err := h.Store.Update(c.Request().Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrShowNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "show not found"})
		case errors.Is(err, repository.ErrEmptyUpdate):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "no fields to update"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update show"})
	}
	return c.JSON(http.StatusOK, show)
}

// Delete handles DELETE /shows/:id.
func (h *ShowHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Store.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete show"})
	}
	return c.NoContent(http.StatusNoContent)
}

// parseID extracts the numeric :id path parameter.
func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
