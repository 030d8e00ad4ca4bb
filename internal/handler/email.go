package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/comedyuo/shows-backend/internal/email"
	"github.com/comedyuo/shows-backend/internal/model"
	"github.com/comedyuo/shows-backend/internal/repository"
)

// EmailHandler exposes the guest notification endpoint.
type EmailHandler struct {
	Dispatcher *email.Dispatcher
}

// NewEmailHandler constructs an EmailHandler and panics on a nil dispatcher.
func NewEmailHandler(d *email.Dispatcher) *EmailHandler {
	if d == nil {
		panic("nil dispatcher passed to NewEmailHandler")
	}
	return &EmailHandler{Dispatcher: d}
}

// Send handles POST /emails/send.  A missing show is a 404; a rejected
// delivery is a 500 carrying the provider detail.
func (h *EmailHandler) Send(c echo.Context) error {
	var inq model.EmailInquiry
	if err := c.Bind(&inq); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := inq.Validate(); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	result, err := h.Dispatcher.Send(c.Request().Context(), inq)
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "show not found"})
		}
		var de *email.DeliveryError
		if errors.As(err, &de) {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": de.Detail})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to send email"})
	}
	return c.JSON(http.StatusOK, result)
}
