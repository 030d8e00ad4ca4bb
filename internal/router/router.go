package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/comedyuo/shows-backend/internal/handler"
)

// RegisterRoutes installs the shared middleware and maps every endpoint the
// service exposes.  rate may be nil when redis is unavailable.
func RegisterRoutes(e *echo.Echo, shows *handler.ShowHandler, emails *handler.EmailHandler, rate echo.MiddlewareFunc) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	// The admin frontend is served from a different origin.
	e.Use(echomw.CORS())
	if rate != nil {
		e.Use(rate)
	}

	e.GET("/health", handler.Health)

	e.GET("/shows", shows.List)
	e.POST("/shows", shows.Create)
	e.GET("/shows/:id", shows.Get)
	e.PUT("/shows/:id", shows.Update)
	e.DELETE("/shows/:id", shows.Delete)

	e.POST("/emails/send", emails.Send)
}
