// Package router defines how the HTTP routes of the booking service are
// registered on the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/showbill/showbill/internal/handler"
)

// RegisterRoutes registers the full booking surface. Mutating routes are
// form submissions; the create/edit GET routes return the form shape the
// matching POST expects. listingCache, when non-nil, wraps only the
// public listing pages — anything involving an id or a search term is
// served fresh.
func RegisterRoutes(e *echo.Echo, v *handler.VenueHandler, a *handler.ArtistHandler, s *handler.ShowHandler, listingCache echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	cached := func(h echo.HandlerFunc) echo.HandlerFunc {
		if listingCache == nil {
			return h
		}
		return listingCache(h)
	}

	// Venues
	e.GET("/venues", cached(v.List))
	e.POST("/venues/search", v.Search)
	e.GET("/venues/create", v.CreateForm)
	e.POST("/venues/create", v.Create)
	e.GET("/venues/:id", v.Get)
	e.GET("/venues/:id/edit", v.EditForm)
	e.POST("/venues/:id/edit", v.Edit)
	e.DELETE("/venues/:id", v.Delete)

	// Artists, mirrored
	e.GET("/artists", cached(a.List))
	e.POST("/artists/search", a.Search)
	e.GET("/artists/create", a.CreateForm)
	e.POST("/artists/create", a.Create)
	e.GET("/artists/:id", a.Get)
	e.GET("/artists/:id/edit", a.EditForm)
	e.POST("/artists/:id/edit", a.Edit)
	e.DELETE("/artists/:id", a.Delete)

	// Shows
	e.GET("/shows", cached(s.List))
	e.GET("/shows/create", s.CreateForm)
	e.POST("/shows/create", s.Create)
}
