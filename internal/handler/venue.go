package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showbill/showbill/internal/service"
)

// VenueHandler maps the /venues routes onto the venue service.
type VenueHandler struct {
	Venues *service.VenueService
}

// List handles GET /venues and returns every venue with its live
// upcoming-show count.
func (h *VenueHandler) List(c echo.Context) error {
	items, err := h.Venues.List(c.Request().Context())
	if err != nil {
		return fail(c, err, "could not list venues")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Search handles POST /venues/search. The search_term form field is
// matched as a case-insensitive substring of the venue name; an empty
// term returns every venue.
func (h *VenueHandler) Search(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.Venues.Search(c.Request().Context(), term)
	if err != nil {
		return fail(c, err, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"count": res.Count, "data": res.Data, "search_term": term})
}

// Get handles GET /venues/:id and returns the full venue detail with the
// computed past/upcoming show split.
func (h *VenueHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	detail, err := h.Venues.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "could not load venue")
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateForm handles GET /venues/create and returns the empty form shape
// a client should submit.
func (h *VenueHandler) CreateForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": service.VenueForm{Genres: []string{}}})
}

// Create handles POST /venues/create. On success it responds 201 with
// the created record and the confirmation message; a validation failure
// responds 422 and a store failure 500, in both cases without a partial
// row left behind.
func (h *VenueHandler) Create(c echo.Context) error {
	var form service.VenueForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	v, err := h.Venues.Create(c.Request().Context(), form)
	if err != nil {
		return fail(c, err, fmt.Sprintf("An error occurred. Venue %s could not be listed.", form.Name))
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Venue %s was successfully listed!", v.Name),
		"venue":   v,
	})
}

// EditForm handles GET /venues/:id/edit and returns the venue's current
// values in form shape.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	form, err := h.Venues.EditForm(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "could not load venue")
	}
	return c.JSON(http.StatusOK, echo.Map{"form": form})
}

// Edit handles POST /venues/:id/edit. The submission is a full-record
// overwrite: every editable field is replaced with the form value.
func (h *VenueHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var form service.VenueForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	v, err := h.Venues.Update(c.Request().Context(), id, form)
	if err != nil {
		return fail(c, err, fmt.Sprintf("An error occurred. Venue %s could not be edited.", form.Name))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Venue %s was successfully edited", v.Name),
		"venue":   v,
	})
}

// Delete handles DELETE /venues/:id. The venue and every show that
// references it are removed in one transaction.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.Venues.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "An error occurred. Venue could not be deleted.")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Venue %s was successfully deleted!", v.Name),
	})
}
