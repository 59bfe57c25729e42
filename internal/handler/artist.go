package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showbill/showbill/internal/service"
)

// ArtistHandler maps the /artists routes onto the artist service. The
// shapes mirror VenueHandler.
type ArtistHandler struct {
	Artists *service.ArtistService
}

// List handles GET /artists.
func (h *ArtistHandler) List(c echo.Context) error {
	items, err := h.Artists.List(c.Request().Context())
	if err != nil {
		return fail(c, err, "could not list artists")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Search handles POST /artists/search.
func (h *ArtistHandler) Search(c echo.Context) error {
	term := c.FormValue("search_term")
	res, err := h.Artists.Search(c.Request().Context(), term)
	if err != nil {
		return fail(c, err, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"count": res.Count, "data": res.Data, "search_term": term})
}

// Get handles GET /artists/:id.
func (h *ArtistHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	detail, err := h.Artists.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "could not load artist")
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateForm handles GET /artists/create.
func (h *ArtistHandler) CreateForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": service.ArtistForm{Genres: []string{}}})
}

// Create handles POST /artists/create.
func (h *ArtistHandler) Create(c echo.Context) error {
	var form service.ArtistForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	a, err := h.Artists.Create(c.Request().Context(), form)
	if err != nil {
		return fail(c, err, fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name))
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Artist %s was successfully listed!", a.Name),
		"artist":  a,
	})
}

// EditForm handles GET /artists/:id/edit.
func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	form, err := h.Artists.EditForm(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "could not load artist")
	}
	return c.JSON(http.StatusOK, echo.Map{"form": form})
}

// Edit handles POST /artists/:id/edit with full-record overwrite
// semantics.
func (h *ArtistHandler) Edit(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var form service.ArtistForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	a, err := h.Artists.Update(c.Request().Context(), id, form)
	if err != nil {
		return fail(c, err, fmt.Sprintf("An error occurred. Artist %s could not be edited.", form.Name))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Artist %s was successfully edited", a.Name),
		"artist":  a,
	})
}

// Delete handles DELETE /artists/:id with the same cascade semantics as
// venue deletion.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	a, err := h.Artists.Delete(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, "An error occurred. Artist could not be deleted.")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Artist %s was successfully deleted!", a.Name),
	})
}
