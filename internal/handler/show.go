package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showbill/showbill/internal/service"
)

// ShowHandler maps the /shows routes onto the show service.
type ShowHandler struct {
	Shows *service.ShowService
}

// List handles GET /shows. The response carries the upcoming/past split
// computed against the current time; repeating the request after a show's
// start time has passed moves it between the lists without any write.
func (h *ShowHandler) List(c echo.Context) error {
	page, err := h.Shows.List(c.Request().Context())
	if err != nil {
		return fail(c, err, "could not list shows")
	}
	return c.JSON(http.StatusOK, page)
}

// CreateForm handles GET /shows/create.
func (h *ShowHandler) CreateForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"form": service.ShowForm{}})
}

// Create handles POST /shows/create. Both referenced ids must resolve;
// a dangling venue or artist id yields 404 naming the missing entity.
func (h *ShowHandler) Create(c echo.Context) error {
	var form service.ShowForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	show, err := h.Shows.Create(c.Request().Context(), form)
	if err != nil {
		return fail(c, err, "An error occurred. Show could not be listed.")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Show was successfully listed!",
		"show":    show,
	})
}
