package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/skinstore/internal/catalog"
	"github.com/Skotchmaster/skinstore/internal/models"
)

type CatalogHandler struct {
	Items []models.Skin
}

// Browse returns the catalog view for the query params carried in the URL.
// An empty data array is a valid answer, not an error.
func (h *CatalogHandler) Browse(c echo.Context) error {
	var params catalog.Params
	if err := c.Bind(&params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query params")
	}

	items := catalog.Apply(h.Items, params)
	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{
			"count": len(items),
			"total": len(h.Items),
		},
	})
}
