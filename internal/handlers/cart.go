package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/skinstore/internal/cart"
	"github.com/Skotchmaster/skinstore/internal/models"
)

// CartHandler exposes the in-process cart ledger. The ledger itself is
// single-owner state; the handler serializes HTTP access to it.
type CartHandler struct {
	mu      sync.Mutex
	Ledger  *cart.Ledger
	Catalog []models.Skin
}

type cartView struct {
	Entries []cart.Entry `json:"entries"`
	Total   float64      `json:"total"`
	Count   int          `json:"count"`
}

func (h *CartHandler) view() cartView {
	return cartView{
		Entries: h.Ledger.Entries(),
		Total:   h.Ledger.Total(),
		Count:   h.Ledger.Count(),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.JSON(http.StatusOK, h.view())
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		SkinID int `json:"skin_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var skin *models.Skin
	for i := range h.Catalog {
		if h.Catalog[i].ID == req.SkinID {
			skin = &h.Catalog[i]
			break
		}
	}
	if skin == nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown skin")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	entry := h.Ledger.Add(*skin)
	return c.JSON(http.StatusOK, echo.Map{"entry": entry, "cart": h.view()})
}

// RemoveEntry deletes one exact cart entry by its entry ID.
func (h *CartHandler) RemoveEntry(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.Ledger.RemoveEntry(c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "no such cart entry")
	}
	return c.JSON(http.StatusOK, h.view())
}

// RemoveItem deletes the first cart entry holding the given skin, leaving
// any later duplicates alone.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.Ledger.RemoveItem(id) {
		return echo.NewHTTPError(http.StatusNotFound, "skin not in cart")
	}
	return c.JSON(http.StatusOK, h.view())
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Ledger.Clear()
	return c.JSON(http.StatusOK, h.view())
}
