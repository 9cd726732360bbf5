package activity

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler serves the activity feed endpoints.
type Handler struct {
	store *Store
}

// NewHandler creates a Handler over the given store.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the activity routes on e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/activity", h.handleRecent)
}

func (h *Handler) handleRecent(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be 1-500")
		}
		limit = n
	}
	events, err := h.store.Recent(limit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []Event{}
	}
	return c.JSON(http.StatusOK, events)
}
