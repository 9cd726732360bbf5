package tripkit

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *App) handleTrip(c echo.Context) error {
	t, err := a.Trips.Get()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no trip")
		}
		return err
	}
	return c.JSON(http.StatusOK, t)
}

type resizeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// handleResizeDays reconciles the day sequence against a new date
// range. Shrinking the range drops trailing days, so it has to be
// confirmed with ?confirm=true; without it the handler answers 409 with
// the number of days that would be lost and nothing changes.
func (a *App) handleResizeDays(c echo.Context) error {
	if ShareModeFrom(c) == ModeViewer {
		return echo.NewHTTPError(http.StatusForbidden, "viewers cannot change the trip dates")
	}
	var req resizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	confirmed := c.QueryParam("confirm") == "true"

	lostDays := 0
	updated, err := a.Trips.Update(func(t *Trip) error {
		next, err := ResizeDays(t, req.Start, req.End, func(lost int) bool {
			lostDays = lost
			return confirmed
		})
		if err != nil {
			return err
		}
		*t = *next
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRange):
			return echo.NewHTTPError(http.StatusBadRequest, "end date precedes start date")
		case errors.Is(err, ErrShrinkDeclined):
			return c.JSON(http.StatusConflict, map[string]any{
				"confirmRequired": true,
				"lostDays":        lostDays,
			})
		}
		return err
	}
	a.record(ModeOwner, "days", fmt.Sprintf("date range set to %s – %s", req.Start, req.End))
	return c.JSON(http.StatusOK, updated)
}

func (a *App) handleSectionRead(c echo.Context) error {
	name := c.Param("name")
	if !KnownSection(name) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown section")
	}
	value, err := a.Sections.Read(ShareModeFrom(c), name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, value)
}

func (a *App) handleSectionPatch(c echo.Context) error {
	name := c.Param("name")
	if !KnownSection(name) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown section")
	}
	var patch map[string]any
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed patch")
	}
	mode := ShareModeFrom(c)
	value, err := a.Sections.Patch(mode, name, patch)
	if err != nil {
		if errors.Is(err, ErrSectionReadOnly) {
			return echo.NewHTTPError(http.StatusForbidden, "section is read-only for viewers")
		}
		return err
	}
	a.record(mode, name, "section updated")
	return c.JSON(http.StatusOK, value)
}

func (a *App) handleExport(c echo.Context) error {
	t, err := a.Trips.Get()
	if err != nil {
		return err
	}
	data, filename, err := ExportTrip(t)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

const maxImportSize = 4 << 20 // 4MB

// handleImport replaces the entire canonical document. The body must
// validate as a trip before anything is touched; on failure the current
// trip stays as it is.
func (a *App) handleImport(c echo.Context) error {
	if ShareModeFrom(c) == ModeViewer {
		return echo.NewHTTPError(http.StatusForbidden, "viewers cannot import")
	}
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportSize))
	if err != nil {
		return err
	}
	t, err := ParseImport(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "not a valid trip document")
	}
	if err := a.Trips.Replace(t); err != nil {
		return err
	}
	a.record(ModeOwner, "trip", "document imported")
	return c.JSON(http.StatusOK, t)
}

func (a *App) handleShare(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"url": ShareURL(a.Config.URL)})
}

// handleRates refreshes the exchange rate for the currency section.
// The result is applied as an ordinary section patch in the caller's
// mode, so a viewer's refresh lands in their overlay. A failed fetch
// leaves the last good rate in place and only flips the status flag.
func (a *App) handleRates(c echo.Context) error {
	if !a.fetchLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many rate refreshes")
	}
	mode := ShareModeFrom(c)
	current, err := a.Sections.Read(mode, SectionCurrency)
	if err != nil {
		return err
	}
	home, _ := current["home"].(string)
	travel, _ := current["travel"].(string)

	rate, err := a.Rates.Fetch(c.Request().Context(), home, travel)
	if err != nil {
		c.Logger().Errorf("rate fetch failed: %v", err)
		value, perr := a.Sections.Patch(mode, SectionCurrency, map[string]any{"rateStatus": "error"})
		if perr != nil {
			return perr
		}
		return c.JSON(http.StatusOK, value)
	}
	value, err := a.Sections.Patch(mode, SectionCurrency, map[string]any{
		"rate":       rate,
		"rateStatus": "ok",
		"updatedAt":  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, value)
}

// handleWeather proxies a forecast lookup for a day's coordinates. The
// forecast is display data, not trip state; failures surface as a
// status flag without touching anything.
func (a *App) handleWeather(c echo.Context) error {
	if !a.fetchLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many weather lookups")
	}
	lat := c.QueryParam("lat")
	lon := c.QueryParam("lon")
	if lat == "" || lon == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "lat and lon are required")
	}
	forecast, err := a.Weather.Fetch(c.Request().Context(), lat, lon)
	if err != nil {
		c.Logger().Errorf("weather fetch failed: %v", err)
		return c.JSON(http.StatusOK, map[string]any{"status": "error"})
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "forecast": forecast})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	_ = c.JSON(code, map[string]string{"error": msg})
}
