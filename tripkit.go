// Package tripkit is a single-trip travel itinerary engine built with
// Go, Echo and SQLite. The canonical trip document is owned by one
// person; collaborators who open a share link get viewer mode, where
// their edits land in private per-section overlays instead of the
// canonical document. Changing the trip's date range reconciles the day
// sequence while preserving existing day content.
package tripkit

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velora/tripkit/activity"
)

// App is the central tripkit application. It wires together the
// canonical store, overlay store, section store, handlers and
// middleware.
type App struct {
	Config   Config
	Echo     *echo.Echo
	Store    *Store
	Overlays *OverlayStore
	Trips    *Controller
	Sections *SectionStore

	Rates   *RateFetcher
	Weather *WeatherFetcher

	fetchLimiter  *FetchLimiter
	activityStore *activity.Store
	customRoutes  []func(*App)
	staticDir     string
}

// New creates a tripkit App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the stores and wires the components without starting the
// server. The CLI uses this for offline commands; Start calls it too.
func (a *App) Init() error {
	if a.Store != nil {
		return nil
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("tripkit: init store: %w", err)
	}
	a.Store = store
	a.Overlays = NewOverlayStore(a.Config.OverlayPath)
	a.Trips = NewController(store, a.Config.TripCacheTTL)
	a.Sections = NewSectionStore(a.Trips, a.Overlays)
	a.Rates = NewRateFetcher(a.Config.RatesBaseURL, a.Config.FetchTimeout)
	a.Weather = NewWeatherFetcher(a.Config.WeatherBaseURL, a.Config.FetchTimeout)
	a.fetchLimiter = NewFetchLimiter(10, time.Minute)

	if a.Config.ActivityEnabled {
		activityStore, err := activity.NewStore(a.Config.ActivityDatabasePath)
		if err != nil {
			return fmt.Errorf("tripkit: init activity: %w", err)
		}
		a.activityStore = activityStore
	}

	return nil
}

// Start initializes everything, ensures a trip document exists, and
// runs the server until it stops.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("tripkit: SessionSecret is required")
	}

	if err := a.Init(); err != nil {
		return err
	}

	if err := a.ensureTrip(); err != nil {
		return err
	}

	var stopSweep func()
	if a.activityStore != nil {
		stopSweep = a.activityStore.StartRetentionSweep(a.Config.ActivityKeepDays, 24*time.Hour)
		defer stopSweep()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// ensureTrip creates the default trip skeleton when the store is empty,
// so every section read has a canonical document to resolve against.
func (a *App) ensureTrip() error {
	_, err := a.Trips.Get()
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	start := time.Now().Format(dateLayout)
	end, err := addDays(start, a.Config.DefaultTripDays-1)
	if err != nil {
		return err
	}
	t, err := NewTrip(a.Config.DefaultTripTitle, start, end)
	if err != nil {
		return err
	}
	log.Printf("tripkit: created default trip %q (%s – %s)", t.Title, start, end)
	return a.Trips.Commit(t)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)

	e.GET("/", a.handleOverview)
	e.GET("/share", a.handleShare)
	e.GET("/export", a.handleExport)
	e.POST("/import", a.handleImport)

	e.GET("/api/trip", a.handleTrip)
	e.PUT("/api/trip/dates", a.handleResizeDays)
	e.GET("/api/sections/:name", a.handleSectionRead)
	e.PATCH("/api/sections/:name", a.handleSectionPatch)
	e.POST("/api/days/:id/hero", a.handleHeroUpload)
	e.GET("/api/images", a.handleImageList)
	e.DELETE("/api/images/:filename", a.handleImageDelete)
	e.GET("/api/rates", a.handleRates)
	e.GET("/api/weather", a.handleWeather)

	if a.activityStore != nil {
		handler := activity.NewHandler(a.activityStore)
		handler.RegisterRoutes(e)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.activityStore != nil {
		a.activityStore.Close()
	}
	return nil
}

// record logs an edit event when the activity log is enabled.
func (a *App) record(mode ShareMode, section, summary string) {
	if a.activityStore == nil {
		return
	}
	if err := a.activityStore.Record(string(mode), section, summary); err != nil {
		log.Printf("tripkit: record activity: %v", err)
	}
}

// EnvOr returns the value of the environment variable key, or fallback
// if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("tripkit: required environment variable %s is not set", key)
	}
	return v
}
