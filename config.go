package tripkit

import "time"

// Config holds all configuration for a tripkit instance.
type Config struct {
	Name string // Trip app display name (default "Trip")
	URL  string // Canonical base URL for share links (default "http://localhost:3000")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // Canonical document SQLite path (default "data/trip.db")
	OverlayPath  string // Viewer overlay diskv directory (default "data/overlay")

	ActivityEnabled      bool   // Enable the edit activity log (default off)
	ActivityDatabasePath string // Activity SQLite path (default "data/activity.db")
	ActivityKeepDays     int    // Activity retention in days (default 90)

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	TripCacheTTL time.Duration // Parsed-trip cache TTL (default 5min)

	RatesBaseURL   string        // Exchange-rate API base (default Frankfurter)
	WeatherBaseURL string        // Weather API base (default Open-Meteo)
	FetchTimeout   time.Duration // External fetch deadline (default 8s)

	DefaultTripTitle string // Title for the auto-created first trip (default "My Trip")
	DefaultTripDays  int    // Length of the auto-created first trip (default 7)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Trip"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/trip.db"
	}
	if c.OverlayPath == "" {
		c.OverlayPath = "data/overlay"
	}
	if c.ActivityDatabasePath == "" {
		c.ActivityDatabasePath = "data/activity.db"
	}
	if c.ActivityKeepDays == 0 {
		c.ActivityKeepDays = 90
	}
	if c.TripCacheTTL == 0 {
		c.TripCacheTTL = 5 * time.Minute
	}
	if c.RatesBaseURL == "" {
		c.RatesBaseURL = "https://api.frankfurter.dev/v1"
	}
	if c.WeatherBaseURL == "" {
		c.WeatherBaseURL = "https://api.open-meteo.com/v1"
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 8 * time.Second
	}
	if c.DefaultTripTitle == "" {
		c.DefaultTripTitle = "My Trip"
	}
	if c.DefaultTripDays == 0 {
		c.DefaultTripDays = 7
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets and uploaded hero
// images (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
