package tripkit

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	sessionName  = "trip_session"
	shareModeKey = "shareMode"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	e.Use(session.Middleware(a.newSessionStore()))
	e.Use(shareModeMiddleware)
	e.Use(cacheControlMiddleware)
}

// shareModeMiddleware resolves the request's share mode. ?share=viewer
// selects viewer mode and pins it in the session so the viewer stays a
// viewer on subsequent requests; any other explicit value unpins back
// to owner. Absence of the parameter keeps whatever the session holds,
// defaulting to owner. This is a client-side convention, not an
// authentication boundary.
func shareModeMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		mode := ModeOwner

		sess, err := session.Get(sessionName, c)
		if err == nil {
			if v, ok := sess.Values[shareModeKey].(string); ok && v == string(ModeViewer) {
				mode = ModeViewer
			}
		}

		if raw := c.QueryParam("share"); raw != "" {
			if raw == string(ModeViewer) {
				mode = ModeViewer
			} else {
				mode = ModeOwner
			}
			if sess != nil {
				sess.Values[shareModeKey] = string(mode)
				if err := sess.Save(c.Request(), c.Response()); err != nil {
					return err
				}
			}
		}

		c.Set(shareModeKey, mode)
		return next(c)
	}
}

// ShareModeFrom returns the share mode the middleware resolved for this
// request, defaulting to owner.
func ShareModeFrom(c echo.Context) ShareMode {
	if mode, ok := c.Get(shareModeKey).(ShareMode); ok {
		return mode
	}
	return ModeOwner
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		default:
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 30,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}
