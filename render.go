package tripkit

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/velora/tripkit/markdown"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// handleOverview serves the read-only trip overview page: title, date
// range, the day sequence, and the info notes. Viewer or owner, this is
// the same canonical view; editing happens through the API.
func (a *App) handleOverview(c echo.Context) error {
	t, err := a.Trips.Get()
	if err != nil {
		return err
	}
	return Render(c, overviewPage(a.Config.Name, t, ShareModeFrom(c)))
}

func overviewPage(appName string, t *Trip, mode ShareMode) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s — %s</title></head><body>\n",
			html.EscapeString(t.Title), html.EscapeString(appName))
		fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(t.Title))
		fmt.Fprintf(w, "<p>%s – %s", html.EscapeString(t.StartDate), html.EscapeString(t.EndDate))
		if mode == ModeViewer {
			io.WriteString(w, " <em>(shared view)</em>")
		}
		io.WriteString(w, "</p>\n<ol>\n")
		for _, d := range t.Days {
			fmt.Fprintf(w, "<li><strong>%s</strong> %s (%s)",
				html.EscapeString(d.HeroTitle), html.EscapeString(d.Date), html.EscapeString(d.Weekday))
			if len(d.Items) > 0 {
				io.WriteString(w, "<ul>")
				for _, item := range d.Items {
					fmt.Fprintf(w, "<li>%s %s</li>", html.EscapeString(item.Time), html.EscapeString(item.Title))
				}
				io.WriteString(w, "</ul>")
			}
			io.WriteString(w, "</li>\n")
		}
		io.WriteString(w, "</ol>\n")
		if t.Info.Notes != "" {
			io.WriteString(w, "<section>\n")
			if err := markdown.Markdown(t.Info.Notes).Render(ctx, w); err != nil {
				return err
			}
			io.WriteString(w, "</section>\n")
		}
		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}
