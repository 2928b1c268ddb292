package layout

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// Redirector builds route URLs of the form <base>?a=<route> and
// <base>/admin?a=<route>.
type Redirector struct {
	base    string
	observe func(admin bool)
}

// NewRedirector returns a Redirector for baseURL. baseURL is used verbatim:
// "https://h/" yields "https://h/?a=x" and "https://h//admin?a=x", so
// configure it without a trailing slash.
func NewRedirector(baseURL string, observe func(admin bool)) *Redirector {
	return &Redirector{base: baseURL, observe: observe}
}

// URL returns the redirect target for route. The route is query-escaped.
func (rd *Redirector) URL(route string, admin bool) string {
	prefix := rd.base
	if admin {
		prefix += "/admin"
	}
	return prefix + "?a=" + url.QueryEscape(route)
}

// Redirect replies with 302 Found to the route URL.
func (rd *Redirector) Redirect(w http.ResponseWriter, r *http.Request, route string, admin bool) {
	if rd.observe != nil {
		rd.observe(admin)
	}
	http.Redirect(w, r, rd.URL(route, admin), http.StatusFound)
}

// RedirectEcho is Redirect for echo handlers.
func (rd *Redirector) RedirectEcho(c echo.Context, route string, admin bool) error {
	if rd.observe != nil {
		rd.observe(admin)
	}
	return c.Redirect(http.StatusFound, rd.URL(route, admin))
}
