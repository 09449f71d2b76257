package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cstdportal/internal/auth"
	"cstdportal/internal/classifier"
	"cstdportal/internal/model"
	"cstdportal/internal/service"
	"cstdportal/internal/view"
)

// adminOnlyNotice is shown when a non-admin tries to open the admin listing.
const adminOnlyNotice = "Only admin can access this section."

// PageHandler renders the portal views. Every navigation is checked against
// the authorization gate before a view is produced.
type PageHandler struct {
	classifierClient *classifier.Client
}

// NewPageHandler creates a new page handler.
func NewPageHandler(classifierClient *classifier.Client) *PageHandler {
	return &PageHandler{classifierClient: classifierClient}
}

// Home renders the public landing view.
func (h *PageHandler) Home(c echo.Context) error {
	notice := ""
	if c.QueryParam("notice") == "admin" {
		notice = adminOnlyNotice
	}
	return c.Render(http.StatusOK, "home", view.Data{
		Session: auth.CurrentSession(c),
		View:    service.ViewHome,
		Notice:  notice,
	})
}

// Analyze renders the upload view for authenticated visitors.
func (h *PageHandler) Analyze(c echo.Context) error {
	session := auth.CurrentSession(c)
	if redirect, err := gateRedirect(c, session, service.ViewAnalyze); redirect {
		return err
	}
	return c.Render(http.StatusOK, "analyze", view.Data{
		Session: session,
		View:    service.ViewAnalyze,
	})
}

// AdminFiles renders the admin-only result file listing. The listing is
// fetched fresh on every view; a failure renders the error state with zero
// rows instead of failing the page.
func (h *PageHandler) AdminFiles(c echo.Context) error {
	session := auth.CurrentSession(c)
	if redirect, err := gateRedirect(c, session, service.ViewAdminFiles); redirect {
		return err
	}

	data := view.Data{
		Session: session,
		View:    service.ViewAdminFiles,
	}
	files, err := h.classifierClient.ListResultFiles(c.Request().Context())
	if err != nil {
		data.ListingError = "Failed to load files. Make sure the classification service is running and saving outputs."
	} else {
		data.Files = files
	}
	return c.Render(http.StatusOK, "admin_files", data)
}

// Auth renders the authentication dialog in the requested mode.
func (h *PageHandler) Auth(c echo.Context) error {
	mode := c.QueryParam("mode")
	switch mode {
	case "login", "register", "forgot":
	default:
		mode = "login"
	}
	return c.Render(http.StatusOK, "auth", view.Data{
		Session: auth.CurrentSession(c),
		Mode:    mode,
	})
}

// gateRedirect applies the authorization gate's decision to a page request.
// RequiresLogin opens the auth dialog in login mode; RequiresAdminRole sends
// the visitor home with a non-blocking notice.
func gateRedirect(c echo.Context, session model.Session, viewID service.View) (bool, error) {
	switch service.Authorize(session, viewID) {
	case service.RequiresLogin:
		return true, c.Redirect(http.StatusSeeOther, "/auth?mode=login")
	case service.RequiresAdminRole:
		return true, c.Redirect(http.StatusSeeOther, "/?notice=admin")
	default:
		return false, nil
	}
}
