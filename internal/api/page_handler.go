package api

import (
	"net/http"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the read-only pages as JSON view models.
type PageHandler struct {
	responder
	dashboardService service.DashboardService
	authService      service.AuthService
}

func NewPageHandler(r responder, dashboardService service.DashboardService, authService service.AuthService) *PageHandler {
	return &PageHandler{responder: r, dashboardService: dashboardService, authService: authService}
}

type DashboardResponse struct {
	User  *domain.Identity `json:"user"`
	Flash *Flash           `json:"flash"`
	*service.PlayerDashboard
}

type WorkspaceResponse struct {
	User  *domain.Identity `json:"user"`
	Flash *Flash           `json:"flash"`
	*service.Workspace
}

func userOrNil(who domain.Identity) *domain.Identity {
	if who.IsAnonymous() {
		return nil
	}
	return &who
}

// Dashboard handles GET /.
func (h *PageHandler) Dashboard(c *gin.Context) {
	who := currentIdentity(c)
	view, err := h.dashboardService.PlayerDashboard(c.Request.Context(), who)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, DashboardResponse{
		User:            userOrNil(who),
		Flash:           h.sessions.PopFlash(c),
		PlayerDashboard: view,
	})
}

// Workspace handles GET /instructor. It seeds the master instructor on first use.
func (h *PageHandler) Workspace(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.authService.EnsureMasterInstructor(ctx); err != nil {
		h.internalError(c, err)
		return
	}

	who := currentIdentity(c)
	view, err := h.dashboardService.Workspace(ctx, who)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, WorkspaceResponse{
		User:      userOrNil(who),
		Flash:     h.sessions.PopFlash(c),
		Workspace: view,
	})
}

// PlayerDetail handles GET /players/:id.
func (h *PageHandler) PlayerDetail(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.failJSON(c, err)
		return
	}
	detail, err := h.dashboardService.PlayerDetail(c.Request.Context(), currentIdentity(c), id)
	if err != nil {
		h.failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
