package api

import (
	"net/http"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/service"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	responder
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(r responder, authService service.AuthService) *AuthHandler {
	return &AuthHandler{responder: r, authService: authService}
}

// --- Request Structs ---

type LoginPlayerRequest struct {
	Code string `form:"code" binding:"required"`
}

type LoginInstructorRequest struct {
	Code string `form:"code" binding:"required"`
	Name string `form:"name"`
}

// --- Handler Methods ---

// LoginPlayer handles POST /login_player.
func (h *AuthHandler) LoginPlayer(c *gin.Context) {
	var req LoginPlayerRequest
	if err := bindForm(c, &req); err != nil {
		h.flashRedirect(c, "/", FlashWarn, "Invalid player code.")
		return
	}

	player, err := h.authService.LoginPlayer(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			h.flashRedirect(c, "/", FlashWarn, "Invalid player code.")
			return
		}
		h.internalError(c, err)
		return
	}

	h.sessions.Issue(c, domain.PlayerIdentity(player), nil)
	redirect(c, "/")
}

// LoginInstructor handles POST /login_instructor. The master code together with
// a name creates a new instructor whose code is shown once.
func (h *AuthHandler) LoginInstructor(c *gin.Context) {
	var req LoginInstructorRequest
	if err := bindForm(c, &req); err != nil {
		h.flashRedirect(c, "/instructor", FlashWarn, "Invalid instructor code.")
		return
	}

	login, err := h.authService.LoginInstructor(c.Request.Context(), req.Code, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			h.flashRedirect(c, "/instructor", FlashWarn, "Invalid instructor code.")
			return
		}
		h.internalError(c, err)
		return
	}

	var flash *Flash
	if login.Provisioned {
		flash = &Flash{Type: FlashOK, Msg: "Instructor created. Your login code: " + login.Instructor.Code}
	}
	h.sessions.Issue(c, domain.InstructorIdentity(login.Instructor), flash)
	redirect(c, "/instructor")
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Destroy(c)
	redirect(c, "/")
}

// DeleteInstructor handles POST /instructors/:id/delete. Deleting yourself ends
// the session.
func (h *AuthHandler) DeleteInstructor(c *gin.Context) {
	who := currentIdentity(c)
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}

	if err := h.authService.DeleteInstructor(c.Request.Context(), who, id); err != nil {
		h.fail(c, err, "/instructor")
		return
	}

	if wantsJSON(c) {
		if id == who.ID {
			h.sessions.Destroy(c)
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	if id == who.ID {
		h.sessions.Issue(c, domain.Anonymous, &Flash{Type: FlashOK, Msg: "Instructor deleted."})
		redirect(c, "/instructor")
		return
	}
	h.flashRedirect(c, "/instructor", FlashOK, "Instructor deleted.")
}
