package api

import (
	"net/http"

	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

type CoachingHandler struct {
	responder
	coachingService service.CoachingService
}

func NewCoachingHandler(r responder, coachingService service.CoachingService) *CoachingHandler {
	return &CoachingHandler{responder: r, coachingService: coachingService}
}

type AddMetricRequest struct {
	PlayerID     int64    `form:"player_id" binding:"required,gt=0"`
	ExitVelocity *float64 `form:"exit_velocity" binding:"required"`
}

type AddNoteRequest struct {
	PlayerID        int64  `form:"player_id" binding:"required,gt=0"`
	Text            string `form:"text" binding:"required"`
	ShareWithPlayer string `form:"share_with_player"`
}

type ToggleStarRequest struct {
	PlayerID int64 `form:"player_id" binding:"required,gt=0"`
}

// StarResponse is the body of a successful star toggle.
type StarResponse struct {
	OK     bool `json:"ok"`
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// AddMetric handles POST /metrics/add.
func (h *CoachingHandler) AddMetric(c *gin.Context) {
	var req AddMetricRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	metric, err := h.coachingService.RecordMetric(c.Request.Context(), currentIdentity(c), req.PlayerID, *req.ExitVelocity)
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"ok": true, "metric": metric})
		return
	}
	redirect(c, "/instructor")
}

// AddNote handles POST /notes/add.
func (h *CoachingHandler) AddNote(c *gin.Context) {
	var req AddNoteRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	note, err := h.coachingService.AddNote(c.Request.Context(), currentIdentity(c), req.PlayerID, req.Text, checked(req.ShareWithPlayer))
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"ok": true, "note": note})
		return
	}
	h.flashRedirect(c, "/instructor", FlashOK, "Note saved.")
}

// ToggleStar handles POST /star/toggle. It always answers JSON.
func (h *CoachingHandler) ToggleStar(c *gin.Context) {
	var req ToggleStarRequest
	if err := bindForm(c, &req); err != nil {
		h.failJSON(c, err)
		return
	}
	toggle, err := h.coachingService.ToggleStar(c.Request.Context(), currentIdentity(c), req.PlayerID)
	if err != nil {
		h.failJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, StarResponse{OK: true, Active: toggle.Active, Count: toggle.Count})
}
