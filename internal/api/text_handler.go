package api

import (
	"net/http"

	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

type TextHandler struct {
	responder
	textService service.TextService
}

func NewTextHandler(r responder, textService service.TextService) *TextHandler {
	return &TextHandler{responder: r, textService: textService}
}

type SendTextRequest struct {
	PlayerID int64  `form:"player_id" binding:"required,gt=0"`
	Body     string `form:"body" binding:"required"`
}

// SendText handles POST /text/send.
func (h *TextHandler) SendText(c *gin.Context) {
	var req SendTextRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	if err := h.textService.SendText(c.Request.Context(), currentIdentity(c), req.PlayerID, req.Body); err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	h.flashRedirect(c, "/instructor", FlashOK, "Text sent.")
}
