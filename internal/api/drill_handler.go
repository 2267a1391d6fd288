package api

import (
	"net/http"

	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

type DrillHandler struct {
	responder
	drillService service.DrillService
}

func NewDrillHandler(r responder, drillService service.DrillService) *DrillHandler {
	return &DrillHandler{responder: r, drillService: drillService}
}

type ShareDrillRequest struct {
	PlayerID int64  `form:"player_id" binding:"required,gt=0"`
	Filename string `form:"filename" binding:"required"`
	Title    string `form:"title"`
	TextAlso string `form:"text_also"`
}

// UploadDrill handles POST /drills/upload (multipart "file").
func (h *DrillHandler) UploadDrill(c *gin.Context) {
	file, closeFile, err := formUpload(c, "file")
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	defer closeFile()

	name, err := h.drillService.UploadDrill(c.Request.Context(), currentIdentity(c), file)
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"ok": true, "filename": name})
		return
	}
	h.flashRedirect(c, "/instructor", FlashOK, "Drill uploaded.")
}

// ShareDrill handles POST /drills/send. A failed text still shares the drill
// and turns the confirmation into a warning.
func (h *DrillHandler) ShareDrill(c *gin.Context) {
	var req ShareDrillRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/instructor")
		return
	}

	result, err := h.drillService.ShareDrill(c.Request.Context(), currentIdentity(c), service.ShareDrillInput{
		PlayerID: req.PlayerID,
		Filename: req.Filename,
		Title:    req.Title,
		AlsoText: checked(req.TextAlso),
	})
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"ok": true, "drill": result.Drill, "text": result.Text})
		return
	}
	if result.Text == service.TextFailed {
		_, msg := describeError(result.TextErr)
		h.flashRedirect(c, "/instructor", FlashWarn, "Drill shared with player. "+msg)
		return
	}
	h.flashRedirect(c, "/instructor", FlashOK, "Drill shared with player.")
}
