package api

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"alcyxob/coaching-app/internal/service"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	responder
	playerService service.PlayerService
}

func NewPlayerHandler(r responder, playerService service.PlayerService) *PlayerHandler {
	return &PlayerHandler{responder: r, playerService: playerService}
}

type CreatePlayerRequest struct {
	Name  string `form:"name" binding:"required"`
	Age   string `form:"age"`
	Phone string `form:"phone"`
}

// CreatePlayer handles POST /players/create (multipart, optional "photo" file).
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req CreatePlayerRequest
	if err := bindForm(c, &req); err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	age, err := parseOptionalInt(req.Age, "age")
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}

	input := service.NewPlayer{Name: req.Name, Age: age, Phone: req.Phone}
	photo, closePhoto, err := formUpload(c, "photo")
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	defer closePhoto()
	input.Photo = photo

	player, err := h.playerService.CreatePlayer(c.Request.Context(), currentIdentity(c), input)
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	h.flashRedirect(c, "/instructor", FlashOK, "Player created. Login code: "+player.Code)
}

// BulkImportCSV handles POST /players/bulk_csv (multipart "file").
func (h *PlayerHandler) BulkImportCSV(c *gin.Context) {
	file, closeFile, err := formUpload(c, "file")
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	defer closeFile()
	if file == nil {
		if !currentIdentity(c).IsInstructor() {
			h.fail(c, service.ErrUnauthorized, "/instructor")
			return
		}
		h.fail(c, &service.InputError{Reason: "a CSV file is required"}, "/instructor")
		return
	}

	created, err := h.playerService.ImportCSV(c.Request.Context(), currentIdentity(c), file.Content)
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	h.flashRedirect(c, "/instructor", FlashOK, fmt.Sprintf("Imported %d players.", created))
}

// DeletePlayer handles POST /players/:id/delete.
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	if err := h.playerService.DeletePlayer(c.Request.Context(), currentIdentity(c), id); err != nil {
		h.fail(c, err, "/instructor")
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	h.flashRedirect(c, "/instructor", FlashOK, "Player deleted.")
}

// formUpload opens an optional multipart file. It returns a nil upload when the
// field is absent or empty. The returned close func is always safe to call.
func formUpload(c *gin.Context, field string) (*service.Upload, func(), error) {
	noop := func() {}
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, &service.InputError{Reason: "unreadable upload"}
	}
	if header.Filename == "" {
		return nil, noop, nil
	}

	var f multipart.File
	if f, err = header.Open(); err != nil {
		return nil, noop, errors.Wrapf(err, "open upload %s", field)
	}
	return &service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     f,
	}, func() { _ = f.Close() }, nil
}
