package api

import (
	"net/http"
	"strings"
	"unicode"

	"alcyxob/coaching-app/internal/service"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// responder turns handler outcomes into redirects with flash messages, or JSON
// for scripted callers.
type responder struct {
	sessions *SessionManager
	logger   *zap.Logger
}

func (r responder) flashRedirect(c *gin.Context, to, flashType, msg string) {
	r.sessions.SetFlash(c, flashType, msg)
	redirect(c, to)
}

// fail reports err. Form posts get a warn flash and a redirect to back; JSON
// callers get a status code. Unexpected errors are logged and answered with 500.
func (r responder) fail(c *gin.Context, err error, back string) {
	status, msg := describeError(err)
	if status == http.StatusInternalServerError {
		r.internalError(c, err)
		return
	}
	if wantsJSON(c) {
		abortWithError(c, status, msg)
		return
	}
	r.flashRedirect(c, back, FlashWarn, msg)
}

// failJSON reports err as JSON regardless of what the caller accepts.
func (r responder) failJSON(c *gin.Context, err error) {
	status, msg := describeError(err)
	if status == http.StatusInternalServerError {
		r.internalError(c, err)
		return
	}
	abortWithError(c, status, msg)
}

func (r responder) internalError(c *gin.Context, err error) {
	r.logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, "Internal server error")
}

// describeError maps service errors to a status code and a user-facing message.
func describeError(err error) (int, string) {
	var inputErr *service.InputError
	var sendErr *service.SendError

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.As(err, &inputErr):
		return http.StatusUnprocessableEntity, sentence(inputErr.Reason)
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusUnprocessableEntity, "Invalid input."
	case errors.Is(err, service.ErrInvalidCredential):
		return http.StatusUnauthorized, "Invalid code."
	case errors.Is(err, service.ErrPlayerNotFound):
		return http.StatusNotFound, "Player not found."
	case errors.Is(err, service.ErrInstructorNotFound):
		return http.StatusNotFound, "Instructor not found."
	case errors.Is(err, service.ErrGatewayNotConfigured):
		return http.StatusServiceUnavailable, "Twilio not configured."
	case errors.Is(err, service.ErrPlayerMissingPhone):
		return http.StatusUnprocessableEntity, "Player phone missing."
	case errors.As(err, &sendErr):
		return http.StatusBadGateway, "Text failed: " + sendErr.Cause.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

// sentence capitalizes msg and ends it with a period.
func sentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}
	runes := []rune(msg)
	runes[0] = unicode.ToUpper(runes[0])
	if !strings.HasSuffix(msg, ".") {
		runes = append(runes, '.')
	}
	return string(runes)
}
