package api

import (
	"net/http"
	"strings"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ContextIdentityKey holds the domain.Identity resolved from the session.
const ContextIdentityKey = "identity"

// SessionMiddleware resolves the caller's identity once per request.
func SessionMiddleware(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIdentityKey, sessions.Identity(c))
		c.Next()
	}
}

// instructorOnly rejects callers without an instructor session before any
// input is bound. The services still load the instructor on every operation.
// alwaysJSON answers with JSON even for form posts.
func instructorOnly(r responder, alwaysJSON bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentIdentity(c).IsInstructor() {
			c.Next()
			return
		}
		if alwaysJSON {
			r.failJSON(c, service.ErrUnauthorized)
		} else {
			r.fail(c, service.ErrUnauthorized, "/instructor")
		}
		c.Abort()
	}
}

// currentIdentity returns the identity set by SessionMiddleware, or Anonymous.
func currentIdentity(c *gin.Context) domain.Identity {
	raw, exists := c.Get(ContextIdentityKey)
	if !exists {
		return domain.Anonymous
	}
	who, ok := raw.(domain.Identity)
	if !ok {
		return domain.Anonymous
	}
	return who
}

// wantsJSON reports whether the caller is a script rather than a form post.
func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"ok": false, "error": message})
}

func redirect(c *gin.Context, to string) {
	c.Redirect(http.StatusSeeOther, to)
}
