package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alcyxob/coaching-app/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	c.Request = req
	return c, rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookieName {
			found = ck
		}
	}
	require.NotNil(t, found, "no session cookie written")
	return found
}

func TestSessionIssueAndIdentity(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)
	who := domain.Identity{Kind: domain.PrincipalInstructor, ID: 7, Name: "Sam"}

	c, rec := newSessionContext()
	m.Issue(c, who, nil)
	ck := sessionCookie(t, rec)
	assert.True(t, ck.HttpOnly)
	assert.InDelta(t, 3600, ck.MaxAge, 2)

	next, _ := newSessionContext(ck)
	assert.Equal(t, who, m.Identity(next))
}

func TestSessionRejectsTampering(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)
	c, rec := newSessionContext()
	m.Issue(c, domain.Identity{Kind: domain.PrincipalPlayer, ID: 3, Name: "Avery"}, nil)
	ck := sessionCookie(t, rec)

	tampered := *ck
	tampered.Value = ck.Value[:len(ck.Value)-2] + "xx"
	next, _ := newSessionContext(&tampered)
	assert.Equal(t, domain.Anonymous, m.Identity(next))

	other := NewSessionManager("another-secret", time.Hour, false)
	next, _ = newSessionContext(ck)
	assert.Equal(t, domain.Anonymous, other.Identity(next))

	garbage, _ := newSessionContext(&http.Cookie{Name: SessionCookieName, Value: "not-a-token"})
	assert.Equal(t, domain.Anonymous, m.Identity(garbage))
}

func TestSessionRejectsOtherAlgorithms(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)
	claims := &sessionClaims{Kind: domain.PrincipalInstructor, UserID: 1, Name: "x"}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	c, _ := newSessionContext(&http.Cookie{Name: SessionCookieName, Value: token})
	assert.Equal(t, domain.Anonymous, m.Identity(c))
}

func TestSessionExpires(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	c, rec := newSessionContext()
	m.Issue(c, domain.Identity{Kind: domain.PrincipalPlayer, ID: 3}, nil)

	fresh := NewSessionManager("secret", time.Hour, false)
	next, _ := newSessionContext(sessionCookie(t, rec))
	assert.Equal(t, domain.Anonymous, fresh.Identity(next))
}

func TestFlashIsReadOnce(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)
	who := domain.Identity{Kind: domain.PrincipalInstructor, ID: 7, Name: "Sam"}

	c, rec := newSessionContext()
	m.Issue(c, who, nil)
	m.SetFlash(c, FlashOK, "Note saved.")
	assert.Equal(t, who, m.Identity(c), "setting a flash keeps the identity")

	withFlash := sessionCookie(t, rec)
	c2, rec2 := newSessionContext(withFlash)
	assert.Equal(t, &Flash{Type: FlashOK, Msg: "Note saved."}, m.PopFlash(c2))
	assert.Nil(t, m.PopFlash(c2))

	c3, _ := newSessionContext(sessionCookie(t, rec2))
	assert.Nil(t, m.PopFlash(c3))
	assert.Equal(t, who, m.Identity(c3))
}

func TestAnonymousFlashAndDestroy(t *testing.T) {
	m := NewSessionManager("secret", time.Hour, false)

	c, rec := newSessionContext()
	m.SetFlash(c, FlashWarn, "Invalid player code.")
	c2, rec2 := newSessionContext(sessionCookie(t, rec))
	assert.Equal(t, domain.Anonymous, m.Identity(c2))
	assert.Equal(t, "Invalid player code.", m.PopFlash(c2).Msg)
	assert.Negative(t, sessionCookie(t, rec2).MaxAge, "an empty session removes the cookie")

	c3, rec3 := newSessionContext()
	m.Issue(c3, domain.Identity{Kind: domain.PrincipalPlayer, ID: 1}, nil)
	m.Destroy(c3)
	assert.Equal(t, domain.Anonymous, m.Identity(c3))
	assert.Negative(t, sessionCookie(t, rec3).MaxAge)
}
