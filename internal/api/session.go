package api

import (
	"net/http"
	"time"

	"alcyxob/coaching-app/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// SessionCookieName is the cookie holding the signed session.
const SessionCookieName = "coach_session"

// Flash types.
const (
	FlashOK   = "ok"
	FlashWarn = "warn"
)

// contextSessionKey caches the session of the current request.
const contextSessionKey = "session"

// Flash is a one-time message shown by the next page.
type Flash struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

// sessionClaims is the payload of the session cookie.
type sessionClaims struct {
	Kind   domain.PrincipalKind `json:"kind,omitempty"`
	UserID int64                `json:"uid,omitempty"`
	Name   string               `json:"name,omitempty"`
	Flash  *Flash               `json:"flash,omitempty"`
	jwt.RegisteredClaims
}

func (s *sessionClaims) identity() domain.Identity {
	id := domain.Identity{Kind: s.Kind, ID: s.UserID, Name: s.Name}
	if !id.IsInstructor() && !id.IsPlayer() {
		return domain.Anonymous
	}
	return id
}

func (s *sessionClaims) empty() bool {
	return s.identity().IsAnonymous() && s.Flash == nil
}

// SessionManager keeps the session in an HS256-signed cookie.
type SessionManager struct {
	secret []byte
	maxAge time.Duration
	secure bool
	now    func() time.Time
}

func NewSessionManager(secret string, maxAge time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		maxAge: maxAge,
		secure: secure,
		now:    time.Now,
	}
}

// Identity returns who the request belongs to. A missing, tampered or expired
// cookie yields domain.Anonymous.
func (m *SessionManager) Identity(c *gin.Context) domain.Identity {
	return m.load(c).identity()
}

// Issue starts a new session for the identity, replacing any previous one.
// flash may be nil.
func (m *SessionManager) Issue(c *gin.Context, who domain.Identity, flash *Flash) {
	claims := &sessionClaims{Flash: flash}
	if !who.IsAnonymous() {
		claims.Kind, claims.UserID, claims.Name = who.Kind, who.ID, who.Name
	}
	claims.ExpiresAt = jwt.NewNumericDate(m.now().Add(m.maxAge))
	claims.IssuedAt = jwt.NewNumericDate(m.now())
	m.save(c, claims)
}

// SetFlash stores a message for the next page, keeping the identity.
func (m *SessionManager) SetFlash(c *gin.Context, flashType, msg string) {
	claims := *m.load(c)
	claims.Flash = &Flash{Type: flashType, Msg: msg}
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(m.now().Add(m.maxAge))
	}
	m.save(c, &claims)
}

// PopFlash returns the pending message, if any, and removes it from the session.
func (m *SessionManager) PopFlash(c *gin.Context) *Flash {
	claims := *m.load(c)
	flash := claims.Flash
	if flash == nil {
		return nil
	}
	claims.Flash = nil
	m.save(c, &claims)
	return flash
}

// Destroy clears the session. Destroying an empty session is a no-op.
func (m *SessionManager) Destroy(c *gin.Context) {
	m.save(c, &sessionClaims{})
}

func (m *SessionManager) load(c *gin.Context) *sessionClaims {
	if cached, ok := c.Get(contextSessionKey); ok {
		if claims, ok := cached.(*sessionClaims); ok {
			return claims
		}
	}
	claims, err := m.parse(c)
	if err != nil {
		claims = &sessionClaims{}
	}
	c.Set(contextSessionKey, claims)
	return claims
}

func (m *SessionManager) parse(c *gin.Context) (*sessionClaims, error) {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil || raw == "" {
		return nil, errors.New("no session cookie")
	}
	claims := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse session cookie")
	}
	if !token.Valid {
		return nil, errors.New("invalid session cookie")
	}
	return claims, nil
}

func (m *SessionManager) save(c *gin.Context, claims *sessionClaims) {
	c.Set(contextSessionKey, claims)
	c.SetSameSite(http.SameSiteLaxMode)

	if claims.empty() {
		c.SetCookie(SessionCookieName, "", -1, "/", "", m.secure, true)
		return
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		_ = c.Error(errors.Wrap(err, "sign session cookie"))
		return
	}
	maxAge := int(m.maxAge.Seconds())
	if claims.ExpiresAt != nil {
		maxAge = int(claims.ExpiresAt.Sub(m.now()).Seconds())
	}
	c.SetCookie(SessionCookieName, signed, maxAge, "/", "", m.secure, true)
}
