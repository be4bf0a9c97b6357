package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authdomain "github.com/utilitydesk/meterbill/internal/auth/domain"
)

const (
	sessionCookieName = "meterbill_session"
	contextAccountKey = "account"
)

func (s *Server) setSessionCookie(c *gin.Context, rawToken string, maxAge int) {
	secure := s.cfg.Environment == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, rawToken, maxAge, "/", "", secure, true)
}

// sessionToken resolves the caller's session token from the cookie or, as a
// fallback for non-browser clients, a bearer Authorization header.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(sessionCookieName); err == nil && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token)
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		account, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextAccountKey, account)
		c.Next()
	}
}

func (s *Server) RequireRole(roles ...authdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := currentAccount(c)
		if account == nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		for _, role := range roles {
			if account.Profile.Role == role {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

func currentAccount(c *gin.Context) *authdomain.AccountView {
	value, ok := c.Get(contextAccountKey)
	if !ok {
		return nil
	}
	account, ok := value.(*authdomain.AccountView)
	if !ok {
		return nil
	}
	return account
}
