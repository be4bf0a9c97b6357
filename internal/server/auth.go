package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	auditdomain "github.com/utilitydesk/meterbill/internal/audit/domain"
	authdomain "github.com/utilitydesk/meterbill/internal/auth/domain"
)

func (s *Server) Register(c *gin.Context) {
	var req authdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	account, err := s.authsvc.Register(c.Request.Context(), authdomain.RegisterRequest{
		Username:  strings.TrimSpace(req.Username),
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		Password2: req.Password2,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    account.User,
		"profile": account.Profile,
		"message": "registration successful",
	})
}

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	username := strings.TrimSpace(req.Username)
	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Username: username,
		Password: req.Password,
	})
	if err != nil {
		if s.auditSvc != nil {
			s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
				Actor:      username,
				Action:     "user.login_failed",
				TargetType: "user",
				Metadata:   map[string]any{"username": username},
			})
		}
		AbortWithError(c, err)
		return
	}

	s.setSessionCookie(c, result.RawToken, s.cfg.SessionTTLHours*3600)

	c.JSON(http.StatusOK, gin.H{
		"user":    result.Account.User,
		"profile": result.Account.Profile,
		"message": "login successful",
	})
}

func (s *Server) Logout(c *gin.Context) {
	token := sessionToken(c)
	if token != "" {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *Server) CurrentUser(c *gin.Context) {
	account := currentAccount(c)
	if account == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    account.User,
		"profile": account.Profile,
	})
}

func (s *Server) AddUtilityAuthority(c *gin.Context) {
	var req authdomain.UtilityAuthorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.AddUtilityAuthority(c.Request.Context(), authdomain.UtilityAuthorityRequest{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Contact:     strings.TrimSpace(req.Contact),
		UtilityType: strings.TrimSpace(req.UtilityType),
		Address:     strings.TrimSpace(req.Address),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "utility authority created",
		"username": result.Username,
		"password": result.Password,
		"user":     result.Account.User,
		"profile":  result.Account.Profile,
	})
}

func (s *Server) ListProfiles(c *gin.Context) {
	resp, err := s.authsvc.ListProfiles(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": resp})
}
