package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	accountdomain "github.com/utilitydesk/meterbill/internal/account/domain"
)

func (s *Server) CreateAccount(c *gin.Context) {
	var req accountdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.UserName = strings.TrimSpace(req.UserName)
	req.UtilityType = strings.TrimSpace(req.UtilityType)
	req.ProviderName = strings.TrimSpace(req.ProviderName)

	resp, err := s.accountSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListAccounts(c *gin.Context) {
	var query struct {
		UserName     string `form:"user_name"`
		ProviderName string `form:"provider_name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.accountSvc.List(c.Request.Context(), accountdomain.ListRequest{
		UserName:     strings.TrimSpace(query.UserName),
		ProviderName: strings.TrimSpace(query.ProviderName),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": resp})
}

func (s *Server) GetAccountByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.accountSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateAccount(c *gin.Context) {
	var req accountdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.accountSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteAccount(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	if err := s.accountSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

func (s *Server) CountAccountsByProvider(c *gin.Context) {
	providerName := strings.TrimSpace(c.Query("provider_name"))

	count, err := s.accountSvc.CountByProvider(c.Request.Context(), providerName)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider_name": providerName,
		"count":         count,
	})
}

func isAccountValidationError(err error) bool {
	switch err {
	case accountdomain.ErrInvalidUtilityType,
		accountdomain.ErrInvalidProvider,
		accountdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
