package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	paymentdomain "github.com/utilitydesk/meterbill/internal/payment/domain"
)

type settlePaymentRequest struct {
	ID string `json:"id"`
}

func (s *Server) RecordPayment(c *gin.Context) {
	var req paymentdomain.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.BillID = strings.TrimSpace(req.BillID)
	req.PaymentMethod = strings.TrimSpace(req.PaymentMethod)

	resp, err := s.paymentSvc.Record(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListPayments(c *gin.Context) {
	var query struct {
		BillID string `form:"bill_id"`
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.List(c.Request.Context(), paymentdomain.ListRequest{
		BillID: strings.TrimSpace(query.BillID),
		Status: strings.TrimSpace(query.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": resp})
}

func (s *Server) ApprovePayment(c *gin.Context) {
	id, ok := s.bindSettleID(c)
	if !ok {
		return
	}

	resp, err := s.paymentSvc.Approve(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) RejectPayment(c *gin.Context) {
	id, ok := s.bindSettleID(c)
	if !ok {
		return
	}

	resp, err := s.paymentSvc.Reject(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) bindSettleID(c *gin.Context) (string, bool) {
	var req settlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return "", false
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid value"))
		return "", false
	}
	return id, true
}

func isPaymentValidationError(err error) bool {
	switch err {
	case paymentdomain.ErrInvalidBillID,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidMethod,
		paymentdomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
