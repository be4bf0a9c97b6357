package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	billdomain "github.com/utilitydesk/meterbill/internal/bill/domain"
)

func (s *Server) CreateBill(c *gin.Context) {
	var req billdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.BillID = strings.TrimSpace(req.BillID)
	req.UtilityType = strings.TrimSpace(req.UtilityType)
	req.ProviderName = strings.TrimSpace(req.ProviderName)
	req.ConsumerName = strings.TrimSpace(req.ConsumerName)

	resp, err := s.billSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListBills(c *gin.Context) {
	var query struct {
		UtilityType           string `form:"utility_type"`
		ProviderName          string `form:"provider_name"`
		ConsumerNumber        string `form:"consumer_number"`
		WaterConnectionNumber string `form:"water_connection_number"`
		GasConsumerID         string `form:"gas_consumer_id"`
		WifiConsumerID        string `form:"wifi_consumer_id"`
		DthSubscriberID       string `form:"dth_subscriber_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billSvc.List(c.Request.Context(), billdomain.ListRequest{
		UtilityType:           strings.TrimSpace(query.UtilityType),
		ProviderName:          strings.TrimSpace(query.ProviderName),
		ConsumerNumber:        strings.TrimSpace(query.ConsumerNumber),
		WaterConnectionNumber: strings.TrimSpace(query.WaterConnectionNumber),
		GasConsumerID:         strings.TrimSpace(query.GasConsumerID),
		WifiConsumerID:        strings.TrimSpace(query.WifiConsumerID),
		DthSubscriberID:       strings.TrimSpace(query.DthSubscriberID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": resp})
}

func (s *Server) LastReading(c *gin.Context) {
	var query struct {
		UtilityType           string `form:"utility_type"`
		ConsumerNumber        string `form:"consumer_number"`
		WaterConnectionNumber string `form:"water_connection_number"`
		GasConsumerID         string `form:"gas_consumer_id"`
		WifiConsumerID        string `form:"wifi_consumer_id"`
		DthSubscriberID       string `form:"dth_subscriber_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billSvc.LastReading(c.Request.Context(), billdomain.LastReadingRequest{
		UtilityType: strings.TrimSpace(query.UtilityType),
		Identifiers: billdomain.IdentifierValues{
			ConsumerNumber:        strings.TrimSpace(query.ConsumerNumber),
			WaterConnectionNumber: strings.TrimSpace(query.WaterConnectionNumber),
			GasConsumerID:         strings.TrimSpace(query.GasConsumerID),
			WifiConsumerID:        strings.TrimSpace(query.WifiConsumerID),
			DthSubscriberID:       strings.TrimSpace(query.DthSubscriberID),
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateUtilityBill(c *gin.Context) {
	var req billdomain.CreateSimplifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req.UtilityType = strings.TrimSpace(req.UtilityType)
	req.BillID = strings.TrimSpace(req.BillID)
	req.ConsumerName = strings.TrimSpace(req.ConsumerName)
	req.ConsumerID = strings.TrimSpace(req.ConsumerID)

	resp, err := s.billSvc.CreateSimplified(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListUtilityBills(c *gin.Context) {
	var query struct {
		UtilityType string `form:"utility_type"`
		BillID      string `form:"bill_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.billSvc.ListSimplified(c.Request.Context(), billdomain.ListSimplifiedRequest{
		UtilityType: strings.TrimSpace(query.UtilityType),
		BillID:      strings.TrimSpace(query.BillID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": resp})
}

func isBillValidationError(err error) bool {
	switch err {
	case billdomain.ErrInvalidBillID,
		billdomain.ErrInvalidUtilityType,
		billdomain.ErrInvalidReadingDate,
		billdomain.ErrInvalidDueDate,
		billdomain.ErrNegativeReading,
		billdomain.ErrReadingRegression,
		billdomain.ErrNegativeAmount,
		billdomain.ErrMissingIdentifier:
		return true
	default:
		return false
	}
}
