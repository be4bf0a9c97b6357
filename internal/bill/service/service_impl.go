package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/utilitydesk/meterbill/internal/audit/domain"
	billdomain "github.com/utilitydesk/meterbill/internal/bill/domain"
	"github.com/utilitydesk/meterbill/internal/config"
	"github.com/utilitydesk/meterbill/internal/observability/metrics"
	"github.com/utilitydesk/meterbill/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     billdomain.Repository
	Tariff   *config.TariffConfigHolder
	AuditSvc auditdomain.Service
	Metrics  *metrics.BillMetrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     billdomain.Repository
	tariff   *config.TariffConfigHolder
	auditSvc auditdomain.Service
	metrics  *metrics.BillMetrics
}

func New(p Params) billdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("bill.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		tariff:   p.Tariff,
		auditSvc: p.AuditSvc,
		metrics:  p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req billdomain.CreateRequest) (*billdomain.Response, error) {
	billID := strings.TrimSpace(req.BillID)
	if billID == "" {
		return nil, billdomain.ErrInvalidBillID
	}
	utilityType := strings.TrimSpace(req.UtilityType)
	if utilityType == "" {
		return nil, billdomain.ErrInvalidUtilityType
	}

	readingDate, err := time.Parse(billdomain.DateLayout, strings.TrimSpace(req.ReadingDate))
	if err != nil {
		return nil, billdomain.ErrInvalidReadingDate
	}
	dueDate, err := time.Parse(billdomain.DateLayout, strings.TrimSpace(req.DueDate))
	if err != nil {
		return nil, billdomain.ErrInvalidDueDate
	}

	units, rate, total, err := s.priceReadings(utilityType, req.PreviousReading, req.CurrentReading, req.UnitsConsumed, req.RatePerUnit, req.TotalAmount)
	if err != nil {
		return nil, err
	}

	bill := &billdomain.GeneratedBill{
		ID:           s.genID.Generate(),
		BillID:       billID,
		UtilityType:  utilityType,
		ProviderName: strings.TrimSpace(req.ProviderName),
		ConsumerName: strings.TrimSpace(req.ConsumerName),

		ConsumerNumber:        strings.TrimSpace(req.ConsumerNumber),
		WaterConnectionNumber: strings.TrimSpace(req.WaterConnectionNumber),
		GasConsumerID:         strings.TrimSpace(req.GasConsumerID),
		WifiConsumerID:        strings.TrimSpace(req.WifiConsumerID),
		DthSubscriberID:       strings.TrimSpace(req.DthSubscriberID),

		PlanName:             strings.TrimSpace(req.PlanName),
		DthPackageName:       strings.TrimSpace(req.DthPackageName),
		SpecifiedUtilityType: strings.TrimSpace(req.SpecifiedUtilityType),

		PreviousReading: req.PreviousReading,
		CurrentReading:  req.CurrentReading,
		UnitsConsumed:   units,
		RatePerUnit:     rate,
		TotalAmount:     total,

		ReadingDate: readingDate,
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, bill); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, billdomain.ErrBillExists
		}
		return nil, err
	}

	s.metrics.RecordBillCreated(bill.UtilityType)
	s.auditSvc.Record(ctx, auditdomain.Entry{
		Action:     "bill.created",
		TargetType: "generated_bill",
		TargetID:   bill.BillID,
		Metadata: map[string]any{
			"utility_type": bill.UtilityType,
		},
	})
	s.log.Info("bill generated",
		zap.String("bill_id", bill.BillID),
		zap.String("utility_type", bill.UtilityType),
	)

	return toResponse(bill), nil
}

// priceReadings validates the submitted readings and fills the derived
// fields the caller omitted. Submitted units and totals are trusted as
// given; only non-negativity is enforced.
func (s *Service) priceReadings(utilityType string, previous, current, units, rate, total *float64) (*float64, *float64, *float64, error) {
	if (previous != nil && *previous < 0) || (current != nil && *current < 0) {
		return nil, nil, nil, billdomain.ErrNegativeReading
	}
	if previous != nil && current != nil && *current < *previous {
		return nil, nil, nil, billdomain.ErrReadingRegression
	}
	if units != nil && *units < 0 {
		return nil, nil, nil, billdomain.ErrNegativeAmount
	}
	if rate != nil && *rate < 0 {
		return nil, nil, nil, billdomain.ErrNegativeAmount
	}
	if total != nil && *total < 0 {
		return nil, nil, nil, billdomain.ErrNegativeAmount
	}

	if units == nil && previous != nil && current != nil {
		consumed := *current - *previous
		units = &consumed
	}
	if rate == nil && units != nil && s.tariff != nil {
		if defaultRate, ok := s.tariff.RateFor(utilityType); ok {
			rate = &defaultRate
		}
	}
	if total == nil && units != nil && rate != nil {
		amount := *units * *rate
		total = &amount
	}
	return units, rate, total, nil
}

func (s *Service) List(ctx context.Context, req billdomain.ListRequest) ([]billdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db, billdomain.ListFilter{
		UtilityType:           strings.TrimSpace(req.UtilityType),
		ProviderName:          strings.TrimSpace(req.ProviderName),
		ConsumerNumber:        strings.TrimSpace(req.ConsumerNumber),
		WaterConnectionNumber: strings.TrimSpace(req.WaterConnectionNumber),
		GasConsumerID:         strings.TrimSpace(req.GasConsumerID),
		WifiConsumerID:        strings.TrimSpace(req.WifiConsumerID),
		DthSubscriberID:       strings.TrimSpace(req.DthSubscriberID),
	})
	if err != nil {
		return nil, err
	}

	resp := make([]billdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) LastReading(ctx context.Context, req billdomain.LastReadingRequest) (*billdomain.LastReadingResponse, error) {
	utilityType := strings.TrimSpace(req.UtilityType)
	if utilityType == "" {
		return nil, billdomain.ErrInvalidUtilityType
	}

	field, ok := billdomain.ClassifyUtilityType(utilityType)
	if !ok {
		return nil, billdomain.ErrMissingIdentifier
	}
	value := strings.TrimSpace(req.Identifiers.Value(field))
	if value == "" {
		return nil, billdomain.ErrMissingIdentifier
	}

	bill, err := s.repo.FindLatestReading(ctx, s.db, utilityType, field, value)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return &billdomain.LastReadingResponse{}, nil
	}
	return &billdomain.LastReadingResponse{CurrentReading: bill.CurrentReading}, nil
}

func (s *Service) CreateSimplified(ctx context.Context, req billdomain.CreateSimplifiedRequest) (*billdomain.SimplifiedResponse, error) {
	billID := strings.TrimSpace(req.BillID)
	if billID == "" {
		return nil, billdomain.ErrInvalidBillID
	}
	utilityType := strings.TrimSpace(req.UtilityType)
	if utilityType == "" {
		return nil, billdomain.ErrInvalidUtilityType
	}
	if (req.PreviousReading != nil && *req.PreviousReading < 0) || (req.CurrentReading != nil && *req.CurrentReading < 0) {
		return nil, billdomain.ErrNegativeReading
	}
	if req.PreviousReading != nil && req.CurrentReading != nil && *req.CurrentReading < *req.PreviousReading {
		return nil, billdomain.ErrReadingRegression
	}
	if req.TotalAmount != nil && *req.TotalAmount < 0 {
		return nil, billdomain.ErrNegativeAmount
	}

	bill := &billdomain.UtilityBill{
		ID:              s.genID.Generate(),
		UtilityType:     utilityType,
		BillID:          billID,
		ConsumerName:    strings.TrimSpace(req.ConsumerName),
		ConsumerID:      strings.TrimSpace(req.ConsumerID),
		PreviousReading: req.PreviousReading,
		CurrentReading:  req.CurrentReading,
		TotalAmount:     req.TotalAmount,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.InsertSimplified(ctx, s.db, bill); err != nil {
		return nil, err
	}
	return toSimplifiedResponse(bill), nil
}

func (s *Service) ListSimplified(ctx context.Context, req billdomain.ListSimplifiedRequest) ([]billdomain.SimplifiedResponse, error) {
	items, err := s.repo.ListSimplified(ctx, s.db, billdomain.SimplifiedListFilter{
		UtilityType: strings.TrimSpace(req.UtilityType),
		BillID:      strings.TrimSpace(req.BillID),
	})
	if err != nil {
		return nil, err
	}

	resp := make([]billdomain.SimplifiedResponse, 0, len(items))
	for i := range items {
		resp = append(resp, *toSimplifiedResponse(&items[i]))
	}
	return resp, nil
}

func toResponse(bill *billdomain.GeneratedBill) *billdomain.Response {
	return &billdomain.Response{
		ID:           bill.ID.String(),
		BillID:       bill.BillID,
		UtilityType:  bill.UtilityType,
		ProviderName: bill.ProviderName,
		ConsumerName: bill.ConsumerName,

		ConsumerNumber:        bill.ConsumerNumber,
		WaterConnectionNumber: bill.WaterConnectionNumber,
		GasConsumerID:         bill.GasConsumerID,
		WifiConsumerID:        bill.WifiConsumerID,
		DthSubscriberID:       bill.DthSubscriberID,

		PlanName:             bill.PlanName,
		DthPackageName:       bill.DthPackageName,
		SpecifiedUtilityType: bill.SpecifiedUtilityType,

		PreviousReading: bill.PreviousReading,
		CurrentReading:  bill.CurrentReading,
		UnitsConsumed:   bill.UnitsConsumed,
		RatePerUnit:     bill.RatePerUnit,
		TotalAmount:     bill.TotalAmount,

		ReadingDate: bill.ReadingDate.Format(billdomain.DateLayout),
		DueDate:     bill.DueDate.Format(billdomain.DateLayout),
		CreatedAt:   bill.CreatedAt,
	}
}

func toSimplifiedResponse(bill *billdomain.UtilityBill) *billdomain.SimplifiedResponse {
	return &billdomain.SimplifiedResponse{
		ID:              bill.ID.String(),
		UtilityType:     bill.UtilityType,
		BillID:          bill.BillID,
		ConsumerName:    bill.ConsumerName,
		ConsumerID:      bill.ConsumerID,
		PreviousReading: bill.PreviousReading,
		CurrentReading:  bill.CurrentReading,
		TotalAmount:     bill.TotalAmount,
		CreatedAt:       bill.CreatedAt,
	}
}
