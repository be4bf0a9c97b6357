package service

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	auditdomain "github.com/utilitydesk/meterbill/internal/audit/domain"
	billdomain "github.com/utilitydesk/meterbill/internal/bill/domain"
	paymentdomain "github.com/utilitydesk/meterbill/internal/payment/domain"
	"github.com/utilitydesk/meterbill/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     paymentdomain.Repository
	BillRepo billdomain.Repository
	AuditSvc auditdomain.Service
	Metrics  *metrics.BillMetrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     paymentdomain.Repository
	billRepo billdomain.Repository
	auditSvc auditdomain.Service
	metrics  *metrics.BillMetrics
}

func New(p Params) paymentdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("payment.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		billRepo: p.BillRepo,
		auditSvc: p.AuditSvc,
		metrics:  p.Metrics,
	}
}

func (s *Service) Record(ctx context.Context, req paymentdomain.RecordRequest) (*paymentdomain.Response, error) {
	billID := strings.TrimSpace(req.BillID)
	if billID == "" {
		return nil, paymentdomain.ErrInvalidBillID
	}
	if req.Amount == nil {
		return nil, paymentdomain.ErrInvalidAmount
	}
	method, ok := paymentdomain.ParseMethod(req.PaymentMethod)
	if !ok {
		return nil, paymentdomain.ErrInvalidMethod
	}

	// Payments settle against the reporting projection, matched by the
	// public bill identifier rather than a row id.
	bill, err := s.billRepo.FindSimplifiedByBillID(ctx, s.db, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, paymentdomain.ErrBillNotFound
	}

	payment := &paymentdomain.Payment{
		ID:            s.genID.Generate(),
		BillID:        billID,
		Amount:        *req.Amount,
		PaymentMethod: method,
		Status:        paymentdomain.StatusPending,
		Reference:     ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String(),
		PaymentDate:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, payment); err != nil {
		return nil, err
	}

	s.metrics.RecordPaymentCreated()
	s.auditSvc.Record(ctx, auditdomain.Entry{
		Action:     "payment.recorded",
		TargetType: "payment",
		TargetID:   payment.ID.String(),
		Metadata: map[string]any{
			"bill_id": payment.BillID,
			"amount":  payment.Amount,
			"method":  string(payment.PaymentMethod),
		},
	})
	s.log.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("bill_id", payment.BillID),
	)

	return toResponse(payment), nil
}

func (s *Service) List(ctx context.Context, req paymentdomain.ListRequest) ([]paymentdomain.Response, error) {
	filter := paymentdomain.ListFilter{BillID: strings.TrimSpace(req.BillID)}
	if status := strings.TrimSpace(req.Status); status != "" {
		parsed, ok := paymentdomain.ParseStatus(status)
		if !ok {
			return nil, paymentdomain.ErrInvalidStatus
		}
		filter.Status = parsed
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]paymentdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Approve(ctx context.Context, id string) (*paymentdomain.SettleResponse, error) {
	return s.settle(ctx, id, paymentdomain.StatusApproved)
}

func (s *Service) Reject(ctx context.Context, id string) (*paymentdomain.SettleResponse, error) {
	return s.settle(ctx, id, paymentdomain.StatusRejected)
}

func (s *Service) settle(ctx context.Context, id string, status paymentdomain.Status) (*paymentdomain.SettleResponse, error) {
	paymentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, paymentdomain.ErrNotFound
	}

	payment, err := s.repo.FindByID(ctx, s.db, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, paymentdomain.ErrNotFound
	}
	if !payment.Status.CanTransitionTo(status) {
		return nil, paymentdomain.ErrInvalidState
	}

	// The guarded update is the arbiter under concurrency: losing a race
	// against another settle surfaces as an invalid state, never a mixed
	// terminal value.
	settled, err := s.repo.SettleIfPending(ctx, s.db, paymentID, status)
	if err != nil {
		return nil, err
	}
	if !settled {
		return nil, paymentdomain.ErrInvalidState
	}

	s.metrics.RecordPaymentSettled(string(status))
	s.auditSvc.Record(ctx, auditdomain.Entry{
		Action:     "payment." + string(status),
		TargetType: "payment",
		TargetID:   paymentID.String(),
		Metadata: map[string]any{
			"bill_id": payment.BillID,
		},
	})
	s.log.Info("payment settled",
		zap.String("payment_id", paymentID.String()),
		zap.String("status", string(status)),
	)

	return &paymentdomain.SettleResponse{
		ID:     paymentID.String(),
		Status: status,
	}, nil
}

func toResponse(payment *paymentdomain.Payment) *paymentdomain.Response {
	return &paymentdomain.Response{
		ID:            payment.ID.String(),
		BillID:        payment.BillID,
		Amount:        payment.Amount,
		PaymentMethod: payment.PaymentMethod,
		Status:        payment.Status,
		Reference:     payment.Reference,
		PaymentDate:   payment.PaymentDate,
	}
}
