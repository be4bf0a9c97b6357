package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	auditdomain "github.com/utilitydesk/meterbill/internal/audit/domain"
	auditservice "github.com/utilitydesk/meterbill/internal/audit/service"
	billdomain "github.com/utilitydesk/meterbill/internal/bill/domain"
	billrepository "github.com/utilitydesk/meterbill/internal/bill/repository"
	paymentdomain "github.com/utilitydesk/meterbill/internal/payment/domain"
	"github.com/utilitydesk/meterbill/internal/payment/repository"
	"github.com/utilitydesk/meterbill/pkg/db"
)

type fixture struct {
	svc  paymentdomain.Service
	conn *gorm.DB
	node *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&billdomain.UtilityBill{},
		&paymentdomain.Payment{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	auditSvc := auditservice.New(auditservice.Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
	})

	svc := New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		BillRepo: billrepository.Provide(),
		AuditSvc: auditSvc,
	})

	return &fixture{svc: svc, conn: conn, node: node}
}

func (fx *fixture) seedBill(t *testing.T, billID string) {
	t.Helper()
	bill := &billdomain.UtilityBill{
		ID:          fx.node.Generate(),
		UtilityType: "electricity",
		BillID:      billID,
	}
	require.NoError(t, fx.conn.Create(bill).Error)
}

func amount(v float64) *float64 { return &v }

func TestRecordStartsPending(t *testing.T) {
	fx := newFixture(t)
	fx.seedBill(t, "ELEC-1")

	resp, err := fx.svc.Record(context.Background(), paymentdomain.RecordRequest{
		BillID: "ELEC-1",
		Amount: amount(425),
	})
	require.NoError(t, err)

	assert.Equal(t, paymentdomain.StatusPending, resp.Status)
	assert.Equal(t, "ELEC-1", resp.BillID)
	assert.Equal(t, 425.0, resp.Amount)
	// Omitted method falls back to the default.
	assert.Equal(t, paymentdomain.MethodOnline, resp.PaymentMethod)

	_, err = ulid.Parse(resp.Reference)
	assert.NoError(t, err)
}

func TestRecordValidation(t *testing.T) {
	fx := newFixture(t)
	fx.seedBill(t, "ELEC-1")
	ctx := context.Background()

	_, err := fx.svc.Record(ctx, paymentdomain.RecordRequest{Amount: amount(10)})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidBillID)

	_, err = fx.svc.Record(ctx, paymentdomain.RecordRequest{BillID: "ELEC-1"})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidAmount)

	_, err = fx.svc.Record(ctx, paymentdomain.RecordRequest{
		BillID: "ELEC-1", Amount: amount(10), PaymentMethod: "barter",
	})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidMethod)
}

func TestRecordUnknownBill(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.Record(context.Background(), paymentdomain.RecordRequest{
		BillID: "NOPE", Amount: amount(10),
	})
	assert.ErrorIs(t, err, paymentdomain.ErrBillNotFound)
}

func TestApprovePending(t *testing.T) {
	fx := newFixture(t)
	fx.seedBill(t, "ELEC-1")
	ctx := context.Background()

	recorded, err := fx.svc.Record(ctx, paymentdomain.RecordRequest{BillID: "ELEC-1", Amount: amount(10)})
	require.NoError(t, err)

	settled, err := fx.svc.Approve(ctx, recorded.ID)
	require.NoError(t, err)
	assert.Equal(t, recorded.ID, settled.ID)
	assert.Equal(t, paymentdomain.StatusApproved, settled.Status)
}

func TestSettleIsTerminal(t *testing.T) {
	fx := newFixture(t)
	fx.seedBill(t, "ELEC-1")
	ctx := context.Background()

	recorded, err := fx.svc.Record(ctx, paymentdomain.RecordRequest{BillID: "ELEC-1", Amount: amount(10)})
	require.NoError(t, err)

	_, err = fx.svc.Reject(ctx, recorded.ID)
	require.NoError(t, err)

	// A settled payment can never change state again, in either direction.
	_, err = fx.svc.Approve(ctx, recorded.ID)
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidState)
	_, err = fx.svc.Reject(ctx, recorded.ID)
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidState)

	// The stored status is unchanged.
	payments, err := fx.svc.List(ctx, paymentdomain.ListRequest{BillID: "ELEC-1"})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, paymentdomain.StatusRejected, payments[0].Status)
}

func TestSettleUnknownPayment(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Approve(ctx, "not-a-number")
	assert.ErrorIs(t, err, paymentdomain.ErrNotFound)

	_, err = fx.svc.Approve(ctx, fx.node.Generate().String())
	assert.ErrorIs(t, err, paymentdomain.ErrNotFound)
}

func TestListFiltersByBillAndStatus(t *testing.T) {
	fx := newFixture(t)
	fx.seedBill(t, "ELEC-1")
	fx.seedBill(t, "ELEC-2")
	ctx := context.Background()

	first, err := fx.svc.Record(ctx, paymentdomain.RecordRequest{BillID: "ELEC-1", Amount: amount(10)})
	require.NoError(t, err)
	_, err = fx.svc.Record(ctx, paymentdomain.RecordRequest{BillID: "ELEC-1", Amount: amount(20)})
	require.NoError(t, err)
	_, err = fx.svc.Record(ctx, paymentdomain.RecordRequest{BillID: "ELEC-2", Amount: amount(30)})
	require.NoError(t, err)

	_, err = fx.svc.Approve(ctx, first.ID)
	require.NoError(t, err)

	results, err := fx.svc.List(ctx, paymentdomain.ListRequest{BillID: "ELEC-1"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = fx.svc.List(ctx, paymentdomain.ListRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = fx.svc.List(ctx, paymentdomain.ListRequest{BillID: "ELEC-1", Status: "approved"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, first.ID, results[0].ID)

	_, err = fx.svc.List(ctx, paymentdomain.ListRequest{Status: "paid"})
	assert.ErrorIs(t, err, paymentdomain.ErrInvalidStatus)
}
