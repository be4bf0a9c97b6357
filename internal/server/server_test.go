package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	accountdomain "github.com/utilitydesk/meterbill/internal/account/domain"
	accountrepository "github.com/utilitydesk/meterbill/internal/account/repository"
	accountservice "github.com/utilitydesk/meterbill/internal/account/service"
	auditdomain "github.com/utilitydesk/meterbill/internal/audit/domain"
	auditservice "github.com/utilitydesk/meterbill/internal/audit/service"
	authdomain "github.com/utilitydesk/meterbill/internal/auth/domain"
	authrepository "github.com/utilitydesk/meterbill/internal/auth/repository"
	authservice "github.com/utilitydesk/meterbill/internal/auth/service"
	billdomain "github.com/utilitydesk/meterbill/internal/bill/domain"
	billrepository "github.com/utilitydesk/meterbill/internal/bill/repository"
	billservice "github.com/utilitydesk/meterbill/internal/bill/service"
	"github.com/utilitydesk/meterbill/internal/config"
	paymentdomain "github.com/utilitydesk/meterbill/internal/payment/domain"
	paymentrepository "github.com/utilitydesk/meterbill/internal/payment/repository"
	paymentservice "github.com/utilitydesk/meterbill/internal/payment/service"
	"github.com/utilitydesk/meterbill/pkg/db"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&authdomain.User{},
		&authdomain.UserProfile{},
		&authdomain.Session{},
		&accountdomain.UtilityAccount{},
		&billdomain.GeneratedBill{},
		&billdomain.UtilityBill{},
		&paymentdomain.Payment{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	cfg := config.Config{SessionTTLHours: 24}

	auditSvc := auditservice.New(auditservice.Params{DB: conn, Log: log, GenID: node})
	billRepo := billrepository.Provide()

	authSvc := authservice.New(authservice.Params{
		DB: conn, Log: log, GenID: node, Cfg: cfg,
		Repo: authrepository.Provide(), AuditSvc: auditSvc,
	})
	accountSvc := accountservice.New(accountservice.Params{
		DB: conn, Log: log, GenID: node, Repo: accountrepository.Provide(),
	})
	billSvc := billservice.New(billservice.Params{
		DB: conn, Log: log, GenID: node, Repo: billRepo,
		Tariff:   config.NewStaticTariffHolder(config.DefaultTariffConfig()),
		AuditSvc: auditSvc,
	})
	paymentSvc := paymentservice.New(paymentservice.Params{
		DB: conn, Log: log, GenID: node,
		Repo: paymentrepository.Provide(), BillRepo: billRepo,
		AuditSvc: auditSvc,
	})

	return NewServer(ServerParams{
		Gin:        NewEngine(cfg, nil),
		Cfg:        cfg,
		DB:         conn,
		GenID:      node,
		Authsvc:    authSvc,
		AccountSvc: accountSvc,
		BillSvc:    billSvc,
		PaymentSvc: paymentSvc,
		AuditSvc:   auditSvc,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/accounts", map[string]any{
		"user_name":     "alice",
		"utility_type":  "electricity",
		"provider_name": "State Power",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	id, ok := created["id"].(string)
	require.True(t, ok, "account id must be a string")

	rec = doJSON(t, s, http.MethodGet, "/api/accounts?provider_name=state+power", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode(t, rec)
	results, ok := listed["results"].([]any)
	require.True(t, ok, "list payload must carry results")
	assert.Len(t, results, 1)

	rec = doJSON(t, s, http.MethodPatch, "/api/accounts/"+id, map[string]any{
		"plan_name": "basic",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "basic", decode(t, rec)["plan_name"])

	rec = doJSON(t, s, http.MethodDelete, "/api/accounts/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/accounts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAccountMissingUtilityType(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/accounts", map[string]any{"user_name": "alice"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decode(t, rec)
	errObj, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "validation_error", errObj["type"])
}

func TestAccountCount(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/accounts", map[string]any{
		"user_name": "alice", "utility_type": "electricity", "provider_name": "State Power",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/accounts/count?provider_name=STATE+POWER", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, "STATE POWER", payload["provider_name"])
	assert.Equal(t, float64(1), payload["count"])

	rec = doJSON(t, s, http.MethodGet, "/api/accounts/count", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBillDuplicateConflict(t *testing.T) {
	s := newTestServer(t)

	bill := map[string]any{
		"bill_id":         "ELEC-1",
		"utility_type":    "electricity",
		"consumer_number": "EC-100",
		"reading_date":    "2026-08-01",
		"due_date":        "2026-08-20",
	}

	rec := doJSON(t, s, http.MethodPost, "/api/bills", bill)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/bills", bill)
	require.Equal(t, http.StatusConflict, rec.Code)
	errObj := decode(t, rec)["error"].(map[string]any)
	assert.Equal(t, "conflict", errObj["type"])
}

func TestLastReadingContract(t *testing.T) {
	s := newTestServer(t)

	// No history: current_reading must be an explicit null, not absent.
	rec := doJSON(t, s, http.MethodGet, "/api/bills/last-reading?utility_type=water&water_connection_number=WC-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	value, present := payload["current_reading"]
	require.True(t, present)
	assert.Nil(t, value)

	rec = doJSON(t, s, http.MethodPost, "/api/bills", map[string]any{
		"bill_id":         "ELEC-1",
		"utility_type":    "electricity",
		"consumer_number": "EC-100",
		"current_reading": 150.0,
		"reading_date":    "2026-08-01",
		"due_date":        "2026-08-20",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/bills/last-reading?utility_type=electricity&consumer_number=EC-100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 150.0, decode(t, rec)["current_reading"])

	// Unclassifiable utility type is a validation failure.
	rec = doJSON(t, s, http.MethodGet, "/api/bills/last-reading?utility_type=telephone&consumer_number=X", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentFlow(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/utility-bills", map[string]any{
		"utility_type": "electricity",
		"bill_id":      "ELEC-1",
		"consumer_id":  "EC-100",
		"total_amount": 425.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/payments", map[string]any{
		"bill_id": "ELEC-1",
		"amount":  425.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	payment := decode(t, rec)
	assert.Equal(t, "pending", payment["status"])
	id := payment["id"].(string)

	rec = doJSON(t, s, http.MethodPost, "/api/payments/approve", map[string]any{"id": id})
	require.Equal(t, http.StatusOK, rec.Code)
	settled := decode(t, rec)
	assert.Equal(t, id, settled["id"])
	assert.Equal(t, "approved", settled["status"])

	// Settling twice conflicts.
	rec = doJSON(t, s, http.MethodPost, "/api/payments/reject", map[string]any{"id": id})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/payments?bill_id=ELEC-1&status=approved", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode(t, rec)["results"].([]any)
	assert.Len(t, results, 1)
}

func TestPaymentUnknownBill(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/payments", map[string]any{
		"bill_id": "NOPE",
		"amount":  10.0,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentSettleMissingID(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/payments/approve", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/payments/approve", map[string]any{"id": "999999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/auth/register", map[string]any{
		"username":  "alice",
		"email":     "alice@example.com",
		"password":  "strong-password",
		"password2": "strong-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	registered := decode(t, rec)
	assert.NotNil(t, registered["user"])
	assert.NotNil(t, registered["profile"])

	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "alice",
		"password": "strong-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var session *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			session = cookie
		}
	}
	require.NotNil(t, session, "login must set the session cookie")

	rec = doJSON(t, s, http.MethodGet, "/api/auth/current-user", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	current := decode(t, rec)
	user := current["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])

	rec = doJSON(t, s, http.MethodGet, "/api/auth/current-user", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/auth/logout", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/auth/current-user", nil, session)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "ghost",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", map[string]any{"username": "ghost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddUtilityAuthorityRequiresAdmin(t *testing.T) {
	s := newTestServer(t)

	// Anonymous callers are rejected outright.
	rec := doJSON(t, s, http.MethodPost, "/api/admin/add-utility-authority", map[string]any{
		"name": "Board", "email": "board@example.com",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Ordinary users lack the admin role.
	doJSON(t, s, http.MethodPost, "/api/auth/register", map[string]any{
		"username": "alice", "password": "pw", "password2": "pw",
	})
	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", map[string]any{
		"username": "alice", "password": "pw",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	userSession := rec.Result().Cookies()[0]

	rec = doJSON(t, s, http.MethodPost, "/api/admin/add-utility-authority", map[string]any{
		"name": "Board", "email": "board@example.com",
	}, userSession)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Promote alice and retry.
	require.NoError(t, s.db.Model(&authdomain.UserProfile{}).
		Where("1 = 1").
		Update("role", authdomain.RoleAdmin).Error)

	rec = doJSON(t, s, http.MethodPost, "/api/admin/add-utility-authority", map[string]any{
		"name": "State Power Board", "email": "board@example.com", "utility_type": "electricity",
	}, userSession)
	require.Equal(t, http.StatusCreated, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, "board", payload["username"])
	assert.Equal(t, "board@123", payload["password"])
}
