package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	auditdomain "github.com/utilitydesk/meterbill/internal/audit/domain"
	auditservice "github.com/utilitydesk/meterbill/internal/audit/service"
	authdomain "github.com/utilitydesk/meterbill/internal/auth/domain"
	"github.com/utilitydesk/meterbill/internal/auth/repository"
	"github.com/utilitydesk/meterbill/internal/config"
	"github.com/utilitydesk/meterbill/pkg/db"
)

func newTestService(t *testing.T) authdomain.Service {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&authdomain.User{},
		&authdomain.UserProfile{},
		&authdomain.Session{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	auditSvc := auditservice.New(auditservice.Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
	})

	return New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Cfg:      config.Config{SessionTTLHours: 24},
		Repo:     repository.Provide(),
		AuditSvc: auditSvc,
	})
}

func register(t *testing.T, svc authdomain.Service, username string) *authdomain.AccountView {
	t.Helper()
	account, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "strong-password",
		Password2: "strong-password",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return account
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, authdomain.RegisterRequest{Password: "x", Password2: "x"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidRequest)

	_, err = svc.Register(ctx, authdomain.RegisterRequest{
		Username: "alice", Password: "x", Password2: "y",
	})
	assert.ErrorIs(t, err, authdomain.ErrPasswordMismatch)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(t)

	register(t, svc, "alice")

	_, err := svc.Register(context.Background(), authdomain.RegisterRequest{
		Username: "alice", Password: "pw", Password2: "pw",
	})
	assert.ErrorIs(t, err, authdomain.ErrUserExists)
}

func TestRegisterAssignsUserRole(t *testing.T) {
	svc := newTestService(t)

	account := register(t, svc, "alice")
	assert.Equal(t, authdomain.RoleUser, account.Profile.Role)
	assert.Equal(t, "Test User", account.Profile.FullName)
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	register(t, svc, "alice")

	result, err := svc.Login(ctx, authdomain.LoginRequest{Username: "alice", Password: "strong-password"})
	require.NoError(t, err)
	require.NotEmpty(t, result.RawToken)

	account, err := svc.Authenticate(ctx, result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", account.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	register(t, svc, "alice")

	_, err := svc.Login(ctx, authdomain.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, authdomain.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	register(t, svc, "alice")
	result, err := svc.Login(ctx, authdomain.LoginRequest{Username: "alice", Password: "strong-password"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.RawToken))

	_, err = svc.Authenticate(ctx, result.RawToken)
	assert.ErrorIs(t, err, authdomain.ErrSessionRevoked)
}

func TestAuthenticateUnknownToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "bogus-token")
	assert.ErrorIs(t, err, authdomain.ErrInvalidSession)
}

func TestAddUtilityAuthority(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.AddUtilityAuthority(ctx, authdomain.UtilityAuthorityRequest{
		Name:        "State Power Board",
		Email:       "billing@statepower.example",
		UtilityType: "electricity",
	})
	require.NoError(t, err)

	// Username derives from the email local part, with the documented
	// generated password scheme.
	assert.Equal(t, "billing", result.Username)
	assert.Equal(t, "billing@123", result.Password)
	assert.Equal(t, authdomain.RoleUtility, result.Account.Profile.Role)

	login, err := svc.Login(ctx, authdomain.LoginRequest{Username: result.Username, Password: result.Password})
	require.NoError(t, err)
	assert.Equal(t, "billing", login.Account.User.Username)
}

func TestAddUtilityAuthorityUsernameCollision(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	register(t, svc, "billing")

	result, err := svc.AddUtilityAuthority(ctx, authdomain.UtilityAuthorityRequest{
		Name:  "State Power Board",
		Email: "billing@statepower.example",
	})
	require.NoError(t, err)
	assert.Equal(t, "billing1", result.Username)
}

func TestAddUtilityAuthorityValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddUtilityAuthority(ctx, authdomain.UtilityAuthorityRequest{Email: "x@example.com"})
	assert.ErrorIs(t, err, authdomain.ErrMissingName)

	_, err = svc.AddUtilityAuthority(ctx, authdomain.UtilityAuthorityRequest{Name: "Board"})
	assert.ErrorIs(t, err, authdomain.ErrMissingEmail)
}

func TestListProfiles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	register(t, svc, "alice")
	register(t, svc, "bob")

	profiles, err := svc.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestGetProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	account := register(t, svc, "alice")

	profile, err := svc.GetProfile(ctx, account.User.ID)
	require.NoError(t, err)
	assert.Equal(t, authdomain.RoleUser, profile.Role)

	_, err = svc.GetProfile(ctx, "999999999")
	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)
}
