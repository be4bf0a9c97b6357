package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	auditdomain "github.com/utilitydesk/meterbill/internal/audit/domain"
	authdomain "github.com/utilitydesk/meterbill/internal/auth/domain"
	"github.com/utilitydesk/meterbill/internal/auth/password"
	"github.com/utilitydesk/meterbill/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Cfg      config.Config
	Repo     authdomain.Repository
	AuditSvc auditdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	cfg      config.Config
	repo     authdomain.Repository
	auditSvc auditdomain.Service
}

func New(p Params) authdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("auth.service"),
		genID:    p.GenID,
		cfg:      p.Cfg,
		repo:     p.Repo,
		auditSvc: p.AuditSvc,
	}
}

func (s *Service) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.AccountView, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, authdomain.ErrInvalidRequest
	}
	if req.Password != req.Password2 {
		return nil, authdomain.ErrPasswordMismatch
	}

	exists, err := s.repo.UsernameExists(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, authdomain.ErrUserExists
	}

	return s.createAccount(ctx, username, req.Password, strings.TrimSpace(req.Email),
		strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName),
		authdomain.RoleUser, "", "")
}

func (s *Service) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, authdomain.ErrInvalidRequest
	}

	user, err := s.repo.FindUserByUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(req.Password, user.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}

	rawToken := uuid.NewString()
	session := &authdomain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		ExpiresAt:        time.Now().UTC().Add(time.Duration(s.cfg.SessionTTLHours) * time.Hour),
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.InsertSession(ctx, s.db, session); err != nil {
		return nil, err
	}

	account, err := s.accountView(ctx, user)
	if err != nil {
		return nil, err
	}

	return &authdomain.LoginResult{
		Account:  *account,
		RawToken: rawToken,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	session, err := s.lookupSession(ctx, rawToken)
	if err != nil {
		return err
	}
	return s.repo.RevokeSession(ctx, s.db, session.ID)
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*authdomain.AccountView, error) {
	session, err := s.lookupSession(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindUserByID(ctx, s.db, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidSession
	}
	return s.accountView(ctx, user)
}

func (s *Service) AddUtilityAuthority(ctx context.Context, req authdomain.UtilityAuthorityRequest) (*authdomain.UtilityAuthorityResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, authdomain.ErrMissingName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, authdomain.ErrMissingEmail
	}

	username, err := s.deriveUsername(ctx, email)
	if err != nil {
		return nil, err
	}
	generated := fmt.Sprintf("%s@123", username)

	account, err := s.createAccount(ctx, username, generated, email, "", "",
		authdomain.RoleUtility, strings.TrimSpace(req.Contact), strings.TrimSpace(req.Address))
	if err != nil {
		return nil, err
	}
	account.Profile.FullName = name

	s.auditSvc.Record(ctx, auditdomain.Entry{
		Action:     "authority.created",
		TargetType: "user",
		TargetID:   account.User.ID,
		Metadata: map[string]any{
			"utility_type": strings.TrimSpace(req.UtilityType),
		},
	})

	return &authdomain.UtilityAuthorityResult{
		Account:  *account,
		Username: username,
		Password: generated,
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*authdomain.ProfileView, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(userID))
	if err != nil {
		return nil, authdomain.ErrUserNotFound
	}
	profile, err := s.repo.FindProfileByUserID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, authdomain.ErrUserNotFound
	}
	view := toProfileView(profile)
	return &view, nil
}

func (s *Service) ListProfiles(ctx context.Context) ([]authdomain.ProfileView, error) {
	profiles, err := s.repo.ListProfiles(ctx, s.db)
	if err != nil {
		return nil, err
	}
	views := make([]authdomain.ProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, toProfileView(&profiles[i]))
	}
	return views, nil
}

// deriveUsername builds a username from the email local part, suffixing a
// counter until it is free.
func (s *Service) deriveUsername(ctx context.Context, email string) (string, error) {
	base := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	if base == "" {
		return "", authdomain.ErrMissingEmail
	}

	username := base
	for counter := 1; ; counter++ {
		exists, err := s.repo.UsernameExists(ctx, s.db, username)
		if err != nil {
			return "", err
		}
		if !exists {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, counter)
	}
}

func (s *Service) createAccount(ctx context.Context, username, plaintext, email, firstName, lastName string, role authdomain.Role, phone, address string) (*authdomain.AccountView, error) {
	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &authdomain.User{
		ID:           s.genID.Generate(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	fullName := strings.TrimSpace(firstName + " " + lastName)
	profile := &authdomain.UserProfile{
		ID:        s.genID.Generate(),
		UserID:    user.ID,
		FullName:  fullName,
		Email:     email,
		Role:      role,
		Phone:     phone,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.InsertUser(ctx, s.db, user, profile); err != nil {
		return nil, err
	}

	s.log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)),
	)

	return &authdomain.AccountView{
		User:    toUserView(user),
		Profile: toProfileView(profile),
	}, nil
}

func (s *Service) lookupSession(ctx context.Context, rawToken string) (*authdomain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, authdomain.ErrInvalidSession
	}

	session, err := s.repo.FindSessionByTokenHash(ctx, s.db, hashToken(token))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, authdomain.ErrInvalidSession
	}
	if session.RevokedAt != nil {
		return nil, authdomain.ErrSessionRevoked
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return nil, authdomain.ErrSessionExpired
	}
	return session, nil
}

func (s *Service) accountView(ctx context.Context, user *authdomain.User) (*authdomain.AccountView, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, s.db, user.ID)
	if err != nil {
		return nil, err
	}
	view := &authdomain.AccountView{User: toUserView(user)}
	if profile != nil {
		view.Profile = toProfileView(profile)
	}
	return view, nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func toUserView(user *authdomain.User) authdomain.UserView {
	return authdomain.UserView{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func toProfileView(profile *authdomain.UserProfile) authdomain.ProfileView {
	return authdomain.ProfileView{
		ID:        profile.ID.String(),
		FullName:  profile.FullName,
		Email:     profile.Email,
		Role:      profile.Role,
		Phone:     profile.Phone,
		Address:   profile.Address,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}
