package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/utilitydesk/meterbill/internal/account/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  accountdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  accountdomain.Repository
}

func New(p Params) accountdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("account.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req accountdomain.CreateRequest) (*accountdomain.Response, error) {
	utilityType := strings.TrimSpace(req.UtilityType)
	if utilityType == "" {
		return nil, accountdomain.ErrInvalidUtilityType
	}

	var userID *snowflake.ID
	if req.UserID != nil && strings.TrimSpace(*req.UserID) != "" {
		parsed, err := accountdomain.ParseID(strings.TrimSpace(*req.UserID))
		if err != nil {
			return nil, accountdomain.ErrInvalidID
		}
		userID = &parsed
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	account := &accountdomain.UtilityAccount{
		ID:                    s.genID.Generate(),
		UserID:                userID,
		UserName:              strings.TrimSpace(req.UserName),
		UtilityType:           utilityType,
		ProviderName:          strings.TrimSpace(req.ProviderName),
		ConsumerNumber:        strings.TrimSpace(req.ConsumerNumber),
		WaterConnectionNumber: strings.TrimSpace(req.WaterConnectionNumber),
		GasConnectionNumber:   strings.TrimSpace(req.GasConnectionNumber),
		WifiConsumerID:        strings.TrimSpace(req.WifiConsumerID),
		DthSubscriberID:       strings.TrimSpace(req.DthSubscriberID),
		MeterNumber:           strings.TrimSpace(req.MeterNumber),
		ConnectionType:        strings.TrimSpace(req.ConnectionType),
		PlanName:              strings.TrimSpace(req.PlanName),
		IsActive:              active,
		CreatedAt:             time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, account); err != nil {
		return nil, err
	}

	s.log.Info("account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("utility_type", account.UtilityType),
	)

	return toResponse(account), nil
}

func (s *Service) List(ctx context.Context, req accountdomain.ListRequest) ([]accountdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db, accountdomain.ListFilter{
		UserName:     strings.TrimSpace(req.UserName),
		ProviderName: strings.TrimSpace(req.ProviderName),
	})
	if err != nil {
		return nil, err
	}

	resp := make([]accountdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*accountdomain.Response, error) {
	account, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(account), nil
}

func (s *Service) Update(ctx context.Context, req accountdomain.UpdateRequest) (*accountdomain.Response, error) {
	account, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.UtilityType != nil {
		utilityType := strings.TrimSpace(*req.UtilityType)
		if utilityType == "" {
			return nil, accountdomain.ErrInvalidUtilityType
		}
		account.UtilityType = utilityType
	}
	applyString(&account.UserName, req.UserName)
	applyString(&account.ProviderName, req.ProviderName)
	applyString(&account.ConsumerNumber, req.ConsumerNumber)
	applyString(&account.WaterConnectionNumber, req.WaterConnectionNumber)
	applyString(&account.GasConnectionNumber, req.GasConnectionNumber)
	applyString(&account.WifiConsumerID, req.WifiConsumerID)
	applyString(&account.DthSubscriberID, req.DthSubscriberID)
	applyString(&account.MeterNumber, req.MeterNumber)
	applyString(&account.ConnectionType, req.ConnectionType)
	applyString(&account.PlanName, req.PlanName)
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, s.db, account); err != nil {
		return nil, err
	}
	return toResponse(account), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	account, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, account.ID)
}

func (s *Service) CountByProvider(ctx context.Context, providerName string) (int64, error) {
	provider := strings.TrimSpace(providerName)
	if provider == "" {
		return 0, accountdomain.ErrInvalidProvider
	}
	return s.repo.CountByProvider(ctx, s.db, provider)
}

func (s *Service) find(ctx context.Context, id string) (*accountdomain.UtilityAccount, error) {
	accountID, err := accountdomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, accountdomain.ErrNotFound
	}
	account, err := s.repo.FindByID(ctx, s.db, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, accountdomain.ErrNotFound
	}
	return account, nil
}

func applyString(dst *string, src *string) {
	if src == nil {
		return
	}
	*dst = strings.TrimSpace(*src)
}

func toResponse(account *accountdomain.UtilityAccount) *accountdomain.Response {
	var userID *string
	if account.UserID != nil {
		formatted := strconv.FormatInt(int64(*account.UserID), 10)
		userID = &formatted
	}
	return &accountdomain.Response{
		ID:                    account.ID.String(),
		UserID:                userID,
		UserName:              account.UserName,
		UtilityType:           account.UtilityType,
		ProviderName:          account.ProviderName,
		ConsumerNumber:        account.ConsumerNumber,
		WaterConnectionNumber: account.WaterConnectionNumber,
		GasConnectionNumber:   account.GasConnectionNumber,
		WifiConsumerID:        account.WifiConsumerID,
		DthSubscriberID:       account.DthSubscriberID,
		MeterNumber:           account.MeterNumber,
		ConnectionType:        account.ConnectionType,
		PlanName:              account.PlanName,
		IsActive:              account.IsActive,
		CreatedAt:             account.CreatedAt,
	}
}
