package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/utilitydesk/meterbill/internal/audit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func New(p Params) auditdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
	}
}

func (s *Service) Record(ctx context.Context, entry auditdomain.Entry) {
	var metadata datatypes.JSON
	if entry.Metadata != nil {
		encoded, err := json.Marshal(entry.Metadata)
		if err != nil {
			s.log.Warn("audit metadata not serializable", zap.Error(err), zap.String("action", entry.Action))
		} else {
			metadata = datatypes.JSON(encoded)
		}
	}

	record := auditdomain.AuditLog{
		ID:         s.genID.Generate(),
		Actor:      entry.Actor,
		Action:     entry.Action,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.log.Warn("audit record failed",
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.String("target_id", entry.TargetID),
		)
	}
}

func (s *Service) List(ctx context.Context, action string, limit int) ([]auditdomain.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := s.db.WithContext(ctx).Model(&auditdomain.AuditLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}

	var logs []auditdomain.AuditLog
	if err := query.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
