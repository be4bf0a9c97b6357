package migration

import (
	accountdomain "github.com/utilitydesk/meterbill/internal/account/domain"
	auditdomain "github.com/utilitydesk/meterbill/internal/audit/domain"
	authdomain "github.com/utilitydesk/meterbill/internal/auth/domain"
	billdomain "github.com/utilitydesk/meterbill/internal/bill/domain"
	"github.com/utilitydesk/meterbill/internal/config"
	paymentdomain "github.com/utilitydesk/meterbill/internal/payment/domain"
	"github.com/utilitydesk/meterbill/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite deployments rely on gorm's schema sync.
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.UserProfile{},
				&authdomain.Session{},
				&accountdomain.UtilityAccount{},
				&billdomain.GeneratedBill{},
				&billdomain.UtilityBill{},
				&paymentdomain.Payment{},
				&auditdomain.AuditLog{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureBootstrapAdmin(conn, cfg)
	}),
)
