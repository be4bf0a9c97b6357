package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/utilitydesk/meterbill/internal/account"
	accountdomain "github.com/utilitydesk/meterbill/internal/account/domain"
	"github.com/utilitydesk/meterbill/internal/audit"
	auditdomain "github.com/utilitydesk/meterbill/internal/audit/domain"
	"github.com/utilitydesk/meterbill/internal/auth"
	authdomain "github.com/utilitydesk/meterbill/internal/auth/domain"
	"github.com/utilitydesk/meterbill/internal/bill"
	billdomain "github.com/utilitydesk/meterbill/internal/bill/domain"
	"github.com/utilitydesk/meterbill/internal/config"
	obslogger "github.com/utilitydesk/meterbill/internal/observability/logger"
	obsmetrics "github.com/utilitydesk/meterbill/internal/observability/metrics"
	"github.com/utilitydesk/meterbill/internal/payment"
	paymentdomain "github.com/utilitydesk/meterbill/internal/payment/domain"
)

var Module = fx.Module("http.server",
	account.Module,
	bill.Module,
	payment.Module,
	auth.Module,
	audit.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           cfg.Environment != "production",
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	genID      *snowflake.Node
	authsvc    authdomain.Service
	accountSvc accountdomain.Service
	billSvc    billdomain.Service
	paymentSvc paymentdomain.Service
	auditSvc   auditdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	GenID      *snowflake.Node
	Authsvc    authdomain.Service
	AccountSvc accountdomain.Service
	BillSvc    billdomain.Service
	PaymentSvc paymentdomain.Service
	AuditSvc   auditdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		genID:      p.GenID,
		authsvc:    p.Authsvc,
		accountSvc: p.AccountSvc,
		billSvc:    p.BillSvc,
		paymentSvc: p.PaymentSvc,
		auditSvc:   p.AuditSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Auth --------
	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)
	api.POST("/auth/logout", s.Logout)
	api.GET("/auth/current-user", s.AuthRequired(), s.CurrentUser)

	api.POST("/admin/add-utility-authority", s.AuthRequired(), s.RequireRole(authdomain.RoleAdmin), s.AddUtilityAuthority)

	api.GET("/profiles", s.AuthRequired(), s.ListProfiles)

	// -------- Utility accounts --------
	api.POST("/accounts", s.CreateAccount)
	api.GET("/accounts", s.ListAccounts)
	api.GET("/accounts/count", s.CountAccountsByProvider)
	api.GET("/accounts/:id", s.GetAccountByID)
	api.PUT("/accounts/:id", s.UpdateAccount)
	api.PATCH("/accounts/:id", s.UpdateAccount)
	api.DELETE("/accounts/:id", s.DeleteAccount)

	// -------- Generated bills --------
	api.POST("/bills", s.CreateBill)
	api.GET("/bills", s.ListBills)
	api.GET("/bills/last-reading", s.LastReading)

	// -------- Simplified utility bills --------
	api.POST("/utility-bills", s.CreateUtilityBill)
	api.GET("/utility-bills", s.ListUtilityBills)

	// -------- Payments --------
	api.POST("/payments", s.RecordPayment)
	api.GET("/payments", s.ListPayments)
	api.POST("/payments/approve", s.ApprovePayment)
	api.POST("/payments/reject", s.RejectPayment)
}
