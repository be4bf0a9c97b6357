package payment

import (
	"github.com/utilitydesk/meterbill/internal/payment/repository"
	"github.com/utilitydesk/meterbill/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
