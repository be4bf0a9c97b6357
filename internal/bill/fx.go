package bill

import (
	"github.com/utilitydesk/meterbill/internal/bill/repository"
	"github.com/utilitydesk/meterbill/internal/bill/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bill.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
