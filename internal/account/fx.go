package account

import (
	"github.com/utilitydesk/meterbill/internal/account/repository"
	"github.com/utilitydesk/meterbill/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
