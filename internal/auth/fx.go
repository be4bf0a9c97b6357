package auth

import (
	"github.com/utilitydesk/meterbill/internal/auth/repository"
	"github.com/utilitydesk/meterbill/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
