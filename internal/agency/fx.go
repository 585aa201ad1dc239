package agency

import (
	"go.uber.org/fx"

	"github.com/abdouni493/auto-rental-application/internal/agency/service"
)

var Module = fx.Module("agency.service",
	fx.Provide(service.NewService),
)
