package vehicle

import (
	"go.uber.org/fx"

	"github.com/abdouni493/auto-rental-application/internal/vehicle/repository"
	"github.com/abdouni493/auto-rental-application/internal/vehicle/service"
)

var Module = fx.Module("vehicle.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
