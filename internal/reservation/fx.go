package reservation

import (
	"go.uber.org/fx"

	"github.com/abdouni493/auto-rental-application/internal/reservation/repository"
	"github.com/abdouni493/auto-rental-application/internal/reservation/service"
)

var Module = fx.Module("reservation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
