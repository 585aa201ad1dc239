package worker

import (
	"go.uber.org/fx"

	"github.com/abdouni493/auto-rental-application/internal/worker/service"
)

var Module = fx.Module("worker.service",
	fx.Provide(service.NewService),
)
