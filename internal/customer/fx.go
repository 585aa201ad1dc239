package customer

import (
	"go.uber.org/fx"

	"github.com/abdouni493/auto-rental-application/internal/customer/repository"
	"github.com/abdouni493/auto-rental-application/internal/customer/service"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
