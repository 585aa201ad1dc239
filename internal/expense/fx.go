package expense

import (
	"go.uber.org/fx"

	"github.com/abdouni493/auto-rental-application/internal/expense/service"
)

var Module = fx.Module("expense.service",
	fx.Provide(service.NewService),
)
