package template

import (
	"go.uber.org/fx"

	"github.com/abdouni493/auto-rental-application/internal/template/editor"
	"github.com/abdouni493/auto-rental-application/internal/template/render"
	"github.com/abdouni493/auto-rental-application/internal/template/repository"
	"github.com/abdouni493/auto-rental-application/internal/template/service"
)

var Module = fx.Module("template.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
	fx.Provide(editor.NewManager),
	fx.Provide(render.NewRenderer),
)
