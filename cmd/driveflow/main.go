package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/abdouni493/auto-rental-application/internal/agency"
	"github.com/abdouni493/auto-rental-application/internal/clock"
	"github.com/abdouni493/auto-rental-application/internal/config"
	"github.com/abdouni493/auto-rental-application/internal/customer"
	"github.com/abdouni493/auto-rental-application/internal/events"
	"github.com/abdouni493/auto-rental-application/internal/expense"
	"github.com/abdouni493/auto-rental-application/internal/insights"
	"github.com/abdouni493/auto-rental-application/internal/migration"
	"github.com/abdouni493/auto-rental-application/internal/observability"
	"github.com/abdouni493/auto-rental-application/internal/reservation"
	"github.com/abdouni493/auto-rental-application/internal/scheduler"
	"github.com/abdouni493/auto-rental-application/internal/seed"
	"github.com/abdouni493/auto-rental-application/internal/server"
	"github.com/abdouni493/auto-rental-application/internal/template"
	"github.com/abdouni493/auto-rental-application/internal/vehicle"
	"github.com/abdouni493/auto-rental-application/internal/worker"
	"github.com/abdouni493/auto-rental-application/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		fx.Provide(func() (*snowflake.Node, error) {
			return snowflake.NewNode(1)
		}),
		db.Module,
		fx.Provide(events.NewOutbox),
		fx.Invoke(func(conn *gorm.DB) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			return seed.EnsureDefaults(conn)
		}),
		template.Module,
		customer.Module,
		vehicle.Module,
		reservation.Module,
		agency.Module,
		worker.Module,
		expense.Module,
		insights.Module,
		scheduler.Module,
		server.Module,
	)
	app.Run()
}
