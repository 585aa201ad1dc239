package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	agencydomain "github.com/abdouni493/auto-rental-application/internal/agency/domain"
	"github.com/abdouni493/auto-rental-application/internal/config"
	customerdomain "github.com/abdouni493/auto-rental-application/internal/customer/domain"
	"github.com/abdouni493/auto-rental-application/internal/events"
	expensedomain "github.com/abdouni493/auto-rental-application/internal/expense/domain"
	"github.com/abdouni493/auto-rental-application/internal/insights"
	"github.com/abdouni493/auto-rental-application/internal/observability/logger"
	"github.com/abdouni493/auto-rental-application/internal/observability/metrics"
	reservationdomain "github.com/abdouni493/auto-rental-application/internal/reservation/domain"
	"github.com/abdouni493/auto-rental-application/internal/template/editor"
	templatedomain "github.com/abdouni493/auto-rental-application/internal/template/domain"
	"github.com/abdouni493/auto-rental-application/internal/template/render"
	vehicledomain "github.com/abdouni493/auto-rental-application/internal/vehicle/domain"
	workerdomain "github.com/abdouni493/auto-rental-application/internal/worker/domain"
)

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
	DB  *gorm.DB

	TemplateSvc templatedomain.Service
	EditorMgr   *editor.Manager
	Renderer    render.Renderer

	CustomerSvc    customerdomain.Service
	VehicleSvc     vehicledomain.Service
	ReservationSvc reservationdomain.Service
	AgencySvc      agencydomain.Service
	WorkerSvc      workerdomain.Service
	ExpenseSvc     expensedomain.Service
	InsightsSvc    insights.Service

	Outbox      *events.Outbox
	HTTPMetrics *metrics.HTTPMetrics     `optional:"true"`
	DocMetrics  *metrics.DocumentMetrics `optional:"true"`
}

// Server carries the HTTP handlers and their dependencies.
type Server struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB

	templateSvc templatedomain.Service
	editorMgr   *editor.Manager
	renderer    render.Renderer

	customerSvc    customerdomain.Service
	vehicleSvc     vehicledomain.Service
	reservationSvc reservationdomain.Service
	agencySvc      agencydomain.Service
	workerSvc      workerdomain.Service
	expenseSvc     expensedomain.Service
	insightsSvc    insights.Service

	outbox     *events.Outbox
	docMetrics *metrics.DocumentMetrics

	engine *gin.Engine
}

func NewServer(p Params) *Server {
	s := &Server{
		cfg:            p.Cfg,
		log:            p.Log.Named("server"),
		db:             p.DB,
		templateSvc:    p.TemplateSvc,
		editorMgr:      p.EditorMgr,
		renderer:       p.Renderer,
		customerSvc:    p.CustomerSvc,
		vehicleSvc:     p.VehicleSvc,
		reservationSvc: p.ReservationSvc,
		agencySvc:      p.AgencySvc,
		workerSvc:      p.WorkerSvc,
		expenseSvc:     p.ExpenseSvc,
		insightsSvc:    p.InsightsSvc,
		outbox:         p.Outbox,
		docMetrics:     p.DocMetrics,
	}

	if p.Cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		Logger:    p.Log,
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	if p.HTTPMetrics != nil {
		engine.Use(metrics.GinMiddleware(p.HTTPMetrics))
	}

	s.engine = engine
	s.registerRoutes()
	return s
}

// Engine exposes the router, mainly for handler tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")

	templates := api.Group("/templates")
	templates.GET("", s.ListTemplates)
	templates.POST("", s.SaveTemplate)
	templates.GET("/:id", s.GetTemplate)
	templates.PUT("/:id", s.SaveTemplate)
	templates.DELETE("/:id", s.DeleteTemplate)
	templates.GET("/:id/preview", s.PreviewTemplate)

	sessions := api.Group("/editor/sessions")
	sessions.POST("", s.OpenEditorSession)
	sessions.GET("/:id", s.GetEditorSession)
	sessions.DELETE("/:id", s.CloseEditorSession)
	sessions.POST("/:id/elements", s.AddEditorElement)
	sessions.PATCH("/:id/elements/:elementId", s.UpdateEditorElement)
	sessions.DELETE("/:id/elements/:elementId", s.RemoveEditorElement)
	sessions.POST("/:id/selection", s.SelectEditorElement)
	sessions.POST("/:id/drag", s.DragEditorElement)
	sessions.POST("/:id/save", s.SaveEditorSession)

	api.POST("/documents/print", s.PrintDocument)

	customers := api.Group("/customers")
	customers.GET("", s.ListCustomers)
	customers.POST("", s.CreateCustomer)
	customers.GET("/:id", s.GetCustomer)
	customers.PUT("/:id", s.UpdateCustomer)
	customers.DELETE("/:id", s.DeleteCustomer)

	vehicles := api.Group("/vehicles")
	vehicles.GET("", s.ListVehicles)
	vehicles.POST("", s.CreateVehicle)
	vehicles.GET("/:id", s.GetVehicle)
	vehicles.PUT("/:id", s.UpdateVehicle)
	vehicles.DELETE("/:id", s.DeleteVehicle)

	reservations := api.Group("/reservations")
	reservations.GET("", s.ListReservations)
	reservations.POST("", s.CreateReservation)
	reservations.GET("/:id", s.GetReservation)
	reservations.PUT("/:id", s.UpdateReservation)
	reservations.POST("/:id/confirm", s.ConfirmReservation)
	reservations.POST("/:id/activate", s.ActivateReservation)
	reservations.POST("/:id/terminate", s.TerminateReservation)
	reservations.POST("/:id/cancel", s.CancelReservation)
	reservations.GET("/:id/logs", s.ReservationLogs)

	agencies := api.Group("/agencies")
	agencies.GET("", s.ListAgencies)
	agencies.POST("", s.CreateAgency)
	agencies.GET("/:id", s.GetAgency)
	agencies.PUT("/:id", s.UpdateAgency)
	agencies.DELETE("/:id", s.DeleteAgency)

	workers := api.Group("/workers")
	workers.GET("", s.ListWorkers)
	workers.POST("", s.CreateWorker)
	workers.GET("/:id", s.GetWorker)
	workers.PUT("/:id", s.UpdateWorker)
	workers.DELETE("/:id", s.DeleteWorker)
	workers.GET("/:id/payments", s.ListWorkerPayments)
	workers.POST("/:id/payments", s.AddWorkerPayment)

	expenses := api.Group("/expenses")
	expenses.GET("", s.ListExpenses)
	expenses.POST("", s.CreateExpense)
	expenses.DELETE("/:id", s.DeleteExpense)

	api.POST("/insights/analyze", s.AnalyzeInsights)
	api.GET("/stats/revenue", s.RevenueStats)
}

func (s *Server) Healthz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Register binds the HTTP listener to the fx lifecycle.
func Register(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:    s.cfg.HTTP.Addr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", s.cfg.HTTP.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
