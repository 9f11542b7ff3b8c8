package main

import (
	"context"
	"fmt"
	"log"

	common_api "grant-crm/internal/common/api"
	"grant-crm/internal/config"
	"grant-crm/internal/database"
	"grant-crm/internal/features/dataset"
	"grant-crm/internal/features/filter"
	"grant-crm/internal/features/preset"
	"grant-crm/internal/features/report"
	"grant-crm/internal/features/schedule"
	"grant-crm/internal/features/schema"
	"grant-crm/internal/features/template"
	"grant-crm/internal/logger"
	"grant-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags a constructor so Fx adds its result to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			template.NewTemplateRepository,
			preset.NewPresetRepository,
			schedule.NewScheduleRepository,
			dataset.NewMongoProvider,

			// Services
			template.NewTemplateService,
			preset.NewPresetService,
			report.NewReportService,
			schedule.NewScheduleService,
			filter.NewSchemaOperatorSource,

			// Controllers
			schema.NewSchemaController,
			template.NewTemplateController,
			preset.NewPresetController,
			report.NewReportController,
			schedule.NewScheduleController,

			// API Routes
			AsRoute(schema.NewSchemaApi),
			AsRoute(template.NewTemplateApi),
			AsRoute(preset.NewPresetApi),
			AsRoute(report.NewReportApi),
			AsRoute(schedule.NewScheduleApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduleService schedule.ScheduleService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduleService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return scheduleService.StopScheduler()
					},
				})
			},
		),
	)

	app.Run()
}
