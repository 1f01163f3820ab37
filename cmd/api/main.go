package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JoaovitorDev12/cgpl-agendamento/internal/config"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/database"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/middleware"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/modules/auth"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/modules/booking"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/modules/catalog"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/modules/dashboard"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/modules/slots"
	jwtsvc "github.com/JoaovitorDev12/cgpl-agendamento/internal/pkg/jwt"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/pkg/logger"
	"github.com/JoaovitorDev12/cgpl-agendamento/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.Environment)
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := dashboard.NewHub()

	authService := auth.NewService(
		userRepo,
		auth.NewClientVerifier(userRepo),
		auth.NewPlannerVerifier(cfg.PlannerSecretHash),
		j,
	)
	authHandler := auth.NewHandler(authService)

	catalogHandler := catalog.NewHandler(catalog.NewService(serviceRepo))
	slotsHandler := slots.NewHandler(slots.NewService(slotRepo))

	bookingService := booking.NewService(slotRepo, appointmentRepo, dashboard.NewPublisher(hub), zlog)
	bookingHandler := booking.NewHandler(bookingService)

	dashboardHandler := dashboard.NewHandler(hub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestID())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		slotsHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			bookingHandler.RegisterRoutes(protected)

			planner := protected.Group("/")
			planner.Use(middleware.PlannerOnly())
			{
				dashboardHandler.RegisterRoutes(planner)
			}
		}
	}

	zlog.Info("listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
