package main

import (
	"piqueunique/internal/bookings/handler"
	"piqueunique/internal/bookings/repository"
	"piqueunique/internal/bookings/service"
	"piqueunique/internal/bookings/validator"
	"piqueunique/internal/identity"
	"piqueunique/internal/notify"
	"piqueunique/pkg/app"
	"piqueunique/pkg/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting bookings service")

	provider := identity.NewJWTProvider(cfg.JWTSecret, cfg.AdminUIDs)
	notifier := notify.NewKafkaNotifier(cfg)
	defer func() {
		if err := notifier.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka writers", "error", err)
		}
	}()

	bookingHandler := initHandler(cfg, notifier)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(bookingHandler, provider)
	serverApp.Run()
}

func initHandler(cfg *config.Config, notifier notify.Notifier) *handler.BookingHandler {
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	draftRepo := repository.NewMongoDraftRepository(cfg)
	slotLockRepo := repository.NewMongoSlotLockRepository(cfg)
	auditRepo := repository.NewMongoAuditLogRepository(cfg)

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	auditService := service.NewAuditService(auditRepo, cfg.Log)
	availabilityService := service.NewAvailabilityService(bookingRepo, cfg.Log)
	bookingService := service.NewBookingService(
		cfg,
		bookingRepo,
		draftRepo,
		slotLockRepo,
		bookingValidator,
		auditService,
		notifier,
		cfg.Log,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return handler.NewBookingHandler(bookingService, availabilityService, auditService, cfg.Log)
}
