package main

import (
	"log"

	"sos-service/internal/config"
	"sos-service/internal/handlers"
	"sos-service/internal/metrics"
	"sos-service/internal/models"
	"sos-service/internal/notify"
	"sos-service/internal/repository"
	"sos-service/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)

	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	contactRepo := repository.NewContactRepository(db)

	notifier := notify.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	m := metrics.NewMetrics()

	sosService := services.NewSosService(userRepo, locationRepo, contactRepo, notifier, m, services.Settings{
		SearchRadii:      cfg.SearchRadii,
		FreshnessWindow:  cfg.FreshnessWindow,
		MaxNearbyUsers:   cfg.MaxNearbyUsers,
		NearbyUsersCeil:  cfg.NearbyUsersCeil,
		MaxServiceHits:   cfg.MaxServiceHits,
		BoundingBoxLimit: cfg.BoundingBoxLimit,
	})
	contactService := services.NewContactService(contactRepo)
	userService := services.NewUserService(userRepo)

	app := fiber.New()

	//Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	sosHandler := handlers.NewSosHandler(sosService)
	contactHandler := handlers.NewContactHandler(contactService)
	locationHandler := handlers.NewLocationHandler(userService)

	api := app.Group("/api")
	api.Post("/users/:id/sos/contacts", sosHandler.AlertContacts)
	api.Post("/users/:id/sos/nearby-users", sosHandler.AlertNearbyUsers)
	api.Post("/users/:id/sos/services", sosHandler.AlertNearbyServices)

	api.Put("/users/:id/location", locationHandler.UpdateLocation)

	api.Get("/users/:id/contacts", contactHandler.ListContacts)
	api.Post("/users/:id/contacts", contactHandler.CreateContact)
	api.Put("/contacts/:id", contactHandler.UpdateContact)
	api.Delete("/contacts/:id", contactHandler.DeleteContact)

	api.Get("/swagger/*", swagger.HandlerDefault)

	// Add Health check endpoint
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	routes := app.GetRoutes()
	log.Println("Registered routes:")
	for _, r := range routes {
		log.Printf("  %s %s\n", r.Method, r.Path)
	}

	// Start the Fiber server
	port := cfg.AppPort
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.Printf("Server listening on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(&models.User{}, &models.ServiceLocation{}, &models.EmergencyContact{})
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}
