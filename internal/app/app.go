package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/vivekmitra98/shareplaces-backend/internal/config"
	"github.com/vivekmitra98/shareplaces-backend/internal/geocode"
	"github.com/vivekmitra98/shareplaces-backend/internal/handlers"
	"github.com/vivekmitra98/shareplaces-backend/internal/models"
	"github.com/vivekmitra98/shareplaces-backend/internal/services"
	"github.com/vivekmitra98/shareplaces-backend/internal/store"
)

// New assembles the fiber app around the given store and geocoder. Run wires
// the real implementations; tests pass fakes.
func New(cfg *config.Config, st store.Store, geo services.Geocoder, log zerolog.Logger) *fiber.App {
	tokens := services.NewTokenService(cfg.JWTSecret)
	userService := services.NewUserService(st, tokens, log)
	placeService := services.NewPlaceService(st, geo, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(log),
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, X-Requested-With, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	app.Static("/uploads/images", cfg.UploadDir)

	apiPlaces := app.Group("/api/places")
	apiPlaces.Get("/user/:userId", handlers.GetUserPlacesHandler(placeService))
	apiPlaces.Get("/:placeId", handlers.GetPlaceHandler(placeService))

	auth := handlers.AuthMiddleware(tokens)
	apiPlaces.Post("/", auth, handlers.CreatePlaceHandler(placeService, cfg.UploadDir))
	apiPlaces.Patch("/:placeId", auth, handlers.UpdatePlaceHandler(placeService))
	apiPlaces.Delete("/:placeId", auth, handlers.DeletePlaceHandler(placeService))

	apiUsers := app.Group("/api/users")
	apiUsers.Get("/", handlers.ListUsersHandler(userService))
	apiUsers.Post("/signup", handlers.SignupHandler(userService, cfg.UploadDir))
	apiUsers.Post("/login", handlers.LoginHandler(userService))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Anything that falls through the route table.
	app.Use(func(c *fiber.Ctx) error {
		return models.ErrRouteNotFound
	})

	return app
}

// errorHandler is the single place failures become responses. It removes any
// file this request uploaded before failing, renders domain errors with their
// fixed status and message, and hides everything else behind a generic 500.
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if path, ok := c.Locals(handlers.UploadedFileKey).(string); ok && path != "" {
			if rmErr := os.Remove(path); rmErr != nil {
				log.Warn().Err(rmErr).Str("file", path).Msg("could not remove uploaded file")
			}
		}

		var httpErr *models.HTTPError
		if errors.As(err, &httpErr) {
			return c.Status(httpErr.Status).JSON(fiber.Map{"message": httpErr.Message})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong!",
		})
	}
}

// Run loads configuration, connects to Postgres and serves until interrupted.
func Run() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()

	st, err := store.NewPostgres(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer st.Close()

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Warn().Err(err).Msg("failed to create upload dir")
	}

	app := New(cfg, st, geocode.NewClient(cfg), log)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("backend server running")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	log.Info().Msg("gracefully shutting down")
	_ = app.Shutdown()
	log.Info().Msg("server shutdown complete")
}
