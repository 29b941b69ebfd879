package config

import (
	"EatBefore/domain"
	"EatBefore/internal/api/handlers"
	"EatBefore/internal/api/routes"
	"EatBefore/internal/middleware"
	"EatBefore/internal/utils"
	"EatBefore/pkg/favorites"
	"EatBefore/pkg/grocery"
	"EatBefore/pkg/jwt"
	"EatBefore/pkg/kv"
	"EatBefore/pkg/recognition"
	"EatBefore/pkg/user"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
)

// NewApp wires repositories, services and handlers over store. The returned
// cleanup stops the item writer and closes the access log; the store itself
// stays owned by the caller.
func NewApp(cfg *utils.Config, store kv.Store, log zerolog.Logger) (*fiber.App, func(), error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:               "EatBefore",
		DisableStartupMessage: true,
	})
	middlewares := middleware.NewMiddleware(cfg.Server.CORSOrigins)
	validator := utils.Validate

	// setting up logging and limiter
	accessLog, err := utils.NewAccessLogWriter(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   cfg.Timezone,
		Output:     accessLog,
	}))

	if cfg.Server.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.Server.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	// utils
	recognizer, err := recognition.NewRecognizer(recognition.Config{
		Enabled: cfg.Recognition.Enabled,
		APIKey:  cfg.Recognition.APIKey,
		Model:   cfg.Recognition.Model,
		BaseURL: cfg.Recognition.BaseURL,
		Timeout: cfg.Recognition.Timeout,
	}, log)
	var configErr *domain.ConfigurationError
	switch {
	case errors.As(err, &configErr):
		log.Warn().Str("feature", configErr.Feature).Msg(configErr.Message)
		recognizer = nil
	case err != nil:
		_ = accessLog.Close()
		return nil, nil, err
	case recognizer == nil:
		log.Info().Msg("image recognition disabled, manual entry only")
	}

	// Repository
	userRepository := user.NewUserRepository(store)
	groceryRepository := grocery.NewGroceryRepository(store, cfg.Grocery.SeedSampleData, log)

	// Service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)
	userService := user.NewUserService(userRepository, jwtService, log)
	groceryService := grocery.NewGroceryService(groceryRepository, recognizer, grocery.ServiceConfig{
		Thresholds:   cfg.Thresholds(),
		RequireImage: cfg.Grocery.RequireImage,
		DraftTTL:     cfg.Grocery.DraftTTL,
	}, log)
	favoriteService := favorites.NewFavoriteService(newFavoriteSelection(cfg), groceryService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	groceryHandler := handlers.NewGroceryHandler(groceryService, validator)
	draftHandler := handlers.NewDraftHandler(groceryService, validator)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		GroceryHandler:  groceryHandler,
		DraftHandler:    draftHandler,
		FavoriteHandler: favoriteHandler,
		Middleware:      middlewares,
		Sessions:        userService,
	}
	routesConfig.Setup()

	cleanup := func() {
		if err := groceryRepository.Close(); err != nil {
			log.Error().Err(err).Msg("failed to stop item store writer")
		}
		if err := accessLog.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close access log")
		}
	}
	return app, cleanup, nil
}

// newFavoriteSelection starts with the favorites the sample data ships with.
func newFavoriteSelection(cfg *utils.Config) *favorites.Selection {
	if cfg.Grocery.SeedSampleData {
		return favorites.NewSelection("1", "3")
	}
	return favorites.NewSelection()
}
