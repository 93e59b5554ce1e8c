package httpapi

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// NewApp builds the Fiber app with middleware, health check and API routes.
func NewApp(service *weather.Service, prefs store.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "weather-dashboard",
			"cacheSize": service.CacheSize(),
		})
	})

	RegisterRoutes(app, service, prefs)
	return app
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, prefs store.Store) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, unit, err := parseCityQuery(c, prefs)
		if err != nil {
			return err
		}
		cw, err := service.GetCurrentWeather(c.UserContext(), q.City, unit)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(cw)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		q, unit, err := parseCityQuery(c, prefs)
		if err != nil {
			return err
		}
		bundle, err := service.GetForecast(c.UserContext(), q.City, unit)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(bundle)
	})

	v1.Get("/weather/forecast/daily", func(c *fiber.Ctx) error {
		q, unit, err := parseCityQuery(c, prefs)
		if err != nil {
			return err
		}
		bundle, err := service.GetForecast(c.UserContext(), q.City, unit)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{
			"city": bundle.City,
			"unit": bundle.Unit,
			"days": weather.Daily(bundle),
		})
	})

	v1.Get("/cities/search", func(c *fiber.Ctx) error {
		q := searchQuery{Q: c.Query("q")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		results, err := service.SearchCities(c.UserContext(), q.Q)
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(results)
	})

	v1.Get("/cache", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"size": service.CacheSize()})
	})

	v1.Delete("/cache", func(c *fiber.Ctx) error {
		service.ClearCache()
		log.Println("INFO: cache cleared via API")
		return c.SendStatus(fiber.StatusNoContent)
	})

	registerPreferenceRoutes(v1, prefs)
}

// cityQuery holds query parameters for the weather endpoints.
type cityQuery struct {
	City string `validate:"required,max=200"`
	Unit string `validate:"omitempty,oneof=metric imperial"`
}

// parseCityQuery validates the request and resolves the unit, falling back
// to the stored preference when none is given.
func parseCityQuery(c *fiber.Ctx, prefs store.Store) (cityQuery, weather.Unit, error) {
	q := cityQuery{
		City: c.Query("city"),
		Unit: c.Query("unit"),
	}
	if err := validate.Struct(q); err != nil {
		return q, "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if q.Unit != "" {
		return q, weather.Unit(q.Unit), nil
	}
	unit, err := prefs.Unit()
	if err != nil {
		log.Printf("WARN: cannot read unit preference, using metric: %v", err)
		unit = weather.Metric
	}
	return q, unit, nil
}

// searchQuery holds the city search parameter. Short queries are allowed
// and yield an empty result.
type searchQuery struct {
	Q string `validate:"max=200"`
}

func serviceError(err error) error {
	switch {
	case errors.Is(err, weather.ErrInvalidUnit):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrUpstream):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fiber.NewError(fiber.StatusGatewayTimeout, "weather request timed out")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}
}
