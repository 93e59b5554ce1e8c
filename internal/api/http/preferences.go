package httpapi

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

type favoriteRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Country string `json:"country" validate:"max=100"`
}

type unitRequest struct {
	Unit string `json:"unit" validate:"required,oneof=metric imperial"`
}

func registerPreferenceRoutes(v1 fiber.Router, prefs store.Store) {
	v1.Get("/favorites", func(c *fiber.Ctx) error {
		favs, err := prefs.Favorites()
		if err != nil {
			return storeError(err)
		}
		return c.JSON(favs)
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		req, err := bindFavorite(c)
		if err != nil {
			return err
		}
		added, err := prefs.AddFavorite(store.Favorite{Name: req.Name, Country: req.Country})
		if err != nil {
			return storeError(err)
		}
		status := fiber.StatusOK
		if added {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(fiber.Map{"added": added})
	})

	v1.Post("/favorites/toggle", func(c *fiber.Ctx) error {
		req, err := bindFavorite(c)
		if err != nil {
			return err
		}
		on, err := prefs.ToggleFavorite(store.Favorite{Name: req.Name, Country: req.Country})
		if err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"favorite": on})
	})

	v1.Delete("/favorites/:name", func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid city name")
		}
		removed, err := prefs.RemoveFavorite(name)
		if err != nil {
			return storeError(err)
		}
		if !removed {
			return fiber.NewError(fiber.StatusNotFound, "favorite not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/settings/unit", func(c *fiber.Ctx) error {
		u, err := prefs.Unit()
		if err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"unit": u})
	})

	v1.Put("/settings/unit", func(c *fiber.Ctx) error {
		var req unitRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := prefs.SetUnit(weather.Unit(req.Unit)); err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"unit": req.Unit})
	})

	v1.Post("/settings/unit/toggle", func(c *fiber.Ctx) error {
		u, err := prefs.ToggleUnit()
		if err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"unit": u})
	})
}

func bindFavorite(c *fiber.Ctx) (favoriteRequest, error) {
	var req favoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return req, nil
}

func storeError(err error) error {
	if errors.Is(err, store.ErrInvalidFavorite) || errors.Is(err, weather.ErrInvalidUnit) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to access preferences")
}
