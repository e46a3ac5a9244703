package httpapi

import (
	"errors"
	"log"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-premium/internal/account"
	"github.com/i474232898/weather-premium/internal/auth"
	"github.com/i474232898/weather-premium/internal/common"
	"github.com/i474232898/weather-premium/internal/favorites"
	"github.com/i474232898/weather-premium/internal/home"
	"github.com/i474232898/weather-premium/internal/weather"
)

const homePath = "/api/v1/home"

var validate = validator.New()

// Dependencies are the services behind the HTTP handlers.
type Dependencies struct {
	Weather   *weather.Service
	Home      *home.Service
	Favorites *favorites.Composer
	Gate      *account.Gate
	// Auth resolves bearer tokens; when nil every caller is anonymous.
	Auth *auth.Resolver
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	v1 := app.Group("/api/v1")
	if deps.Auth != nil {
		v1.Use(deps.Auth.Middleware())
	}

	v1.Get("/home", func(c *fiber.Ctx) error {
		view, err := deps.Home.View(c.UserContext(), auth.IdentityFrom(c), c.Query("city"))
		if err != nil {
			return internalError("failed to build home view", err)
		}
		return c.JSON(view)
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cw, err := deps.Weather.Current(c.UserContext(), q.City)
		if err != nil {
			return internalError("failed to fetch weather data", err)
		}
		if cw == nil {
			return fiber.NewError(fiber.StatusNotFound, "no weather data for requested city")
		}
		return c.JSON(cw)
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		q, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctx := c.UserContext()
		if !deps.Gate.IsPremium(ctx, auth.IdentityFrom(c)) {
			return c.Redirect(homePath+"?city="+url.QueryEscape(q.City), fiber.StatusFound)
		}

		week, err := deps.Weather.PastWeek(ctx, q.City)
		if err != nil {
			return internalError("failed to fetch weather history", err)
		}

		return c.JSON(fiber.Map{
			"city":    q.City,
			"dates":   deps.Weather.PastWeekDates(),
			"days":    week,
			"summary": weather.SummarizeWeek(q.City, week),
		})
	})

	v1.Get("/favorites", func(c *fiber.Ctx) error {
		listing, err := deps.Favorites.ListWithForecasts(c.UserContext(), auth.IdentityFrom(c))
		if errors.Is(err, account.ErrNotPremium) {
			return c.Redirect(homePath, fiber.StatusFound)
		}
		if err != nil {
			return internalError("failed to list favorite places", err)
		}
		return c.JSON(listing)
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var req favoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		place, err := deps.Favorites.Add(c.UserContext(), auth.IdentityFrom(c), req.City)
		switch {
		case errors.Is(err, account.ErrNotPremium):
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, favorites.ErrEmptyCity):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return internalError("failed to save favorite place", err)
		}
		return c.Status(fiber.StatusCreated).JSON(place)
	})

	v1.Delete("/favorites/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid favorite place id")
		}

		err = deps.Favorites.Remove(c.UserContext(), auth.IdentityFrom(c), id)
		switch {
		case errors.Is(err, account.ErrNotPremium):
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, account.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "favorite place not found")
		case err != nil:
			return internalError("failed to delete favorite place", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/premium", func(c *fiber.Ctx) error {
		id := auth.IdentityFrom(c)
		return c.JSON(fiber.Map{
			"authenticated": id.Authenticated(),
			"premium":       deps.Gate.IsPremium(c.UserContext(), id),
		})
	})

	v1.Post("/premium", func(c *fiber.Ctx) error {
		err := deps.Gate.Upgrade(c.UserContext(), auth.IdentityFrom(c))
		switch {
		case err == nil, errors.Is(err, account.ErrUnauthenticated):
			return c.Redirect(homePath, fiber.StatusFound)
		case errors.Is(err, account.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "account not found; register it first")
		default:
			return internalError("failed to upgrade account", err)
		}
	})

	v1.Post("/account", func(c *fiber.Ctx) error {
		acc, err := deps.Gate.Register(c.UserContext(), auth.IdentityFrom(c))
		if errors.Is(err, account.ErrUnauthenticated) {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		if err != nil {
			return internalError("failed to register account", err)
		}
		return c.JSON(acc)
	})
}

// cityQuery holds the city query parameter shared by the weather endpoints.
type cityQuery struct {
	City string `validate:"required,max=100"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	q := cityQuery{City: common.NormalizeCity(c.Query("city"))}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// favoriteRequest is the body of a favorite place save.
type favoriteRequest struct {
	City string `json:"city" validate:"max=100"`
}

// internalError logs err and hides it behind a generic 500.
func internalError(msg string, err error) error {
	log.Printf("ERROR: %s: %v", msg, err)
	return fiber.NewError(fiber.StatusInternalServerError, msg)
}
