package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/i474232898/weather-premium/internal/account"
	"github.com/i474232898/weather-premium/internal/common"
	"github.com/i474232898/weather-premium/internal/weather"
)

// ErrEmptyCity is returned when Add is called without a city name.
var ErrEmptyCity = errors.New("city is required")

// ForecastSource yields forecasts for a city; nil means no data.
type ForecastSource interface {
	Forecast(ctx context.Context, city string) (*weather.ForecastWeather, error)
}

// Listing is the favorites view: the saved places and a forecast per city.
// A city whose forecast could not be fetched has no key in Forecasts and is
// listed in Missing instead.
type Listing struct {
	Places    []account.FavoritePlace     `json:"places"`
	Forecasts map[string]weather.Forecast `json:"forecasts"`
	Missing   []string                    `json:"missing,omitempty"`
}

// Composer manages premium callers' favorite places.
type Composer struct {
	store     account.Store
	gate      *account.Gate
	forecasts ForecastSource

	checkOwnership bool
}

// Option configures a Composer.
type Option func(*Composer)

// WithOwnershipCheck makes Remove treat another account's place as not found.
func WithOwnershipCheck() Option {
	return func(c *Composer) {
		c.checkOwnership = true
	}
}

// NewComposer creates a new Composer.
func NewComposer(store account.Store, gate *account.Gate, forecasts ForecastSource, opts ...Option) *Composer {
	c := &Composer{
		store:     store,
		gate:      gate,
		forecasts: forecasts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListWithForecasts loads the caller's places and fetches a forecast for
// each, one after another, in insertion order.
func (c *Composer) ListWithForecasts(ctx context.Context, id account.Identity) (Listing, error) {
	if !c.gate.IsPremium(ctx, id) {
		return Listing{}, account.ErrNotPremium
	}

	places, err := c.store.Favorites(ctx, id.AccountID)
	if err != nil {
		return Listing{}, fmt.Errorf("list favorite places: %w", err)
	}

	listing := Listing{
		Places:    make([]account.FavoritePlace, 0, len(places)),
		Forecasts: make(map[string]weather.Forecast, len(places)),
	}
	for _, place := range places {
		listing.Places = append(listing.Places, place)

		fw, err := c.forecasts.Forecast(ctx, place.City)
		if err != nil {
			return Listing{}, err
		}
		if fw == nil {
			listing.Missing = append(listing.Missing, place.City)
			continue
		}
		listing.Forecasts[place.City] = fw.Forecast
	}

	return listing, nil
}

// Add saves city for the caller. Saving a city twice returns the existing
// place. The check and the insert are not atomic; two concurrent adds of the
// same city may both insert.
func (c *Composer) Add(ctx context.Context, id account.Identity, city string) (account.FavoritePlace, error) {
	if !c.gate.IsPremium(ctx, id) {
		return account.FavoritePlace{}, account.ErrNotPremium
	}

	city = common.NormalizeCity(city)
	if city == "" {
		return account.FavoritePlace{}, ErrEmptyCity
	}

	existing, err := c.store.FavoriteByCity(ctx, id.AccountID, city)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, account.ErrNotFound) {
		return account.FavoritePlace{}, fmt.Errorf("look up favorite place: %w", err)
	}

	place, err := c.store.InsertFavorite(ctx, id.AccountID, city)
	if err != nil {
		return account.FavoritePlace{}, fmt.Errorf("save favorite place: %w", err)
	}
	return place, nil
}

// Remove deletes the place with the given id. Unless the composer was built
// WithOwnershipCheck, the place is deleted whoever owns it.
func (c *Composer) Remove(ctx context.Context, id account.Identity, placeID int64) error {
	if !c.gate.IsPremium(ctx, id) {
		return account.ErrNotPremium
	}

	place, err := c.store.Favorite(ctx, placeID)
	if err != nil {
		return err
	}
	if c.checkOwnership && place.OwnerID != id.AccountID {
		return fmt.Errorf("favorite place %d: %w", placeID, account.ErrNotFound)
	}

	return c.store.DeleteFavorite(ctx, place.ID)
}
