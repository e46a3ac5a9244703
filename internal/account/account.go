package account

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when an account or favorite place does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated is returned when an operation needs a signed-in caller.
	ErrUnauthenticated = errors.New("caller is not authenticated")

	// ErrNotPremium is returned when a premium-only operation is refused.
	ErrNotPremium = errors.New("premium account required")
)

// Identity is the caller of an operation. The zero value is an anonymous caller.
type Identity struct {
	AccountID string
}

// Anonymous is the unauthenticated caller.
var Anonymous = Identity{}

// Authenticated reports whether the identity names an account.
func (i Identity) Authenticated() bool {
	return i.AccountID != ""
}

// Account is a user account. Premium unlocks history and favorites.
type Account struct {
	ID      string `json:"id"`
	Premium bool   `json:"premium"`
}

// FavoritePlace is a city saved by one account.
type FavoritePlace struct {
	ID      int64  `json:"id"`
	OwnerID string `json:"ownerId"`
	City    string `json:"city"`
}

// Store is the persistence contract for accounts and their favorite places.
// Lookups of missing records return ErrNotFound.
type Store interface {
	Account(ctx context.Context, id string) (Account, error)
	CreateAccount(ctx context.Context, acc Account) (Account, error)
	SetPremium(ctx context.Context, id string, premium bool) error
	// DeleteAccount removes the account together with its favorite places.
	DeleteAccount(ctx context.Context, id string) error

	// Favorites lists an owner's places in insertion order.
	Favorites(ctx context.Context, ownerID string) ([]FavoritePlace, error)
	Favorite(ctx context.Context, id int64) (FavoritePlace, error)
	FavoriteByCity(ctx context.Context, ownerID, city string) (FavoritePlace, error)
	InsertFavorite(ctx context.Context, ownerID, city string) (FavoritePlace, error)
	DeleteFavorite(ctx context.Context, id int64) error
}
