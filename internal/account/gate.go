package account

import (
	"context"
	"errors"
	"fmt"
)

// Gate decides whether premium-only behaviour may run for a caller.
type Gate struct {
	store Store
}

// NewGate creates a Gate backed by store.
func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

// IsPremium reports whether the caller's account has the premium flag.
// Anonymous callers and accounts that cannot be loaded are not premium.
func (g *Gate) IsPremium(ctx context.Context, id Identity) bool {
	if !id.Authenticated() {
		return false
	}
	acc, err := g.store.Account(ctx, id.AccountID)
	if err != nil {
		return false
	}
	return acc.Premium
}

// Register creates the caller's account as a free account. Calling it for an
// existing account returns that account unchanged.
func (g *Gate) Register(ctx context.Context, id Identity) (Account, error) {
	if !id.Authenticated() {
		return Account{}, ErrUnauthenticated
	}

	acc, err := g.store.Account(ctx, id.AccountID)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Account{}, fmt.Errorf("load account: %w", err)
	}

	acc, err = g.store.CreateAccount(ctx, Account{ID: id.AccountID})
	if err != nil {
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	return acc, nil
}

// Upgrade moves the caller's account to premium. Any authenticated caller
// may upgrade; there is no way back to the free tier.
func (g *Gate) Upgrade(ctx context.Context, id Identity) error {
	if !id.Authenticated() {
		return ErrUnauthenticated
	}

	acc, err := g.store.Account(ctx, id.AccountID)
	if err != nil {
		return err
	}
	if acc.Premium {
		return nil
	}

	if err := g.store.SetPremium(ctx, acc.ID, true); err != nil {
		return fmt.Errorf("upgrade account %s: %w", acc.ID, err)
	}
	return nil
}
