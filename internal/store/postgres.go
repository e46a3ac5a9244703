package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/i474232898/weather-premium/internal/account"
)

// schema has no unique constraint on (owner_id, city); duplicates are
// prevented at write time by the favorites flow.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id      TEXT PRIMARY KEY,
	premium BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS favorite_places (
	id       BIGSERIAL PRIMARY KEY,
	owner_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
	city     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS favorite_places_owner_idx ON favorite_places (owner_id);
`

// PostgresStore implements account.Store on PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ account.Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new PostgreSQL store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the tables if they do not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to apply schema: %w", err)
	}
	return nil
}

// Health checks database connectivity.
func (s *PostgresStore) Health(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// Account loads an account by id.
func (s *PostgresStore) Account(ctx context.Context, id string) (account.Account, error) {
	var acc account.Account
	err := s.pool.QueryRow(ctx, `SELECT id, premium FROM accounts WHERE id = $1`, id).
		Scan(&acc.ID, &acc.Premium)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.Account{}, fmt.Errorf("account %s: %w", id, account.ErrNotFound)
	}
	if err != nil {
		return account.Account{}, fmt.Errorf("postgres: failed to load account: %w", err)
	}
	return acc, nil
}

// CreateAccount inserts acc; an existing row with the same id is returned as is.
func (s *PostgresStore) CreateAccount(ctx context.Context, acc account.Account) (account.Account, error) {
	query := `
		INSERT INTO accounts (id, premium) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING id, premium
	`

	var created account.Account
	if err := s.pool.QueryRow(ctx, query, acc.ID, acc.Premium).Scan(&created.ID, &created.Premium); err != nil {
		return account.Account{}, fmt.Errorf("postgres: failed to create account: %w", err)
	}
	return created, nil
}

// SetPremium updates the premium flag.
func (s *PostgresStore) SetPremium(ctx context.Context, id string, premium bool) error {
	tag, err := s.pool.Exec(ctx, `UPDATE accounts SET premium = $2 WHERE id = $1`, id, premium)
	if err != nil {
		return fmt.Errorf("postgres: failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, account.ErrNotFound)
	}
	return nil
}

// DeleteAccount removes the account; its favorite places go with it.
func (s *PostgresStore) DeleteAccount(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, account.ErrNotFound)
	}
	return nil
}

// Favorites lists an owner's places in insertion order.
func (s *PostgresStore) Favorites(ctx context.Context, ownerID string) ([]account.FavoritePlace, error) {
	query := `
		SELECT id, owner_id, city
		FROM favorite_places
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query favorite places: %w", err)
	}
	defer rows.Close()

	var results []account.FavoritePlace
	for rows.Next() {
		var fp account.FavoritePlace
		if err := rows.Scan(&fp.ID, &fp.OwnerID, &fp.City); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan favorite place: %w", err)
		}
		results = append(results, fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read favorite places: %w", err)
	}

	return results, nil
}

// Favorite loads a place by id.
func (s *PostgresStore) Favorite(ctx context.Context, id int64) (account.FavoritePlace, error) {
	var fp account.FavoritePlace
	err := s.pool.QueryRow(ctx, `SELECT id, owner_id, city FROM favorite_places WHERE id = $1`, id).
		Scan(&fp.ID, &fp.OwnerID, &fp.City)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.FavoritePlace{}, fmt.Errorf("favorite place %d: %w", id, account.ErrNotFound)
	}
	if err != nil {
		return account.FavoritePlace{}, fmt.Errorf("postgres: failed to load favorite place: %w", err)
	}
	return fp, nil
}

// FavoriteByCity loads the owner's place for city.
func (s *PostgresStore) FavoriteByCity(ctx context.Context, ownerID, city string) (account.FavoritePlace, error) {
	query := `
		SELECT id, owner_id, city
		FROM favorite_places
		WHERE owner_id = $1 AND city = $2
		ORDER BY id
		LIMIT 1
	`

	var fp account.FavoritePlace
	err := s.pool.QueryRow(ctx, query, ownerID, city).Scan(&fp.ID, &fp.OwnerID, &fp.City)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.FavoritePlace{}, fmt.Errorf("favorite place %q: %w", city, account.ErrNotFound)
	}
	if err != nil {
		return account.FavoritePlace{}, fmt.Errorf("postgres: failed to load favorite place: %w", err)
	}
	return fp, nil
}

// InsertFavorite stores a new place and returns it with its id.
func (s *PostgresStore) InsertFavorite(ctx context.Context, ownerID, city string) (account.FavoritePlace, error) {
	query := `
		INSERT INTO favorite_places (owner_id, city) VALUES ($1, $2)
		RETURNING id, owner_id, city
	`

	var fp account.FavoritePlace
	if err := s.pool.QueryRow(ctx, query, ownerID, city).Scan(&fp.ID, &fp.OwnerID, &fp.City); err != nil {
		return account.FavoritePlace{}, fmt.Errorf("postgres: failed to save favorite place: %w", err)
	}
	return fp, nil
}

// DeleteFavorite removes a place by id.
func (s *PostgresStore) DeleteFavorite(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM favorite_places WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete favorite place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("favorite place %d: %w", id, account.ErrNotFound)
	}
	return nil
}
