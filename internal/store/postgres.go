package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	image         TEXT NOT NULL,
	place_ids     TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS places (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	address     TEXT NOT NULL,
	creator     TEXT NOT NULL REFERENCES users(id),
	lat         DOUBLE PRECISION NOT NULL,
	lng         DOUBLE PRECISION NOT NULL,
	image       TEXT NOT NULL
);
`

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database, verifies the connection and makes
// sure the schema exists.
func NewPostgres(ctx context.Context, connString string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to create schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Postgres) Close() {
	s.pool.Close()
}

// withTx runs fn inside a transaction: commit when fn returns nil, rollback
// otherwise.
func (s *Postgres) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, s.pool, fn)
}

func (s *Postgres) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.PlaceIDs == nil {
		user.PlaceIDs = []string{}
	}

	query := `INSERT INTO users (id, name, email, password_hash, image, place_ids)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Image, user.PlaceIDs)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *Postgres) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, image, place_ids
		FROM users WHERE id = $1`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

func (s *Postgres) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, image, place_ids
		FROM users WHERE email = $1`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

func (s *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, name, email, password_hash, image, place_ids
		FROM users ORDER BY name`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Image, &u.PlaceIDs); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Postgres) FindPlace(ctx context.Context, id string) (*models.Place, error) {
	query := `SELECT id, title, description, address, creator, lat, lng, image
		FROM places WHERE id = $1`
	return scanPlace(s.pool.QueryRow(ctx, query, id))
}

func (s *Postgres) FindPlacesByUser(ctx context.Context, userID string) ([]models.Place, error) {
	query := `SELECT id, title, description, address, creator, lat, lng, image
		FROM places WHERE creator = $1`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Address,
			&p.Creator, &p.Location.Lat, &p.Location.Lng, &p.Image); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// CreatePlace inserts the place and appends its id to the creator's place set
// in one transaction.
func (s *Postgres) CreatePlace(ctx context.Context, place *models.Place) error {
	if place.ID == "" {
		place.ID = uuid.New().String()
	}

	return s.withTx(ctx, func(tx pgx.Tx) error {
		insert := `INSERT INTO places (id, title, description, address, creator, lat, lng, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		if _, err := tx.Exec(ctx, insert,
			place.ID, place.Title, place.Description, place.Address,
			place.Creator, place.Location.Lat, place.Location.Lng, place.Image); err != nil {
			return err
		}

		link := `UPDATE users SET place_ids = array_append(place_ids, $1) WHERE id = $2`
		tag, err := tx.Exec(ctx, link, place.ID, place.Creator)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *Postgres) UpdatePlace(ctx context.Context, place *models.Place) error {
	query := `UPDATE places SET title = $1, description = $2 WHERE id = $3`
	tag, err := s.pool.Exec(ctx, query, place.Title, place.Description, place.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePlace removes the place and pulls its id out of the creator's place
// set in one transaction.
func (s *Postgres) DeletePlace(ctx context.Context, place *models.Place) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		del := `DELETE FROM places WHERE id = $1`
		tag, err := tx.Exec(ctx, del, place.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		unlink := `UPDATE users SET place_ids = array_remove(place_ids, $1) WHERE id = $2`
		if _, err := tx.Exec(ctx, unlink, place.ID, place.Creator); err != nil {
			return err
		}
		return nil
	})
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Image, &u.PlaceIDs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanPlace(row pgx.Row) (*models.Place, error) {
	var p models.Place
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Address,
		&p.Creator, &p.Location.Lat, &p.Location.Lng, &p.Image)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
