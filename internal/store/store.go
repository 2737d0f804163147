package store

import (
	"context"
	"errors"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
)

var (
	// ErrNotFound is returned by singular lookups with no matching row.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateEmail is returned when a user insert hits the email
	// unique constraint.
	ErrDuplicateEmail = errors.New("store: email already exists")
)

// Store is the persistence surface for users and places. CreatePlace and
// DeletePlace are atomic with respect to the place/creator link: the place row
// and the creator's place set change together or not at all.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	FindPlace(ctx context.Context, id string) (*models.Place, error)
	FindPlacesByUser(ctx context.Context, userID string) ([]models.Place, error)
	CreatePlace(ctx context.Context, place *models.Place) error
	UpdatePlace(ctx context.Context, place *models.Place) error
	DeletePlace(ctx context.Context, place *models.Place) error
}
