// Package storetest provides an in-memory store.Store used by tests in place
// of Postgres. Failure injection fields let tests simulate store and
// transaction errors for specific operations.
package storetest

import (
	"context"
	"strconv"
	"sync"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
	"github.com/vivekmitra98/shareplaces-backend/internal/store"
)

// Store keeps users and places in maps. The transactional operations mutate
// both maps together or not at all, mirroring the Postgres implementation.
type Store struct {
	mu     sync.Mutex
	users  map[string]models.User
	places map[string]models.Place
	nextID int

	// When set, the named operation returns the error without touching state.
	FailCreateUser  error
	FailCreatePlace error
	FailUpdatePlace error
	FailDeletePlace error
	FailReads       error
}

func New() *Store {
	return &Store{
		users:  make(map[string]models.User),
		places: make(map[string]models.Place),
	}
}

func (s *Store) genID(prefix string) string {
	s.nextID++
	return prefix + "-" + strconv.Itoa(s.nextID)
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailCreateUser != nil {
		return s.FailCreateUser
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = s.genID("user")
	}
	if user.PlaceIDs == nil {
		user.PlaceIDs = []string{}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Store) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailReads != nil {
		return nil, s.FailReads
	}
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := u
	copied.PlaceIDs = append([]string(nil), u.PlaceIDs...)
	return &copied, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailReads != nil {
		return nil, s.FailReads
	}
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			copied.PlaceIDs = append([]string(nil), u.PlaceIDs...)
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailReads != nil {
		return nil, s.FailReads
	}
	var users []models.User
	for _, u := range s.users {
		copied := u
		copied.PlaceIDs = append([]string(nil), u.PlaceIDs...)
		users = append(users, copied)
	}
	return users, nil
}

func (s *Store) FindPlace(_ context.Context, id string) (*models.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailReads != nil {
		return nil, s.FailReads
	}
	p, ok := s.places[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (s *Store) FindPlacesByUser(_ context.Context, userID string) ([]models.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailReads != nil {
		return nil, s.FailReads
	}
	var places []models.Place
	for _, p := range s.places {
		if p.Creator == userID {
			places = append(places, p)
		}
	}
	return places, nil
}

func (s *Store) CreatePlace(_ context.Context, place *models.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailCreatePlace != nil {
		return s.FailCreatePlace
	}
	creator, ok := s.users[place.Creator]
	if !ok {
		return store.ErrNotFound
	}
	if place.ID == "" {
		place.ID = s.genID("place")
	}
	s.places[place.ID] = *place
	creator.PlaceIDs = append(creator.PlaceIDs, place.ID)
	s.users[creator.ID] = creator
	return nil
}

func (s *Store) UpdatePlace(_ context.Context, place *models.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailUpdatePlace != nil {
		return s.FailUpdatePlace
	}
	existing, ok := s.places[place.ID]
	if !ok {
		return store.ErrNotFound
	}
	existing.Title = place.Title
	existing.Description = place.Description
	s.places[place.ID] = existing
	return nil
}

func (s *Store) DeletePlace(_ context.Context, place *models.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailDeletePlace != nil {
		return s.FailDeletePlace
	}
	if _, ok := s.places[place.ID]; !ok {
		return store.ErrNotFound
	}
	delete(s.places, place.ID)
	if creator, ok := s.users[place.Creator]; ok {
		kept := make([]string, 0, len(creator.PlaceIDs))
		for _, id := range creator.PlaceIDs {
			if id != place.ID {
				kept = append(kept, id)
			}
		}
		creator.PlaceIDs = kept
		s.users[creator.ID] = creator
	}
	return nil
}

// PlaceCount reports how many places the store holds.
func (s *Store) PlaceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.places)
}

// UserPlaceIDs returns the place set recorded on a user, or nil when the user
// does not exist.
func (s *Store) UserPlaceIDs(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return append([]string(nil), u.PlaceIDs...)
}
