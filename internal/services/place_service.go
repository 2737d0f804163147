package services

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
	"github.com/vivekmitra98/shareplaces-backend/internal/store"
)

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	ResolveAddress(ctx context.Context, address string) (models.Location, error)
}

type PlaceService struct {
	store store.Store
	geo   Geocoder
	log   zerolog.Logger
}

func NewPlaceService(st store.Store, geo Geocoder, log zerolog.Logger) *PlaceService {
	return &PlaceService{store: st, geo: geo, log: log}
}

func (s *PlaceService) Get(ctx context.Context, id string) (*models.Place, error) {
	place, err := s.store.FindPlace(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, models.ErrPlaceNotFound
		}
		s.log.Error().Err(err).Str("place", id).Msg("find place failed")
		return nil, models.ErrFindPlaceFailed
	}
	return place, nil
}

// ListByUser returns the places a user created. No places is a not-found
// condition, not an empty success.
func (s *PlaceService) ListByUser(ctx context.Context, userID string) ([]models.Place, error) {
	places, err := s.store.FindPlacesByUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user", userID).Msg("find places failed")
		return nil, models.ErrFindPlacesFailed
	}
	if len(places) == 0 {
		return nil, models.ErrNoPlacesForUser
	}
	return places, nil
}

// Create geocodes the address, checks that the creator exists and then inserts
// the place and links it to the creator in one store transaction.
func (s *PlaceService) Create(ctx context.Context, req models.CreatePlaceRequest, imagePath, creatorID string) (*models.Place, error) {
	location, err := s.geo.ResolveAddress(ctx, req.Address)
	if err != nil {
		var httpErr *models.HTTPError
		if errors.As(err, &httpErr) {
			return nil, httpErr
		}
		s.log.Error().Err(err).Str("address", req.Address).Msg("geocoding failed")
		return nil, models.ErrPlaceCreateFailed
	}

	if _, err := s.store.FindUserByID(ctx, creatorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, models.ErrCreatorNotFound
		}
		s.log.Error().Err(err).Str("user", creatorID).Msg("creator lookup failed")
		return nil, models.ErrPlaceCreateFailed
	}

	place := &models.Place{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Creator:     creatorID,
		Location:    location,
		Image:       imagePath,
	}

	if err := s.store.CreatePlace(ctx, place); err != nil {
		s.log.Error().Err(err).Str("user", creatorID).Msg("place insert failed")
		return nil, models.ErrPlaceCreateFailed
	}

	return place, nil
}

// Update mutates title and description. Only the creator may update a place.
func (s *PlaceService) Update(ctx context.Context, id, requesterID string, req models.UpdatePlaceRequest) (*models.Place, error) {
	place, err := s.store.FindPlace(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("place", id).Msg("place lookup failed")
		return nil, models.ErrPlaceUpdateFailed
	}

	if place.Creator != requesterID {
		return nil, models.ErrNotOwner
	}

	place.Title = req.Title
	place.Description = req.Description

	if err := s.store.UpdatePlace(ctx, place); err != nil {
		s.log.Error().Err(err).Str("place", id).Msg("place update failed")
		return nil, models.ErrPlaceUpdateFailed
	}

	return place, nil
}

// Delete removes a place and its link on the creator in one store
// transaction, then unlinks the image file. A failed unlink is logged and
// otherwise ignored.
func (s *PlaceService) Delete(ctx context.Context, id, requesterID string) (*models.Place, error) {
	place, err := s.store.FindPlace(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, models.ErrPlaceNotFound
		}
		s.log.Error().Err(err).Str("place", id).Msg("place lookup failed")
		return nil, models.ErrPlaceDeleteFailed
	}

	if place.Creator != requesterID {
		return nil, models.ErrNotOwner
	}

	if err := s.store.DeletePlace(ctx, place); err != nil {
		s.log.Error().Err(err).Str("place", id).Msg("place delete failed")
		return nil, models.ErrPlaceDeleteFailed
	}

	if place.Image != "" {
		if err := os.Remove(place.Image); err != nil {
			s.log.Warn().Err(err).Str("image", place.Image).Msg("could not remove image file")
		}
	}

	return place, nil
}
