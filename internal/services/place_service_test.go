package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
	"github.com/vivekmitra98/shareplaces-backend/internal/store/storetest"
)

type stubGeocoder struct {
	loc models.Location
	err error
}

func (g stubGeocoder) ResolveAddress(context.Context, string) (models.Location, error) {
	return g.loc, g.err
}

var parisLocation = models.Location{Lat: 48.8584, Lng: 2.2945}

func seedUser(t *testing.T, st *storetest.Store, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Max", Email: email, PasswordHash: "digest", Image: "img.png"}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

func seedPlace(t *testing.T, st *storetest.Store, creatorID string) *models.Place {
	t.Helper()
	place := &models.Place{
		Title:       "Eiffel Tower",
		Description: "A landmark",
		Address:     "Paris, France",
		Creator:     creatorID,
		Location:    parisLocation,
		Image:       "img.jpg",
	}
	require.NoError(t, st.CreatePlace(context.Background(), place))
	return place
}

func TestCreatePlace(t *testing.T) {
	st := storetest.New()
	user := seedUser(t, st, "max@example.com")
	places := NewPlaceService(st, stubGeocoder{loc: parisLocation}, zerolog.Nop())

	req := models.CreatePlaceRequest{Title: "Eiffel Tower", Description: "A landmark", Address: "Paris, France"}
	place, err := places.Create(context.Background(), req, "uploads/images/x.jpg", user.ID)
	require.NoError(t, err)
	assert.Equal(t, parisLocation, place.Location)
	assert.Equal(t, user.ID, place.Creator)

	assert.Equal(t, []string{place.ID}, st.UserPlaceIDs(user.ID))
}

func TestCreatePlaceUnknownCreator(t *testing.T) {
	st := storetest.New()
	places := NewPlaceService(st, stubGeocoder{loc: parisLocation}, zerolog.Nop())

	req := models.CreatePlaceRequest{Title: "Eiffel Tower", Description: "A landmark", Address: "Paris, France"}
	_, err := places.Create(context.Background(), req, "img.jpg", "no-such-user")
	assert.ErrorIs(t, err, models.ErrCreatorNotFound)
	assert.Zero(t, st.PlaceCount(), "no place row may survive a failed create")
}

func TestCreatePlaceGeocodeFailure(t *testing.T) {
	st := storetest.New()
	user := seedUser(t, st, "max@example.com")
	places := NewPlaceService(st, stubGeocoder{err: models.ErrAddressNotFound}, zerolog.Nop())

	req := models.CreatePlaceRequest{Title: "Eiffel Tower", Description: "A landmark", Address: "Nowhere"}
	_, err := places.Create(context.Background(), req, "img.jpg", user.ID)
	assert.ErrorIs(t, err, models.ErrAddressNotFound)
	assert.Zero(t, st.PlaceCount())
}

func TestCreatePlaceTransactionFailure(t *testing.T) {
	st := storetest.New()
	user := seedUser(t, st, "max@example.com")
	st.FailCreatePlace = errors.New("tx aborted")
	places := NewPlaceService(st, stubGeocoder{loc: parisLocation}, zerolog.Nop())

	req := models.CreatePlaceRequest{Title: "Eiffel Tower", Description: "A landmark", Address: "Paris, France"}
	_, err := places.Create(context.Background(), req, "img.jpg", user.ID)
	assert.ErrorIs(t, err, models.ErrPlaceCreateFailed)

	// Both sides of the link stay untouched.
	assert.Zero(t, st.PlaceCount())
	assert.Empty(t, st.UserPlaceIDs(user.ID))
}

func TestUpdatePlace(t *testing.T) {
	st := storetest.New()
	user := seedUser(t, st, "max@example.com")
	place := seedPlace(t, st, user.ID)
	places := NewPlaceService(st, stubGeocoder{loc: parisLocation}, zerolog.Nop())

	req := models.UpdatePlaceRequest{Title: "New Title", Description: "New description"}
	updated, err := places.Update(context.Background(), place.ID, user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "New description", updated.Description)
	// Address and location are immutable through update.
	assert.Equal(t, place.Address, updated.Address)
	assert.Equal(t, place.Location, updated.Location)
}

func TestUpdatePlaceStoreFailure(t *testing.T) {
	st := storetest.New()
	user := seedUser(t, st, "max@example.com")
	place := seedPlace(t, st, user.ID)
	st.FailUpdatePlace = errors.New("connection reset")
	places := NewPlaceService(st, stubGeocoder{loc: parisLocation}, zerolog.Nop())

	req := models.UpdatePlaceRequest{Title: "New Title", Description: "New description"}
	_, err := places.Update(context.Background(), place.ID, user.ID, req)
	assert.ErrorIs(t, err, models.ErrPlaceUpdateFailed)
	assert.EqualError(t, err, "Place updatation failed! Please try again.")
}

func TestUpdatePlaceNotOwner(t *testing.T) {
	st := storetest.New()
	owner := seedUser(t, st, "max@example.com")
	other := seedUser(t, st, "other@example.com")
	place := seedPlace(t, st, owner.ID)
	places := NewPlaceService(st, stubGeocoder{loc: parisLocation}, zerolog.Nop())

	req := models.UpdatePlaceRequest{Title: "Hijacked", Description: "Hijacked too"}
	_, err := places.Update(context.Background(), place.ID, other.ID, req)
	assert.ErrorIs(t, err, models.ErrNotOwner)

	kept, err := st.FindPlace(context.Background(), place.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eiffel Tower", kept.Title)
}

func TestDeletePlace(t *testing.T) {
	st := storetest.New()
	user := seedUser(t, st, "max@example.com")

	dir := t.TempDir()
	imagePath := filepath.Join(dir, "place.jpg")
	require.NoError(t, os.WriteFile(imagePath, []byte("jpeg bytes"), 0644))

	place := &models.Place{
		Title: "Eiffel Tower", Description: "A landmark", Address: "Paris, France",
		Creator: user.ID, Location: parisLocation, Image: imagePath,
	}
	require.NoError(t, st.CreatePlace(context.Background(), place))

	places := NewPlaceService(st, stubGeocoder{loc: parisLocation}, zerolog.Nop())
	deleted, err := places.Delete(context.Background(), place.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, place.ID, deleted.ID)

	assert.Zero(t, st.PlaceCount())
	assert.Empty(t, st.UserPlaceIDs(user.ID))
	assert.NoFileExists(t, imagePath, "image file should be unlinked")
}

func TestDeletePlaceNotOwner(t *testing.T) {
	st := storetest.New()
	owner := seedUser(t, st, "max@example.com")
	other := seedUser(t, st, "other@example.com")
	place := seedPlace(t, st, owner.ID)
	places := NewPlaceService(st, stubGeocoder{loc: parisLocation}, zerolog.Nop())

	_, err := places.Delete(context.Background(), place.ID, other.ID)
	assert.ErrorIs(t, err, models.ErrNotOwner)

	assert.Equal(t, 1, st.PlaceCount())
	assert.Equal(t, []string{place.ID}, st.UserPlaceIDs(owner.ID))
}

func TestDeletePlaceTransactionFailure(t *testing.T) {
	st := storetest.New()
	user := seedUser(t, st, "max@example.com")
	place := seedPlace(t, st, user.ID)
	st.FailDeletePlace = errors.New("tx aborted")
	places := NewPlaceService(st, stubGeocoder{loc: parisLocation}, zerolog.Nop())

	_, err := places.Delete(context.Background(), place.ID, user.ID)
	assert.ErrorIs(t, err, models.ErrPlaceDeleteFailed)

	assert.Equal(t, 1, st.PlaceCount())
	assert.Equal(t, []string{place.ID}, st.UserPlaceIDs(user.ID))
}

func TestDeletePlaceMissing(t *testing.T) {
	st := storetest.New()
	user := seedUser(t, st, "max@example.com")
	places := NewPlaceService(st, stubGeocoder{loc: parisLocation}, zerolog.Nop())

	_, err := places.Delete(context.Background(), "507f1f77bcf86cd799439011", user.ID)
	assert.ErrorIs(t, err, models.ErrPlaceNotFound)
}

func TestGetPlaceMissing(t *testing.T) {
	places := NewPlaceService(storetest.New(), stubGeocoder{}, zerolog.Nop())

	_, err := places.Get(context.Background(), "507f1f77bcf86cd799439011")
	assert.ErrorIs(t, err, models.ErrPlaceNotFound)
}

func TestListByUserEmptyIsNotFound(t *testing.T) {
	st := storetest.New()
	user := seedUser(t, st, "max@example.com")
	places := NewPlaceService(st, stubGeocoder{}, zerolog.Nop())

	_, err := places.ListByUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, models.ErrNoPlacesForUser)

	place := seedPlace(t, st, user.ID)
	found, err := places.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, place.ID, found[0].ID)
}
