package models

import "net/http"

// HTTPError is a domain error with a fixed status code and user-facing
// message. Services translate every failure mode they own into one of the
// variants below; the central error handler renders them as {"message": ...}.
// Internal detail never rides on an HTTPError.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// The closed error set. Messages are part of the API contract, byte for byte
// (including the double space in ErrCreatorNotFound and the "updatation"
// spelling).
var (
	ErrInvalidInput = NewHTTPError(http.StatusUnprocessableEntity, "Invalid inputs! Please check your data.")
	ErrAuthFailed   = NewHTTPError(http.StatusForbidden, "Authentication failed!")
	ErrNotOwner     = NewHTTPError(http.StatusUnauthorized, "You are not authorized for this action.")

	ErrPlaceNotFound    = NewHTTPError(http.StatusNotFound, "No place found for the provided id.")
	ErrNoPlacesForUser  = NewHTTPError(http.StatusNotFound, "No places found for the provided user id.")
	ErrNoUsers          = NewHTTPError(http.StatusNotFound, "No users found in the database.")
	ErrCreatorNotFound  = NewHTTPError(http.StatusNotFound, "Could not create place!  There is no user with the provided user id.")
	ErrRouteNotFound    = NewHTTPError(http.StatusNotFound, "Could not find this route.")
	ErrAddressNotFound  = NewHTTPError(http.StatusUnprocessableEntity, "Could not find location for provided address.")
	ErrEmailExists      = NewHTTPError(http.StatusUnprocessableEntity, "E-Mail already exists! Please login or use some other e-mail address.")
	ErrBadCredentials   = NewHTTPError(http.StatusForbidden, "Invalid credentials! Could not log in.")
	ErrInvalidImageType = NewHTTPError(http.StatusUnprocessableEntity, "Invalid mime type!")
	ErrImageTooLarge    = NewHTTPError(http.StatusUnprocessableEntity, "Image exceeds the upload size limit.")
	ErrImageRequired    = NewHTTPError(http.StatusUnprocessableEntity, "An image file is required.")

	ErrSignupFailed      = NewHTTPError(http.StatusInternalServerError, "Signing up failed! Please try again.")
	ErrLoginFailed       = NewHTTPError(http.StatusInternalServerError, "Logging in failed! Please try again.")
	ErrPlaceCreateFailed = NewHTTPError(http.StatusInternalServerError, "Place creation failed! Please try again.")
	ErrPlaceUpdateFailed = NewHTTPError(http.StatusInternalServerError, "Place updatation failed! Please try again.")
	ErrPlaceDeleteFailed = NewHTTPError(http.StatusInternalServerError, "Place deletion failed! Please try again.")
	ErrFindPlaceFailed   = NewHTTPError(http.StatusInternalServerError, "Something went wrong! Could not find place. Please try again.")
	ErrFindPlacesFailed  = NewHTTPError(http.StatusInternalServerError, "Something went wrong! Could not find places. Please try again.")
	ErrFindUsersFailed   = NewHTTPError(http.StatusInternalServerError, "Something went wrong! Could not find users. Please try again.")
	ErrInternal          = NewHTTPError(http.StatusInternalServerError, "Something went wrong!")
)
