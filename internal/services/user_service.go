package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"

	"github.com/rs/zerolog"

	"github.com/vivekmitra98/shareplaces-backend/internal/models"
	"github.com/vivekmitra98/shareplaces-backend/internal/store"
)

type UserService struct {
	store  store.Store
	tokens *TokenService
	log    zerolog.Logger
}

func NewUserService(st store.Store, tokens *TokenService, log zerolog.Logger) *UserService {
	return &UserService{store: st, tokens: tokens, log: log}
}

// hashPassword computes the digest stored for a user's password. It must stay
// an unsalted md5 hex digest: every credential already in the database was
// stored in this format, and verification is a plain digest equality check.
// TODO: migrate stored credentials to a salted hash (bcrypt) with a
// rehash-on-login rollout.
func hashPassword(plaintext string) string {
	sum := md5.Sum([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Signup creates a user and returns a fresh bearer token for it. The image
// has already been written to disk by the handler; imagePath is its location.
func (s *UserService) Signup(ctx context.Context, req models.SignupRequest, imagePath string) (*models.AuthResponse, error) {
	user := &models.User{
		Name:         req.Username,
		Email:        req.Email,
		PasswordHash: hashPassword(req.Password),
		Image:        imagePath,
		PlaceIDs:     []string{},
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, models.ErrEmailExists
		}
		s.log.Error().Err(err).Str("email", req.Email).Msg("signup: user insert failed")
		return nil, models.ErrSignupFailed
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.log.Error().Err(err).Msg("signup: token generation failed")
		return nil, models.ErrSignupFailed
	}

	return &models.AuthResponse{UserID: user.ID, Email: user.Email, Token: token}, nil
}

// Login verifies credentials by digest equality and issues a token.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.store.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, models.ErrBadCredentials
		}
		s.log.Error().Err(err).Msg("login: user lookup failed")
		return nil, models.ErrLoginFailed
	}

	if user.PasswordHash != hashPassword(req.Password) {
		return nil, models.ErrBadCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.log.Error().Err(err).Msg("login: token generation failed")
		return nil, models.ErrLoginFailed
	}

	return &models.AuthResponse{UserID: user.ID, Email: user.Email, Token: token}, nil
}

// List returns every user. An empty database is a not-found condition, not an
// empty success.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list users failed")
		return nil, models.ErrFindUsersFailed
	}
	if len(users) == 0 {
		return nil, models.ErrNoUsers
	}
	return users, nil
}
