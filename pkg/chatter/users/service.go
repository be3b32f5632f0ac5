package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mikepea/chatter/pkg/chatter/apperr"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"github.com/mikepea/chatter/pkg/chatter/store"
	"go.uber.org/zap"
)

var validate = validator.New()

type registration struct {
	Username string `validate:"required"`
}

// Service owns user records and the bearer tokens issued to them.
type Service struct {
	store store.Store
	log   *zap.Logger
}

// NewService creates a new user service
func NewService(s store.Store, log *zap.Logger) *Service {
	return &Service{store: s, log: log}
}

// Register creates a user with a freshly issued token.
// The lookup before the insert only gives duplicate usernames a friendlier path;
// the unique index on users.username decides concurrent registrations.
func (s *Service) Register(ctx context.Context, username string) (*models.User, error) {
	if err := validate.Struct(registration{Username: username}); err != nil {
		return nil, apperr.Validation("Username is required")
	}

	existing, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("Username already exists")
	}

	token, err := GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	user := &models.User{Username: username, Token: token}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("Username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// GetByID returns the user with the given id, or nil if there is none.
func (s *Service) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.store.Users().FindByID(ctx, id)
}

// GetByUsername returns the user with exactly this username, or nil.
func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.store.Users().FindByUsername(ctx, username)
}

// GetByToken returns the user a token was issued to, or nil for an empty or unknown token.
func (s *Service) GetByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	return s.store.Users().FindByToken(ctx, token)
}

// ListAll returns every user, newest first.
func (s *Service) ListAll(ctx context.Context) ([]models.User, error) {
	return s.store.Users().List(ctx)
}
