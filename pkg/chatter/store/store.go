// Package store declares the storage operations the chat components need.
// Adapters for concrete engines live in subpackages.
package store

import (
	"context"
	"errors"

	"github.com/mikepea/chatter/pkg/chatter/models"
)

var (
	// ErrDuplicate is returned when an insert violates a unique or primary key.
	ErrDuplicate = errors.New("duplicate key")
	// ErrReference is returned when an insert references a row that does not exist.
	ErrReference = errors.New("missing referenced row")
)

// UserRepository persists users. Find methods return nil, nil when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByToken(ctx context.Context, token string) (*models.User, error)
	// List returns users newest first.
	List(ctx context.Context) ([]models.User, error)
}

// GroupRepository persists groups.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, id uint) (*models.Group, error)
	// List returns groups newest first.
	List(ctx context.Context) ([]models.Group, error)
}

// MembershipRepository persists the group/user membership relation.
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.GroupMembership) error
	Exists(ctx context.Context, groupID, userID uint) (bool, error)
	// ListMembers returns members in join order.
	ListMembers(ctx context.Context, groupID uint) ([]models.Member, error)
}

// MessageRepository persists messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindByID(ctx context.Context, id uint) (*models.AuthoredMessage, error)
	// ListByGroup returns messages newest first. A limit <= 0 means no limit
	// and an offset <= 0 means no offset.
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]models.AuthoredMessage, error)
}

// Store is the single handle components receive at construction.
type Store interface {
	Users() UserRepository
	Groups() GroupRepository
	Memberships() MembershipRepository
	Messages() MessageRepository

	// Transaction runs fn against a Store bound to one transaction.
	// The transaction commits if fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
