package groups

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

type newGroup struct {
	Name string `validate:"required"`
}

// GroupDetail is a group together with its member list.
type GroupDetail struct {
	models.Group
	Members []models.Member `json:"members"`
}

// Ledger owns groups and the membership relation.
type Ledger struct {
	store store.Store
	log   *zap.Logger
}

// NewLedger creates a new membership ledger
func NewLedger(s store.Store, log *zap.Logger) *Ledger {
	return &Ledger{store: s, log: log}
}

// CreateGroup creates a group with its creator as the first member.
// Both rows are written in one transaction, so a group is never visible without its creator.
func (l *Ledger) CreateGroup(ctx context.Context, name string, creatorID uint) (*GroupDetail, error) {
	if err := validate.Struct(newGroup{Name: name}); err != nil {
		return nil, apperr.Validation("Group name cannot be empty")
	}

	var groupID uint
	err := l.store.Transaction(ctx, func(tx store.Store) error {
		group := &models.Group{Name: name, CreatedBy: creatorID}
		if err := tx.Groups().Create(ctx, group); err != nil {
			return err
		}
		groupID = group.ID

		return tx.Memberships().Create(ctx, &models.GroupMembership{
			GroupID: group.ID,
			UserID:  creatorID,
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrReference) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("create group: %w", err)
	}

	l.log.Info("group created", zap.Uint("group_id", groupID), zap.Uint("created_by", creatorID))

	detail, err := l.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("create group: group %d missing after commit", groupID)
	}
	return detail, nil
}

// GetGroup returns a group with its members in join order, or nil if it does not exist.
// The two reads are not isolated from concurrent joins.
func (l *Ledger) GetGroup(ctx context.Context, id uint) (*GroupDetail, error) {
	group, err := l.store.Groups().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if group == nil {
		return nil, nil
	}

	members, err := l.Members(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GroupDetail{Group: *group, Members: members}, nil
}

// ListGroups returns all groups newest first, without members.
func (l *Ledger) ListGroups(ctx context.Context) ([]models.Group, error) {
	return l.store.Groups().List(ctx)
}

// Members returns the members of a group in join order.
func (l *Ledger) Members(ctx context.Context, groupID uint) ([]models.Member, error) {
	members, err := l.store.Memberships().ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// AddMember adds a user to a group. It reports false, without writing,
// when the user already belongs to the group.
func (l *Ledger) AddMember(ctx context.Context, groupID, userID uint) (bool, error) {
	group, err := l.store.Groups().FindByID(ctx, groupID)
	if err != nil {
		return false, fmt.Errorf("add member: %w", err)
	}
	if group == nil {
		return false, apperr.NotFound("Group not found")
	}

	exists, err := l.store.Memberships().Exists(ctx, groupID, userID)
	if err != nil {
		return false, fmt.Errorf("add member: %w", err)
	}
	if exists {
		return false, nil
	}

	err = l.store.Memberships().Create(ctx, &models.GroupMembership{GroupID: groupID, UserID: userID})
	switch {
	case errors.Is(err, store.ErrDuplicate):
		// Lost a race with a concurrent join of the same user
		return false, nil
	case errors.Is(err, store.ErrReference):
		return false, apperr.NotFound("User not found")
	case err != nil:
		return false, fmt.Errorf("add member: %w", err)
	}

	l.log.Info("member added", zap.Uint("group_id", groupID), zap.Uint("user_id", userID))
	return true, nil
}

// IsMember reports whether the user belongs to the group.
// Unknown groups and users are simply not members.
func (l *Ledger) IsMember(ctx context.Context, groupID, userID uint) (bool, error) {
	return l.store.Memberships().Exists(ctx, groupID, userID)
}

// GroupExists reports whether a group with the given id exists.
func (l *Ledger) GroupExists(ctx context.Context, groupID uint) (bool, error) {
	group, err := l.store.Groups().FindByID(ctx, groupID)
	if err != nil {
		return false, err
	}
	return group != nil, nil
}
