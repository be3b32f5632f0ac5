// Package gormstore implements store.Store on top of gorm, for any dialect
// gorm supports (SQLite and PostgreSQL are wired in package database).
package gormstore

import (
	"context"
	"errors"
	"strings"

	"github.com/mikepea/chatter/pkg/chatter/store"
	"gorm.io/gorm"
)

// Store is a store.Store backed by a gorm handle.
type Store struct {
	db *gorm.DB
}

// New wraps db. The handle is expected to have been opened with TranslateError enabled.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() store.UserRepository             { return userRepository{db: s.db} }
func (s *Store) Groups() store.GroupRepository           { return groupRepository{db: s.db} }
func (s *Store) Memberships() store.MembershipRepository { return membershipRepository{db: s.db} }
func (s *Store) Messages() store.MessageRepository       { return messageRepository{db: s.db} }

// Transaction implements store.Store.
func (s *Store) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// translate maps engine constraint failures onto the store error kinds.
// Drivers that do not implement gorm's error translation are matched by message.
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(store.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.Join(store.ErrReference, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "duplicate key value"):
		return errors.Join(store.ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"), strings.Contains(msg, "violates foreign key constraint"):
		return errors.Join(store.ErrReference, err)
	}
	return err
}

// notFoundAsNil turns gorm's record-not-found into an absent result.
func notFoundAsNil[T any](v *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
