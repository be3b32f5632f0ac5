package messages

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mikepea/chatter/pkg/chatter/apperr"
	"github.com/mikepea/chatter/pkg/chatter/models"
	"github.com/mikepea/chatter/pkg/chatter/store"
	"go.uber.org/zap"
)

var validate = validator.New()

type newMessage struct {
	Content string `validate:"required"`
}

// ListOptions windows a group's message history.
// A Limit <= 0 returns everything; an Offset <= 0 starts at the newest message.
type ListOptions struct {
	Limit  int
	Offset int
}

// Ledger appends and reads group messages. It does not check membership;
// callers authorize first.
type Ledger struct {
	store store.Store
	log   *zap.Logger
}

// NewLedger creates a new message ledger
func NewLedger(s store.Store, log *zap.Logger) *Ledger {
	return &Ledger{store: s, log: log}
}

// PostMessage appends a message to a group and returns it with the author's username.
func (l *Ledger) PostMessage(ctx context.Context, groupID, authorID uint, content string) (*models.AuthoredMessage, error) {
	if err := validate.Struct(newMessage{Content: content}); err != nil {
		return nil, apperr.Validation("Message content is required")
	}

	msg := &models.Message{GroupID: groupID, UserID: authorID, Content: content}
	if err := l.store.Messages().Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}

	authored, err := l.store.Messages().FindByID(ctx, msg.ID)
	if err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	if authored == nil {
		return nil, fmt.Errorf("post message: message %d missing after insert", msg.ID)
	}

	l.log.Debug("message posted",
		zap.Uint("message_id", msg.ID), zap.Uint("group_id", groupID), zap.Uint("user_id", authorID))
	return authored, nil
}

// ListByGroup returns a group's messages newest first. Unknown groups yield an empty list.
func (l *Ledger) ListByGroup(ctx context.Context, groupID uint, opts ListOptions) ([]models.AuthoredMessage, error) {
	msgs, err := l.store.Messages().ListByGroup(ctx, groupID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// GetByID returns a single message, or nil when it does not exist.
func (l *Ledger) GetByID(ctx context.Context, id uint) (*models.AuthoredMessage, error) {
	msg, err := l.store.Messages().FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return msg, nil
}
