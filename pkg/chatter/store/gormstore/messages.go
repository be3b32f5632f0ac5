package gormstore

import (
	"context"

	"github.com/mikepea/chatter/pkg/chatter/models"
	"gorm.io/gorm"
)

const authoredColumns = "messages.id AS id, messages.group_id AS group_id, messages.user_id AS user_id, " +
	"users.username AS username, messages.content AS content, messages.created_at AS created_at"

type messageRepository struct {
	db *gorm.DB
}

func (r messageRepository) Create(ctx context.Context, message *models.Message) error {
	return translate(r.db.WithContext(ctx).Create(message).Error)
}

func (r messageRepository) authored(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("messages").
		Select(authoredColumns).
		Joins("JOIN users ON users.id = messages.user_id")
}

func (r messageRepository) FindByID(ctx context.Context, id uint) (*models.AuthoredMessage, error) {
	var messages []models.AuthoredMessage
	if err := r.authored(ctx).Where("messages.id = ?", id).Limit(1).Scan(&messages).Error; err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

func (r messageRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]models.AuthoredMessage, error) {
	query := r.authored(ctx).
		Where("messages.group_id = ?", groupID).
		Order("messages.created_at DESC").
		Order("messages.id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	messages := []models.AuthoredMessage{}
	if err := query.Scan(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
