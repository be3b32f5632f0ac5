package gormstore

import (
	"context"

	"github.com/mikepea/chatter/pkg/chatter/models"
	"gorm.io/gorm"
)

type groupRepository struct {
	db *gorm.DB
}

func (r groupRepository) Create(ctx context.Context, group *models.Group) error {
	return translate(r.db.WithContext(ctx).Create(group).Error)
}

func (r groupRepository) FindByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).First(&group, id).Error
	return notFoundAsNil(&group, err)
}

func (r groupRepository) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

type membershipRepository struct {
	db *gorm.DB
}

func (r membershipRepository) Create(ctx context.Context, membership *models.GroupMembership) error {
	return translate(r.db.WithContext(ctx).Create(membership).Error)
}

func (r membershipRepository) Exists(ctx context.Context, groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r membershipRepository) ListMembers(ctx context.Context, groupID uint) ([]models.Member, error) {
	members := []models.Member{}
	err := r.db.WithContext(ctx).Table("group_members").
		Select("users.id AS id, users.username AS username, group_members.joined_at AS joined_at").
		Joins("JOIN users ON users.id = group_members.user_id").
		Where("group_members.group_id = ?", groupID).
		Order("group_members.joined_at ASC").
		Order("group_members.user_id ASC").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
