package gormstore

import (
	"context"

	"github.com/mikepea/chatter/pkg/chatter/models"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func (r userRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return notFoundAsNil(&user, err)
}

func (r userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return notFoundAsNil(&user, err)
}

func (r userRepository) FindByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&user).Error
	return notFoundAsNil(&user, err)
}

func (r userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
