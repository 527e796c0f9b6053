package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"minimart/models"
)

// Users holds the queries the authentication handlers need.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (u *Users) Create(ctx context.Context, user *models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

func (u *Users) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return u.findOne(ctx, "id = ?", id)
}

func (u *Users) FindByName(ctx context.Context, name string) (*models.User, error) {
	return u.findOne(ctx, "name = ?", name)
}

func (u *Users) FindByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return u.findOne(ctx, "refresh_token = ?", token)
}

// SaveRefreshToken stores the issued refresh token on the user row; pass
// an empty token to revoke it on logout.
func (u *Users) SaveRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	return u.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("refresh_token", token).Error
}

func (u *Users) findOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
