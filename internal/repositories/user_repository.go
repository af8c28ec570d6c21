package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "review-pool.com/review-pool/internal/errors"
	model "review-pool.com/review-pool/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindOrCreate(ctx context.Context, address string) (*model.User, error) {
	user, err := r.FindByAddress(ctx, address)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrRequesterNotFound) {
		return nil, err
	}

	user = &model.User{ID: uuid.NewString(), Address: address}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return r.FindByAddress(ctx, address)
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindByAddress(ctx context.Context, address string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "address = ?", address).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrRequesterNotFound
		}
		return nil, err
	}
	return &user, nil
}
