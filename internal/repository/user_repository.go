package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"dayplan-tracker/internal/model"
	"dayplan-tracker/internal/planner"
)

// UserRepository handles lookups for trainees and trainers. Account
// provisioning lives in the auth system; this service only reads
// identities, plus Create for seeding and tests.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, planner.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// ListTrainees returns every trainee assigned to the given trainer.
func (r *UserRepository) ListTrainees(ctx context.Context, trainerID uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND trainer_id = ?", model.RoleTrainee, trainerID).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list trainees: %w", err)
	}
	return users, nil
}
