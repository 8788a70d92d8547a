package repository

import (
	"go-inventory-billing/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepo) Create(user *model.User) error {
	return translate(r.db.Create(user).Error)
}

func (r *userRepo) Update(user *model.User) error {
	return translate(r.db.Save(user).Error)
}

func (r *userRepo) UpdateLastSeen(id uuid.UUID) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("last_seen_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
