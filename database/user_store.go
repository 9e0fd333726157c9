package database

import (
	"context"

	"gorm.io/gorm"

	"blogaulas/models"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error, "create user")
}

// List returns every user when role is empty.
func (s *UserStore) List(ctx context.Context, role models.Role) ([]models.User, error) {
	users := []models.User{}
	q := s.db.WithContext(ctx).Order("id ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Find(&users).Error
	return users, translate(err, "list users")
}

func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "find user")
	}
	return &user, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "find user by username")
	}
	return &user, nil
}

func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Model(user).
		Select("username", "password_hash", "updated_at").
		Updates(user).Error
	return translate(err, "update user")
}

// Delete removes the user only when its role is deletable; otherwise it
// reports gorm.ErrRecordNotFound, as for a missing id.
func (s *UserStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND role IN ?", id, []models.Role{models.RoleTeacher, models.RoleStudent}).
		Delete(&models.User{})
	if res.Error != nil {
		return translate(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "delete user")
	}
	return nil
}
