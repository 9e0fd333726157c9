package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"blogaulas/apperr"
	"blogaulas/export"
	"blogaulas/models"
	"blogaulas/policy"
)

const userNotFound = "user not found"

type UserService struct {
	users  UserStore
	policy *policy.Policy
}

func NewUserService(users UserStore, pol *policy.Policy) *UserService {
	return &UserService{users: users, policy: pol}
}

// GetUsers lists users; an empty role lists everyone.
func (s *UserService) GetUsers(ctx context.Context, caller *models.Identity, role models.Role) ([]models.User, error) {
	if err := authorize(s.policy, caller, policy.ListUsers, policy.Resource{}, userNotFound); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx, role)
	if err != nil {
		return nil, storeErr(err, "list users", userNotFound)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, caller *models.Identity, id uint) (*models.User, error) {
	if err := authorize(s.policy, caller, policy.ReadUser, policy.Resource{}, userNotFound); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "get user", userNotFound)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, caller *models.Identity, req *models.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || req.Role == "" {
		return nil, apperr.New(apperr.Validation, "username, password and role are required")
	}
	if !req.Role.Valid() {
		return nil, apperr.E(apperr.Validation, "invalid role %q", req.Role)
	}
	if err := authorize(s.policy, caller, policy.CreateUser, policy.Resource{}, userNotFound); err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Role: req.Role}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "hash password", err)
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.E(apperr.Conflict, "username %q is taken", username)
		}
		return nil, storeErr(err, "create user", userNotFound)
	}
	return user, nil
}

// UpdateUser changes username and/or password. The role never changes here.
func (s *UserService) UpdateUser(ctx context.Context, caller *models.Identity, id uint, req *models.UpdateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" && req.Password == "" {
		return nil, apperr.New(apperr.Validation, "username or password is required")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "find user", userNotFound)
	}
	if err := authorize(s.policy, caller, policy.UpdateUser, policy.Resource{User: user}, userNotFound); err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "hash password", err)
		}
	}
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.E(apperr.Conflict, "username %q is taken", username)
		}
		return nil, storeErr(err, "update user", userNotFound)
	}
	return user, nil
}

// DeleteUser refuses admin accounts by reporting them as missing.
func (s *UserService) DeleteUser(ctx context.Context, caller *models.Identity, id uint) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, "find user", userNotFound)
	}
	if err := authorize(s.policy, caller, policy.DeleteUser, policy.Resource{User: user}, userNotFound); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return storeErr(err, "delete user", userNotFound)
	}
	return nil
}

// ExportUsers renders teachers and students as an xlsx workbook.
func (s *UserService) ExportUsers(ctx context.Context, caller *models.Identity) ([]byte, error) {
	teachers, err := s.GetUsers(ctx, caller, models.RoleTeacher)
	if err != nil {
		return nil, err
	}
	students, err := s.GetUsers(ctx, caller, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	f, err := export.NewUsersWorkbook([]export.SheetSpec{
		export.UserSheet("Teachers", teachers),
		export.UserSheet("Students", students),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "build users workbook", err)
	}
	defer f.Close()

	data, err := export.Bytes(f)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "render users workbook", err)
	}
	return data, nil
}
