package service

import (
	"errors"
	"strings"
	"time"

	"go-inventory-billing/internal/model"
	"go-inventory-billing/internal/repository"
	"go-inventory-billing/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type SignupInput struct {
	Email           string `json:"email" validate:"required,email,max=255"`
	Username        string `json:"username" validate:"required,max=150"`
	FullName        string `json:"full_name" validate:"max=255"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	Signup(in SignupInput) (*model.UserResponse, error)
	Login(email, password string) (*LoginResponse, error)
	// Logout rotates the token version so the current token stops working.
	Logout(userID uuid.UUID) error
	Me(userID uuid.UUID) (*model.UserResponse, error)
	ChangePassword(userID uuid.UUID, in ChangePasswordInput) error
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type authService struct {
	users  repository.UserRepository
	tokens *jwt.Manager
	log    *logrus.Logger
}

func NewAuthService(users repository.UserRepository, tokens *jwt.Manager, log *logrus.Logger) AuthService {
	return &authService{users: users, tokens: tokens, log: log}
}

func (s *authService) Signup(in SignupInput) (*model.UserResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if err := validate(&in); err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    in.Email,
		Username: in.Username,
		FullName: in.FullName,
		IsActive: true,
	}
	user.CreatedBy = "signup"
	user.UpdatedBy = "signup"
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}

	if err := s.users.Create(user); err != nil {
		err = translate(err, ErrUserNotFound)
		logUnexpected(s.log, "authService", "Signup", in.Email, err)
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find user by email
	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Single session: a new token version invalidates older tokens
	now := time.Now()
	user.TokenVersion = uuid.New().String()
	user.LastSeenAt = &now
	if err := s.users.Update(user); err != nil {
		logUnexpected(s.log, "authService", "Login", user.ID, err)
		return nil, errors.New("failed to update session")
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.FullName, user.TokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

func (s *authService) Logout(userID uuid.UUID) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return translate(err, ErrUserNotFound)
	}
	user.TokenVersion = uuid.New().String()
	return s.users.Update(user)
}

func (s *authService) Me(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	resp := user.ToResponse()
	return &resp, nil
}

// ChangePassword also rotates the token version, ending every open session.
func (s *authService) ChangePassword(userID uuid.UUID, in ChangePasswordInput) error {
	if err := validate(&in); err != nil {
		return err
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return translate(err, ErrUserNotFound)
	}
	if !user.CheckPassword(in.OldPassword) {
		return ErrWrongPassword
	}
	if err := user.SetPassword(in.NewPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	user.TokenVersion = uuid.New().String()
	return s.users.Update(user)
}
