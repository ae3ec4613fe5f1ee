package pkg

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"sky-scheduling/logger"
	"sky-scheduling/models"
)

// ErrLoginFailed covers both an unknown user name and a wrong password
var ErrLoginFailed = errors.New("invalid username or password")

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// LoginService checks credentials against the logins table
type LoginService struct {
	users *UserManager
}

func NewLoginService(users *UserManager) *LoginService {
	return &LoginService{users: users}
}

// Login returns the account for userName if password matches its hash
func (s *LoginService) Login(ctx context.Context, userName, password string) (*models.User, error) {
	user, err := s.users.GetRow(ctx, userName)
	if IsNotFound(err) {
		logger.Info.Printf("Failed login attempt for unknown user: %s", userName)
		return nil, ErrLoginFailed
	}
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(password, user.HashPass) {
		logger.Info.Printf("Failed login attempt for user: %s", userName)
		return nil, ErrLoginFailed
	}

	logger.Info.Printf("User logged in: %s", userName)
	return user, nil
}

// AddUser hashes password and stores a new account
func (s *LoginService) AddUser(ctx context.Context, userName, password string, flags models.AccessFlag) (*models.User, error) {
	if userName == "" {
		return nil, errors.New("user name is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{UserName: userName, HashPass: hash, AccessFlags: flags}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword re-hashes the password of an existing account
func (s *LoginService) ChangePassword(ctx context.Context, userName, password string) error {
	user, err := s.users.GetRow(ctx, userName)
	if err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.HashPass = hash
	return s.users.Update(ctx, user)
}
