package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserService handles accounts and password checks.
type UserService struct {
	repo *repository.UserRepository
	cost int
	now  func() time.Time
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo, cost: bcrypt.DefaultCost, now: time.Now}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	taken, err := s.repo.UsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := model.User{Username: username, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate returns the user when the password matches.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.repo.TouchLogin(ctx, user, s.now().UTC()); err != nil {
		return nil, err
	}
	return user, nil
}

// LinkTelegram stores the chat that receives digests; nil unlinks it.
func (s *UserService) LinkTelegram(ctx context.Context, user *model.User, chatID *int64) error {
	return s.repo.SetTelegramChatID(ctx, user, chatID)
}

// Delete removes the named account with all of its tasks.
func (s *UserService) Delete(ctx context.Context, username string) error {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, user.ID)
}
