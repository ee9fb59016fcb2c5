package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService issues and resolves login sessions.
type SessionService struct {
	repo *repository.SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewSessionService(repo *repository.SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{repo: repo, ttl: ttl, now: time.Now}
}

// Start opens a session for user.
func (s *SessionService) Start(ctx context.Context, user *model.User) (*model.Session, error) {
	now := s.now().UTC()
	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Resolve returns the user behind an unexpired session id.
func (s *SessionService) Resolve(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}
	session, err := s.repo.FindActive(ctx, id, s.now().UTC())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session.User == nil {
		return nil, ErrSessionNotFound
	}
	return session.User, nil
}

// End deletes the session; unknown ids are ignored.
func (s *SessionService) End(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Purge removes expired sessions and reports how many were dropped.
func (s *SessionService) Purge(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now().UTC())
}
