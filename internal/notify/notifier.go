// Package notify pushes task digests to users over external messengers.
package notify

import (
	"context"
	"log"
	"time"

	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// Sender delivers one formatted message to a chat.
type Sender interface {
	Send(chatID int64, text string) error
}

// Notifier sends digests to every user that linked a chat.
type Notifier struct {
	sender    Sender
	userRepo  *repository.UserRepository
	digestSvc *service.DigestService
	now       func() time.Time
}

func NewNotifier(sender Sender, userRepo *repository.UserRepository, digestSvc *service.DigestService) *Notifier {
	return &Notifier{
		sender:    sender,
		userRepo:  userRepo,
		digestSvc: digestSvc,
		now:       time.Now,
	}
}

// SendDigests sends a summary to every linked user with open tasks and
// returns how many messages went out. A failure for one user is logged and
// the rest are still served.
func (n *Notifier) SendDigests(ctx context.Context) (int, error) {
	users, err := n.userRepo.ListWithTelegram(ctx)
	if err != nil {
		return 0, err
	}
	now := n.now()
	sent := 0
	for _, user := range users {
		select {
		case <-ctx.Done():
			return sent, ctx.Err()
		default:
		}
		if user.TelegramChatID == nil {
			continue
		}
		text, err := n.digestSvc.Summary(ctx, user, now)
		if err != nil {
			log.Printf("[warn] build digest for user %d: %v", user.ID, err)
			continue
		}
		if text == "" {
			continue
		}
		if err := n.sender.Send(*user.TelegramChatID, text); err != nil {
			log.Printf("[warn] send digest to user %d: %v", user.ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}
