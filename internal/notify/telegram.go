package notify

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dayplan-tracker/internal/repository"
)

// TelegramNotifier delivers events as Telegram messages. It is
// send-only: recipients link their chat once (TelegramChatID on the
// user record) and the service never polls for updates.
type TelegramNotifier struct {
	api   *tgbotapi.BotAPI
	users *repository.UserRepository
}

func NewTelegramNotifier(token string, users *repository.UserRepository) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] telegram notifier authorized on account %s", api.Self.UserName)

	return &TelegramNotifier{api: api, users: users}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, ev Event) error {
	recipient, err := n.users.FindByID(ctx, ev.RecipientID)
	if err != nil {
		return fmt.Errorf("resolve recipient %d: %w", ev.RecipientID, err)
	}
	if recipient.TelegramChatID == 0 {
		// No linked chat; the persisted notification still reaches them
		// through the dashboard.
		return nil
	}

	msg := tgbotapi.NewMessage(recipient.TelegramChatID, messageFor(ev))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send %s to chat %d: %w", ev.Kind, recipient.TelegramChatID, err)
	}
	return nil
}
