// Package bot sends admin panel changes to a Telegram chat.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts a message to the admin chat for every menu change.
type Notifier struct {
	api    sender
	chatID int64
	log    zerolog.Logger
}

// NewNotifier connects to the Telegram bot API with token.
func NewNotifier(token string, chatID int64, log zerolog.Logger) (*Notifier, error) {
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN not set")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID not set")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newNotifier(api, chatID, log), nil
}

func newNotifier(api sender, chatID int64, log zerolog.Logger) *Notifier {
	return &Notifier{api: api, chatID: chatID, log: log}
}

// NotifyChange sends text to the admin chat. Failures are only logged.
func (n *Notifier) NotifyChange(ctx context.Context, text string) {
	msg := tgbotapi.NewMessage(n.chatID, "🍽 "+text)
	msg.DisableNotification = true
	if _, err := n.api.Send(msg); err != nil {
		n.log.Warn().Err(err).Int64("chat_id", n.chatID).Msg("telegram notify failed")
	}
}
