package bot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestNotifyChange(t *testing.T) {
	api := &fakeSender{}
	n := newNotifier(api, 42, zerolog.Nop())

	n.NotifyChange(context.Background(), "Product 'Tea' added")

	if len(api.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(api.sent))
	}
	msg := api.sent[0]
	if msg.ChatID != 42 {
		t.Errorf("chat id = %d, want 42", msg.ChatID)
	}
	if msg.Text != "🍽 Product 'Tea' added" {
		t.Errorf("text = %q", msg.Text)
	}
	if !msg.DisableNotification {
		t.Error("expected silent notification")
	}
}

func TestNotifyChange_SendErrorIsSwallowed(t *testing.T) {
	api := &fakeSender{err: errors.New("telegram down")}
	n := newNotifier(api, 42, zerolog.Nop())

	n.NotifyChange(context.Background(), "x")

	if len(api.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(api.sent))
	}
}

func TestNewNotifier_RequiresConfig(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		chatID int64
	}{
		{"no token", "", 1},
		{"no chat", "123:abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewNotifier(tt.token, tt.chatID, zerolog.Nop()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
