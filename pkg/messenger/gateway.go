package messenger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/sirupsen/logrus"
)

// ErrNoRecipient is returned for a zero chat id
var ErrNoRecipient = errors.New("messenger: no recipient")

// Gateway delivers a text message to a chat
type Gateway interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// TelegramGateway delivers messages through a Telegram bot
type TelegramGateway struct {
	bot *telego.Bot
}

// MockGateway logs messages instead of sending them and keeps them for inspection
type MockGateway struct {
	log logrus.FieldLogger

	mu   sync.Mutex
	sent []Message
}

// Message is one message accepted by the MockGateway
type Message struct {
	ChatID int64
	Text   string
}

// NewTelegramGateway creates a gateway for the bot identified by token
func NewTelegramGateway(token string, opts ...telego.BotOption) (*TelegramGateway, error) {
	bot, err := telego.NewBot(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramGateway{bot: bot}, nil
}

// NewMockGateway creates a new mock gateway
func NewMockGateway(log logrus.FieldLogger) *MockGateway {
	return &MockGateway{log: log}
}

// SendMessage sends text to the chat
func (g *TelegramGateway) SendMessage(ctx context.Context, chatID int64, text string) error {
	if chatID == 0 {
		return ErrNoRecipient
	}
	if _, err := g.bot.SendMessage(ctx, tu.Message(tu.ID(chatID), text)); err != nil {
		return fmt.Errorf("telegram send to %d: %w", chatID, err)
	}
	return nil
}

// SendMessage records the message
func (g *MockGateway) SendMessage(ctx context.Context, chatID int64, text string) error {
	if chatID == 0 {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	g.sent = append(g.sent, Message{ChatID: chatID, Text: text})
	g.mu.Unlock()
	g.log.WithField("chatId", chatID).Info("[MOCK] message accepted")
	return nil
}

// Sent returns a copy of every accepted message
func (g *MockGateway) Sent() []Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Message, len(g.sent))
	copy(out, g.sent)
	return out
}
