// Package telegram delivers ledger notifications to a Telegram chat. The bot
// credentials live in the persisted configuration and may change at runtime.
package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"

	"tisa/internal/ledger/models"
	"tisa/internal/logger"
)

// SendFunc performs one sendMessage call. Replaceable for tests.
type SendFunc func(ctx context.Context, token, chatID, text string) error

// Notifier is the best-effort notification dispatcher. Delivery runs on a
// detached goroutine with its own timeout, so a slow or hanging endpoint
// never stalls the ledger operation that triggered it; failures are logged
// and never surfaced to callers.
type Notifier struct {
	send    SendFunc
	timeout time.Duration

	wg sync.WaitGroup

	mu   sync.Mutex
	bots map[string]*bot.Bot
}

// Option customises a Notifier.
type Option func(*Notifier)

// WithSendFunc replaces the Telegram transport (tests).
func WithSendFunc(send SendFunc) Option {
	return func(n *Notifier) {
		if send != nil {
			n.send = send
		}
	}
}

// WithTimeout sets the per-delivery timeout.
func WithTimeout(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// NewNotifier creates a Notifier with the real Telegram transport.
func NewNotifier(opts ...Option) *Notifier {
	n := &Notifier{
		timeout: 10 * time.Second,
		bots:    make(map[string]*bot.Bot),
	}
	n.send = n.sendTelegram
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send dispatches one already-built HTML message. It is a no-op unless the
// master switch is on and both credentials are non-empty. The outcome never
// reaches the caller.
func (n *Notifier) Send(ctx context.Context, cfg models.TelegramConfig, text string) {
	if !cfg.CanSend() || text == "" {
		return
	}

	n.wg.Add(1)
	go func(token, chatID string) {
		defer n.wg.Done()

		// Detached from the caller's cancellation on purpose: the ledger
		// mutation is already committed when the dispatch starts.
		sendCtx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.send(sendCtx, token, chatID, text); err != nil {
			logger.L().Errorf("Telegram notification to chat %s failed: %v", chatID, err)
		}
	}(cfg.BotToken, cfg.ChatID)
}

// Flush blocks until all in-flight deliveries finished or ctx expires. Call
// before process exit so pending notifications are not dropped.
func (n *Notifier) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notification flush interrupted: %w", ctx.Err())
	}
}

func (n *Notifier) sendTelegram(ctx context.Context, token, chatID, text string) error {
	b, err := n.botFor(token)
	if err != nil {
		return err
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: botModels.ParseModeHTML,
	})
	return err
}

// botFor returns a cached client for the token. Clients skip the getMe
// handshake: the token is user-supplied at runtime and only validated by the
// sendMessage call itself.
func (n *Notifier) botFor(token string) (*bot.Bot, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if b, ok := n.bots[token]; ok {
		return b, nil
	}

	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("failed to create bot client: %w", err)
	}
	n.bots[token] = b
	return b, nil
}
