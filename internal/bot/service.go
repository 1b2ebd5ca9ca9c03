// Package bot wires the session store, knowledge cache, prompt assembler
// and inference client into the Telegram update loop.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/ugmsa/assistbot/internal/format"
	"github.com/ugmsa/assistbot/internal/knowledge"
	"github.com/ugmsa/assistbot/internal/metrics"
	"github.com/ugmsa/assistbot/internal/prompt"
	"github.com/ugmsa/assistbot/internal/session"
	"github.com/ugmsa/assistbot/internal/telegram"
)

// Completer produces a model reply for an assembled prompt.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// Transport is the slice of the Telegram client the service uses.
type Transport interface {
	GetUpdates(ctx context.Context, offset int64) ([]telegram.Update, error)
	SendMessage(ctx context.Context, chatID int64, text string, keyboard *telegram.InlineKeyboardMarkup) error
	EditMessageText(ctx context.Context, chatID, messageID int64, text string, keyboard *telegram.InlineKeyboardMarkup) error
	AnswerCallbackQuery(ctx context.Context, callbackID string) error
}

// Service processes inbound updates. Updates for different users run
// concurrently; a per-user lock keeps each user's turns strictly ordered.
type Service struct {
	sessions   *session.Store
	cache      *knowledge.Cache
	completer  Completer
	transport  Transport
	mainBotURL string

	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// New creates a Service.
func New(sessions *session.Store, cache *knowledge.Cache, completer Completer, transport Transport, mainBotURL string) *Service {
	return &Service{
		sessions:   sessions,
		cache:      cache,
		completer:  completer,
		transport:  transport,
		mainBotURL: mainBotURL,
		userLocks:  make(map[int64]*sync.Mutex),
	}
}

// Run long-polls for updates until ctx is cancelled. Each update is handled
// on its own goroutine; Run returns once all in-flight handlers finish.
func (s *Service) Run(ctx context.Context) error {
	slog.Info("bot update loop started")

	var wg sync.WaitGroup
	defer wg.Wait()

	var offset int64
	for {
		if ctx.Err() != nil {
			return nil
		}

		updates, err := s.transport.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Warn("fetching updates", "error", err)
			time.Sleep(time.Second)
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			wg.Add(1)
			go func(u telegram.Update) {
				defer wg.Done()
				s.Handle(ctx, u)
			}(u)
		}
	}
}

// Handle dispatches one update.
func (s *Service) Handle(ctx context.Context, u telegram.Update) {
	switch {
	case u.CallbackQuery != nil:
		s.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil && u.Message.From != nil && u.Message.Text != "":
		s.handleMessage(ctx, u.Message)
	}
}

func (s *Service) handleMessage(ctx context.Context, msg *telegram.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		metrics.UpdatesTotal.WithLabelValues("command").Inc()
		s.send(ctx, chatID, welcomeText, s.mainMenuKeyboard())
	case strings.HasPrefix(text, "/menu"):
		metrics.UpdatesTotal.WithLabelValues("command").Inc()
		s.send(ctx, chatID, menuText, s.mainMenuKeyboard())
	case strings.HasPrefix(text, "/"):
		metrics.UpdatesTotal.WithLabelValues("command").Inc()
		s.send(ctx, chatID, menuText, s.mainMenuKeyboard())
	default:
		metrics.UpdatesTotal.WithLabelValues("message").Inc()
		s.handleChat(ctx, userID, chatID, text)
	}
}

// handleChat runs one conversation turn: record the user's message, assemble
// the prompt from the cached knowledge and the bounded history, ask the
// model, and deliver the shaped reply. The assistant turn is recorded only
// on genuine success; on any inference failure the user sees the fixed
// apology and history keeps just their own turn.
func (s *Service) handleChat(ctx context.Context, userID, chatID int64, text string) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	log := slog.With("request_id", uuid.New().String(), "user_id", userID)

	s.sessions.AppendUser(userID, text)

	blob, ok := s.cache.Get(ctx)
	if !ok {
		log.Warn("answering without knowledge base")
	}

	messages := prompt.Build(s.sessions.Snapshot(userID), blob)

	start := time.Now()
	reply, err := s.completer.Complete(ctx, messages)
	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InferenceRequestsTotal.WithLabelValues("error").Inc()
		log.Error("inference failed", "error", err)
		s.send(ctx, chatID, apologyText, s.backKeyboard())
		return
	}
	metrics.InferenceRequestsTotal.WithLabelValues("ok").Inc()

	s.sessions.AppendAssistant(userID, reply)
	s.send(ctx, chatID, reply, s.backKeyboard())
}

func (s *Service) handleCallback(ctx context.Context, cb *telegram.CallbackQuery) {
	if cb.From == nil || cb.Message == nil {
		return
	}
	metrics.UpdatesTotal.WithLabelValues("callback").Inc()

	if err := s.transport.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		slog.Debug("answering callback", "error", err)
	}

	action, ok := ParseMenuAction(cb.Data)
	if !ok {
		slog.Warn("unknown callback payload", "data", cb.Data)
		return
	}
	metrics.MenuActionsTotal.WithLabelValues(action.String()).Inc()

	var text string
	var keyboard *telegram.InlineKeyboardMarkup
	switch action {
	case ActionShowMenu:
		text, keyboard = menuText, s.mainMenuKeyboard()
	case ActionShowInfo:
		text, keyboard = infoText, s.backKeyboard()
	case ActionShowAskPrompt:
		text, keyboard = askText, s.backKeyboard()
	case ActionClearHistory:
		s.sessions.Clear(cb.From.ID)
		text, keyboard = clearedText, s.backKeyboard()
	}

	err := s.transport.EditMessageText(ctx, cb.Message.Chat.ID, cb.Message.MessageID,
		format.ToTelegramHTML(text), keyboard)
	switch {
	case errors.Is(err, telegram.ErrNotModified):
		// Identical content; nothing to deliver.
		slog.Debug("menu edit was a no-op", "action", action.String())
	case err != nil:
		slog.Warn("editing menu message", "action", action.String(), "error", err)
	}
}

func (s *Service) send(ctx context.Context, chatID int64, text string, keyboard *telegram.InlineKeyboardMarkup) {
	if err := s.transport.SendMessage(ctx, chatID, format.ToTelegramHTML(text), keyboard); err != nil {
		slog.Error("sending message", "chat_id", chatID, "error", err)
	}
}

func (s *Service) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

func (s *Service) mainMenuKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "🎓 UGMSA/FGMSA Info", CallbackData: callbackShowInfo}},
			{{Text: "💬 Ask Question", CallbackData: callbackShowAsk}},
			{{Text: "🔄 Clear History", CallbackData: callbackClearHistory}},
			{{Text: "🏠 Return to Main Bot", URL: s.mainBotURL}},
		},
	}
}

func (s *Service) backKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "⬅️ Back to Menu", CallbackData: callbackShowMenu}},
			{{Text: "🏠 Return to Main Bot", URL: s.mainBotURL}},
		},
	}
}
