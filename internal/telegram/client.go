// Package telegram is a minimal Telegram Bot API client covering the calls
// this bot needs: long polling, HTML messages with inline keyboards, message
// edits and callback acknowledgements.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotModified reports an editMessageText call whose content matched the
// existing message. It is a delivery no-op, not a failure.
var ErrNotModified = errors.New("message is not modified")

// Telegram rejects messages above 4096 chars; stay under with headroom.
const maxMessageChars = 3900

// Client talks to the Telegram Bot API.
type Client struct {
	apiBase     string
	pollTimeout int
	httpClient  *http.Client
}

// NewClient creates a Client for the given bot-scoped API base URL
// (e.g. "https://api.telegram.org/bot<token>"). pollTimeout is the
// getUpdates long-poll window in seconds; the HTTP timeout is sized to
// outlast it.
func NewClient(apiBase string, pollTimeout int) *Client {
	return &Client{
		apiBase:     strings.TrimRight(apiBase, "/"),
		pollTimeout: pollTimeout,
		httpClient: &http.Client{
			Timeout: time.Duration(pollTimeout+10) * time.Second,
		},
	}
}

// apiResponse is the generic Telegram API response wrapper.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description,omitempty"`
}

// GetUpdates long-polls for new updates starting at offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	params := url.Values{}
	params.Set("offset", strconv.FormatInt(offset, 10))
	params.Set("timeout", strconv.Itoa(c.pollTimeout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiBase+"/getUpdates?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating getUpdates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram getUpdates request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read getUpdates response: %w", err)
	}

	var tgResp apiResponse
	if err := json.Unmarshal(body, &tgResp); err != nil {
		return nil, fmt.Errorf("failed to parse getUpdates response: %w", err)
	}
	if !tgResp.OK {
		return nil, fmt.Errorf("telegram getUpdates rejected: %s", tgResp.Description)
	}

	var updates []Update
	if err := json.Unmarshal(tgResp.Result, &updates); err != nil {
		return nil, fmt.Errorf("failed to parse getUpdates result: %w", err)
	}
	return updates, nil
}

type sendMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// SendMessage sends an HTML-formatted message, optionally with an inline
// keyboard. Text beyond the Telegram size limit is truncated.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, keyboard *InlineKeyboardMarkup) error {
	payload := sendMessageRequest{
		ChatID:      chatID,
		Text:        truncate(text, maxMessageChars),
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	}
	_, err := c.call(ctx, "sendMessage", payload)
	if err != nil {
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	return nil
}

type editMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	MessageID   int64                 `json:"message_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"`
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// EditMessageText replaces the text and keyboard of an existing message.
// Editing to identical content returns ErrNotModified.
func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text string, keyboard *InlineKeyboardMarkup) error {
	payload := editMessageRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        truncate(text, maxMessageChars),
		ParseMode:   "HTML",
		ReplyMarkup: keyboard,
	}
	_, err := c.call(ctx, "editMessageText", payload)
	if err != nil {
		if errors.Is(err, ErrNotModified) {
			return ErrNotModified
		}
		return fmt.Errorf("telegram editMessageText failed: %w", err)
	}
	return nil
}

type answerCallbackRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
}

// AnswerCallbackQuery acknowledges a button press so the client stops
// showing its progress indicator.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	if strings.TrimSpace(callbackID) == "" {
		return nil
	}
	_, err := c.call(ctx, "answerCallbackQuery", answerCallbackRequest{CallbackQueryID: callbackID})
	if err != nil {
		return fmt.Errorf("telegram answerCallbackQuery failed: %w", err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s payload: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBase+"/"+method, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", method, err)
	}

	var tgResp apiResponse
	if err := json.Unmarshal(respBody, &tgResp); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", method, err)
	}
	if !tgResp.OK {
		if strings.Contains(tgResp.Description, "message is not modified") {
			return nil, ErrNotModified
		}
		return nil, fmt.Errorf("%s rejected: %s", method, tgResp.Description)
	}
	return tgResp.Result, nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
