// Package discord retrieves channel messages through the Discord REST API
// and turns them into chat messages carrying extracted URLs.
package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mkoda/recipe-collector/internal/types"
)

// DefaultAPIBase is the Discord REST API root.
const DefaultAPIBase = "https://discord.com/api/v10"

// maxFetchLimit is the page-size cap the messages endpoint accepts.
const maxFetchLimit = 100

// apiMessage is the wire shape of a Discord channel message.
type apiMessage struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Author  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Bot      bool   `json:"bot"`
	} `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError is a non-success response from the Discord API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord API error: %d - %s", e.StatusCode, e.Body)
}

// Source fetches messages from one Discord channel.
type Source struct {
	token     string
	channelID string
	limit     int
	apiBase   string
	client    *http.Client
}

// NewSource returns a Source for the given channel. limit caps the page
// size per fetch and is clamped to the API maximum of 100.
func NewSource(token, channelID string, limit int) *Source {
	if limit < 1 || limit > maxFetchLimit {
		limit = maxFetchLimit
	}
	return &Source{
		token:     token,
		channelID: channelID,
		limit:     limit,
		apiBase:   DefaultAPIBase,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithAPIBase overrides the API root. Used by tests.
func (s *Source) WithAPIBase(base string) *Source {
	s.apiBase = base
	return s
}

// Fetch retrieves messages newer than the cursor, oldest first. Messages
// from bot authors and messages without URLs are dropped. A non-success
// response is returned as an error: a broken cursor fetch must not look
// like an empty run.
func (s *Source) Fetch(ctx context.Context, afterMessageID string) ([]types.ChatMessage, error) {
	endpoint := fmt.Sprintf("%s/channels/%s/messages", s.apiBase, s.channelID)

	query := url.Values{}
	query.Set("limit", strconv.Itoa(s.limit))
	if afterMessageID != "" {
		query.Set("after", afterMessageID)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discord request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var apiMessages []apiMessage
	if err := json.NewDecoder(resp.Body).Decode(&apiMessages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	messages := make([]types.ChatMessage, 0, len(apiMessages))
	for _, msg := range apiMessages {
		if msg.Author.Bot {
			continue
		}
		urls := ExtractURLs(msg.Content)
		if len(urls) == 0 {
			continue
		}
		messages = append(messages, types.ChatMessage{
			ID:        msg.ID,
			Author:    msg.Author.Username,
			Timestamp: msg.Timestamp,
			URLs:      urls,
		})
	}

	// The API returns newest first; checkpoint advancement needs
	// chronological processing order.
	reverse(messages)
	return messages, nil
}

func reverse(messages []types.ChatMessage) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
