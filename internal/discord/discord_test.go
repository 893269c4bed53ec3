package discord

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot,omitempty"`
}

type wireMessage struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Author    wireAuthor `json:"author"`
	Timestamp string     `json:"timestamp"`
}

func newAPIServer(t *testing.T, messages []wireMessage, capture *http.Request) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if capture != nil {
			*capture = *r
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(messages)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetch_ReversesToOldestFirst(t *testing.T) {
	// Discord returns newest first.
	server := newAPIServer(t, []wireMessage{
		{ID: "3", Content: "https://example.com/c", Author: wireAuthor{Username: "alice"}, Timestamp: "2026-03-01T12:02:00.000000+00:00"},
		{ID: "2", Content: "https://example.com/b", Author: wireAuthor{Username: "bob"}, Timestamp: "2026-03-01T12:01:00.000000+00:00"},
		{ID: "1", Content: "https://example.com/a", Author: wireAuthor{Username: "alice"}, Timestamp: "2026-03-01T12:00:00.000000+00:00"},
	}, nil)

	source := NewSource("token", "chan", 100).WithAPIBase(server.URL)
	messages, err := source.Fetch(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, messages, 3)
	assert.Equal(t, "1", messages[0].ID)
	assert.Equal(t, "2", messages[1].ID)
	assert.Equal(t, "3", messages[2].ID)
	assert.True(t, messages[0].Timestamp.Before(messages[2].Timestamp))
}

func TestFetch_FiltersBotsAndURLlessMessages(t *testing.T) {
	server := newAPIServer(t, []wireMessage{
		{ID: "4", Content: "https://example.com/bot", Author: wireAuthor{Username: "hook", Bot: true}, Timestamp: "2026-03-01T12:03:00+00:00"},
		{ID: "3", Content: "no links here", Author: wireAuthor{Username: "alice"}, Timestamp: "2026-03-01T12:02:00+00:00"},
		{ID: "2", Content: "dinner https://example.com/real", Author: wireAuthor{Username: "bob"}, Timestamp: "2026-03-01T12:01:00+00:00"},
	}, nil)

	source := NewSource("token", "chan", 100).WithAPIBase(server.URL)
	messages, err := source.Fetch(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, messages, 1)
	assert.Equal(t, "2", messages[0].ID)
	assert.Equal(t, "bob", messages[0].Author)
	assert.Equal(t, []string{"https://example.com/real"}, messages[0].URLs)
}

func TestFetch_BotAuthorWithURLYieldsNothing(t *testing.T) {
	server := newAPIServer(t, []wireMessage{
		{ID: "1", Content: "recipe here https://example.com/a https://example.com/a",
			Author: wireAuthor{Username: "hook", Bot: true}, Timestamp: "2026-03-01T12:00:00+00:00"},
	}, nil)

	source := NewSource("token", "chan", 100).WithAPIBase(server.URL)
	messages, err := source.Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestFetch_RequestParameters(t *testing.T) {
	var captured http.Request
	server := newAPIServer(t, nil, &captured)

	source := NewSource("secret-token", "chan-42", 50).WithAPIBase(server.URL)
	_, err := source.Fetch(context.Background(), "777")
	require.NoError(t, err)

	assert.Equal(t, "/channels/chan-42/messages", captured.URL.Path)
	assert.Equal(t, "50", captured.URL.Query().Get("limit"))
	assert.Equal(t, "777", captured.URL.Query().Get("after"))
	assert.Equal(t, "Bot secret-token", captured.Header.Get("Authorization"))
}

func TestFetch_NoCursorOmitsAfter(t *testing.T) {
	var captured http.Request
	server := newAPIServer(t, nil, &captured)

	source := NewSource("token", "chan", 100).WithAPIBase(server.URL)
	_, err := source.Fetch(context.Background(), "")
	require.NoError(t, err)

	assert.False(t, captured.URL.Query().Has("after"))
}

func TestFetch_LimitClamped(t *testing.T) {
	var captured http.Request
	server := newAPIServer(t, nil, &captured)

	source := NewSource("token", "chan", 500).WithAPIBase(server.URL)
	_, err := source.Fetch(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "100", captured.URL.Query().Get("limit"))
}

func TestFetch_NonSuccessPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "401: Unauthorized"}`))
	}))
	defer server.Close()

	source := NewSource("bad-token", "chan", 100).WithAPIBase(server.URL)
	_, err := source.Fetch(context.Background(), "")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Unauthorized")
}

func TestFetch_TransportErrorPropagates(t *testing.T) {
	source := NewSource("token", "chan", 100).WithAPIBase("http://127.0.0.1:1")
	_, err := source.Fetch(context.Background(), "")
	assert.Error(t, err)
}
