// Package apiclient is a typed REST client for the backend, used by the
// terminal swipe client and by integration tests.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emberdate/emberdate/pkg/deck"
)

// Client talks to one backend instance. The bearer token is part of the
// client value: a zero Token means unauthenticated, and a logged-in client is
// obtained from Login rather than by mutating shared state.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken returns a copy of the client carrying the bearer token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.Token = token
	return &cp
}

// APIError is a non-2xx response decoded from the error body.
type APIError struct {
	StatusCode int
	Msg        string            `json:"msg"`
	Errors     map[string]string `json:"errors"`
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Msg)
	}
	return fmt.Sprintf("api: %d %v", e.StatusCode, e.Errors)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return resp.StatusCode, apiErr
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	_, err := c.do(ctx, http.MethodPost, "/register", body, nil)
	return err
}

// Login exchanges credentials for a bearer token and returns a client bound
// to it, plus the logged-in user's id.
func (c *Client) Login(ctx context.Context, email, password string) (*Client, string, error) {
	var out struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		UserID  string `json:"userid"`
	}
	body := map[string]string{"email": email, "password": password}
	if _, err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return nil, "", err
	}
	return c.WithToken(out.Token), out.UserID, nil
}

// Unmatched fetches the swipeable candidates.
func (c *Client) Unmatched(ctx context.Context) ([]deck.Candidate, error) {
	var out []deck.Candidate
	if _, err := c.do(ctx, http.MethodGet, "/api/unmatched", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MatchInfo is the payload of a like that completed a match.
type MatchInfo struct {
	Match json.RawMessage `json:"match"`
	Convo json.RawMessage `json:"convo"`
	User  json.RawMessage `json:"user"`
}

// Like submits a right swipe. Matched is true when the server answered 201
// with the match payload. Implements deck.Liker.
func (c *Client) Like(ctx context.Context, targetID string) (bool, error) {
	status, err := c.do(ctx, http.MethodPost, "/like", map[string]string{"like": targetID}, nil)
	if err != nil {
		return false, err
	}
	return status == http.StatusCreated, nil
}

var _ deck.Liker = (*Client)(nil)

type Conversation struct {
	ID           string    `json:"id"`
	Participants [2]string `json:"participants"`
	CreatedAt    int64     `json:"createdAt"`
}

type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationID"`
	Sender         string `json:"sender"`
	Receiver       string `json:"receiver"`
	Body           string `json:"message"`
	Created        int64  `json:"created"`
	Read           bool   `json:"read"`
}

type Profile struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Age          int    `json:"age"`
	Bio          string `json:"bio"`
	ImageID      string `json:"image"`
	RegisteredAt int64  `json:"registerDate"`
}

// Conversations returns the actor's chats and the ids of their matches.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, []string, error) {
	var out struct {
		Chats   []Conversation `json:"chats"`
		Matches []string       `json:"matches"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &out); err != nil {
		return nil, nil, err
	}
	return out.Chats, out.Matches, nil
}

// Messages returns a conversation's messages in chronological order.
func (c *Client) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	var out struct {
		Messages []Message `json:"messages"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/messages/"+conversationID, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// SendMessage posts a message to a conversation the actor participates in.
func (c *Client) SendMessage(ctx context.Context, conversationID, receiver, body string) error {
	payload := map[string]interface{}{
		"chatID":   conversationID,
		"receiver": receiver,
		"message":  body,
		"created":  time.Now().UnixMilli(),
	}
	_, err := c.do(ctx, http.MethodPost, "/api/newMessage", payload, nil)
	return err
}

// Profile returns the actor's own profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if _, err := c.do(ctx, http.MethodGet, "/api/user", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveUser returns another user's public profile.
func (c *Client) ResolveUser(ctx context.Context, id string) (*Profile, error) {
	var out Profile
	if _, err := c.do(ctx, http.MethodGet, "/api/user/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount deletes the actor's own account and everything referencing it.
func (c *Client) DeleteAccount(ctx context.Context, userID string) error {
	_, err := c.do(ctx, http.MethodGet, "/delete/"+userID, nil, nil)
	return err
}
