package resend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/joshu-sajeev/contactrelay/internal/provider"
)

const DefaultBaseURL = "https://api.resend.com"

// maxErrorBody caps how much of a failed response we read for the message.
const maxErrorBody = 64 << 10

var ErrMissingAPIKey = errors.New("resend: missing API key")

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

var _ provider.Sender = (*Client)(nil)

func New(apiKey, baseURL string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) Name() string { return "resend" }

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	ReplyTo []string `json:"reply_to,omitempty"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// Send posts msg to the /emails endpoint. A non-2xx answer comes back as a
// *provider.Error carrying Resend's own status code and message.
func (c *Client) Send(ctx context.Context, msg provider.Message) (provider.Result, error) {
	if c.apiKey == "" {
		return provider.Result{}, ErrMissingAPIKey
	}

	payload := sendRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = []string{msg.ReplyTo}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return provider.Result{}, fmt.Errorf("encode resend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return provider.Result{}, fmt.Errorf("build resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return provider.Result{}, fmt.Errorf("send resend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return provider.Result{}, decodeError(resp)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return provider.Result{}, fmt.Errorf("decode resend response: %w", err)
	}

	return provider.Result{ID: out.ID}, nil
}

func decodeError(resp *http.Response) *provider.Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Message != "" {
		if er.StatusCode == 0 {
			er.StatusCode = resp.StatusCode
		}
		return &provider.Error{StatusCode: er.StatusCode, Name: er.Name, Message: er.Message}
	}

	message := strings.TrimSpace(string(raw))
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &provider.Error{
		StatusCode: resp.StatusCode,
		Name:       "application_error",
		Message:    message,
	}
}
