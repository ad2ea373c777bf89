package emailjs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/joshu-sajeev/contactrelay/internal/provider"
)

const DefaultBaseURL = "https://api.emailjs.com"

const maxErrorBody = 64 << 10

type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	BaseURL    string
}

// Client sends through the EmailJS REST endpoint using a stored template.
// EmailJS does not return a message id, so Result.ID is always empty.
type Client struct {
	cfg  Config
	http *http.Client
}

var _ provider.Sender = (*Client)(nil)

func New(cfg Config, hc *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{cfg: cfg, http: hc}
}

func (c *Client) Name() string { return "emailjs" }

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send maps msg onto template parameters. name, email and message match the
// site's contact form fields; the template owns the layout, so msg.HTML is not
// sent.
func (c *Client) Send(ctx context.Context, msg provider.Message) (provider.Result, error) {
	if c.cfg.ServiceID == "" || c.cfg.TemplateID == "" || c.cfg.PublicKey == "" {
		return provider.Result{}, fmt.Errorf("emailjs: service id, template id and public key are required")
	}

	payload := sendRequest{
		ServiceID:   c.cfg.ServiceID,
		TemplateID:  c.cfg.TemplateID,
		UserID:      c.cfg.PublicKey,
		AccessToken: c.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"name":       msg.ReplyToName,
			"email":      msg.ReplyTo,
			"from_name":  msg.ReplyToName,
			"from_email": msg.ReplyTo,
			"reply_to":   msg.ReplyTo,
			"to_email":   msg.To,
			"subject":    msg.Subject,
			"message":    msg.Text,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return provider.Result{}, fmt.Errorf("encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return provider.Result{}, fmt.Errorf("build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return provider.Result{}, fmt.Errorf("send emailjs request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(raw))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return provider.Result{}, &provider.Error{StatusCode: resp.StatusCode, Message: message}
	}

	return provider.Result{}, nil
}
