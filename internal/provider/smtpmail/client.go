package smtpmail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/mail"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"github.com/joshu-sajeev/contactrelay/internal/provider"
	gomail "gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     string
	Username string
	Password string
}

// Client delivers through an SMTP relay such as smtp.gmail.com. The
// submission's Message-ID is returned as the result id.
type Client struct {
	cfg    Config
	dialer *net.Dialer
}

var _ provider.Sender = (*Client)(nil)

func New(cfg Config) *Client {
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &Client{cfg: cfg, dialer: &net.Dialer{}}
}

func (c *Client) Name() string { return "smtp" }

func (c *Client) Send(ctx context.Context, msg provider.Message) (provider.Result, error) {
	if c.cfg.Host == "" {
		return provider.Result{}, errors.New("smtp: host is not configured")
	}

	id := uuid.NewString()

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", id, c.domain()))
	if msg.ReplyTo != "" {
		m.SetAddressHeader("Reply-To", msg.ReplyTo, msg.ReplyToName)
	}
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return provider.Result{}, fmt.Errorf("smtp: invalid sender %q: %w", msg.From, err)
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return provider.Result{}, fmt.Errorf("encode smtp message: %w", err)
	}

	var auth sasl.Client
	if c.cfg.Username != "" {
		auth = sasl.NewPlainClient("", c.cfg.Username, c.cfg.Password)
	}
	addr := net.JoinHostPort(c.cfg.Host, c.cfg.Port)

	if err := c.deliver(ctx, addr, auth, from.Address, []string{msg.To}, &buf); err != nil {
		return provider.Result{}, classify(err)
	}

	return provider.Result{ID: id}, nil
}

// sessionTimeout bounds a session whose context has no deadline.
const sessionTimeout = 2 * time.Minute

// deliver runs one SMTP session on a connection bound to ctx. The
// connection is closed as soon as ctx ends, so a stalled server cannot hold
// the session open.
func (c *Client) deliver(ctx context.Context, addr string, auth sasl.Client, from string, to []string, r io.Reader) (err error) {
	defer func() {
		if err != nil && ctx.Err() != nil {
			err = ctx.Err()
		}
	}()

	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, ok := ctx.Deadline(); !ok {
		if err := conn.SetDeadline(time.Now().Add(sessionTimeout)); err != nil {
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: c.cfg.Host}); err != nil {
			return err
		}
	}
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); !ok {
			return errors.New("server does not support AUTH")
		}
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(from, nil); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// classify turns SMTP reply codes into provider errors. The relay answers
// those with 502 since the upstream mail server refused the message.
func classify(err error) error {
	var smtpErr *smtp.SMTPError
	if errors.As(err, &smtpErr) {
		return &provider.Error{
			StatusCode: http.StatusBadGateway,
			Name:       fmt.Sprintf("smtp_%d", smtpErr.Code),
			Message:    smtpErr.Message,
		}
	}
	return fmt.Errorf("smtp send: %w", err)
}

func (c *Client) domain() string {
	if c.cfg.Host == "" {
		return "localhost"
	}
	return c.cfg.Host
}
