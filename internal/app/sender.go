package app

import (
	"fmt"
	"net/http"

	"github.com/joshu-sajeev/contactrelay/internal/config"
	"github.com/joshu-sajeev/contactrelay/internal/provider"
	"github.com/joshu-sajeev/contactrelay/internal/provider/emailjs"
	"github.com/joshu-sajeev/contactrelay/internal/provider/resend"
	"github.com/joshu-sajeev/contactrelay/internal/provider/smtpmail"
)

// NewSender builds the provider client named by MAIL_PROVIDER. Missing
// credentials are not an error here; the provider call fails at request time.
func NewSender(cfg *config.Config) (provider.Sender, error) {
	hc := &http.Client{Timeout: cfg.ProviderTimeout}

	switch cfg.Provider {
	case config.ProviderResend:
		return resend.New(cfg.Resend.APIKey, cfg.Resend.BaseURL, hc), nil
	case config.ProviderEmailJS:
		return emailjs.New(emailjs.Config{
			ServiceID:  cfg.EmailJS.ServiceID,
			TemplateID: cfg.EmailJS.TemplateID,
			PublicKey:  cfg.EmailJS.PublicKey,
			PrivateKey: cfg.EmailJS.PrivateKey,
			BaseURL:    cfg.EmailJS.BaseURL,
		}, hc), nil
	case config.ProviderSMTP:
		return smtpmail.New(smtpmail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		}), nil
	}

	return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
}
