// Package email sends transactional email through Resend using HTML
// templates embedded in the binary.
package email

import (
	"context"
	"fmt"

	"github.com/deppfellow/carcatalog/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// sender is the part of the Resend emails API the client uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Client struct {
	emails     sender
	from       string
	catalogURL string
	logger     *zerolog.Logger
}

// NewClient returns a Resend-backed client. Without an API key the client
// is disabled and sends nothing.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		from:       cfg.Integration.EmailFrom,
		catalogURL: cfg.Integration.CatalogURL,
		logger:     logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.emails = resend.NewClient(cfg.Integration.ResendAPIKey).Emails
	}
	return c
}

func (c *Client) Enabled() bool {
	return c.emails != nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string) error {
	if !c.Enabled() {
		c.logger.Debug().Str("to", to).Str("template", string(templateName)).Msg("email disabled, skipping send")
		return nil
	}

	body, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	if _, err := c.emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
