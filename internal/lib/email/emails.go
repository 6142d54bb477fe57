package email

import "context"

func (c *Client) SendWelcomeEmail(ctx context.Context, to, username string) error {
	data := map[string]string{
		"Username":   username,
		"CatalogURL": c.catalogURL,
	}

	return c.SendEmail(ctx, to, "Welcome to Car Catalog!", TemplateWelcome, data)
}
