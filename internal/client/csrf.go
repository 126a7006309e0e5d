package client

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dyike/indexstats/internal/cookie"
)

const csrfInputSelector = `input[name="csrfmiddlewaretoken"]`

// CSRFToken returns the value of the CSRF cookie. When the cookie is not set,
// the dashboard page is requested once so the server can issue it; if the
// page only embeds the token in a form field, that value is used instead.
// An empty token with a nil error means none could be found.
func (c *Client) CSRFToken(ctx context.Context) (string, error) {
	if token, ok := cookie.Get(c.Cookies(), c.csrfCookie); ok {
		return token, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.bootstrapped {
		c.bootstrapped = true
		scraped, err := c.bootstrapCSRF(ctx)
		if err != nil {
			c.logger.WithError(err).Warn("csrf bootstrap failed")
		}
		c.scrapedToken = scraped
	}

	if token, ok := cookie.Get(c.Cookies(), c.csrfCookie); ok {
		return token, nil
	}
	return c.scrapedToken, nil
}

func (c *Client) bootstrapCSRF(ctx context.Context) (string, error) {
	if c.dashboardPath == "" {
		return "", nil
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(c.dashboardPath)
	if err != nil {
		return "", fmt.Errorf("load dashboard page: %w", err)
	}
	if !resp.IsSuccess() {
		return "", &StatusError{Code: resp.StatusCode()}
	}

	return scrapeCSRFToken(resp.Body())
}

func scrapeCSRFToken(page []byte) (string, error) {
	if len(page) == 0 {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse dashboard page: %w", err)
	}
	value, _ := doc.Find(csrfInputSelector).First().Attr("value")
	return strings.TrimSpace(value), nil
}
