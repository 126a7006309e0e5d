// Package client talks to the ticker statistics server: it reads the ticker
// data envelope and asks the server to regenerate it.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dyike/indexstats/config"
	"github.com/dyike/indexstats/internal/cookie"
	"github.com/dyike/indexstats/internal/models"
)

const requestIDHeader = "X-Request-ID"

// StatusError is returned when the data endpoint answers with a non-2xx code.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d", e.Code)
}

type Client struct {
	client *resty.Client
	jar    http.CookieJar
	base   *url.URL
	logger logrus.FieldLogger

	dataPath      string
	refreshPath   string
	dashboardPath string
	csrfCookie    string

	mu           sync.Mutex
	bootstrapped bool
	scrapedToken string
}

// New builds a client for cfg.BaseURL. Cookies from cfg.Cookies are seeded
// into the client's jar so they travel with every request.
func New(cfg *config.Config, logger logrus.FieldLogger) (*Client, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if seeded := cookie.Parse(cfg.Cookies); len(seeded) > 0 {
		jar.SetCookies(base, seeded)
	}

	rc := resty.New()
	rc.SetBaseURL(cfg.BaseURL)
	rc.SetTimeout(cfg.Timeout())
	rc.SetCookieJar(jar)
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}

	c := &Client{
		client:        rc,
		jar:           jar,
		base:          base,
		logger:        logger,
		dataPath:      cfg.DataPath,
		refreshPath:   cfg.RefreshPath,
		dashboardPath: cfg.DashboardPath,
		csrfCookie:    cfg.CSRFCookieName,
	}

	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader(requestIDHeader, uuid.NewString())
		return nil
	})
	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.logger.WithFields(logrus.Fields{
			"method":     resp.Request.Method,
			"url":        resp.Request.URL,
			"status":     resp.StatusCode(),
			"request_id": resp.Request.Header.Get(requestIDHeader),
			"elapsed":    resp.Time().Round(time.Millisecond),
		}).Debug("http response")
		return nil
	})

	return c, nil
}

// Cookies returns the cookies the client would send to the server, in
// document.cookie form.
func (c *Client) Cookies() string {
	return cookie.Join(c.jar.Cookies(c.base))
}

// FetchTickerData performs one GET of the data endpoint and validates the
// envelope. There is no retry.
func (c *Client) FetchTickerData(ctx context.Context) (*models.Envelope, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.dataPath)
	if err != nil {
		return nil, fmt.Errorf("fetch ticker data: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{Code: resp.StatusCode(), Body: resp.String()}
	}

	env, err := models.DecodeEnvelope(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode ticker data: %w", err)
	}
	return env, nil
}

// RefreshData asks the server to regenerate its data. The response body is
// decoded whatever the status code, since the server reports failures as
// JSON with a non-success status.
func (c *Client) RefreshData(ctx context.Context) (*models.RefreshResult, error) {
	token, err := c.CSRFToken(ctx)
	if err != nil {
		return nil, err
	}

	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		req.SetHeader("X-CSRFToken", token)
	} else {
		c.logger.WithField("cookie", c.csrfCookie).Warn("no csrf token available, sending refresh without it")
	}

	resp, err := req.Post(c.refreshPath)
	if err != nil {
		return nil, fmt.Errorf("refresh data: %w", err)
	}

	var result models.RefreshResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode refresh response (status %d): %w", resp.StatusCode(), err)
	}
	return &result, nil
}
