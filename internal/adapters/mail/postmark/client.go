package postmark

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pet-care-log/internal/platform/httpclient"
	"pet-care-log/internal/ports/mail"

	"github.com/pkg/errors"
)

const DefaultAPIURL = "https://api.postmarkapp.com"

type Client struct {
	serverToken string
	fromEmail   string
	http        *httpclient.Client
}

type Option func(*options)

type options struct {
	apiURL    string
	timeout   time.Duration
	transport http.RoundTripper
}

func WithAPIURL(u string) Option {
	return func(o *options) { o.apiURL = u }
}

func WithTransport(tr http.RoundTripper) Option {
	return func(o *options) { o.transport = tr }
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func NewClient(serverToken, fromEmail string, opts ...Option) (*Client, error) {
	o := options{apiURL: DefaultAPIURL}
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(o.apiURL) == "" {
		o.apiURL = DefaultAPIURL
	}

	hc, err := httpclient.New(o.apiURL, o.timeout, o.transport)
	if err != nil {
		return nil, err
	}

	return &Client{
		serverToken: strings.TrimSpace(serverToken),
		fromEmail:   strings.TrimSpace(fromEmail),
		http:        hc,
	}, nil
}

// Configured indica si hay server token.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// Send implementa mail.Sender.
func (c *Client) Send(ctx context.Context, msg mail.Message) error {
	if !c.Configured() {
		return errors.Wrap(mail.ErrTransport, "postmark: missing server token")
	}
	if strings.TrimSpace(msg.To) == "" {
		return errors.Wrap(mail.ErrTransport, "postmark: empty recipient")
	}

	payload := postmarkEmail{
		From:     c.fromEmail,
		To:       msg.To,
		Subject:  msg.Subject,
		HtmlBody: msg.HTML,
		TextBody: msg.Text,
	}

	headers := map[string]string{"X-Postmark-Server-Token": c.serverToken}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/email", headers, payload, nil); err != nil {
		return errors.Wrapf(mail.ErrTransport, "postmark: %v", err)
	}
	return nil
}
