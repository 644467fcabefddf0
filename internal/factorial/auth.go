package factorial

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"

	"github.com/username/factorial-shifts/internal/config"
)

const authenticityTokenField = "authenticity_token"

// Session is an authenticated Factorial session.
// Cookies set during login are attached to every request made through it.
type Session struct {
	httpClient *http.Client
	email      string
	createdAt  time.Time
}

// Email returns the account the session belongs to
func (s *Session) Email() string {
	return s.email
}

// CreatedAt returns when the login completed
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Cookies returns the cookies the session would send to rawURL
func (s *Session) Cookies(rawURL string) []*http.Cookie {
	u, err := url.Parse(rawURL)
	if err != nil || s.httpClient.Jar == nil {
		return nil
	}
	return s.httpClient.Jar.Cookies(u)
}

// Authenticator signs in through the Factorial login form
type Authenticator struct {
	cfg       config.FactorialConfig
	timeout   time.Duration
	transport http.RoundTripper
	logger    *zap.Logger
	out       io.Writer
}

// NewAuthenticator creates a new authenticator.
// Progress lines are written to out; timeout 0 waits indefinitely.
func NewAuthenticator(cfg config.FactorialConfig, timeout time.Duration, logger *zap.Logger, out io.Writer) *Authenticator {
	if out == nil {
		out = io.Discard
	}
	return &Authenticator{
		cfg:     cfg,
		timeout: timeout,
		logger:  logger,
		out:     out,
	}
}

// SetTransport replaces the HTTP transport of sessions created afterwards
func (a *Authenticator) SetTransport(rt http.RoundTripper) {
	a.transport = rt
}

// Login fetches the login page, extracts the anti-forgery token and submits credentials
func (a *Authenticator) Login(ctx context.Context, email, password string) (*Session, error) {
	httpClient, err := a.newHTTPClient()
	if err != nil {
		return nil, err
	}

	// Step 1: retrieve the login page to extract the authenticity_token
	token, err := a.fetchAuthenticityToken(ctx, httpClient)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to retrieve the login page: %v\n", err)
		a.logger.Warn("Login page rejected", zap.Error(err))
		return nil, err
	}
	fmt.Fprintf(a.out, "Found authenticity_token: %s\n", token)

	// Step 2: post the form
	form := url.Values{}
	form.Set(authenticityTokenField, token)
	form.Set("return_host", a.cfg.ReturnHost)
	form.Set("return_to", a.cfg.ReturnTo)
	form.Set("user[email]", email)
	form.Set("user[password]", password)
	form.Set("commit", "Sign in")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.LoginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", a.cfg.APIOrigin)
	req.Header.Set("Referer", a.cfg.LoginReferer)

	a.logger.Debug("Submitting login form",
		zap.String("url", a.cfg.LoginURL),
		zap.String("email", email))

	resp, err := httpClient.Do(req)
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Fprintf(a.out, "Login failed with status code: %d, error %s\n",
			resp.StatusCode, http.StatusText(resp.StatusCode))
		a.logger.Warn("Login rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("email", email))
		return nil, fmt.Errorf("%w: status %d", ErrLoginFailed, resp.StatusCode)
	}

	fmt.Fprintln(a.out, "Login successful!")

	session := &Session{
		httpClient: httpClient,
		email:      email,
		createdAt:  time.Now(),
	}

	a.logger.Info("Logged in",
		zap.String("email", email),
		zap.Int("cookies", len(session.Cookies(a.cfg.LoginURL))))

	return session, nil
}

func (a *Authenticator) newHTTPClient() (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &http.Client{
		Jar:       jar,
		Timeout:   a.timeout,
		Transport: a.transport,
	}, nil
}

func (a *Authenticator) fetchAuthenticityToken(ctx context.Context, httpClient *http.Client) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.LoginURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrAuthPage, err)
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthPage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrAuthPage, resp.StatusCode)
	}

	token, err := extractAuthenticityToken(resp.Body)
	if err != nil {
		return "", err
	}

	a.logger.Debug("Login page fetched",
		zap.String("url", a.cfg.LoginURL),
		zap.Int("status", resp.StatusCode))

	return token, nil
}

// extractAuthenticityToken finds <input name="authenticity_token" value="..."> in an HTML document
func extractAuthenticityToken(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse login page: %v", ErrAuthPage, err)
	}

	var find func(n *html.Node) (string, bool)
	find = func(n *html.Node) (string, bool) {
		if n.Type == html.ElementNode && n.Data == "input" && attr(n, "name") == authenticityTokenField {
			return attr(n, "value"), true
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if value, ok := find(child); ok {
				return value, true
			}
		}
		return "", false
	}

	token, ok := find(doc)
	if !ok || token == "" {
		return "", fmt.Errorf("%w: %s not found on login page", ErrAuthPage, authenticityTokenField)
	}
	return token, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
