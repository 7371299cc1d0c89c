package connect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var ticketURLPattern = regexp.MustCompile(`response_url\s*=\s*"(https:[^"]+)"`)

// Login authenticates the session against the SSO service. The session
// cookies are kept in the client's jar for later calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{
		"username": {username},
		"password": {password},
		"embed":    {"false"},
	}
	params := url.Values{"service": {c.connectURL + "/modern"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.ssoURL+"/sso/signin?"+params.Encode(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("connect: create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", c.ssoURL)

	page, err := c.fetch(req)
	if err != nil {
		return fmt.Errorf("connect: login: %w", err)
	}

	ticketURL, err := extractTicketURL(page)
	if err != nil {
		return err
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, ticketURL, nil)
	if err != nil {
		return fmt.Errorf("connect: create ticket request: %w", err)
	}
	if _, err := c.fetch(req); err != nil {
		return fmt.Errorf("connect: exchanging ticket: %w", err)
	}
	return nil
}

func (c *Client) fetch(req *http.Request) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Method: req.Method, Path: req.URL.Path, Status: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

// extractTicketURL finds the post-login redirect in the SSO response page.
// The page escapes slashes, e.g. "https:\/\/connect...".
func extractTicketURL(page string) (string, error) {
	m := ticketURLPattern.FindStringSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("connect: no auth ticket URL in login response")
	}
	return strings.ReplaceAll(m[1], `\`, ""), nil
}
