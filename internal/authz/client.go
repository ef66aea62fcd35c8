package authz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RsrchBoy/github-authorization/internal/logx"
)

// DefaultAPIURL is the production GitHub API endpoint.
const DefaultAPIURL = "https://api.github.com"

// otpHeader is both the challenge marker on a 401 response and the request
// header carrying the user's one-time password on the retry.
const otpHeader = "X-GitHub-OTP"

// App identifies the OAuth application an authorization belongs to.
type App struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	ClientID string `json:"client_id,omitempty"`
}

// Authorization is GitHub's record of an issued token. The Token field is
// only ever returned at creation time; persisting it is the caller's job,
// this library keeps nothing.
type Authorization struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	Note      *string   `json:"note"`
	NoteURL   *string   `json:"note_url"`
	Scopes    []string  `json:"scopes"`
	App       App       `json:"app"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Client issues authorizations against a GitHub-style API. The zero value is
// usable and talks to DefaultAPIURL with http.DefaultClient and the
// interactive terminal OTP prompt.
//
// A Client carries no per-call state; concurrent Issue calls need no locking.
type Client struct {
	// APIURL overrides DefaultAPIURL, e.g. for a GitHub Enterprise host or
	// a test server.
	APIURL string

	// HTTPClient is used for both POSTs. Certificate verification is left
	// untouched: a spoofed endpoint seeing credentials is worse than any
	// convenience gained by disabling it.
	HTTPClient *http.Client

	// OTPPrompt is invoked when the server demands a one-time password.
	// Nil means TerminalPrompt.
	OTPPrompt OTPPrompt

	// AllowInsecure permits plain http:// API URLs (local mock servers).
	// It does not relax TLS verification on https URLs.
	AllowInsecure bool
}

// Issue exchanges creds for a new authorization. It validates input, POSTs
// to /authorizations, answers at most one X-GitHub-OTP challenge, and
// returns the created record or one of *ValidationError,
// *OTPAcquisitionError, *RemoteError, *TransportError.
func (c *Client) Issue(ctx context.Context, creds Credentials, req Request) (*Authorization, error) {
	if err := Validate(creds, req); err != nil {
		return nil, err
	}

	apiURL := strings.TrimRight(c.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if !strings.HasPrefix(apiURL, "https://") && !c.AllowInsecure {
		return nil, fmt.Errorf("API URL %q is not HTTPS; set AllowInsecure to permit plaintext HTTP", apiURL)
	}

	// The scopes field is always sent, even when empty. An empty array and
	// an absent field mean the same thing to the API; sending one shape
	// unconditionally keeps the wire format predictable.
	if req.Scopes == nil {
		req.Scopes = []string{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	auth := BasicAuth(creds.User, creds.Password)
	endpoint := apiURL + "/authorizations"

	logx.Debugf("authz.issue url=%s scopes=%v note=%q", endpoint, req.Scopes, req.Note)

	resp, respBody, err := c.post(ctx, endpoint, auth, "", body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return parseAuthorization(respBody)
	}

	challenge, challenged := detectChallenge(resp)
	if !challenged {
		return nil, remoteError(resp, respBody)
	}

	logx.Debugf("authz.issue otp challenge type=%q", challenge.Type)

	prompt := c.OTPPrompt
	if prompt == nil {
		prompt = TerminalPrompt
	}
	code, err := prompt(challenge)
	if err != nil {
		return nil, &OTPAcquisitionError{Err: err}
	}
	if code == "" {
		return nil, &OTPAcquisitionError{}
	}

	// Single retry. A second challenge on this response is treated as a
	// plain remote failure, never another prompt.
	resp, respBody, err = c.post(ctx, endpoint, auth, code, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return parseAuthorization(respBody)
	}
	return nil, remoteError(resp, respBody)
}

func (c *Client) post(ctx context.Context, endpoint, auth, otp string, body []byte) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Authorization", auth)
	if otp != "" {
		req.Header.Set(otpHeader, otp)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	return resp, respBody, nil
}

// detectChallenge reports whether resp is a two-factor challenge: a 401
// whose X-GitHub-OTP header starts with "required".
func detectChallenge(resp *http.Response) (OTPChallenge, bool) {
	if resp.StatusCode != http.StatusUnauthorized {
		return OTPChallenge{}, false
	}
	v := resp.Header.Get(otpHeader)
	if !strings.HasPrefix(v, "required") {
		return OTPChallenge{}, false
	}
	ch := OTPChallenge{Header: v}
	if _, delivery, ok := strings.Cut(v, ";"); ok {
		ch.Type = strings.TrimSpace(delivery)
	}
	return ch, true
}

func parseAuthorization(body []byte) (*Authorization, error) {
	var a Authorization
	if err := json.Unmarshal(body, &a); err != nil {
		return nil, fmt.Errorf("unmarshal authorization: %w", err)
	}
	return &a, nil
}

func remoteError(resp *http.Response, body []byte) *RemoteError {
	e := &RemoteError{
		StatusCode: resp.StatusCode,
		Reason:     http.StatusText(resp.StatusCode),
		Message:    strings.TrimSpace(string(body)),
	}
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		e.Message = parsed.Message
	}
	return e
}
