// Package camera implements the HTTP client for the Reolink camera API.
//
// The camera speaks a JSON dialect over plain HTTP: every command is a POST
// to a single CGI endpoint with the command name and session token in the
// query string and a single-element JSON array as the body. Authentication
// is token based; the token is acquired lazily on the first real command and
// must be released with Logout, since cameras cap the number of concurrent
// sessions.
package camera

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultUsername = "admin"
	defaultTimeout  = 10 * time.Second

	actionGet = 0
	actionSet = 1
)

// Response codes the vendor API uses for auth failures and for commands the
// camera model does not implement. Fixed by the vendor; do not extend.
var (
	authCodes        = map[int]bool{-6: true, -7: true, 287: true}
	unsupportedCodes = map[int]bool{-9: true, -12: true}
)

// Object is an opaque configuration blob as returned by the camera. The keys
// a Get command returns are a superset of the keys the matching Set command
// requires, which is what makes the read-modify-write setter pattern safe.
type Object map[string]any

// Options configures a Client. Host is required; Username defaults to
// "admin" and Timeout to 10 seconds.
type Options struct {
	Host     string
	Username string
	Password string
	Channel  int
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Client is a session-scoped client for one camera. It holds the auth token
// for the lifetime of the session and is not safe for concurrent use; create
// one Client per connection.
type Client struct {
	host     string
	username string
	password string
	channel  int
	timeout  time.Duration

	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
	log          *slog.Logger

	token string
}

// New builds a client from connection parameters. No network traffic happens
// until the first command; login is performed lazily.
func New(opts Options) *Client {
	username := opts.Username
	if username == "" {
		username = defaultUsername
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		host:       opts.Host,
		username:   username,
		password:   opts.Password,
		channel:    opts.Channel,
		timeout:    timeout,
		baseURL:    fmt.Sprintf("http://%s/cgi-bin/api.cgi", opts.Host),
		httpClient: &http.Client{Timeout: timeout},
		// Recording downloads can outlast any sane request timeout, so the
		// streaming client relies on context cancellation alone.
		streamClient: &http.Client{},
		log:          logger,
	}
}

// Host returns the camera host the client was built for.
func (c *Client) Host() string { return c.host }

// Username returns the login username.
func (c *Client) Username() string { return c.username }

// Password returns the login password. Exposed for stream URL construction,
// which embeds credentials per the vendor's RTSP/RTMP scheme.
func (c *Client) Password() string { return c.password }

// Channel returns the video channel index the client addresses.
func (c *Client) Channel() int { return c.channel }

// Token returns the current session token, empty before login.
func (c *Client) Token() string { return c.token }

type request struct {
	Cmd    string `json:"cmd"`
	Action int    `json:"action"`
	Param  any    `json:"param,omitempty"`
}

type apiError struct {
	RspCode int    `json:"rspCode"`
	Detail  string `json:"detail"`
}

type response struct {
	Cmd   string    `json:"cmd"`
	Code  int       `json:"code"`
	Value Object    `json:"value"`
	Error *apiError `json:"error"`
}

// post sends one command envelope and decodes the list-wrapped reply.
// Transport failures come back as KindNetwork; a body that is not valid JSON
// is KindAPI, since the server did respond.
func (c *Client) post(ctx context.Context, query url.Values, body []request) ([]response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apiErrorf("encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?"+query.Encode(), bytes.NewReader(payload))
	if err != nil {
		return nil, apiErrorf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, networkErrorf("HTTP error from %s: %s", c.host, resp.Status)
	}

	var out []response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apiErrorf("invalid JSON response from %s", c.host)
	}
	c.log.Debug("api call", "cmd", query.Get("cmd"), "duration", time.Since(start))
	return out, nil
}

// transportError maps a round-trip failure to a typed network error. A
// timeout names the configured timeout so the operator can tell an asleep
// battery camera from a wrong IP.
func (c *Client) transportError(err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{
			Kind:    KindNetwork,
			Message: fmt.Sprintf("connection to %s timed out after %s", c.host, c.timeout),
			Err:     err,
		}
	}
	return &Error{
		Kind:    KindNetwork,
		Message: fmt.Sprintf("cannot connect to camera at %s", c.host),
		Err:     err,
	}
}

// Login authenticates and stores the session token, replacing any token the
// client already held. Most callers never call this directly; Execute logs
// in lazily.
func (c *Client) Login(ctx context.Context) error {
	body := []request{{
		Cmd:    "Login",
		Action: actionGet,
		Param: Object{
			"User": Object{
				"userName": c.username,
				"password": c.password,
			},
		},
	}}
	query := url.Values{}
	query.Set("cmd", "Login")

	result, err := c.post(ctx, query, body)
	if err != nil {
		return err
	}
	var item response
	if len(result) > 0 {
		item = result[0]
	}

	if item.Error != nil {
		detail := item.Error.Detail
		if detail == "" {
			detail = "unknown error"
		}
		if authCodes[item.Error.RspCode] {
			return authErrorf("login failed: %s", detail)
		}
		return apiErrorf("login error: %s", detail)
	}

	// A 0-code login response must always carry a token; anything else is a
	// broken auth exchange, not a success.
	token, _ := nested(item.Value, "Token")["name"].(string)
	if token == "" {
		return authErrorf("login succeeded but no token returned")
	}
	c.token = token
	c.log.Debug("logged in", "host", c.host, "user", c.username)
	return nil
}

// Logout releases the session slot on the camera. It never fails: errors are
// swallowed because this is cleanup, and the stored token is cleared even
// when the camera is unreachable. Calling Logout on a never-authenticated
// client is a no-op.
func (c *Client) Logout(ctx context.Context) {
	if c.token == "" {
		return
	}
	defer func() { c.token = "" }()

	query := url.Values{}
	query.Set("cmd", "Logout")
	query.Set("token", c.token)
	if _, err := c.post(ctx, query, []request{{Cmd: "Logout", Action: actionGet}}); err != nil {
		c.log.Debug("logout failed", "host", c.host, "error", err)
	}
}

func (c *Client) ensureLoggedIn(ctx context.Context) error {
	if c.token != "" {
		return nil
	}
	return c.Login(ctx)
}

// Execute runs an API command and returns the value object from the reply.
// It logs in lazily on the first call. A token the camera rejects mid-session
// surfaces as a KindAuth error; there is deliberately no relogin-and-retry
// here, since that would mask session-slot exhaustion on the camera.
func (c *Client) Execute(ctx context.Context, cmd string, action int, param any) (Object, error) {
	if err := c.ensureLoggedIn(ctx); err != nil {
		return nil, err
	}

	body := request{Cmd: cmd, Action: action}
	if param != nil {
		body.Param = param
	}
	query := url.Values{}
	query.Set("cmd", cmd)
	query.Set("token", c.token)

	result, err := c.post(ctx, query, []request{body})
	if err != nil {
		return nil, err
	}
	var item response
	if len(result) > 0 {
		item = result[0]
	}
	return classify(cmd, item)
}

// classify converts one response envelope into a value object or a typed
// error. The explicit error object wins; some firmware instead reports
// failure through a bare non-zero code, which gets the same three-way
// classification.
func classify(cmd string, item response) (Object, error) {
	if item.Error != nil {
		detail := item.Error.Detail
		if detail == "" {
			detail = "unknown error"
		}
		switch {
		case authCodes[item.Error.RspCode]:
			return nil, authErrorf("API auth error: %s", detail)
		case unsupportedCodes[item.Error.RspCode]:
			return nil, unsupportedErrorf("%s", detail)
		default:
			return nil, apiErrorf("API error (%s): %s", cmd, detail)
		}
	}

	if item.Code != 0 {
		switch {
		case authCodes[item.Code]:
			return nil, authErrorf("API auth error (code %d)", item.Code)
		case unsupportedCodes[item.Code]:
			return nil, unsupportedErrorf("feature not supported on this camera model")
		default:
			return nil, apiErrorf("API error (%s): code %d", cmd, item.Code)
		}
	}

	if item.Value == nil {
		return Object{}, nil
	}
	return item.Value, nil
}

// nested returns the object stored under key, or nil when absent or not an
// object.
func nested(value Object, key string) Object {
	if m, ok := value[key].(map[string]any); ok {
		return Object(m)
	}
	return nil
}

// unwrap returns the object stored under key, falling back to the whole
// value when the camera omits the wrapper key. Different firmware versions
// disagree on the nesting, so every typed getter tolerates both shapes.
func unwrap(value Object, key string) Object {
	if m := nested(value, key); m != nil {
		return m
	}
	return value
}

// unwrapList returns the list of objects under key, or nil when absent.
func unwrapList(value Object, key string) []Object {
	raw, ok := value[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Object, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Object(m))
		}
	}
	return out
}

func (c *Client) channelParam() Object {
	return Object{"channel": c.channel}
}
