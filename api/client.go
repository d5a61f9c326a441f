// Package api is the HTTP client for the Raworc agent-runtime platform.
//
// Routes are space-scoped for sessions, agents, secrets and builds, with a
// handful of global routes (health, version, service accounts, RBAC, and the
// close/restore/remix session operations). Every call carries Bearer auth
// when a token is held; when the client was configured with credentials, a
// 401 triggers a single re-login followed by one retry of the original call.
// No other retry policy exists at this layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/raworc/raworc-mcp/internal/logging"
)

// DefaultBaseURL is the cloud API endpoint used when none is configured.
const DefaultBaseURL = "https://api.remoteagent.com/api/v0"

const defaultTimeout = 30 * time.Second

type Client struct {
	httpClient   *http.Client
	baseURL      *url.URL
	defaultSpace string
	username     string
	password     string
	log          *slog.Logger

	mu    sync.Mutex
	token string
}

type Option func(*Client)

// WithToken sets the bearer token used for Authorization headers.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithCredentials configures a username/password pair. The client exchanges
// them for a token via Login and uses them for re-auth on 401.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithDefaultSpace sets the space used when a call leaves it unspecified.
func WithDefaultSpace(space string) Option {
	return func(c *Client) {
		if space != "" {
			c.defaultSpace = space
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient returns a client for the API rooted at baseURL. An empty baseURL
// selects the cloud endpoint.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("new client: invalid API URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("new client: invalid API URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		baseURL:      parsed,
		defaultSpace: "default",
		log:          logging.Logger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Login exchanges a username/password pair for a bearer token and stores it
// for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"user": username, "pass": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doOnce(ctx, http.MethodPost, "auth/login", body, &resp); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	return nil
}

/* ------------------------------- System -------------------------------- */

// HealthCheck returns the raw health endpoint body. The route is public, so
// it works without a token.
func (c *Client) HealthCheck(ctx context.Context) (string, error) {
	return c.getText(ctx, "health")
}

func (c *Client) Version(ctx context.Context) (*VersionInfo, error) {
	var v VersionInfo
	if err := c.do(ctx, http.MethodGet, "version", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

/* ------------------------------- Spaces -------------------------------- */

func (c *Client) ListSpaces(ctx context.Context) ([]Space, error) {
	var spaces []Space
	if err := c.do(ctx, http.MethodGet, "spaces", nil, &spaces); err != nil {
		return nil, err
	}
	return spaces, nil
}

func (c *Client) CreateSpace(ctx context.Context, req *CreateSpaceRequest) (*Space, error) {
	var space Space
	if err := c.do(ctx, http.MethodPost, "spaces", req, &space); err != nil {
		return nil, err
	}
	return &space, nil
}

func (c *Client) GetSpace(ctx context.Context, name string) (*Space, error) {
	var space Space
	if err := c.do(ctx, http.MethodGet, "spaces/"+name, nil, &space); err != nil {
		return nil, err
	}
	return &space, nil
}

func (c *Client) UpdateSpace(ctx context.Context, name string, req *UpdateSpaceRequest) (*Space, error) {
	var space Space
	if err := c.do(ctx, http.MethodPut, "spaces/"+name, req, &space); err != nil {
		return nil, err
	}
	return &space, nil
}

func (c *Client) DeleteSpace(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "spaces/"+name, nil, nil)
}

/* ------------------------------ Sessions ------------------------------- */

func (c *Client) ListSessions(ctx context.Context, space string) ([]Session, error) {
	var sessions []Session
	path := fmt.Sprintf("spaces/%s/sessions", c.space(space))
	if err := c.do(ctx, http.MethodGet, path, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) CreateSession(ctx context.Context, space string, metadata map[string]any) (*Session, error) {
	var session Session
	path := fmt.Sprintf("spaces/%s/sessions", c.space(space))
	// Space is implied by the path; keep it out of the body.
	req := CreateSessionRequest{Metadata: metadata}
	if err := c.do(ctx, http.MethodPost, path, &req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) GetSession(ctx context.Context, space, sessionID string) (*Session, error) {
	var session Session
	path := fmt.Sprintf("spaces/%s/sessions/%s", c.space(space), sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) UpdateSession(ctx context.Context, space, sessionID string, req *UpdateSessionRequest) (*Session, error) {
	var session Session
	path := fmt.Sprintf("spaces/%s/sessions/%s", c.space(space), sessionID)
	if err := c.do(ctx, http.MethodPut, path, req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) UpdateSessionState(ctx context.Context, space, sessionID string, state SessionState) error {
	path := fmt.Sprintf("spaces/%s/sessions/%s/state", c.space(space), sessionID)
	body := map[string]SessionState{"state": state}
	return c.do(ctx, http.MethodPut, path, body, nil)
}

func (c *Client) PauseSession(ctx context.Context, space, sessionID string) error {
	path := fmt.Sprintf("spaces/%s/sessions/%s/pause", c.space(space), sessionID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) ResumeSession(ctx context.Context, space, sessionID string) error {
	path := fmt.Sprintf("spaces/%s/sessions/%s/resume", c.space(space), sessionID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) TerminateSession(ctx context.Context, space, sessionID string) error {
	path := fmt.Sprintf("spaces/%s/sessions/%s", c.space(space), sessionID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// CloseSession, RestoreSession and RemixSession use the global session
// routes: closed sessions are detached from their space until restored.

func (c *Client) CloseSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, "sessions/"+sessionID+"/close", nil, nil)
}

func (c *Client) RestoreSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, "sessions/"+sessionID+"/restore", nil, nil)
}

func (c *Client) RemixSession(ctx context.Context, sessionID string, req *CreateSessionRequest) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "sessions/"+sessionID+"/remix", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

/* ------------------------------ Messages ------------------------------- */

// GetMessages returns up to limit messages for a session; limit 0 means no
// limit.
func (c *Client) GetMessages(ctx context.Context, space, sessionID string, limit uint64) ([]Message, error) {
	var messages []Message
	path := fmt.Sprintf("spaces/%s/sessions/%s/messages", c.space(space), sessionID)
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) SendMessage(ctx context.Context, space, sessionID, content string) (*Message, error) {
	var message Message
	path := fmt.Sprintf("spaces/%s/sessions/%s/messages", c.space(space), sessionID)
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, path, body, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *Client) GetMessageCount(ctx context.Context, space, sessionID string) (*MessageCount, error) {
	var count MessageCount
	path := fmt.Sprintf("spaces/%s/sessions/%s/messages/count", c.space(space), sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &count); err != nil {
		return nil, err
	}
	return &count, nil
}

func (c *Client) ClearMessages(ctx context.Context, space, sessionID string) error {
	path := fmt.Sprintf("spaces/%s/sessions/%s/messages", c.space(space), sessionID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

/* ------------------------------- Agents -------------------------------- */

func (c *Client) ListAgents(ctx context.Context, space string) ([]Agent, error) {
	var agents []Agent
	path := fmt.Sprintf("spaces/%s/agents", c.space(space))
	if err := c.do(ctx, http.MethodGet, path, nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (c *Client) ListRunningAgents(ctx context.Context, space string) ([]Agent, error) {
	var agents []Agent
	path := fmt.Sprintf("spaces/%s/agents/running", c.space(space))
	if err := c.do(ctx, http.MethodGet, path, nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (c *Client) CreateAgent(ctx context.Context, space string, req *CreateAgentRequest) (*Agent, error) {
	var agent Agent
	path := fmt.Sprintf("spaces/%s/agents", space)
	if err := c.do(ctx, http.MethodPost, path, req, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (c *Client) GetAgent(ctx context.Context, space, agentName string) (*Agent, error) {
	var agent Agent
	path := fmt.Sprintf("spaces/%s/agents/%s", space, agentName)
	if err := c.do(ctx, http.MethodGet, path, nil, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (c *Client) UpdateAgent(ctx context.Context, space, agentName string, req *UpdateAgentRequest) (*Agent, error) {
	var agent Agent
	path := fmt.Sprintf("spaces/%s/agents/%s", space, agentName)
	if err := c.do(ctx, http.MethodPut, path, req, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

func (c *Client) DeleteAgent(ctx context.Context, space, agentName string) error {
	path := fmt.Sprintf("spaces/%s/agents/%s", space, agentName)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) UpdateAgentStatus(ctx context.Context, space, agentName string, status AgentStatus) error {
	path := fmt.Sprintf("spaces/%s/agents/%s/status", space, agentName)
	body := map[string]AgentStatus{"status": status}
	return c.do(ctx, http.MethodPut, path, body, nil)
}

func (c *Client) DeployAgent(ctx context.Context, space, agentName string) error {
	path := fmt.Sprintf("spaces/%s/agents/%s/deploy", space, agentName)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) StopAgent(ctx context.Context, space, agentName string) error {
	path := fmt.Sprintf("spaces/%s/agents/%s/stop", space, agentName)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// AgentLogs returns the raw log text for an agent.
func (c *Client) AgentLogs(ctx context.Context, space, agentName string) (string, error) {
	path := fmt.Sprintf("spaces/%s/agents/%s/logs", space, agentName)
	return c.getText(ctx, path)
}

/* ------------------------------- Secrets ------------------------------- */

func (c *Client) ListSecrets(ctx context.Context, space string) ([]Secret, error) {
	var secrets []Secret
	path := fmt.Sprintf("spaces/%s/secrets", c.space(space))
	if err := c.do(ctx, http.MethodGet, path, nil, &secrets); err != nil {
		return nil, err
	}
	return secrets, nil
}

func (c *Client) CreateSecret(ctx context.Context, space, key, value string, description *string) (*Secret, error) {
	var secret Secret
	path := fmt.Sprintf("spaces/%s/secrets/%s", space, key)
	body := struct {
		Value       string  `json:"value"`
		Description *string `json:"description,omitzero"`
	}{value, description}
	if err := c.do(ctx, http.MethodPost, path, &body, &secret); err != nil {
		return nil, err
	}
	return &secret, nil
}

func (c *Client) GetSecret(ctx context.Context, space, key string) (*Secret, error) {
	var secret Secret
	path := fmt.Sprintf("spaces/%s/secrets/%s", space, key)
	if err := c.do(ctx, http.MethodGet, path, nil, &secret); err != nil {
		return nil, err
	}
	return &secret, nil
}

func (c *Client) UpdateSecret(ctx context.Context, space, key, value string, description *string) (*Secret, error) {
	var secret Secret
	path := fmt.Sprintf("spaces/%s/secrets/%s", space, key)
	body := struct {
		Value       string  `json:"value"`
		Description *string `json:"description,omitzero"`
	}{value, description}
	if err := c.do(ctx, http.MethodPut, path, &body, &secret); err != nil {
		return nil, err
	}
	return &secret, nil
}

func (c *Client) DeleteSecret(ctx context.Context, space, key string) error {
	path := fmt.Sprintf("spaces/%s/secrets/%s", space, key)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

/* --------------------------- Service accounts -------------------------- */

func (c *Client) ListServiceAccounts(ctx context.Context) ([]ServiceAccount, error) {
	var accounts []ServiceAccount
	if err := c.do(ctx, http.MethodGet, "service-accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) CreateServiceAccount(ctx context.Context, req *CreateServiceAccountRequest) (*ServiceAccount, error) {
	var account ServiceAccount
	if err := c.do(ctx, http.MethodPost, "service-accounts", req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) GetServiceAccount(ctx context.Context, id string) (*ServiceAccount, error) {
	var account ServiceAccount
	if err := c.do(ctx, http.MethodGet, "service-accounts/"+id, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) UpdateServiceAccount(ctx context.Context, id string, req *UpdateServiceAccountRequest) (*ServiceAccount, error) {
	var account ServiceAccount
	if err := c.do(ctx, http.MethodPut, "service-accounts/"+id, req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *Client) DeleteServiceAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "service-accounts/"+id, nil, nil)
}

func (c *Client) UpdateServiceAccountPassword(ctx context.Context, id, currentPassword, newPassword string) error {
	body := map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	}
	return c.do(ctx, http.MethodPut, "service-accounts/"+id+"/password", body, nil)
}

/* -------------------------------- RBAC --------------------------------- */

func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.do(ctx, http.MethodGet, "roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) CreateRole(ctx context.Context, req *CreateRoleRequest) (*Role, error) {
	var role Role
	if err := c.do(ctx, http.MethodPost, "roles", req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *Client) GetRole(ctx context.Context, id string) (*Role, error) {
	var role Role
	if err := c.do(ctx, http.MethodGet, "roles/"+id, nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "roles/"+id, nil, nil)
}

func (c *Client) ListRoleBindings(ctx context.Context) ([]RoleBinding, error) {
	var bindings []RoleBinding
	if err := c.do(ctx, http.MethodGet, "role-bindings", nil, &bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

func (c *Client) CreateRoleBinding(ctx context.Context, req *CreateRoleBindingRequest) (*RoleBinding, error) {
	var binding RoleBinding
	if err := c.do(ctx, http.MethodPost, "role-bindings", req, &binding); err != nil {
		return nil, err
	}
	return &binding, nil
}

func (c *Client) GetRoleBinding(ctx context.Context, id string) (*RoleBinding, error) {
	var binding RoleBinding
	if err := c.do(ctx, http.MethodGet, "role-bindings/"+id, nil, &binding); err != nil {
		return nil, err
	}
	return &binding, nil
}

func (c *Client) DeleteRoleBinding(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "role-bindings/"+id, nil, nil)
}

/* ------------------------------- Builds -------------------------------- */

func (c *Client) CreateBuild(ctx context.Context, space string, req *CreateBuildRequest) (*Build, error) {
	var build Build
	path := fmt.Sprintf("spaces/%s/build", space)
	if err := c.do(ctx, http.MethodPost, path, req, &build); err != nil {
		return nil, err
	}
	return &build, nil
}

func (c *Client) GetLatestBuild(ctx context.Context, space string) (*Build, error) {
	var build Build
	path := fmt.Sprintf("spaces/%s/build/latest", space)
	if err := c.do(ctx, http.MethodGet, path, nil, &build); err != nil {
		return nil, err
	}
	return &build, nil
}

func (c *Client) GetBuild(ctx context.Context, space, buildID string) (*Build, error) {
	var build Build
	path := fmt.Sprintf("spaces/%s/build/%s", space, buildID)
	if err := c.do(ctx, http.MethodGet, path, nil, &build); err != nil {
		return nil, err
	}
	return &build, nil
}

/* ------------------------------ Internals ------------------------------ */

// space resolves an optional space argument to the configured default.
func (c *Client) space(space string) string {
	if space != "" {
		return space
	}
	return c.defaultSpace
}

// buildURL joins path onto the base URL, preserving any path prefix such as
// /api/v0.
func (c *Client) buildURL(path string) string {
	base := strings.TrimSuffix(c.baseURL.String(), "/")
	return base + "/" + strings.TrimPrefix(path, "/")
}

func (c *Client) bearerToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// do performs one JSON request and decodes the response into out (which may
// be nil for calls with no interesting body). On a 401, if credentials are
// configured, it re-authenticates once and retries the call once.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.doOnce(ctx, method, path, body, out)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Unauthorized() && c.username != "" && c.password != "" {
		c.log.Debug("re-authenticating after 401", "path", path)
		if loginErr := c.Login(ctx, c.username, c.password); loginErr != nil {
			return loginErr
		}
		return c.doOnce(ctx, method, path, body, out)
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encoding body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.setHeaders(req)

	c.log.Debug("backend call", "method", method, "path", path)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return readError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}

// getText is for routes that return plain text rather than JSON (health,
// agent logs).
func (c *Client) getText(ctx context.Context, path string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), nil)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", path, err)
	}
	c.setHeaders(req)

	c.log.Debug("backend call", "method", "GET", "path", path)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Message: err.Error()}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", readError(res)
	}
	text, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("GET %s: reading response: %w", path, err)
	}
	return string(text), nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// readError converts a non-2xx response into *Error, preferring the
// backend's structured error envelope over the raw body.
func readError(res *http.Response) error {
	text, err := io.ReadAll(res.Body)
	if err != nil {
		text = []byte("unknown error")
	}

	var envelope apiErrorBody
	if err := json.Unmarshal(text, &envelope); err == nil && envelope.Error.Message != "" {
		return &Error{Status: res.StatusCode, Message: envelope.Error.Message}
	}
	return &Error{Status: res.StatusCode, Message: strings.TrimSpace(string(text))}
}
