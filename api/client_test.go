package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL+"/api/v0", opts...)
	require.NoError(t, err)
	return client
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient("ftp://example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme must be http or https")
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	client, err := NewClient("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL.String())
}

func TestBuildURLPreservesPrefix(t *testing.T) {
	client, err := NewClient("http://localhost:9000/api/v0")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/api/v0/spaces/default/sessions",
		client.buildURL("spaces/default/sessions"))
	assert.Equal(t, "http://localhost:9000/api/v0/health",
		client.buildURL("/health"))
}

func TestLogin(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v0/auth/login", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		fmt.Fprint(w, `{"token":"tok-abc"}`)
	})
	mux.HandleFunc("GET /api/v0/version", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"version":"1.2.3","api":"v0"}`)
	})

	client := newTestClient(t, mux)
	require.NoError(t, client.Login(context.Background(), "admin", "hunter2"))

	assert.Equal(t, "admin", gjson.Get(gotBody, "user").String())
	assert.Equal(t, "hunter2", gjson.Get(gotBody, "pass").String())

	info, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", info.Version)
}

func TestReauthOn401(t *testing.T) {
	var logins, calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v0/auth/login", func(w http.ResponseWriter, r *http.Request) {
		logins.Add(1)
		fmt.Fprint(w, `{"token":"fresh-token"}`)
	})
	mux.HandleFunc("GET /api/v0/spaces", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"token expired"}}`)
			return
		}
		fmt.Fprint(w, `[{"name":"default"}]`)
	})

	client := newTestClient(t, mux,
		WithToken("stale-token"),
		WithCredentials("admin", "hunter2"))

	spaces, err := client.ListSpaces(context.Background())
	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.Equal(t, "default", spaces[0].Name)

	assert.EqualValues(t, 1, logins.Load(), "exactly one re-login")
	assert.EqualValues(t, 2, calls.Load(), "original call plus one retry")
}

func TestNoRetryWithoutCredentials(t *testing.T) {
	var calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v0/spaces", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad token"}}`)
	})

	client := newTestClient(t, mux, WithToken("stale-token"))

	_, err := client.ListSpaces(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Unauthorized())
	assert.EqualValues(t, 1, calls.Load(), "token-only clients never retry")
}

func TestRetryIsBounded(t *testing.T) {
	var logins, calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v0/auth/login", func(w http.ResponseWriter, r *http.Request) {
		logins.Add(1)
		fmt.Fprint(w, `{"token":"still-bad"}`)
	})
	mux.HandleFunc("GET /api/v0/spaces", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"nope"}}`)
	})

	client := newTestClient(t, mux, WithCredentials("admin", "hunter2"))

	_, err := client.ListSpaces(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.EqualValues(t, 1, logins.Load())
	assert.EqualValues(t, 2, calls.Load(), "at most one retry per call")
}

func TestErrorEnvelopeParsing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v0/spaces/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"message":"space not found"}}`)
	})

	client := newTestClient(t, mux, WithToken("tok"))

	_, err := client.GetSpace(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "space not found", apiErr.Message)
	assert.Equal(t, "backend error (status 404): space not found", apiErr.Error())
}

func TestErrorRawBodyFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v0/spaces/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "internal server error\n")
	})

	client := newTestClient(t, mux, WithToken("tok"))

	_, err := client.GetSpace(context.Background(), "broken")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "internal server error", apiErr.Message)
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(url + "/api/v0")
	require.NoError(t, err)

	_, err = client.ListSpaces(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "backend unreachable")
}

func TestDefaultSpaceSubstitution(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `[]`)
	})

	client := newTestClient(t, mux, WithToken("tok"), WithDefaultSpace("staging"))

	_, err := client.ListSessions(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/api/v0/spaces/staging/sessions", gotPath)

	_, err = client.ListSessions(context.Background(), "prod")
	require.NoError(t, err)
	assert.Equal(t, "/api/v0/spaces/prod/sessions", gotPath)
}

func TestGetMessagesLimit(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `[]`)
	})

	client := newTestClient(t, mux, WithToken("tok"))

	_, err := client.GetMessages(context.Background(), "default", "sess-1", 0)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)

	_, err = client.GetMessages(context.Background(), "default", "sess-1", 25)
	require.NoError(t, err)
	assert.Equal(t, "limit=25", gotQuery)
}

func TestHealthCheckReturnsRawText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v0/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	client := newTestClient(t, mux)

	text, err := client.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OK", text)
}

func TestGlobalSessionRoutes(t *testing.T) {
	var gotPaths []string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		fmt.Fprint(w, `{"id":"sess-2"}`)
	})

	client := newTestClient(t, mux, WithToken("tok"))
	ctx := context.Background()

	require.NoError(t, client.CloseSession(ctx, "sess-1"))
	require.NoError(t, client.RestoreSession(ctx, "sess-1"))
	_, err := client.RemixSession(ctx, "sess-1", &CreateSessionRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /api/v0/sessions/sess-1/close",
		"POST /api/v0/sessions/sess-1/restore",
		"POST /api/v0/sessions/sess-1/remix",
	}, gotPaths)
}

func TestUpdateSessionStateBody(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{}`)
	})

	client := newTestClient(t, mux, WithToken("tok"))

	err := client.UpdateSessionState(context.Background(), "default", "sess-1", SessionPaused)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"state": "PAUSED"}, gotBody)
}

func TestCreateSecretBody(t *testing.T) {
	var gotPath, gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		fmt.Fprint(w, `{"key":"API_KEY"}`)
	})

	client := newTestClient(t, mux, WithToken("tok"))

	desc := "deploy key"
	_, err := client.CreateSecret(context.Background(), "prod", "API_KEY", "s3cr3t", &desc)
	require.NoError(t, err)

	// The key addresses the secret through the path; the body carries only
	// value and description.
	assert.Equal(t, "/api/v0/spaces/prod/secrets/API_KEY", gotPath)
	assert.Equal(t, "s3cr3t", gjson.Get(gotBody, "value").String())
	assert.Equal(t, "deploy key", gjson.Get(gotBody, "description").String())
	assert.False(t, gjson.Get(gotBody, "key").Exists())
}

func TestErrorsAsWrapping(t *testing.T) {
	err := fmt.Errorf("login: %w", &Error{Status: 401, Message: "nope"})

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.Unauthorized())
}
