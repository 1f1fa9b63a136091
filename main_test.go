package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gitlab.com/tozd/go/errors"

	"ai_text_improver/revision"
	"ai_text_improver/settings"
)

type upstream struct {
	srv    *httptest.Server
	bodies []string
	auth   []string
}

func newUpstream(t *testing.T, status int, reply string) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		u.bodies = append(u.bodies, string(data))
		u.auth = append(u.auth, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func completion(content string) string {
	data, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]string{"role": "assistant", "content": content}}},
	})
	return string(data)
}

func TestRevise_FromArgs(t *testing.T) {
	u := newUpstream(t, http.StatusOK, completion("Hello — world"))
	cfg := writeSettings(t, "api_key: sk-test\nbase_url: "+u.srv.URL+"\n")

	out, _, err := runCLI(t, "", "--config", cfg, "revise", "--tone", "Formal", "--readable", "hello", "world")
	require.NoError(t, err)

	assert.Equal(t, "Hello - world\n", out)
	require.Len(t, u.bodies, 1)
	assert.Equal(t, "Bearer sk-test", u.auth[0])
	assert.Equal(t, "hello world", gjson.Get(u.bodies[0], "messages.1.content").String())
	assert.Equal(t, revision.BuildPrompt(revision.ToneFormal, true), gjson.Get(u.bodies[0], "messages.0.content").String())
}

func TestRevise_FromStdinAsHTML(t *testing.T) {
	u := newUpstream(t, http.StatusOK, completion("**Done**"))
	cfg := writeSettings(t, "api_key: sk-test\nbase_url: "+u.srv.URL+"\n")

	out, _, err := runCLI(t, "  some text\n", "--config", cfg, "revise", "--format", "html")
	require.NoError(t, err)

	assert.Equal(t, "<p><strong>Done</strong></p>\n", out)
	assert.Equal(t, "some text", gjson.Get(u.bodies[0], "messages.1.content").String())
}

func TestRevise_EnvKeyFallback(t *testing.T) {
	u := newUpstream(t, http.StatusOK, completion("ok"))
	cfg := writeSettings(t, "base_url: "+u.srv.URL+"\n")
	t.Setenv(envAPIKey, "sk-env")

	_, _, err := runCLI(t, "", "--config", cfg, "revise", "text")
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-env", u.auth[0])
}

func TestRevise_Errors(t *testing.T) {
	t.Setenv(envAPIKey, "")

	t.Run("upstream error message", func(t *testing.T) {
		u := newUpstream(t, http.StatusUnauthorized, `{"error":{"message":"Invalid API key"}}`)
		cfg := writeSettings(t, "api_key: sk-bad\nbase_url: "+u.srv.URL+"\n")

		out, stderr, err := runCLI(t, "", "--config", cfg, "revise", "text")
		require.Error(t, err)
		var up *revision.UpstreamError
		require.True(t, errors.As(err, &up))
		assert.Equal(t, http.StatusUnauthorized, up.StatusCode)
		assert.Equal(t, "Invalid API key", err.Error())
		assert.Empty(t, out)
		assert.Contains(t, stderr, revision.ErrorImprovingText)
	})

	t.Run("missing key", func(t *testing.T) {
		u := newUpstream(t, http.StatusOK, completion("ok"))
		cfg := writeSettings(t, "base_url: "+u.srv.URL+"\n")

		_, _, err := runCLI(t, "", "--config", cfg, "revise", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api key not configured")
		assert.Empty(t, u.bodies)
	})

	t.Run("no text", func(t *testing.T) {
		cfg := writeSettings(t, "api_key: sk-test\n")
		_, _, err := runCLI(t, "   ", "--config", cfg, "revise")
		assert.EqualError(t, err, "no text to revise")
	})

	t.Run("unknown tone", func(t *testing.T) {
		cfg := writeSettings(t, "api_key: sk-test\n")
		_, _, err := runCLI(t, "", "--config", cfg, "revise", "--tone", "angry", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "angry")
	})

	t.Run("bad timeout", func(t *testing.T) {
		cfg := writeSettings(t, "timeout: soon\n")
		_, _, err := runCLI(t, "", "--config", cfg, "revise", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), settings.KeyTimeout)
	})
}

func TestKeyCommands(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	out, _, err := runCLI(t, "", "--config", cfg, "key", "set", "  sk-saved ")
	require.NoError(t, err)
	assert.Contains(t, out, "API key saved to "+cfg)

	store, err := settings.OpenFileStore(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sk-saved", settings.APIKey(store))

	_, _, err = runCLI(t, "", "--config", cfg, "key", "unset")
	require.NoError(t, err)

	store, err = settings.OpenFileStore(cfg)
	require.NoError(t, err)
	assert.Equal(t, "", settings.APIKey(store))

	_, _, err = runCLI(t, "", "--config", cfg, "key", "set", " ")
	assert.EqualError(t, err, "api key is empty")
}
