package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "courier/internal/errors"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(bytes.NewReader(nil))

	err := cmd.Execute()
	return stdout.String(), err
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts/1":
			_, _ = w.Write([]byte(`{"title":"a","subtitle":"b"}`))
		case "/echo":
			_, _ = w.Write([]byte(r.Method + " " + r.Header.Get("X-Trace")))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRootCommand_Structure(t *testing.T) {
	root := NewRootCommand()

	assert.Equal(t, "courier", root.Use)
	assert.False(t, root.Runnable())

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, expected := range []string{"exec", "run", "version"} {
		assert.True(t, names[expected], expected)
	}

	configFlag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Empty(t, configFlag.DefValue)
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today", "ci")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown", "unknown") })

	out, err := runCLI(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "courier version 1.2.3")
	assert.Contains(t, out, "commit: abc")
}

func TestExecCommand_PrintsJSON(t *testing.T) {
	server := testServer(t)

	out, err := runCLI(t, "exec", "--url", server.URL+"/posts/1", "--output", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"a","subtitle":"b"}`, out)
}

func TestExecCommand_RawWithHeaders(t *testing.T) {
	server := testServer(t)

	out, err := runCLI(t, "exec", "-X", "put", "--url", server.URL+"/echo", "-H", "X-Trace: abc", "--decode", "raw", "--data", "x")

	require.NoError(t, err)
	assert.Equal(t, "PUT abc\n", out)
}

func TestExecCommand_NotFoundFails(t *testing.T) {
	server := testServer(t)

	_, err := runCLI(t, "exec", "--url", server.URL+"/missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, clierrors.ErrNotFound)
	assert.Equal(t, clierrors.ExitNotFound, clierrors.ExitCode(err))
}

func TestExecCommand_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad method", args: []string{"exec", "-X", "FETCH", "--url", "https://example.com"}},
		{name: "bad url", args: []string{"exec", "--url", "example.com"}},
		{name: "bad decoder", args: []string{"exec", "--url", "https://example.com", "--decode", "xml"}},
		{name: "bad header", args: []string{"exec", "--url", "https://example.com", "-H", "nocolon"}},
		{name: "bad cache policy", args: []string{"exec", "--url", "https://example.com", "--cache-policy", "forever"}},
		{name: "bad output", args: []string{"exec", "--url", "https://example.com", "-o", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, clierrors.ErrInvalidInput)
			assert.Equal(t, clierrors.ExitUsage, clierrors.ExitCode(err))
		})
	}
}

func TestRunCommand_Summary(t *testing.T) {
	server := testServer(t)
	path := filepath.Join(t.TempDir(), "requests.yaml")
	content := "version: \"1\"\nrequests:\n" +
		"  - name: post\n    url: " + server.URL + "/posts/1\n" +
		"  - name: missing\n    url: " + server.URL + "/missing\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := runCLI(t, "run", path)

	require.Error(t, err)
	var multi *clierrors.MultiError
	require.ErrorAs(t, err, &multi)
	assert.Len(t, multi.Errors, 1)
	assert.Contains(t, out, "name: post")
	assert.Contains(t, out, "outcome: success")
	assert.Contains(t, out, "status: 404")
	assert.Contains(t, out, "succeeded: 1")
	assert.Contains(t, out, "failed: 1")
}
