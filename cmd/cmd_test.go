package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/smarturl/core/shortcut"
)

type env struct {
	store    string
	download string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	return env{store: filepath.Join(dir, "smarturl.db"), download: filepath.Join(dir, "out")}
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	saveName, saveTitle, saveFormat, saveAll, saveLimit = "", "", "url", false, 50
	linkText, linkPage = "", false
	analyzeTitle, analyzeOutput = "", "text"

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--store", e.store, "--download-dir", e.download}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

const articleHTML = `<html><head><title>Kubernetes Operators Guide</title></head>
<body><main>
<h1>Kubernetes Operators</h1>
<p>Operators extend Kubernetes. Operators reconcile desired state.</p>
<p>Writing operators means writing reconcile loops for Kubernetes.</p>
</main></body></html>`

func TestSettingsCommands(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "settings", "get", "maxKeywords")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	_, err = e.run(t, "settings", "set", "maxKeywords", "3")
	require.NoError(t, err)

	out, err = e.run(t, "settings", "get", "maxKeywords")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, err = e.run(t, "settings", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "maxKeywords: 3")
	assert.Contains(t, out, "filenameTemplate: '{keywords}'")

	_, err = e.run(t, "settings", "set", "colour", "blue")
	assert.Error(t, err)

	_, err = e.run(t, "settings", "reset")
	require.NoError(t, err)
	out, err = e.run(t, "settings", "get", "maxKeywords")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestLinkCommand(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "link", "https://docs.example.com/install", "--text", "Install Guide")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Saved: Install_Guide.url")

	data, err := os.ReadFile(filepath.Join(e.download, "Install_Guide.url"))
	require.NoError(t, err)
	target, err := shortcut.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/install", target)

	out, err = e.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Install_Guide.url")
	assert.Contains(t, out, "https://docs.example.com/install")
}

func TestSaveAndAnalyzeCommands(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	e := newEnv(t)

	out, err := e.run(t, "analyze", srv.URL+"/guide")
	require.NoError(t, err)
	assert.Contains(t, out, "Title:    Kubernetes Operators Guide")
	assert.Contains(t, out, "Filename: operators_kubernetes_reconcile_writing_guide.url")

	out, err = e.run(t, "save", srv.URL+"/guide")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Saved: operators_kubernetes_reconcile_writing_guide.url")
	assert.FileExists(t, filepath.Join(e.download, "operators_kubernetes_reconcile_writing_guide.url"))

	_, err = e.run(t, "save", srv.URL+"/guide", "--name", "k8s notes", "--format", "markdown")
	require.NoError(t, err)
	note, err := os.ReadFile(filepath.Join(e.download, "k8s notes.md"))
	require.NoError(t, err)
	assert.Contains(t, string(note), "# [Kubernetes Operators Guide]("+srv.URL+"/guide)")

	_, err = e.run(t, "save", srv.URL, "--format", "docx")
	assert.Error(t, err)
}

func TestSaveFallsBackWhenPageIsDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := newEnv(t)
	out, err := e.run(t, "save", srv.URL+"/x", "--title", "Release Notes")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Saved: Release_Notes.url")
}

func TestCommandsRunWithoutStore(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))
	e := env{store: filepath.Join(blocker, "smarturl.db"), download: filepath.Join(dir, "out")}

	out, err := e.run(t, "link", "https://example.com/docs", "--text", "Install Guide")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Saved: Install_Guide.url")
	assert.FileExists(t, filepath.Join(e.download, "Install_Guide.url"))

	out, err = e.run(t, "settings", "get", "maxKeywords")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	_, err = e.run(t, "history")
	assert.ErrorIs(t, err, errNoStore)

	_, err = e.run(t, "settings", "set", "maxKeywords", "3")
	assert.Error(t, err)

	_, err = e.run(t, "settings", "reset")
	assert.Error(t, err)
}
