package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/bububa/waypoint/cmd/waypoint"
	"github.com/bububa/waypoint/components/document"
)

// letterEmbedding embeds text as its letter histogram plus a constant
// dimension.
func letterEmbedding(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 27)
	vec[26] = 0.01
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		}
	}
	return vec, nil
}

type answererFunc func(ctx context.Context, prompt string) (string, error)

func (f answererFunc) Answer(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"scrape", "clean", "chunk", "index", "ask", "serve"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_NoCommand(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), nil, stdout, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "chunk")
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{"help"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "scrape")
}

func TestMain_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "waypoint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("chunk:\n  max_tokens: 0\n"), 0o644))

	m := main.NewMain()
	m.ConfigPath = cfgPath
	err := m.Run(context.Background(), []string{"clean", "-i", filepath.Join(dir, "in.json")}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid config")
}

func TestMain_Run_ReportsErrorOnce(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{"clean", "-i", filepath.Join(t.TempDir(), "missing.json")}, &bytes.Buffer{}, stderr)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, stderr.String())
}

func TestMain_Run_Pipeline(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := func(name string) string { return filepath.Join(dir, name) }

	require.NoError(t, os.WriteFile(path("clubs.html"), []byte(`<html>
<head><title>Clubs</title><meta name="description" content="Student clubs"></head>
<body>
<nav><a href="/">Home</a></nav>
<main>
<h1>Robotics Club</h1>
<p>The robotics club meets every Tuesday in room 204.</p>
<p>The chess club meets on Friday afternoons in the library.</p>
</main>
</body>
</html>`), 0o644))
	require.NoError(t, os.WriteFile(path("waypoint.yaml"), []byte(`
tokenizer:
  encoding: runes
chunk:
  max_tokens: 32
index:
  path: `+path("index")+`
  top_k: 2
log:
  level: error
`), 0o644))

	var prompt string
	m := main.NewMain()
	m.EmbeddingFunc = letterEmbedding
	m.Answerer = answererFunc(func(_ context.Context, p string) (string, error) {
		prompt = p
		return "On Tuesday.", nil
	})
	run := func(args ...string) string {
		t.Helper()
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := m.Run(context.Background(), append([]string{"--config", path("waypoint.yaml")}, args...), stdout, stderr)
		require.NoError(t, err, stderr.String())
		return stdout.String()
	}

	out := run("scrape", path("clubs.html"), "-o", path("data.json"))
	assert.Contains(t, out, "Total number of entries: 1")
	scraped, err := document.ReadFile(path("data.json"))
	require.NoError(t, err)
	require.Len(t, scraped, 1)
	assert.Equal(t, "Clubs", scraped[0].String(document.FieldTitle))
	assert.Contains(t, scraped[0].String(document.FieldMarkdown), "Robotics Club")

	run("clean", "-i", path("data.json"), "-o", path("cleaned.json"))
	cleaned, err := document.ReadFile(path("cleaned.json"))
	require.NoError(t, err)
	require.Len(t, cleaned, 1)
	require.Len(t, cleaned[0].CleanedText(), 1)
	assert.NotContains(t, cleaned[0].CleanedText()[0], "#")

	out = run("chunk", "-i", path("cleaned.json"), "-o", path("chunked.json"))
	assert.Contains(t, out, "Chunked JSON has been saved to")
	chunked, err := document.ReadFile(path("chunked.json"))
	require.NoError(t, err)
	require.Len(t, chunked, 1)
	chunks := chunked[0].Chunks()
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 32)
	}
	assert.Equal(t, strings.Join(cleaned[0].CleanedText(), " "), strings.Join(chunks, ""))

	out = run("index", "-i", path("chunked.json"))
	assert.Contains(t, out, "Indexed ")

	out = run("ask", "When", "does", "the", "robotics", "club", "meet?")
	assert.Equal(t, "On Tuesday.\n", out)
	assert.Contains(t, prompt, "Question: When does the robotics club meet?")
	assert.Contains(t, prompt, "url: "+path("clubs.html"))
}
