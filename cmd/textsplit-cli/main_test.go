package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/textsplit/internal/model"
	"github.com/Alfex4936/textsplit/textsplit"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := CLI()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"textsplit-cli"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, content, 0o600))
	return p
}

func TestSplitFilesIntoOneBuffer(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFile(t, dir, "1.txt", []byte("a,,b,"))
	f2 := writeFile(t, dir, "2.txt", []byte("c,d,"))

	out, err := run(t, "-s", ",", "--initial-capacity", "2", "--growth-factor", "1", f1, f2)
	require.NoError(t, err)
	require.Equal(t, "a\n\nb\nc\nd\n", out)
}

func TestSplitGzipAndQuote(t *testing.T) {
	dir := t.TempDir()
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte("one\n\ntwo\n\n\n\nthree"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	p := writeFile(t, dir, "paras.txt.gz", gz.Bytes())

	out, err := run(t, "-s", `\n\n`, "--quote", p)
	require.NoError(t, err)
	require.Equal(t, "\"one\"\n\"two\"\n\"\"\n\"three\"\n", out)
}

func TestSplitJSON(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "in.txt", []byte("x<br>y<br>z"))

	out, err := run(t, "--sep", "<br>", "--json", "--limit", "2", p)
	require.NoError(t, err)

	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, "<br>", res.Separator)
	require.Equal(t, 3, res.ViewCount)
	require.True(t, res.Truncated)
	require.Equal(t, []model.Span{
		{Idx: 0, Begin: 0, End: 1, Text: "x"},
		{Idx: 1, Begin: 5, End: 6, Text: "y"},
	}, res.Views)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "limits.toml", []byte("[bytes]\ninitial_capacity = 2\nmax_capacity = 4\n"))
	p := writeFile(t, dir, "in.txt", []byte("ab|cd|ef"))

	_, err := run(t, "-s", "|", "-c", cfg, p)
	require.ErrorIs(t, err, textsplit.ErrOutOfMemory)

	// flags override the file
	out, err := run(t, "-s", "|", "-c", cfg, "--max-capacity", "0", p)
	require.NoError(t, err)
	require.Equal(t, "ab\ncd\nef\n", out)
}

func TestKeepGoing(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", []byte("a;b;"))
	missing := filepath.Join(dir, "missing.txt")

	_, err := run(t, "-s", ";", good, missing)
	require.ErrorIs(t, err, os.ErrNotExist)

	out, err := run(t, "-s", ";", "-k", missing, good)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, "a\nb\n", out)
}

func TestBadSeparator(t *testing.T) {
	_, err := run(t, "-s", "")
	require.ErrorIs(t, err, textsplit.ErrInvalidArgument)

	_, err = run(t, "-s", `\q`)
	require.Error(t, err)

	// --sep is required
	_, err = run(t)
	require.Error(t, err)
}
