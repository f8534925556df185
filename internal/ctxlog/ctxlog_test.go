package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefault(t *testing.T) {
	assert.Same(t, slog.Default(), Get(context.Background()))
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := Store(context.Background(), slog.New(slog.NewJSONHandler(buf, nil)))
	ctx = With(ctx, "input", "a.txt")

	Get(ctx).Info("done")
	assert.Contains(t, buf.String(), `"input":"a.txt"`)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestClose(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := Store(context.Background(), slog.New(slog.NewJSONHandler(buf, nil)))

	assert.NoError(t, Close(ctx, "ok", closerFunc(func() error { return nil })))
	assert.Empty(t, buf.String())

	err := Close(ctx, "journal", closerFunc(func() error { return errors.New("boom") }))
	assert.Error(t, err)
	assert.Contains(t, buf.String(), `"closer":"journal"`)
}

func TestSetup(t *testing.T) {
	def := slog.Default()
	t.Cleanup(func() { slog.SetDefault(def) })

	dir := t.TempDir()
	ctx, err := Setup(context.Background(), "nsco", dir, "debug")
	require.NoError(t, err)
	Get(ctx).Debug("hello")
	require.NoError(t, Shutdown())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = Setup(context.Background(), "nsco", "", "loud")
	assert.Error(t, err)
}
