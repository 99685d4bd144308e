package memsource

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raultapia/rush/errors"
)

func TestSource_SetAndGet(t *testing.T) {
	src := New()
	ctx := context.Background()

	require.NoError(t, src.Set("/robot/gain", 2.5))
	require.NoError(t, src.Set("/robot/name", "arm1"))

	v, err := src.GetValue(ctx, "/robot/gain")
	require.NoError(t, err)
	g, err := v.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 2.5, g)

	names, err := src.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/robot/gain", "/robot/name"}, names)
}

func TestSource_SetRejectsUnsupported(t *testing.T) {
	src := New()
	err := src.Set("/robot/bad", map[string]any{"no": "maps"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTypeMismatch)
}

func TestSource_SetOverwriteKeepsOrder(t *testing.T) {
	src := New()
	ctx := context.Background()

	src.MustSet("/a", 1)
	src.MustSet("/b", 2)
	src.MustSet("/a", 3) // overwrite, not re-append

	names, err := src.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, names)

	v, err := src.GetValue(ctx, "/a")
	require.NoError(t, err)
	i, err := v.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), i)
}

func TestSource_MissingName(t *testing.T) {
	src := New()
	_, err := src.GetValue(context.Background(), "/nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSourceUnavailable)
}

func TestSource_Delete(t *testing.T) {
	src := New()
	ctx := context.Background()

	src.MustSet("/a", 1)
	src.MustSet("/b", 2)
	src.Delete("/a")
	src.Delete("/never-existed")

	names, err := src.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/b"}, names)

	_, err = src.GetValue(ctx, "/a")
	assert.ErrorIs(t, err, errors.ErrSourceUnavailable)
}

func TestSource_FailureInjection(t *testing.T) {
	src := New()
	ctx := context.Background()
	src.MustSet("/a", 1)

	boom := stderrors.New("boom")

	src.FailList(boom)
	_, err := src.ListNames(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSourceUnavailable)
	assert.ErrorIs(t, err, boom)

	src.FailList(nil)
	_, err = src.ListNames(ctx)
	require.NoError(t, err)

	src.FailGet("/a", boom)
	_, err = src.GetValue(ctx, "/a")
	assert.ErrorIs(t, err, boom)

	src.FailGet("/a", nil)
	_, err = src.GetValue(ctx, "/a")
	assert.NoError(t, err)
}

func TestSource_BasePath(t *testing.T) {
	assert.Equal(t, "/", New().BasePath())
	assert.Equal(t, "/vehicle", New(WithBasePath("/vehicle")).BasePath())
}
