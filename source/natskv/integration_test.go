//go:build integration

package natskv

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/raultapia/rush/errors"
	"github.com/raultapia/rush/natsclient"
	"github.com/raultapia/rush/param"
)

// startNATSContainer starts a NATS server with JetStream enabled
func startNATSContainer(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	req := testcontainers.ContainerRequest{
		Image:        "nats:latest",
		ExposedPorts: []string{"4222/tcp"},
		WaitingFor:   wait.ForListeningPort("4222/tcp"),
		Cmd:          []string{"-js"},
	}

	natsContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := natsContainer.Host(ctx)
	require.NoError(t, err)

	port, err := natsContainer.MappedPort(ctx, "4222")
	require.NoError(t, err)

	natsURL := fmt.Sprintf("nats://%s:%s", host, port.Port())

	// Wait for NATS to be fully ready
	time.Sleep(100 * time.Millisecond)

	return natsContainer, natsURL
}

func setupSource(ctx context.Context, t *testing.T, bucket string) (*natsclient.Client, *Source) {
	natsContainer, natsURL := startNATSContainer(ctx, t)
	t.Cleanup(func() { _ = natsContainer.Terminate(ctx) })

	client, err := natsclient.NewClient(natsURL)
	require.NoError(t, err)
	require.NoError(t, client.Connect(ctx))
	t.Cleanup(func() { _ = client.Close(ctx) })

	src, err := Open(ctx, client, bucket)
	require.NoError(t, err)
	return client, src
}

func TestIntegration_SourceRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, src := setupSource(ctx, t, "test-roundtrip")

	require.NoError(t, src.Put(ctx, "/robot/gain", 2.5))
	require.NoError(t, src.Put(ctx, "/robot/name", "arm1"))
	require.NoError(t, src.Put(ctx, "/robot/joints", []any{1, 2, 3}))

	names, err := src.ListNames(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/robot/gain", "/robot/name", "/robot/joints"}, names)

	v, err := src.GetValue(ctx, "/robot/gain")
	require.NoError(t, err)
	g, err := v.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 2.5, g)

	v, err = src.GetValue(ctx, "/robot/joints")
	require.NoError(t, err)
	joints, err := param.AsListOf[int64](v)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, joints)
}

func TestIntegration_EmptyBucket(t *testing.T) {
	ctx := context.Background()
	_, src := setupSource(ctx, t, "test-empty")

	names, err := src.ListNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestIntegration_MissingName(t *testing.T) {
	ctx := context.Background()
	_, src := setupSource(ctx, t, "test-missing")

	_, err := src.GetValue(ctx, "/nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSourceUnavailable)
}

func TestIntegration_StoreLoadAndReload(t *testing.T) {
	ctx := context.Background()
	_, src := setupSource(ctx, t, "test-store")

	require.NoError(t, src.Put(ctx, "/robot/gain", 1.5))
	require.NoError(t, src.Put(ctx, "/robot/name", "arm1"))
	require.NoError(t, src.Put(ctx, "/other/key", 9))

	store := param.New(src)
	require.NoError(t, store.Load(ctx, "/robot/"))

	assert.ElementsMatch(t, []string{"gain", "name"}, store.Keys())
	assert.False(t, store.Has("key"))

	// Source changes are visible after Reload
	require.NoError(t, src.Put(ctx, "/robot/gain", 4.5))
	require.NoError(t, store.Reload(ctx))

	v, err := store.Get("gain")
	require.NoError(t, err)
	g, err := v.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 4.5, g)
}
