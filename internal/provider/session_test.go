package provider_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/provider"
)

// failingRuntime always fails to load
type failingRuntime struct{}

func (r *failingRuntime) Load(_ context.Context) error {
	return fmt.Errorf("sdk load failed")
}

func (r *failingRuntime) NewSurface(container string, center domain.Coordinate, zoomLevel int) (provider.Surface, error) {
	return nil, fmt.Errorf("not reachable")
}

func TestSession_InitialState(t *testing.T) {
	session := provider.NewSession(provider.NewMemoryRuntime(), zap.NewNop())
	assert.Equal(t, provider.StateUninitialized, session.State())
	assert.False(t, session.IsReady())
}

func TestSession_MissingRuntimeIsUnavailable(t *testing.T) {
	session := provider.NewSession(nil, zap.NewNop())
	session.Initialize(context.Background())

	assert.Equal(t, provider.StateUnavailable, session.State())

	// Unavailable is terminal: repeated Initialize does not retry
	session.Initialize(context.Background())
	assert.Equal(t, provider.StateUnavailable, session.State())

	// WaitReady unblocks immediately with an error
	err := session.WaitReady(context.Background())
	assert.Error(t, err)

	// No surfaces in unavailable state
	_, err = session.CreateSurface("trip:test", domain.Coordinate{Lat: 37.5, Lon: 127}, domain.ZoomDefault)
	assert.Error(t, err)
}

func TestSession_LoadFailureIsTerminal(t *testing.T) {
	session := provider.NewSession(&failingRuntime{}, zap.NewNop())
	session.Initialize(context.Background())

	err := session.WaitReady(context.Background())
	assert.Error(t, err)
	assert.Equal(t, provider.StateUnavailable, session.State())
}

func TestSession_BecomesReady(t *testing.T) {
	session := provider.NewSession(provider.NewMemoryRuntime(), zap.NewNop())
	session.Initialize(context.Background())

	require.NoError(t, session.WaitReady(context.Background()))
	assert.True(t, session.IsReady())
}

func TestSession_WaitReadyRespectsContext(t *testing.T) {
	// Uninitialized session never closes the ready channel
	session := provider.NewSession(provider.NewMemoryRuntime(), zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := session.WaitReady(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSession_CreateSurfaceReplacesPrevious(t *testing.T) {
	session := provider.NewSession(provider.NewMemoryRuntime(), zap.NewNop())
	session.Initialize(context.Background())
	require.NoError(t, session.WaitReady(context.Background()))

	center := domain.Coordinate{Lat: 37.5665, Lon: 126.978}

	first, err := session.CreateSurface("trip:test", center, domain.ZoomDefault)
	require.NoError(t, err)

	_, err = first.AddPin(domain.Pin{Position: center, Label: "1"})
	require.NoError(t, err)

	// Re-creating the container releases the previous surface
	second, err := session.CreateSurface("trip:test", center, domain.ZoomDefault)
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	// Old surface is released and rejects new overlays
	_, err = first.AddPin(domain.Pin{Position: center, Label: "2"})
	assert.Error(t, err)

	// New surface starts without overlays
	snap := second.Snapshot()
	assert.Empty(t, snap.Pins)
}

func TestSession_SurfaceLookup(t *testing.T) {
	session := provider.NewSession(provider.NewMemoryRuntime(), zap.NewNop())
	session.Initialize(context.Background())
	require.NoError(t, session.WaitReady(context.Background()))

	_, ok := session.Surface("trip:test")
	assert.False(t, ok)

	created, err := session.CreateSurface("trip:test", domain.Coordinate{Lat: 37.5, Lon: 127}, domain.ZoomDefault)
	require.NoError(t, err)

	found, ok := session.Surface("trip:test")
	require.True(t, ok)
	assert.Same(t, created, found)
}

func TestSession_CloseReleasesSurfaces(t *testing.T) {
	session := provider.NewSession(provider.NewMemoryRuntime(), zap.NewNop())
	session.Initialize(context.Background())
	require.NoError(t, session.WaitReady(context.Background()))

	surface, err := session.CreateSurface("trip:test", domain.Coordinate{Lat: 37.5, Lon: 127}, domain.ZoomDefault)
	require.NoError(t, err)

	session.Close()

	_, ok := session.Surface("trip:test")
	assert.False(t, ok)

	_, err = surface.AddPin(domain.Pin{Position: domain.Coordinate{Lat: 37.5, Lon: 127}})
	assert.Error(t, err)
}
