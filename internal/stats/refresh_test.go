package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/notes-bin/wallpapersky/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fakeCounter struct {
	n   int
	err error
}

func (f fakeCounter) Count(ctx context.Context) (int, error) { return f.n, f.err }

type fakeUsage struct {
	n   int64
	err error
}

func (f fakeUsage) Usage() (int64, error) { return f.n, f.err }

func TestRefresh_SetsGauges(t *testing.T) {
	Refresh(context.Background(), fakeCounter{n: 3}, fakeUsage{n: 2048})
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.WallpapersTotal))
	assert.Equal(t, float64(2048), testutil.ToFloat64(metrics.ImageBytes))
}

func TestRefresh_ErrorsKeepPreviousValues(t *testing.T) {
	Refresh(context.Background(), fakeCounter{n: 5}, fakeUsage{n: 10})
	Refresh(context.Background(), fakeCounter{err: errors.New("boom")}, fakeUsage{err: errors.New("boom")})
	assert.Equal(t, float64(5), testutil.ToFloat64(metrics.WallpapersTotal))
	assert.Equal(t, float64(10), testutil.ToFloat64(metrics.ImageBytes))
}

func TestStartRefresh_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		StartRefresh(ctx, fakeCounter{n: 7}, fakeUsage{n: 1}, 1)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh loop did not stop")
	}
	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.WallpapersTotal))
}

func TestStartRefresh_DisabledInterval(t *testing.T) {
	StartRefresh(context.Background(), fakeCounter{n: 1}, fakeUsage{n: 1}, 0)
}
