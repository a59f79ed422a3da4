package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/notes-bin/wallpapersky/internal/metrics"
)

type Counter interface {
	Count(ctx context.Context) (int, error)
}

type UsageReporter interface {
	Usage() (int64, error)
}

// Refresh 立即刷新一次壁纸数量和图片占用的统计
func Refresh(ctx context.Context, counter Counter, usage UsageReporter) {
	n, err := counter.Count(ctx)
	if err != nil {
		slog.Error("Failed to count wallpapers", "error", err)
	} else {
		metrics.WallpapersTotal.Set(float64(n))
	}

	bytes, err := usage.Usage()
	if err != nil {
		slog.Error("Failed to measure image usage", "error", err)
		return
	}
	metrics.ImageBytes.Set(float64(bytes))
}

func StartRefresh(ctx context.Context, counter Counter, usage UsageReporter, interval int) {
	if interval <= 0 {
		return
	}
	Refresh(ctx, counter, usage)

	ticker := time.NewTicker(time.Duration(interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			Refresh(ctx, counter, usage)
		}
	}
}
