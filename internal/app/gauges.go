package service

import (
	"context"
	"runtime"
	"time"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/pkg/logger"
	"github.com/okian/hackstack/pkg/metrics"
)

func (s *Service) refreshLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	var lastGC uint32
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshGauges(ctx)
			lastGC = recordRuntime(lastGC)
		}
	}
}

// refreshGauges copies the catalog shape into the Prometheus gauges.
func (s *Service) refreshGauges(ctx context.Context) {
	hs, err := s.catalog.List(ctx)
	if err != nil {
		s.logger.Warn(ctx, "gauge refresh failed", logger.Error(err))
		metrics.RecordErrorByComponent("service", "gauges")
		return
	}
	updateCatalogGauges(model.Summarize(hs))
	metrics.UpdateIdempotencyKeys(s.keys.Size())
}

func updateCatalogGauges(st model.CatalogStats) {
	metrics.UpdateCatalogHackathons(string(model.StatusOpen), st.Open)
	metrics.UpdateCatalogHackathons(string(model.StatusClosingSoon), st.ClosingSoon)
	metrics.UpdateCatalogHackathons(string(model.StatusEnded), st.Ended)
	metrics.UpdateCatalogParticipants(st.TotalParticipants)
}

// recordRuntime updates the system gauges and observes the GC pauses since lastGC.
func recordRuntime(lastGC uint32) uint32 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	metrics.UpdateSystemMemoryUsage(ms.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	// PauseNs is a ring of the last 256 pauses.
	from := lastGC
	if ms.NumGC-from > uint32(len(ms.PauseNs)) {
		from = ms.NumGC - uint32(len(ms.PauseNs))
	}
	for n := from + 1; n <= ms.NumGC; n++ {
		pause := ms.PauseNs[(n+255)%256]
		metrics.RecordSystemGCPauseTime(float64(pause) / 1e6)
	}
	return ms.NumGC
}
