package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/pkg/logger"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
)

// Run executes the complete smoke test. Hosted records are deleted even
// when a check fails.
func Run(ctx context.Context, config Config) (stats *Stats, err error) {
	if config.Hackathons <= 0 {
		config.Hackathons = DefaultHackathons
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	stats = &Stats{StartTime: time.Now()}
	log := logger.Named("smoke")

	log.Info(ctx, "starting hackstack smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("hackathons", config.Hackathons),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Host random hackathons
	marker := newMarker()
	hosted, err := createHackathons(ctx, client, config, generateHackathons(marker, config.Hackathons), stats)
	defer func() {
		if cerr := cleanup(context.WithoutCancel(ctx), client, config, hosted, stats); cerr != nil {
			err = errors.Join(err, fmt.Errorf("cleanup failed: %w", cerr))
		}
		stats.EndTime = time.Now()
		stats.Duration = stats.EndTime.Sub(stats.StartTime)
		displayFinalStats(ctx, stats)
	}()
	if err != nil {
		return stats, fmt.Errorf("hosting failed: %w", err)
	}

	// Step 3: Replay one create with its key
	if err := verifyReplay(ctx, client, hosted[0], stats); err != nil {
		return stats, fmt.Errorf("idempotent replay failed: %w", err)
	}

	// Step 4: Search for the run marker
	if err := checkSearch(ctx, client, marker, hosted, stats); err != nil {
		return stats, fmt.Errorf("search check failed: %w", err)
	}

	// Step 5: Ask for recommendations
	if err := checkRecommendations(ctx, client, hosted, stats); err != nil {
		return stats, fmt.Errorf("recommendation check failed: %w", err)
	}

	log.Info(ctx, "smoke test completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *httpClient) error {
	resp, err := client.get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	return resp.decode(http.StatusOK, nil)
}

// createHackathons hosts forms concurrently and returns the created records.
func createHackathons(ctx context.Context, client *httpClient, config Config, forms []created, stats *Stats) ([]created, error) {
	var (
		mu     sync.Mutex
		hosted = make([]created, 0, len(forms))
		errs   []error
	)
	forEach(ctx, config.Workers, forms, func(ctx context.Context, c created) {
		rec, err := host(ctx, client, c)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			stats.Failed++
			errs = append(errs, err)
			return
		}
		stats.Created++
		c.hackathon = rec
		hosted = append(hosted, c)
		if config.Verbose {
			logger.Get().Info(ctx, "hosted hackathon", logger.String("id", rec.ID), logger.String("domain", rec.Domain))
		}
	})
	if len(hosted) == 0 && len(errs) == 0 {
		errs = append(errs, ctx.Err())
	}
	return hosted, errors.Join(errs...)
}

func host(ctx context.Context, client *httpClient, c created) (model.Hackathon, error) {
	var rec model.Hackathon
	resp, err := client.post(ctx, "/hackathons", c.hackathon, http.Header{idempotencyKeyHeader: {c.key}})
	if err != nil {
		return rec, err
	}
	if err := resp.decode(http.StatusCreated, &rec); err != nil {
		return rec, fmt.Errorf("host %q: %w", c.hackathon.Title, err)
	}
	return rec, nil
}

// verifyReplay re-posts a form with its key and expects the original record back.
func verifyReplay(ctx context.Context, client *httpClient, c created, stats *Stats) error {
	resp, err := client.post(ctx, "/hackathons", c.hackathon, http.Header{idempotencyKeyHeader: {c.key}})
	if err != nil {
		return err
	}
	var rec model.Hackathon
	if err := resp.decode(http.StatusCreated, &rec); err != nil {
		return err
	}
	if rec.ID != c.hackathon.ID {
		return fmt.Errorf("%w: replay created %s instead of returning %s", ErrInvariant, rec.ID, c.hackathon.ID)
	}
	if resp.header.Get(replayedHeader) != "true" {
		return fmt.Errorf("%w: replay not flagged by %s", ErrInvariant, replayedHeader)
	}
	stats.Replayed++
	return nil
}

func checkSearch(ctx context.Context, client *httpClient, marker string, hosted []created, stats *Stats) error {
	resp, err := client.get(ctx, "/hackathons?q="+url.QueryEscape(marker))
	if err != nil {
		return err
	}
	var out searchResponse
	if err := resp.decode(http.StatusOK, &out); err != nil {
		return err
	}
	if err := verifySearch(out, marker, hosted); err != nil {
		return err
	}
	stats.SearchMatches = out.Count
	return nil
}

func checkRecommendations(ctx context.Context, client *httpClient, hosted []created, stats *Stats) error {
	profile := model.DefaultProfile()
	for _, c := range hosted {
		if !profile.HasSkill(c.hackathon.Domain) {
			profile.Skills = append(profile.Skills, c.hackathon.Domain)
		}
	}
	profile.ExperienceLevel = model.ExperienceAdvanced

	resp, err := client.post(ctx, "/recommendations", profile, nil)
	if err != nil {
		return err
	}
	var out recommendResponse
	if err := resp.decode(http.StatusOK, &out); err != nil {
		return err
	}
	if len(out.Items) == 0 {
		return fmt.Errorf("%w: no recommendations for a non-empty catalog", ErrInvariant)
	}
	if err := verifyRecommendations(out.Items); err != nil {
		return err
	}
	stats.Recommendations = len(out.Items)
	return nil
}

// cleanup deletes every hosted record and checks the deletions took effect.
func cleanup(ctx context.Context, client *httpClient, config Config, hosted []created, stats *Stats) error {
	if len(hosted) == 0 {
		return nil
	}
	var (
		mu   sync.Mutex
		errs []error
	)
	forEach(ctx, config.Workers, hosted, func(ctx context.Context, c created) {
		resp, err := client.delete(ctx, itemPath(c.hackathon.ID))
		if err == nil {
			err = resp.decode(http.StatusNoContent, nil)
		}
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", c.hackathon.ID, err))
			return
		}
		stats.Deleted++
	})
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	resp, err := client.get(ctx, itemPath(hosted[0].hackathon.ID))
	if err != nil {
		return err
	}
	return resp.decode(http.StatusNotFound, nil)
}

// forEach fans items out to a fixed pool of workers.
func forEach[T any](ctx context.Context, workers int, items []T, fn func(context.Context, T)) {
	ch := make(chan T, workers*workerChannelMultiplier)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range ch {
				if ctx.Err() != nil {
					continue
				}
				fn(ctx, item)
			}
		}()
	}
	go func() {
		defer close(ch)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case ch <- item:
			}
		}
	}()
	wg.Wait()
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("created", stats.Created),
		logger.Int("replayed", stats.Replayed),
		logger.Int("failed", stats.Failed),
		logger.Int("deleted", stats.Deleted),
		logger.Int("searchMatches", stats.SearchMatches),
		logger.Int("recommendations", stats.Recommendations),
		logger.String("duration", stats.Duration.String()))
}
