// Package service provides the core business service that implements
// the dependencies required by the HTTP API, the MCP tools and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/hackstack/internal/adapters/repository"
	"github.com/okian/hackstack/internal/domain/idempotency"
	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/domain/recommend"
	"github.com/okian/hackstack/internal/domain/scoring"
	"github.com/okian/hackstack/internal/domain/search"
	"github.com/okian/hackstack/pkg/logger"
	"github.com/okian/hackstack/pkg/metrics"
)

const defaultRefreshInterval = 5 * time.Second

// Service owns the catalog and hands snapshots of it to the ranking and
// search code.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog     repository.Catalog
	keys        idempotency.Store
	recommender *recommend.Recommender

	// createMu serializes keyed creates so a replayed key never creates twice.
	createMu sync.Mutex

	// Configuration
	scorer          scoring.Scorer
	idempotencySize int
	refreshInterval time.Duration

	// State
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the hackathon store. The default is an empty MemoryStore.
func WithCatalog(c repository.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithIdempotencySize bounds the remembered Idempotency-Key values.
// Zero disables eviction.
func WithIdempotencySize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.idempotencySize = size
		}
	}
}

// WithScorer replaces the heuristic scorer used for recommendations.
func WithScorer(sc scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithRefreshInterval sets how often catalog and system gauges are refreshed.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. It is usable right away; Start only launches
// the background gauge refresher.
func New(opts ...Option) *Service {
	s := &Service{
		scorer:          scoring.NewHeuristic(),
		idempotencySize: idempotency.DefaultMaxSize,
		refreshInterval: defaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.catalog == nil {
		s.catalog = repository.NewMemoryStore()
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.keys = idempotency.NewMemoryStore(idempotency.WithMaxSize(s.idempotencySize))
	s.recommender = recommend.New(recommend.WithScorer(s.scorer))
	return s
}

// Start launches the gauge refresher.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting hackstack service...")

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.refreshGauges(ctx)
	go s.refreshLoop(ctx, s.stopCh, s.doneCh)

	s.started = true
	n, _ := s.catalog.Count(ctx)
	s.logger.Info(ctx, "hackstack service started",
		logger.Int("hackathons", n),
		logger.Int("idempotencySize", s.idempotencySize),
		logger.String("refreshInterval", s.refreshInterval.String()),
	)
	return nil
}

// Stop halts the refresher and closes the catalog.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping hackstack service...")

	close(s.stopCh)
	<-s.doneCh

	if err := s.catalog.Close(); err != nil {
		s.logger.Warn(ctx, "closing catalog failed", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "hackstack service stopped")
}

// Seed loads records that already carry IDs into the catalog.
func (s *Service) Seed(ctx context.Context, hs []model.Hackathon) error {
	if err := s.catalog.Seed(ctx, hs); err != nil {
		metrics.RecordErrorByComponent("service", "seed")
		return fmt.Errorf("seed catalog: %w", err)
	}
	s.logger.Info(ctx, "catalog seeded", logger.Int("count", len(hs)))
	return nil
}

// Recommend ranks the current catalog for p. Profiles without skills are
// rejected with model.ErrInvalidProfile.
func (s *Service) Recommend(ctx context.Context, p model.UserProfile) ([]model.Recommendation, recommend.Stage, error) {
	if err := p.Validate(); err != nil {
		return nil, "", err
	}
	hs, err := s.catalog.List(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "list")
		return nil, "", fmt.Errorf("list catalog: %w", err)
	}

	start := time.Now()
	recs, stage := s.recommender.RecommendWithStage(p, hs)
	metrics.RecordRecommendationLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordRecommendation(string(stage))
	for i := range recs {
		metrics.RecordRecommendationConfidence(recs[i].ConfidenceScore)
	}

	s.logger.Debug(ctx, "recommendations ranked",
		logger.String("stage", string(stage)),
		logger.Int("candidates", len(hs)),
		logger.Int("results", len(recs)),
	)
	return recs, stage, nil
}

// Search runs the browse-grid cascade over the current catalog.
func (s *Service) Search(ctx context.Context, c search.Criteria) ([]model.Hackathon, search.Stage, error) {
	hs, err := s.catalog.List(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "list")
		return nil, "", fmt.Errorf("list catalog: %w", err)
	}

	start := time.Now()
	out, stage := search.FilterWithStage(c, hs)
	metrics.RecordSearchLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordSearch(string(stage), len(out))

	if stage == search.StageFallback {
		s.logger.Debug(ctx, "search fell back to the full catalog", logger.Any("criteria", c))
	}
	return out, stage, nil
}

// AdminSearch is the management-table lookup over title, organizer and domain.
func (s *Service) AdminSearch(ctx context.Context, query string) ([]model.Hackathon, error) {
	hs, err := s.catalog.List(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "list")
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return search.Admin(query, hs), nil
}

// Create stores a hosted hackathon. When key is not empty and was seen
// before, the record it created is returned with replayed set and nothing
// new is stored.
func (s *Service) Create(ctx context.Context, h model.Hackathon, key string) (created model.Hackathon, replayed bool, err error) {
	if key != "" {
		s.createMu.Lock()
		defer s.createMu.Unlock()

		if prev, ok := s.replay(ctx, key); ok {
			return prev, true, nil
		}
	}

	created, err = s.catalog.Create(ctx, h)
	if err != nil {
		return model.Hackathon{}, false, err
	}
	if key != "" {
		s.keys.Record(ctx, key, created.ID)
	}
	metrics.RecordCatalogMutation("create")
	s.logger.Info(ctx, "hackathon created",
		logger.String("id", created.ID),
		logger.String("title", created.Title),
		logger.Bool("keyed", key != ""),
	)
	return created, false, nil
}

// replay returns the record a key created. A key whose record has since
// been deleted is forgotten so the create goes ahead.
func (s *Service) replay(ctx context.Context, key string) (model.Hackathon, bool) {
	id, ok := s.keys.Lookup(ctx, key)
	if !ok {
		return model.Hackathon{}, false
	}
	h, err := s.catalog.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn(ctx, "idempotency lookup failed", logger.String("id", id), logger.Error(err))
		}
		s.keys.Forget(ctx, key)
		return model.Hackathon{}, false
	}
	metrics.RecordIdempotentReplay()
	s.logger.Debug(ctx, "create replayed", logger.String("id", id))
	return h, true
}

// Get returns one hackathon.
func (s *Service) Get(ctx context.Context, id string) (model.Hackathon, error) {
	return s.catalog.Get(ctx, id)
}

// Update applies a partial edit.
func (s *Service) Update(ctx context.Context, id string, p model.HackathonPatch) (model.Hackathon, error) {
	h, err := s.catalog.Update(ctx, id, p)
	if err != nil {
		return model.Hackathon{}, err
	}
	metrics.RecordCatalogMutation("update")
	s.logger.Info(ctx, "hackathon updated", logger.String("id", id))
	return h, nil
}

// Delete removes a hackathon.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.catalog.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordCatalogMutation("delete")
	s.logger.Info(ctx, "hackathon deleted", logger.String("id", id))
	return nil
}

// Stats summarizes the catalog for the admin view.
func (s *Service) Stats(ctx context.Context) (model.CatalogStats, error) {
	hs, err := s.catalog.List(ctx)
	if err != nil {
		return model.CatalogStats{}, fmt.Errorf("list catalog: %w", err)
	}
	return model.Summarize(hs), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"idempotencySize": s.idempotencySize,
		"idempotencyKeys": s.keys.Size(),
	}

	hs, err := s.catalog.List(ctx)
	if err != nil {
		stats["catalogError"] = err.Error()
		return stats
	}
	st := model.Summarize(hs)
	stats["totalHackathons"] = st.Total
	stats["totalParticipants"] = st.TotalParticipants
	updateCatalogGauges(st)
	metrics.UpdateIdempotencyKeys(s.keys.Size())
	return stats
}
