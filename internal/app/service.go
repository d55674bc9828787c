// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/wicketml/gully/internal/adapters/artifact"
	"github.com/wicketml/gully/internal/adapters/cricsheet"
	"github.com/wicketml/gully/internal/domain/features"
	"github.com/wicketml/gully/internal/domain/history"
	"github.com/wicketml/gully/internal/domain/model"
	"github.com/wicketml/gully/internal/domain/namematch"
	"github.com/wicketml/gully/internal/domain/query"
	"github.com/wicketml/gully/internal/domain/rank"
	"github.com/wicketml/gully/internal/domain/regress"
	"github.com/wicketml/gully/pkg/logger"
	"github.com/wicketml/gully/pkg/metrics"
)

// LiveScorer is the opaque external live score collaborator.
type LiveScorer interface {
	Fetch(ctx context.Context) (string, error)
}

// snapshot is the immutable (model, lookup, roles) triple currently
// served. Readers see either the whole old snapshot or the whole new
// one, never a mix.
type snapshot struct {
	id        string
	trainedAt time.Time
	model     regress.Model
	lookup    map[string]features.Vector
	roles     map[string]model.Role
}

// Service owns the trained snapshot and answers queries over it.
type Service struct {
	mu   sync.RWMutex
	snap *snapshot

	// Core components
	loader *cricsheet.Loader
	live   LiveScorer
	router *query.Router

	// Configuration
	dataDir              string
	modelPath            string
	leaderboardPath      string
	plotPath             string
	parseWorkers         int
	minLeaderboardEvents int
	leaderboardSize      int
	defaultTopK          int
	maxTopK              int

	// State
	started    bool
	retraining atomic.Bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithDataDir points the service at the match data directory.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithModelPath sets the model bundle location.
func WithModelPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.modelPath = path
		}
	}
}

// WithLeaderboardPath sets the leaderboard artifact location.
func WithLeaderboardPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.leaderboardPath = path
		}
	}
}

// WithPlotPath sets the diagnostic chart location.
func WithPlotPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.plotPath = path
		}
	}
}

// WithParseWorkers bounds concurrent match-file parsing.
func WithParseWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parseWorkers = n
		}
	}
}

// WithLeaderboardRules sets the noise floor and size of the leaderboard.
func WithLeaderboardRules(minEvents, size int) Option {
	return func(s *Service) {
		if minEvents >= 0 {
			s.minLeaderboardEvents = minEvents
		}
		if size > 0 {
			s.leaderboardSize = size
		}
	}
}

// WithTopKBounds sets the default and maximum recommendation sizes.
func WithTopKBounds(defaultK, maxK int) Option {
	return func(s *Service) {
		if defaultK > 0 {
			s.defaultTopK = defaultK
		}
		if maxK >= defaultK {
			s.maxTopK = maxK
		}
	}
}

// WithLiveScorer sets the live score collaborator.
func WithLiveScorer(l LiveScorer) Option {
	return func(s *Service) {
		if l != nil {
			s.live = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:              "data/cricsheet",
		modelPath:            "artifacts/model.json",
		leaderboardPath:      "artifacts/leaderboard.json",
		plotPath:             "artifacts/performance_plot.png",
		parseWorkers:         runtime.NumCPU(),
		minLeaderboardEvents: 5,
		leaderboardSize:      10,
		defaultTopK:          5,
		maxTopK:              50,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the cached snapshot or trains a new one. A missing or
// unreadable cache triggers a full retrain rather than failing startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.loader = cricsheet.NewLoader(
		cricsheet.WithWorkers(s.parseWorkers),
		cricsheet.WithLogger(s.logger),
	)
	s.router = query.NewRouter(s)
	s.mu.Unlock()

	snap, err := s.loadOrTrain(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = snap
	s.started = true
	s.mu.Unlock()

	s.publishSnapshotMetrics(snap)
	s.logger.Info(ctx, "recommendation service started",
		logger.String("snapshot", snap.id),
		logger.Int("players", len(snap.lookup)),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

func (s *Service) loadOrTrain(ctx context.Context) (*snapshot, error) {
	bundle, err := artifact.LoadBundle(s.modelPath)
	switch {
	case err == nil:
		s.logger.Info(ctx, "loaded cached model bundle",
			logger.String("path", s.modelPath),
			logger.String("snapshot", bundle.SnapshotID),
		)
		return &snapshot{
			id:        bundle.SnapshotID,
			trainedAt: bundle.TrainedAt,
			model:     bundle.Model,
			lookup:    bundle.Lookup,
			roles:     bundle.Roles,
		}, nil
	case errors.Is(err, artifact.ErrNoBundle):
		s.logger.Info(ctx, "no cached model bundle; training", logger.String("path", s.modelPath))
	default:
		s.logger.Warn(ctx, "cached model bundle unusable; retraining", logger.Error(err))
	}
	return s.train(ctx)
}

// train runs the full pipeline: parse, aggregate, extract, fit, persist.
func (s *Service) train(ctx context.Context) (*snapshot, error) {
	start := time.Now()

	matches, err := s.loader.Load(ctx, s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	dataset := history.Aggregate(matches)
	metrics.AddDeliveriesScored(dataset.Deliveries)

	lookup := make(map[string]features.Vector, len(dataset.Order))
	xs := make([]features.Vector, 0, len(dataset.Order))
	ys := make([]float64, 0, len(dataset.Order))
	for _, player := range dataset.Order {
		h := dataset.Histories[player]
		if len(h) == 0 {
			continue
		}
		vec := features.Extract(h)
		lookup[player] = vec
		xs = append(xs, vec)
		ys = append(ys, features.Label(h))
	}

	fitted, err := regress.Fit(xs, ys)
	if err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}

	snap := &snapshot{
		id:        uuid.New().String(),
		trainedAt: time.Now().UTC(),
		model:     fitted,
		lookup:    lookup,
		roles:     dataset.Roles,
	}

	if err := artifact.SaveBundle(s.modelPath, &artifact.Bundle{
		SnapshotID: snap.id,
		TrainedAt:  snap.trainedAt,
		Model:      snap.model,
		Lookup:     snap.lookup,
		Roles:      snap.roles,
	}); err != nil {
		return nil, fmt.Errorf("persist bundle: %w", err)
	}

	board := rank.Leaderboard(dataset.Histories, s.minLeaderboardEvents, s.leaderboardSize)
	if err := artifact.SaveLeaderboard(s.leaderboardPath, board); err != nil {
		return nil, fmt.Errorf("persist leaderboard: %w", err)
	}

	// Best-effort diagnostic; never fails training.
	predicted := make([]float64, len(xs))
	for i, v := range xs {
		predicted[i] = fitted.Predict(v)
	}
	if err := artifact.SaveScatter(s.plotPath, ys, predicted); err != nil {
		s.logger.Warn(ctx, "could not generate performance chart", logger.Error(err))
	}

	metrics.RecordTrainingRun(float64(time.Since(start).Milliseconds()))
	s.logger.Info(ctx, "model trained",
		logger.String("snapshot", snap.id),
		logger.Int("matches", len(matches)),
		logger.Int("players", len(lookup)),
		logger.Int("deliveries", dataset.Deliveries),
	)
	return snap, nil
}

// Retrain discards the cache and rebuilds the snapshot. Only one retrain
// runs at a time; readers keep the old snapshot until the swap.
func (s *Service) Retrain(ctx context.Context) (model.SnapshotInfo, error) {
	if !s.retraining.CompareAndSwap(false, true) {
		return model.SnapshotInfo{}, ErrRetrainInFlight
	}
	defer s.retraining.Store(false)

	snap, err := s.train(ctx)
	if err != nil {
		return model.SnapshotInfo{}, err
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.publishSnapshotMetrics(snap)
	return model.SnapshotInfo{
		SnapshotID: snap.id,
		TrainedAt:  snap.trainedAt,
		Players:    len(snap.lookup),
	}, nil
}

func (s *Service) publishSnapshotMetrics(snap *snapshot) {
	metrics.UpdatePlayersTracked(len(snap.lookup))
	metrics.UpdateSnapshotTime(snap.trainedAt.Unix())
}

// current returns the served snapshot, or nil before Start completes.
func (s *Service) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Recommend returns the top-K players by predicted score for the role
// filter (RoleUnknown means all roles).
func (s *Service) Recommend(ctx context.Context, roleFilter model.Role, topK int) ([]model.Recommendation, error) {
	snap := s.current()
	if snap == nil {
		return nil, ErrNotReady
	}

	if topK <= 0 {
		topK = s.defaultTopK
	}
	if topK > s.maxTopK {
		topK = s.maxTopK
	}

	metrics.RecordRecommendation()
	return rank.Recommend(snap.model, snap.lookup, snap.roles, roleFilter, topK), nil
}

// Leaderboard returns up to limit rows of the persisted leaderboard
// artifact. A missing artifact degrades to an empty board.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if s.current() == nil {
		return nil, ErrNotReady
	}

	board, err := artifact.LoadLeaderboard(s.leaderboardPath)
	if err != nil {
		s.logger.Warn(ctx, "leaderboard artifact unavailable", logger.Error(err))
		return []model.LeaderboardEntry{}, nil
	}
	if limit > 0 && len(board) > limit {
		board = board[:limit]
	}
	return board, nil
}

// RoleStats returns the average predicted score per role.
func (s *Service) RoleStats(ctx context.Context) (map[model.Role]float64, error) {
	snap := s.current()
	if snap == nil {
		return nil, ErrNotReady
	}
	return rank.RoleAverages(snap.model, snap.lookup, snap.roles), nil
}

// FindPlayers returns the nearest player-name matches for a query.
func (s *Service) FindPlayers(ctx context.Context, q string, limit int) ([]namematch.Match, error) {
	snap := s.current()
	if snap == nil {
		return nil, ErrNotReady
	}

	names := make([]string, 0, len(snap.lookup))
	for name := range snap.lookup {
		names = append(names, name)
	}
	sort.Strings(names)
	return namematch.Best(names, q, limit), nil
}

// Query answers one free-text question through the routing table.
func (s *Service) Query(ctx context.Context, text string) string {
	return s.router.Answer(ctx, text)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":  s.started,
		"data_dir": s.dataDir,
	}
	if s.snap != nil {
		stats["snapshot_id"] = s.snap.id
		stats["trained_at"] = s.snap.trainedAt
		stats["players"] = len(s.snap.lookup)
		stats["roles"] = len(s.snap.roles)
	}
	return stats
}

// RecommendText renders a recommendation answer for the query router.
func (s *Service) RecommendText(ctx context.Context, roleHint string, topK int) string {
	picks, err := s.Recommend(ctx, model.ParseRole(roleHint), topK)
	if err != nil {
		return "The model is still warming up; try again shortly."
	}
	if len(picks) == 0 {
		return "No players found for that role."
	}

	parts := make([]string, len(picks))
	for i, p := range picks {
		parts[i] = fmt.Sprintf("%s (%.1f pts)", p.Player, p.PredictedScore)
	}
	return "Top picks: " + strings.Join(parts, ", ")
}

// LeaderboardText renders the leaderboard answer for the query router.
func (s *Service) LeaderboardText(ctx context.Context) string {
	board, err := s.Leaderboard(ctx, s.leaderboardSize)
	if err != nil || len(board) == 0 {
		return "No leaderboard available yet."
	}

	parts := make([]string, len(board))
	for i, e := range board {
		parts[i] = fmt.Sprintf("%d. %s (%.1f avg)", i+1, e.Player, e.AvgPoints)
	}
	return "Leaderboard: " + strings.Join(parts, "; ")
}

// LiveScoreText fetches the live score, degrading to a text message on
// any failure.
func (s *Service) LiveScoreText(ctx context.Context) string {
	if s.live == nil {
		return "Live scores are not configured."
	}
	text, err := s.live.Fetch(ctx)
	if err != nil {
		metrics.RecordLiveScoreError()
		s.logger.Warn(ctx, "live score fetch failed", logger.Error(err))
		return fmt.Sprintf("Error fetching live scores: %v", err)
	}
	return text
}
