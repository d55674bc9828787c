// Package cricsheet loads match records from a directory of cricsheet
// YAML files and normalizes their dynamic shapes into canonical domain
// types.
package cricsheet

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wicketml/gully/internal/domain/model"
	"github.com/wicketml/gully/pkg/logger"
	"github.com/wicketml/gully/pkg/metrics"
)

// defaultWorkers bounds concurrent file parsing.
const defaultWorkers = 4

// Loader parses a cricsheet data directory.
type Loader struct {
	workers int
	log     logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithWorkers sets the number of concurrent file parsers.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader creates a loader with configuration options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.Get().Named("cricsheet")
	}
	return l
}

// Load parses every *.yaml/*.yml file under dir, in file-name order.
// Files are parsed concurrently but results keep the sorted order, so
// identical directories always yield identical record sequences.
// Malformed files are skipped with a warning, never fatal.
func (l *Loader) Load(ctx context.Context, dir string) ([]model.MatchRecord, error) {
	files, err := matchFiles(dir)
	if err != nil {
		return nil, err
	}

	slots := make([]*model.MatchRecord, len(files))
	sem := make(chan struct{}, l.workers)
	var wg sync.WaitGroup

	for i, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(slot int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			record, err := parseFile(path)
			if err != nil {
				l.log.Warn(ctx, "skipping malformed match file",
					logger.String("file", path),
					logger.Error(err),
				)
				metrics.RecordMatchSkipped()
				return
			}
			metrics.RecordMatchParsed()
			slots[slot] = record
		}(i, path)
	}
	wg.Wait()

	records := make([]model.MatchRecord, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			records = append(records, *r)
		}
	}

	l.log.Info(ctx, "loaded match records",
		logger.String("dir", dir),
		logger.Int("files", len(files)),
		logger.Int("parsed", len(records)),
	)
	return records, nil
}

func matchFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		found, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	sort.Strings(files)
	return files, nil
}

func parseFile(path string) (*model.MatchRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	id := filepath.Base(path)
	id = id[:len(id)-len(filepath.Ext(id))]

	record := &model.MatchRecord{
		ID:   id,
		Info: asMap(doc["info"]),
	}
	for _, rawInnings := range asList(doc["innings"]) {
		// Innings keys are labels ("1st innings"); the team name is inside.
		for label, details := range asMap(rawInnings) {
			d := asMap(details)
			team := asString(d["team"])
			if team == "" {
				team = label
			}
			record.Innings = append(record.Innings, model.Innings{
				Team:       team,
				Deliveries: parseDeliveries(d["deliveries"]),
			})
		}
	}
	return record, nil
}

func parseDeliveries(raw any) []model.Delivery {
	var out []model.Delivery
	for _, item := range asList(raw) {
		// Each delivery is a single-key mapping of over.ball to the
		// event; the key itself carries no scoring information.
		for _, ball := range asMap(item) {
			out = append(out, parseBall(asMap(ball)))
		}
	}
	return out
}

func parseBall(m map[string]any) model.Delivery {
	return model.Delivery{
		Batter:     asString(m["batsman"]),
		Bowler:     asString(m["bowler"]),
		BatterRuns: asInt(asMap(m["runs"])["batsman"]),
		Dismissal:  parseDismissal(m["wicket"]),
	}
}

// parseDismissal normalizes the wicket field, which appears either as a
// mapping or as a single-element list, with the fielder as a scalar
// ("fielder"), a list of names ("fielders"), or a list of {name: ...}
// mappings. Only the first fielder is credited.
func parseDismissal(raw any) *model.Dismissal {
	if items := asList(raw); len(items) > 0 {
		raw = items[0]
	}
	w := asMap(raw)
	if len(w) == 0 {
		return nil
	}

	kind := asString(w["kind"])
	if kind == "" {
		return nil
	}

	fielder := asString(w["fielder"])
	if fielder == "" {
		if fielders := asList(w["fielders"]); len(fielders) > 0 {
			first := fielders[0]
			if name := asString(asMap(first)["name"]); name != "" {
				fielder = name
			} else {
				fielder = asString(first)
			}
		}
	}

	return &model.Dismissal{Kind: kind, Fielder: fielder}
}
