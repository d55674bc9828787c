// Package artifact persists and reloads training outputs: the model
// bundle, the leaderboard side artifact, and the diagnostic chart.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wicketml/gully/internal/domain/features"
	"github.com/wicketml/gully/internal/domain/model"
	"github.com/wicketml/gully/internal/domain/regress"
)

// Bundle is the single cache artifact holding the trained model, the
// player lookup, and the role map. The three are always saved and loaded
// together, never individually.
type Bundle struct {
	SnapshotID string                     `json:"snapshot_id"`
	TrainedAt  time.Time                  `json:"trained_at"`
	Model      regress.Model              `json:"model"`
	Lookup     map[string]features.Vector `json:"lookup"`
	Roles      map[string]model.Role      `json:"roles"`
}

// SaveBundle writes the bundle as one JSON document. The write goes to a
// temp file first and is renamed into place, so readers never observe a
// partially-written artifact.
func SaveBundle(path string, b *Bundle) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	data = append(data, '\n')
	return writeAtomic(path, data)
}

// LoadBundle reads a previously saved bundle. A missing file yields
// ErrNoBundle; an unreadable or structurally invalid file yields
// ErrCorruptBundle. Callers treat both as a signal to retrain.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoBundle
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBundle, err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptBundle, err)
	}
	if b.Lookup == nil || b.Roles == nil {
		return nil, fmt.Errorf("%w: incomplete bundle", ErrCorruptBundle)
	}
	return &b, nil
}

// SaveLeaderboard writes the leaderboard side artifact as a JSON list.
func SaveLeaderboard(path string, entries []model.LeaderboardEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	data = append(data, '\n')
	return writeAtomic(path, data)
}

// LoadLeaderboard reads the leaderboard side artifact.
func LoadLeaderboard(path string) ([]model.LeaderboardEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
