// Package storage writes exported workout files to a local directory or
// an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/claude/workoutsync/internal/models"
)

// Sink stores exported files under a key.
type Sink interface {
	Put(ctx context.Context, key string, data []byte) error
	// Location describes where key ends up, for logging.
	Location(key string) string
}

// LocalSink writes files into a directory.
type LocalSink struct {
	dir string
}

// NewLocalSink creates the directory if needed and checks that it is
// writable.
func NewLocalSink(dir string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".write-test-*")
	if err != nil {
		return nil, fmt.Errorf("export dir %s is not writable: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return &LocalSink{dir: dir}, nil
}

func (s *LocalSink) Put(_ context.Context, key string, data []byte) error {
	path := s.Location(key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (s *LocalSink) Location(key string) string {
	return filepath.Join(s.dir, key)
}

// Source lists remote workouts and downloads them as FIT files.
type Source interface {
	ListWorkouts(ctx context.Context) ([]models.WorkoutSummary, error)
	DownloadWorkout(ctx context.Context, id int64) ([]byte, error)
}

// Export downloads every remote workout into sink as <workoutId>.fit and
// returns the number of files written.
func Export(ctx context.Context, src Source, sink Sink, log *slog.Logger) (int, error) {
	list, err := src.ListWorkouts(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing workouts: %w", err)
	}

	n := 0
	for _, w := range list {
		key := strconv.FormatInt(w.WorkoutID, 10) + ".fit"
		data, err := src.DownloadWorkout(ctx, w.WorkoutID)
		if err != nil {
			return n, fmt.Errorf("downloading %q: %w", w.WorkoutName, err)
		}
		log.Info("exporting workout", "workout", w.WorkoutName, "to", sink.Location(key))
		if err := sink.Put(ctx, key, data); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
