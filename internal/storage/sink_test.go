package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/workoutsync/internal/models"
)

type fakeSource struct {
	workouts []models.WorkoutSummary
	files    map[int64][]byte
}

func (f *fakeSource) ListWorkouts(context.Context) ([]models.WorkoutSummary, error) {
	return f.workouts, nil
}

func (f *fakeSource) DownloadWorkout(_ context.Context, id int64) ([]byte, error) {
	data, ok := f.files[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func TestExportLocal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fit")
	sink, err := NewLocalSink(dir)
	require.NoError(t, err)

	src := &fakeSource{
		workouts: []models.WorkoutSummary{
			{WorkoutID: 11, WorkoutName: "vo2max"},
			{WorkoutID: 12, WorkoutName: "long run"},
		},
		files: map[int64][]byte{11: []byte("fit-11"), 12: []byte("fit-12")},
	}

	n, err := Export(context.Background(), src, sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := os.ReadFile(filepath.Join(dir, "11.fit"))
	require.NoError(t, err)
	assert.Equal(t, "fit-11", string(got))
	assert.FileExists(t, filepath.Join(dir, "12.fit"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "write test file should be removed")
}

func TestExportStopsOnDownloadError(t *testing.T) {
	sink, err := NewLocalSink(t.TempDir())
	require.NoError(t, err)
	src := &fakeSource{
		workouts: []models.WorkoutSummary{{WorkoutID: 1, WorkoutName: "a"}, {WorkoutID: 2, WorkoutName: "b"}},
		files:    map[int64][]byte{1: []byte("x")},
	}
	n, err := Export(context.Background(), src, sink, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
	assert.Equal(t, 1, n)
}

func TestS3Location(t *testing.T) {
	s := &S3Sink{bucket: "workouts", prefix: "exports/2026"}
	assert.Equal(t, "s3://workouts/exports/2026/5.fit", s.Location("5.fit"))

	s.prefix = ""
	assert.Equal(t, "s3://workouts/5.fit", s.Location("5.fit"))
}

func TestNewS3SinkRequiresBucket(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Config{Region: "us-east-1"})
	assert.ErrorContains(t, err, "bucket is required")
}
