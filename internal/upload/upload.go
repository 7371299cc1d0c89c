package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/claude/workoutsync/internal/models"
	"github.com/claude/workoutsync/internal/schedule"
	"github.com/claude/workoutsync/internal/workout"
)

// Remote is the part of the workout service the uploader needs.
type Remote interface {
	ListWorkouts(ctx context.Context) ([]models.WorkoutSummary, error)
	SaveWorkout(ctx context.Context, w models.Workout) (*models.WorkoutSummary, error)
	UpdateWorkout(ctx context.Context, id int64, w models.Workout) error
	ScheduleWorkout(ctx context.Context, id int64, date time.Time) error
}

// Stats tracks import progress.
type Stats struct {
	Total     int
	Created   int
	Updated   int
	Skipped   int
	Errored   int
	Scheduled int

	// Failed lists the names of workouts that did not compile.
	Failed []string
}

const lastImportKey = "last_import"

// Uploader compiles workout definitions and creates or updates them on the
// remote service, matching existing workouts by name.
type Uploader struct {
	remote   Remote
	compiler *workout.Compiler
	state    *StateDB
	dryRun   bool
	out      io.Writer
	log      *slog.Logger
	stats    Stats
}

// New creates a new Uploader. state may be nil to always send. In dry-run
// mode remote may be nil; payloads are written to stdout instead.
func New(remote Remote, compiler *workout.Compiler, state *StateDB, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		remote:   remote,
		compiler: compiler,
		state:    state,
		dryRun:   dryRun,
		out:      os.Stdout,
		log:      log,
	}
}

// SetOutput sets where dry-run payloads are written.
func (u *Uploader) SetOutput(w io.Writer) { u.out = w }

// Run imports defs. A definition that fails to compile is logged, counted
// and skipped; remote errors abort the run.
func (u *Uploader) Run(ctx context.Context, defs []workout.Definition) (*Stats, error) {
	existing := map[string]models.WorkoutSummary{}
	if !u.dryRun {
		list, err := u.remote.ListWorkouts(ctx)
		if err != nil {
			return &u.stats, fmt.Errorf("listing workouts: %w", err)
		}
		for _, w := range list {
			existing[w.WorkoutName] = w
		}
		u.log.Info("fetched remote workouts", "count", len(list))
	}

	for _, def := range defs {
		u.stats.Total++

		var identity *workout.RemoteIdentity
		prev, found := existing[def.Name]
		if found {
			identity = &workout.RemoteIdentity{ID: prev.WorkoutID, OwnerID: prev.OwnerID}
		}

		w, err := u.compiler.Compile(def, identity)
		if err != nil {
			u.log.Warn("compile failed", "workout", def.Name, "error", err)
			u.stats.Errored++
			u.stats.Failed = append(u.stats.Failed, def.Name)
			continue
		}
		payload := ToPayload(w)

		if u.dryRun {
			if err := u.print(payload); err != nil {
				return &u.stats, err
			}
			continue
		}

		if err := u.send(ctx, payload, found, prev.WorkoutID); err != nil {
			return &u.stats, err
		}
	}

	if !u.dryRun && u.state != nil {
		if err := u.state.SetSyncState(lastImportKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
			u.log.Warn("failed to record import time", "error", err)
		}
	}

	return &u.stats, nil
}

func (u *Uploader) send(ctx context.Context, payload models.Workout, found bool, remoteID int64) error {
	name := payload.WorkoutName
	fp, err := Fingerprint(payload)
	if err != nil {
		return fmt.Errorf("fingerprinting %q: %w", name, err)
	}

	if found && u.state != nil {
		done, err := u.state.IsImported(name, fp, remoteID)
		if err != nil {
			u.log.Warn("state check failed", "workout", name, "error", err)
		} else if done {
			u.log.Debug("workout unchanged", "workout", name, "id", remoteID)
			u.stats.Skipped++
			return nil
		}
	}

	if found {
		u.log.Info("updating workout", "workout", name, "id", remoteID)
		if err := u.remote.UpdateWorkout(ctx, remoteID, payload); err != nil {
			return fmt.Errorf("updating %q: %w", name, err)
		}
		u.stats.Updated++
	} else {
		u.log.Info("creating workout", "workout", name)
		saved, err := u.remote.SaveWorkout(ctx, payload)
		if err != nil {
			return fmt.Errorf("creating %q: %w", name, err)
		}
		remoteID = saved.WorkoutID
		u.stats.Created++
	}

	if u.state != nil {
		if err := u.state.MarkImported(name, fp, remoteID); err != nil {
			u.log.Warn("failed to mark imported", "workout", name, "error", err)
		}
	}
	return nil
}

func (u *Uploader) print(payload models.Workout) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %q: %w", payload.WorkoutName, err)
	}
	_, err = fmt.Fprintf(u.out, "%s\n", data)
	return err
}

// Schedule puts each entry's workout on the calendar, looking workouts up
// by name. Unknown names are an error.
func (u *Uploader) Schedule(ctx context.Context, entries []schedule.Entry) error {
	if u.dryRun {
		for _, e := range entries {
			u.log.Info("dry-run: would schedule", "workout", e.Name, "date", e.Date.Format(time.DateOnly))
		}
		return nil
	}

	list, err := u.remote.ListWorkouts(ctx)
	if err != nil {
		return fmt.Errorf("listing workouts: %w", err)
	}
	ids := make(map[string]int64, len(list))
	for _, w := range list {
		ids[w.WorkoutName] = w.WorkoutID
	}

	for _, e := range entries {
		id, ok := ids[e.Name]
		if !ok {
			return fmt.Errorf("scheduling %q: no such workout", e.Name)
		}
		if err := u.remote.ScheduleWorkout(ctx, id, e.Date); err != nil {
			return fmt.Errorf("scheduling %q: %w", e.Name, err)
		}
		u.log.Info("scheduled workout", "workout", e.Name, "date", e.Date.Format(time.DateOnly))
		u.stats.Scheduled++
	}
	return nil
}

// Stats returns the counters accumulated so far.
func (u *Uploader) Stats() Stats { return u.stats }
