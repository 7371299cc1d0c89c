package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/claude/workoutsync/internal/ingest"
	"github.com/claude/workoutsync/internal/schedule"
	"github.com/claude/workoutsync/internal/storage"
	"github.com/claude/workoutsync/internal/upload"
	"github.com/claude/workoutsync/internal/workout"
)

var cmdCompile = &command{
	name:    "compile",
	summary: "compile workout file(s) and print the payloads without sending them",
	flags: func(fs *pflag.FlagSet) {
		fs.String("discipline", "effort", "effort (power-based) or locomotion (pace-based)")
		fs.Float64("ftp", 0, "FTP in watts (defaults to training.ftp)")
		fs.Float64("target-power-diff", 0, "half-width of power corridors as a fraction (defaults to training.target_power_diff)")
		fs.String("zones", "", "zone table file (defaults to training zones)")
	},
	run: func(ctx context.Context, e *env, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: workoutsync compile <pattern>")
		}
		l, err := e.loader()
		if err != nil {
			return err
		}
		discipline, _ := e.flags.GetString("discipline")
		d, err := e.discipline(l, discipline)
		if err != nil {
			return err
		}
		defs, err := l.LoadWorkouts(args[0])
		if err != nil {
			return err
		}
		u := upload.New(nil, workout.NewCompiler(d), nil, true, e.log)
		u.SetOutput(e.stdout)
		stats, err := u.Run(ctx, defs)
		if err != nil {
			return err
		}
		if stats.Errored > 0 {
			return fmt.Errorf("%d of %d workouts failed to compile: %v", stats.Errored, stats.Total, stats.Failed)
		}
		return nil
	},
}

func importFlags(fs *pflag.FlagSet) {
	fs.Bool("dry-run", false, "compile and print payloads but don't send them")
	fs.String("plan", "", "training plan file to schedule the imported workouts with")
	fs.Bool("no-state", false, "ignore the sync ledger and send every workout")
}

var cmdImport = &command{
	name:    "import",
	summary: "import power-based workout(s) matching a file pattern",
	flags: func(fs *pflag.FlagSet) {
		importFlags(fs)
		fs.Float64("ftp", 0, "FTP in watts (defaults to training.ftp)")
		fs.Float64("target-power-diff", 0, "half-width of power corridors as a fraction (defaults to training.target_power_diff)")
	},
	run: func(ctx context.Context, e *env, args []string) error {
		return e.runImport(ctx, "effort", args)
	},
}

var cmdImportRun = &command{
	name:    "import-run",
	summary: "import pace-based running workout(s) matching a file pattern",
	flags: func(fs *pflag.FlagSet) {
		importFlags(fs)
		fs.String("zones", "", "zone table file (defaults to training zones)")
	},
	run: func(ctx context.Context, e *env, args []string) error {
		return e.runImport(ctx, "locomotion", args)
	},
}

func (e *env) runImport(ctx context.Context, discipline string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: workoutsync %s <pattern>", e.flags.Name())
	}
	dryRun, _ := e.flags.GetBool("dry-run")
	noState, _ := e.flags.GetBool("no-state")
	planPath, _ := e.flags.GetString("plan")

	l, err := e.loader()
	if err != nil {
		return err
	}
	d, err := e.discipline(l, discipline)
	if err != nil {
		return err
	}
	defs, err := l.LoadWorkouts(args[0])
	if err != nil {
		return err
	}

	var entries []schedule.Entry
	if planPath != "" {
		plan, err := schedule.Load(planPath)
		if err != nil {
			return err
		}
		if entries, err = plan.Resolve(); err != nil {
			return err
		}
	}

	var remote upload.Remote
	if !dryRun {
		c, err := e.client(ctx)
		if err != nil {
			return err
		}
		remote = c
	} else {
		e.log.Info("DRY RUN mode: workouts will be compiled but not sent")
	}

	var state *upload.StateDB
	if !dryRun && !noState {
		state, err = upload.OpenStateDB(e.cfg.State.Dir)
		if err != nil {
			return err
		}
		defer state.Close()
	}

	u := upload.New(remote, workout.NewCompiler(d), state, dryRun, e.log)
	u.SetOutput(e.stdout)
	stats, err := u.Run(ctx, defs)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		if err := u.Schedule(ctx, entries); err != nil {
			return err
		}
	}

	final := u.Stats()
	e.log.Info("import complete",
		"total", stats.Total,
		"created", final.Created,
		"updated", final.Updated,
		"skipped", final.Skipped,
		"errored", final.Errored,
		"scheduled", final.Scheduled,
	)
	if final.Errored > 0 {
		return fmt.Errorf("%d workouts failed to compile: %v", final.Errored, final.Failed)
	}
	return nil
}

// discipline builds the named discipline from flags over config.
func (e *env) discipline(l *ingest.Loader, name string) (workout.Discipline, error) {
	t, err := e.training(l)
	if err != nil {
		return nil, err
	}
	req := &ingest.Request{Discipline: name, Zones: t.Zones}

	if e.flags.Lookup("ftp") != nil {
		req.FTP, _ = e.flags.GetFloat64("ftp")
	}
	if e.flags.Changed("target-power-diff") {
		diff, _ := e.flags.GetFloat64("target-power-diff")
		req.TargetPowerDiff = &diff
	}
	if e.flags.Lookup("zones") != nil {
		if path, _ := e.flags.GetString("zones"); path != "" {
			zones, err := l.LoadZones(path)
			if err != nil {
				return nil, err
			}
			req.Zones = zones
		}
	}
	return req.ResolveDiscipline(t)
}

var cmdExport = &command{
	name:    "export",
	summary: "download all workouts as FIT files into a directory (or the configured S3 bucket)",
	run: func(ctx context.Context, e *env, args []string) error {
		var sink storage.Sink
		if s3cfg := e.cfg.Export.S3; s3cfg.Enabled() {
			s, err := storage.NewS3Sink(ctx, storage.S3Config{
				Endpoint:        s3cfg.Endpoint,
				Region:          s3cfg.Region,
				Bucket:          s3cfg.Bucket,
				Prefix:          s3cfg.Prefix,
				AccessKeyID:     s3cfg.AccessKeyID,
				SecretAccessKey: s3cfg.SecretAccessKey,
			})
			if err != nil {
				return err
			}
			sink = s
		} else {
			if len(args) != 1 {
				return fmt.Errorf("usage: workoutsync export <directory>")
			}
			s, err := storage.NewLocalSink(args[0])
			if err != nil {
				return err
			}
			sink = s
		}

		c, err := e.client(ctx)
		if err != nil {
			return err
		}
		n, err := storage.Export(ctx, c, sink, e.log)
		if err != nil {
			return err
		}
		e.log.Info("export complete", "files", n)
		return nil
	},
}

var cmdList = &command{
	name:    "list",
	summary: "list all workouts",
	run: func(ctx context.Context, e *env, args []string) error {
		c, err := e.client(ctx)
		if err != nil {
			return err
		}
		list, err := c.ListWorkouts(ctx)
		if err != nil {
			return err
		}
		for _, w := range list {
			fmt.Fprintf(e.stdout, "%d %-20s %s\n", w.WorkoutID, w.WorkoutName, w.Description)
		}
		return nil
	},
}

func idFlag(fs *pflag.FlagSet) {
	fs.Int64("id", 0, "workout id, use the list command to get workout ids")
}

func requireID(e *env) (int64, error) {
	id, _ := e.flags.GetInt64("id")
	if id <= 0 {
		return 0, fmt.Errorf("--id is required")
	}
	return id, nil
}

var cmdGet = &command{
	name:    "get",
	summary: "print one workout as JSON",
	flags:   idFlag,
	run: func(ctx context.Context, e *env, args []string) error {
		id, err := requireID(e)
		if err != nil {
			return err
		}
		c, err := e.client(ctx)
		if err != nil {
			return err
		}
		raw, err := c.GetWorkout(ctx, id)
		if err != nil {
			return err
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		out, err := json.MarshalIndent(dropEmpty(v), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "%s\n", out)
		return nil
	},
}

// dropEmpty removes null values and empty containers from decoded JSON.
func dropEmpty(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, x := range v {
			x = dropEmpty(x)
			if isEmpty(x) {
				continue
			}
			out[k] = x
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, x := range v {
			x = dropEmpty(x)
			if isEmpty(x) {
				continue
			}
			out = append(out, x)
		}
		return out
	}
	return v
}

func isEmpty(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

var cmdDelete = &command{
	name:    "delete",
	summary: "delete a workout",
	flags:   idFlag,
	run: func(ctx context.Context, e *env, args []string) error {
		id, err := requireID(e)
		if err != nil {
			return err
		}
		c, err := e.client(ctx)
		if err != nil {
			return err
		}
		e.log.Info("deleting workout", "id", id)
		return c.DeleteWorkout(ctx, id)
	},
}

var cmdSchedule = &command{
	name:    "schedule",
	summary: "schedule a workout on a date, or every workout of a training plan",
	flags: func(fs *pflag.FlagSet) {
		fs.Int64P("workout-id", "w", 0, "workout id to schedule")
		fs.StringP("date", "d", "", "date to schedule the workout on (YYYY-MM-DD)")
		fs.String("plan", "", "training plan file; schedules its workouts by name")
	},
	run: func(ctx context.Context, e *env, args []string) error {
		planPath, _ := e.flags.GetString("plan")
		if planPath != "" {
			plan, err := schedule.Load(planPath)
			if err != nil {
				return err
			}
			entries, err := plan.Resolve()
			if err != nil {
				return err
			}
			c, err := e.client(ctx)
			if err != nil {
				return err
			}
			return upload.New(c, nil, nil, false, e.log).Schedule(ctx, entries)
		}

		id, _ := e.flags.GetInt64("workout-id")
		dateStr, _ := e.flags.GetString("date")
		if id <= 0 || dateStr == "" {
			return fmt.Errorf("--workout-id and --date are required (or use --plan)")
		}
		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return fmt.Errorf("--date %q: %w", dateStr, err)
		}
		c, err := e.client(ctx)
		if err != nil {
			return err
		}
		if err := c.ScheduleWorkout(ctx, id, date); err != nil {
			return err
		}
		e.log.Info("scheduled workout", "id", strconv.FormatInt(id, 10), "date", dateStr)
		return nil
	},
}
