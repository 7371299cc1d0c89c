package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/claude/workoutsync/internal/config"
	"github.com/claude/workoutsync/internal/connect"
	"github.com/claude/workoutsync/internal/ingest"
	"github.com/claude/workoutsync/internal/logging"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *env, args []string) error
	flags   func(fs *pflag.FlagSet)
}

var commands = []*command{
	cmdCompile,
	cmdImport,
	cmdImportRun,
	cmdExport,
	cmdList,
	cmdGet,
	cmdDelete,
	cmdSchedule,
	cmdServe,
	cmdMCP,
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: workoutsync <command> [flags]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(os.Stderr, "  %-11s %s\n", "version", "print version and exit")
	fmt.Fprintf(os.Stderr, "\nRun 'workoutsync <command> --help' for command flags.\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	name := os.Args[1]
	if name == "version" || name == "--version" {
		fmt.Println("workoutsync", Version)
		return
	}

	var cmd *command
	for _, c := range commands {
		if c.name == name {
			cmd = c
		}
	}
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage()
		os.Exit(2)
	}

	fs := pflag.NewFlagSet(cmd.name, pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "path to config file")
	debug := fs.Bool("debug", false, "enable debug logging")
	if cmd.flags != nil {
		cmd.flags(fs)
	}
	fs.Parse(os.Args[2:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Debug:      *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := &env{cfg: cfg, log: log, flags: fs, stdout: os.Stdout}
	if err := cmd.run(ctx, e, fs.Args()); err != nil {
		log.Error(cmd.name+" failed", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

// env carries what every command needs.
type env struct {
	cfg    *config.Config
	log    *slog.Logger
	flags  *pflag.FlagSet
	stdout io.Writer
}

func (e *env) loader() (*ingest.Loader, error) {
	v, err := ingest.NewValidator()
	if err != nil {
		return nil, err
	}
	return ingest.NewLoader(v, e.log), nil
}

// training returns the configured athlete settings, reading the zones file
// when no zones are configured inline.
func (e *env) training(l *ingest.Loader) (ingest.Training, error) {
	t := ingest.Training{
		FTP:             e.cfg.Training.FTP,
		TargetPowerDiff: e.cfg.Training.TargetPowerDiff,
		Zones:           e.cfg.Training.Zones,
	}
	if t.Zones == nil && e.cfg.Training.ZonesFile != "" {
		zones, err := l.LoadZones(e.cfg.Training.ZonesFile)
		if err != nil {
			return t, err
		}
		t.Zones = zones
	}
	return t, nil
}

// client logs in to the workout service, prompting for missing credentials.
func (e *env) client(ctx context.Context) (*connect.Client, error) {
	username, password := e.cfg.Connect.Username, e.cfg.Connect.Password
	if username == "" {
		fmt.Fprint(os.Stderr, "Enter username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Fprint(os.Stderr, "Enter password: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}
		password = string(b)
	}

	c, err := connect.NewClient(e.cfg.Connect.URL, e.cfg.Connect.SSOURL)
	if err != nil {
		return nil, err
	}
	if err := c.Login(ctx, username, password); err != nil {
		return nil, err
	}
	e.log.Info("authenticated", "username", username, "url", e.cfg.Connect.URL)
	return c, nil
}
