package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
connect:
  username: "rider@example.com"
training:
  ftp: 250
  target_power_diff: 0.03
  zones:
    easy: { type: pace, min: "6:30", max: "6:00" }
server:
  host: "0.0.0.0"
  port: 9090
  api_key: "test-key-123"
log:
  level: debug
export:
  s3:
    endpoint: "http://localhost:9000"
    region: "us-east-1"
    bucket: "workouts"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Connect.Username != "rider@example.com" {
		t.Errorf("connect.username = %q", cfg.Connect.Username)
	}
	if cfg.Training.FTP != 250 {
		t.Errorf("training.ftp = %v, want 250", cfg.Training.FTP)
	}
	if cfg.Training.TargetPowerDiff != 0.03 {
		t.Errorf("training.target_power_diff = %v, want 0.03", cfg.Training.TargetPowerDiff)
	}
	if z := cfg.Training.Zones["easy"]; z.Kind != "pace" || z.Min != "6:30" {
		t.Errorf("training.zones.easy = %+v", z)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if !cfg.Export.S3.Enabled() || cfg.Export.S3.Bucket != "workouts" {
		t.Errorf("export.s3 = %+v", cfg.Export.S3)
	}
}

// TestDefaults verifies that unset fields keep their defaults.
func TestDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Connect.URL != "https://connect.garmin.com" {
		t.Errorf("connect.url = %q", cfg.Connect.URL)
	}
	if cfg.State.Dir != ".workoutsync" {
		t.Errorf("state.dir = %q", cfg.State.Dir)
	}
	if cfg.Log.MaxBackups != 3 {
		t.Errorf("log.max_backups = %d, want 3", cfg.Log.MaxBackups)
	}
}

// TestLoadNoFile verifies that an empty path yields a valid default config.
func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Training.TargetPowerDiff != 0.05 {
		t.Errorf("training.target_power_diff = %v, want 0.05", cfg.Training.TargetPowerDiff)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
}

// TestEnvOverride verifies that WORKOUTSYNC_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("WORKOUTSYNC_TRAINING_FTP", "275")
	t.Setenv("WORKOUTSYNC_SERVER_PORT", "9999")
	t.Setenv("WORKOUTSYNC_CONNECT_PASSWORD", "hunter2")
	t.Setenv("WORKOUTSYNC_TAILSCALE_ENABLED", "true")
	t.Setenv("WORKOUTSYNC_S3_BUCKET", "other")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Training.FTP != 275 {
		t.Errorf("training.ftp = %v, want 275", cfg.Training.FTP)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Connect.Password != "hunter2" {
		t.Errorf("connect.password = %q", cfg.Connect.Password)
	}
	if !cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled = false, want true")
	}
	if cfg.Export.S3.Bucket != "other" {
		t.Errorf("export.s3.bucket = %q", cfg.Export.S3.Bucket)
	}
	// Unchanged fields should keep YAML values
	if cfg.Connect.Username != "rider@example.com" {
		t.Errorf("connect.username = %q", cfg.Connect.Username)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative ftp", "training:\n  ftp: -1\n"},
		{"tolerance too large", "training:\n  target_power_diff: 1.5\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"tailscale without hostname", "tailscale:\n  enabled: true\n  hostname: \"\"\n"},
		{"bucket without region", "export:\n  s3:\n    bucket: b\n"},
		{"empty state dir", "state:\n  dir: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tt.yaml)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
