package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/claude/workoutsync/internal/connect"
	"github.com/claude/workoutsync/internal/workout"
)

type Config struct {
	Connect   ConnectConfig   `yaml:"connect"`
	Training  TrainingConfig  `yaml:"training"`
	Server    ServerConfig    `yaml:"server"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Log       LogConfig       `yaml:"log"`
	State     StateConfig     `yaml:"state"`
	Export    ExportConfig    `yaml:"export"`
}

type ConnectConfig struct {
	URL      string `yaml:"url"`
	SSOURL   string `yaml:"sso_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type TrainingConfig struct {
	FTP             float64           `yaml:"ftp"`
	TargetPowerDiff float64           `yaml:"target_power_diff"`
	Zones           workout.ZoneTable `yaml:"zones"`
	// ZonesFile is read by the commands that need zones; inline Zones win.
	ZonesFile string `yaml:"zones_file"`
}

type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type StateConfig struct {
	Dir string `yaml:"dir"`
}

type ExportConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// Enabled reports whether exports should go to S3 instead of a directory.
func (s S3Config) Enabled() bool { return s.Bucket != "" }

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Connect: ConnectConfig{
			URL:    connect.DefaultConnectURL,
			SSOURL: connect.DefaultSSOURL,
		},
		Training: TrainingConfig{
			TargetPowerDiff: workout.DefaultTargetPowerDiff,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Tailscale: TailscaleConfig{
			Hostname: "workoutsync",
			StateDir: "tsnet-state",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		State: StateConfig{
			Dir: ".workoutsync",
		},
	}
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. An empty path skips the file. Env vars
// use the prefix WORKOUTSYNC_ and underscore-separated paths:
//
//	WORKOUTSYNC_CONNECT_URL, WORKOUTSYNC_CONNECT_SSO_URL,
//	WORKOUTSYNC_CONNECT_USERNAME, WORKOUTSYNC_CONNECT_PASSWORD,
//	WORKOUTSYNC_TRAINING_FTP, WORKOUTSYNC_TRAINING_TARGET_POWER_DIFF,
//	WORKOUTSYNC_TRAINING_ZONES_FILE,
//	WORKOUTSYNC_SERVER_HOST, WORKOUTSYNC_SERVER_PORT, WORKOUTSYNC_SERVER_API_KEY,
//	WORKOUTSYNC_TAILSCALE_ENABLED, WORKOUTSYNC_TAILSCALE_HOSTNAME,
//	WORKOUTSYNC_LOG_LEVEL, WORKOUTSYNC_LOG_FILE, WORKOUTSYNC_STATE_DIR,
//	WORKOUTSYNC_S3_ENDPOINT, WORKOUTSYNC_S3_REGION, WORKOUTSYNC_S3_BUCKET,
//	WORKOUTSYNC_S3_PREFIX, WORKOUTSYNC_S3_ACCESS_KEY_ID,
//	WORKOUTSYNC_S3_SECRET_ACCESS_KEY
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	str("WORKOUTSYNC_CONNECT_URL", &cfg.Connect.URL)
	str("WORKOUTSYNC_CONNECT_SSO_URL", &cfg.Connect.SSOURL)
	str("WORKOUTSYNC_CONNECT_USERNAME", &cfg.Connect.Username)
	str("WORKOUTSYNC_CONNECT_PASSWORD", &cfg.Connect.Password)

	if v := os.Getenv("WORKOUTSYNC_TRAINING_FTP"); v != "" {
		if ftp, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Training.FTP = ftp
		}
	}
	if v := os.Getenv("WORKOUTSYNC_TRAINING_TARGET_POWER_DIFF"); v != "" {
		if diff, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Training.TargetPowerDiff = diff
		}
	}
	str("WORKOUTSYNC_TRAINING_ZONES_FILE", &cfg.Training.ZonesFile)

	str("WORKOUTSYNC_SERVER_HOST", &cfg.Server.Host)
	if v := os.Getenv("WORKOUTSYNC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	str("WORKOUTSYNC_SERVER_API_KEY", &cfg.Server.APIKey)

	if v := os.Getenv("WORKOUTSYNC_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	str("WORKOUTSYNC_TAILSCALE_HOSTNAME", &cfg.Tailscale.Hostname)

	str("WORKOUTSYNC_LOG_LEVEL", &cfg.Log.Level)
	str("WORKOUTSYNC_LOG_FILE", &cfg.Log.File)
	str("WORKOUTSYNC_STATE_DIR", &cfg.State.Dir)

	str("WORKOUTSYNC_S3_ENDPOINT", &cfg.Export.S3.Endpoint)
	str("WORKOUTSYNC_S3_REGION", &cfg.Export.S3.Region)
	str("WORKOUTSYNC_S3_BUCKET", &cfg.Export.S3.Bucket)
	str("WORKOUTSYNC_S3_PREFIX", &cfg.Export.S3.Prefix)
	str("WORKOUTSYNC_S3_ACCESS_KEY_ID", &cfg.Export.S3.AccessKeyID)
	str("WORKOUTSYNC_S3_SECRET_ACCESS_KEY", &cfg.Export.S3.SecretAccessKey)
}

func (c *Config) validate() error {
	if c.Connect.URL == "" {
		return fmt.Errorf("connect.url is required")
	}
	if c.Connect.SSOURL == "" {
		return fmt.Errorf("connect.sso_url is required")
	}
	if c.Training.FTP < 0 {
		return fmt.Errorf("training.ftp must not be negative")
	}
	if c.Training.TargetPowerDiff < 0 || c.Training.TargetPowerDiff >= 1 {
		return fmt.Errorf("training.target_power_diff must be in [0, 1)")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if c.State.Dir == "" {
		return fmt.Errorf("state.dir is required")
	}
	if c.Export.S3.Enabled() && c.Export.S3.Region == "" {
		return fmt.Errorf("export.s3.region is required when a bucket is set")
	}
	return nil
}
