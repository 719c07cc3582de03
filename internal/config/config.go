package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Sample returns the commented sample TOML written by "rtvk config init".
func Sample() string {
	return sampleConfig
}

// Credentials holds the environment-sourced secrets for both platforms.
// These are never read from the TOML file.
type Credentials struct {
	RedditUserAgent    string `envconfig:"REDDIT_USER_AGENT" toml:"-"`
	RedditClientID     string `envconfig:"REDDIT_CLIENT_ID" toml:"-"`
	RedditClientSecret string `envconfig:"REDDIT_CLIENT_SECRET" toml:"-"`
	VKToken            string `envconfig:"VK_TOKEN" toml:"-"`
	VKGroupID          int64  `envconfig:"VK_GROUP_ID" toml:"-"`
}

// Paths contains file locations the tool reads and writes.
type Paths struct {
	QueuePath   string `toml:"queue_path" envconfig:"RTVK_QUEUE_PATH"`
	HistoryPath string `toml:"history_path" envconfig:"RTVK_HISTORY_PATH"`
	TempDir     string `toml:"temp_dir" envconfig:"RTVK_TEMP_DIR"`
}

// Posting contains settings for the composed wall post.
type Posting struct {
	// GroupHandle is appended after each tag as @handle; empty disables it.
	GroupHandle string `toml:"group_handle" envconfig:"VK_GROUP_HANDLE"`
}

// External contains settings for external tool invocation.
type External struct {
	FFmpegBinary string `toml:"ffmpeg_binary" envconfig:"RTVK_FFMPEG_BINARY"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" envconfig:"RTVK_LOG_FORMAT"`
	Level  string `toml:"level" envconfig:"RTVK_LOG_LEVEL"`
}

// HTTP contains timeouts applied to outbound API calls.
type HTTP struct {
	RequestTimeout int `toml:"request_timeout" envconfig:"RTVK_REQUEST_TIMEOUT"`
}

// Config encapsulates all configuration values for rtvk.
//
// Precedence, lowest to highest: repository defaults, rtvk.toml, environment
// (including variables loaded from a .env file in the working directory).
type Config struct {
	Credentials Credentials `toml:"-"`
	Paths       Paths       `toml:"paths"`
	Posting     Posting     `toml:"posting"`
	External    External    `toml:"external"`
	Logging     Logging     `toml:"logging"`
	HTTP        HTTP        `toml:"http"`
}

// Load builds the configuration: defaults, then the TOML file when present,
// then the environment. The returned path reports which TOML file was read
// (empty when none existed).
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}
	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", fmt.Errorf("parse config: %w", err)
		}
	} else {
		resolvedPath = ""
	}

	loadDotenv()
	pruneEmptyEnv()

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, "", fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

// loadDotenv seeds the process environment from ./.env when the file exists.
// Variables already set in the environment win, matching godotenv semantics.
func loadDotenv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	_ = godotenv.Load()
}

// envVars lists every variable the environment step reads.
var envVars = []string{
	"REDDIT_USER_AGENT", "REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET",
	"VK_TOKEN", "VK_GROUP_ID", "VK_GROUP_HANDLE",
	"RTVK_QUEUE_PATH", "RTVK_HISTORY_PATH", "RTVK_TEMP_DIR",
	"RTVK_FFMPEG_BINARY", "RTVK_LOG_FORMAT", "RTVK_LOG_LEVEL",
	"RTVK_REQUEST_TIMEOUT",
}

// pruneEmptyEnv unsets variables that are present but blank, such as a bare
// "VK_GROUP_ID=" line in a .env file. A blank value means unset here: it
// must not mask a default or trip numeric parsing before Validate runs.
func pruneEmptyEnv() {
	for _, name := range envVars {
		if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) == "" {
			os.Unsetenv(name)
		}
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", false, fmt.Errorf("resolve config path: %w", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", false, fmt.Errorf("config file %s does not exist", abs)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", abs)
		}
		return abs, true, nil
	}

	projectPath, err := filepath.Abs("rtvk.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return "", false, nil
}

func (c *Config) normalize() error {
	c.Credentials.RedditUserAgent = strings.TrimSpace(c.Credentials.RedditUserAgent)
	c.Credentials.RedditClientID = strings.TrimSpace(c.Credentials.RedditClientID)
	c.Credentials.RedditClientSecret = strings.TrimSpace(c.Credentials.RedditClientSecret)
	c.Credentials.VKToken = strings.TrimSpace(c.Credentials.VKToken)
	c.Posting.GroupHandle = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.Posting.GroupHandle), "@"))
	c.External.FFmpegBinary = strings.TrimSpace(c.External.FFmpegBinary)

	for _, field := range []*string{&c.Paths.QueuePath, &c.Paths.HistoryPath, &c.Paths.TempDir} {
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.HTTP.RequestTimeout <= 0 {
		c.HTTP.RequestTimeout = defaultRequestTimeout
	}
	return nil
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
