package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"devkit/cli/djcreate/internal/layout"
)

const (
	// LoggerName tags every log record and names the log file.
	LoggerName     = "django-project-creator"
	DefaultProject = "django-project"
	// DefaultUserAgent is sent to the template service, which rejects
	// requests from generic HTTP clients.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Config holds the environment-driven tunables. There is no config file;
// everything has a working default so a bare invocation needs no setup.
type Config struct {
	LogFile      string        `env:"DJCREATE_LOG_FILE" env-description:"append-only log file (default ~/django-project-creator.log)"`
	LogLevel     string        `env:"DJCREATE_LOG_LEVEL" env-default:"debug"`
	Python       string        `env:"DJCREATE_PYTHON" env-description:"host interpreter used to create the environment"`
	Package      string        `env:"DJCREATE_PACKAGE" env-default:"django"`
	TemplateURL  string        `env:"DJCREATE_TEMPLATE_URL" env-default:"https://www.toptal.com/developers/gitignore/api/django"`
	UserAgent    string        `env:"DJCREATE_USER_AGENT"`
	FetchTimeout time.Duration `env:"DJCREATE_FETCH_TIMEOUT" env-default:"0s"`
	DryRun       bool          `env:"DJCREATE_DRY_RUN" env-default:"false"`
	Debug        bool          `env:"DJCREATE_DEBUG" env-default:"false"`
}

// Load reads the environment and fills host-dependent defaults for goos.
func Load(goos string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if strings.TrimSpace(cfg.LogFile) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory for log file: %w", err)
		}
		cfg.LogFile = filepath.Join(home, LoggerName+".log")
	}
	if strings.TrimSpace(cfg.Python) == "" {
		cfg.Python = layout.DefaultPython(goos)
	}
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return cfg, nil
}
