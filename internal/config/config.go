package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/orgverse/internal/app"
	"github.com/atomicstack/orgverse/internal/collection"
	"github.com/atomicstack/orgverse/internal/github"
	"github.com/atomicstack/orgverse/internal/stats"
	"github.com/spf13/pflag"
)

const (
	// CommandFetch collects a fresh stats document instead of opening the viewer.
	CommandFetch = "fetch"
	// CommandInsights prints a summary of the stats document and exits.
	CommandInsights = "insights"
)

// Config captures runtime configuration for the application.
type Config struct {
	Command  string
	App      app.Config
	Fetch    app.FetchConfig
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
	Watch   bool
}

const (
	envStats      = "ORGVERSE_STATS"
	envLayout     = "ORGVERSE_LAYOUT"
	envWidth      = "ORGVERSE_WIDTH"
	envHeight     = "ORGVERSE_HEIGHT"
	envShowFooter = "ORGVERSE_FOOTER"
	envVerbose    = "ORGVERSE_VERBOSE"
	envTrace      = "ORGVERSE_TRACE"
	envLogFile    = "ORGVERSE_LOG_FILE"
	envWatch      = "ORGVERSE_WATCH"
	envFPS        = "ORGVERSE_FPS"
	envAPIURL     = "ORGVERSE_API_URL"
	envToken      = "GITHUB_TOKEN"

	defaultFPS = 30
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	command := ""
	rest := args
	if len(rest) > 0 && (rest[0] == CommandFetch || rest[0] == CommandInsights) {
		command = rest[0]
		rest = rest[1:]
	}

	fs := pflag.NewFlagSet("orgverse", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	statsPath := fs.String("stats", envOrDefault(env, envStats, stats.DefaultPath), "path to the stats document")
	layoutPath := fs.String("layout", envOrDefault(env, envLayout, ""), "YAML file overriding visualizer layouts")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload when the stats document changes")
	fps := fs.Int("fps", envOrInt(env, envFPS, defaultFPS), "animation frames per second")

	apiURL := fs.String("api-url", envOrDefault(env, envAPIURL, github.DefaultBaseURL), "GitHub REST API base URL")
	var token *string
	if command == CommandFetch {
		token = fs.String("token", envOrDefault(env, envToken, ""), "GitHub token (enables members, reviewers and contributor stats)")
	}

	if err := fs.Parse(rest); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *fps < 1 {
		return Config{}, fmt.Errorf("fps must be >= 1 (got %d)", *fps)
	}

	layouts := collection.Defaults()
	if *layoutPath != "" {
		loaded, err := LoadLayout(*layoutPath)
		if err != nil {
			return Config{}, err
		}
		layouts = loaded
	}

	cfg := Config{
		Command: command,
		App: app.Config{
			StatsPath:  *statsPath,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Verbose:    *verbose,
			Watch:      *watch,
			FPS:        *fps,
			Layouts:    layouts,
			APIURL:     *apiURL,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
			Watch:   *watch,
		},
		Flags: map[string]string{
			"stats":   *statsPath,
			"layout":  *layoutPath,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"footer":  strconv.FormatBool(*footer),
			"trace":   strconv.FormatBool(*trace),
			"verbose": strconv.FormatBool(*verbose),
			"logFile": *logFile,
			"watch":   strconv.FormatBool(*watch),
			"fps":     strconv.Itoa(*fps),
			"apiURL":  *apiURL,
		},
		Args: append([]string(nil), args...),
	}

	if command == CommandFetch {
		positional := fs.Args()
		if len(positional) != 2 {
			return Config{}, fmt.Errorf("usage: orgverse fetch ORG REPO (got %d arguments)", len(positional))
		}
		cfg.Fetch = app.FetchConfig{
			Org:       positional[0],
			Repo:      positional[1],
			Token:     *token,
			APIURL:    *apiURL,
			StatsPath: *statsPath,
		}
		cfg.Flags["token"] = redact(*token)
	} else if extra := fs.Args(); len(extra) > 0 {
		return Config{}, fmt.Errorf("unexpected argument: %s", extra[0])
	}

	return cfg, nil
}

func redact(token string) string {
	if token == "" {
		return ""
	}
	return "<set>"
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	var errs []error
	if strings.TrimSpace(cfg.App.StatsPath) == "" {
		errs = append(errs, errors.New("stats path must not be empty"))
	}
	for _, id := range collection.IDs {
		opts, ok := cfg.App.Layouts[id]
		if !ok {
			continue
		}
		if err := opts.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s layout: %w", id, err))
		}
	}
	if cfg.Command == CommandFetch {
		if strings.TrimSpace(cfg.Fetch.Org) == "" || strings.TrimSpace(cfg.Fetch.Repo) == "" {
			errs = append(errs, errors.New("fetch needs both an organization and a repository"))
		}
	}
	return errors.Join(errs...)
}
