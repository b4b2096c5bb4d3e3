// Package config resolves runtime settings from defaults, an optional TOML
// file, environment variables and command line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Sample selects which demo the binary runs
type Sample string

const (
	SampleStore    Sample = "store"
	SampleLobbies  Sample = "lobbies"
	SampleSessions Sample = "sessions"
)

// BackendKind selects the game-services backend
type BackendKind string

const (
	BackendLocal BackendKind = "local"
	BackendWS    BackendKind = "ws"
	BackendNATS  BackendKind = "nats"
)

// Duration wraps time.Duration for TOML text values such as "300s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Backend configures the SDK backend
type Backend struct {
	Kind         BackendKind `toml:"kind"`
	Endpoints    []string    `toml:"endpoints"`
	NATSURL      string      `toml:"nats_url"`
	ConsulAddr   string      `toml:"consul_addr"`
	ServiceName  string      `toml:"service_name"`
	LatencyTicks int         `toml:"latency_ticks"`
	CallTimeout  Duration    `toml:"call_timeout"`
}

// Refresh holds the domain cache refresh intervals
type Refresh struct {
	Store    Duration `toml:"store"`
	Lobby    Duration `toml:"lobby"`
	Sessions Duration `toml:"sessions"`
}

// Config is the fully resolved runtime configuration
type Config struct {
	Sample          Sample   `toml:"sample"`
	Backend         Backend  `toml:"backend"`
	Refresh         Refresh  `toml:"refresh"`
	FrameInterval   Duration `toml:"frame_interval"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	Audio           bool     `toml:"audio"`
	Debug           bool     `toml:"debug"`
	LogDir          string   `toml:"log_dir"`
	Headless        bool     `toml:"headless"`
	ColorMode       string   `toml:"color"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Sample: SampleStore,
		Backend: Backend{
			Kind:         BackendLocal,
			ServiceName:  "gamesvc",
			LatencyTicks: 3,
			CallTimeout:  Duration{10 * time.Second},
		},
		Refresh: Refresh{
			Store:    Duration{300 * time.Second},
			Lobby:    Duration{10 * time.Second},
			Sessions: Duration{15 * time.Second},
		},
		FrameInterval:   Duration{16 * time.Millisecond},
		ShutdownTimeout: Duration{7 * time.Second},
		Audio:           true,
		LogDir:          "logs",
		ColorMode:       "auto",
	}
}

// LoadFile overlays the TOML file at path onto c
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return nil
}

// LoadEnv overlays environment variables using lookup (os.LookupEnv in production)
func (c *Config) LoadEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("GAMESVC_SAMPLE"); ok {
		c.Sample = Sample(strings.ToLower(v))
	}
	if v, ok := lookup("GAMESVC_BACKEND"); ok {
		c.Backend.Kind = BackendKind(strings.ToLower(v))
	}
	if v, ok := lookup("GAMESVC_ENDPOINTS"); ok {
		c.Backend.Endpoints = splitList(v)
	}
	if v, ok := lookup("GAMESVC_NATS_URL"); ok {
		c.Backend.NATSURL = v
	}
	if v, ok := lookup("CONSUL_HTTP_ADDR"); ok {
		c.Backend.ConsulAddr = v
	}
	if v, ok := lookup("GAMESVC_SERVICE"); ok {
		c.Backend.ServiceName = v
	}
	if v, ok := lookup("GAMESVC_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GAMESVC_DEBUG: %w", err)
		}
		c.Debug = b
	}
	return nil
}

// Load resolves the configuration for the process from args (without program name)
func Load(args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("gamesvc-sample", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a TOML config file")
	sample := fs.String("sample", "", "Sample to run: store, lobbies, sessions")
	backend := fs.String("backend", "", "Backend: local, ws, nats")
	endpoints := fs.String("endpoints", "", "Comma separated websocket endpoints")
	natsURL := fs.String("nats", "", "NATS server URL")
	consul := fs.String("consul", "", "Consul address for backend discovery")
	debug := fs.Bool("debug", false, "Write the debug log to logs/")
	headless := fs.Bool("headless", false, "Read console commands from stdin instead of drawing a UI")
	noAudio := fs.Bool("mute", false, "Disable notification sounds")
	color := fs.String("color", "", "Color mode: auto, truecolor, 256")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return cfg, err
		}
	}
	if err := cfg.LoadEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	// Flags win, but only when explicitly set
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sample":
			cfg.Sample = Sample(strings.ToLower(*sample))
		case "backend":
			cfg.Backend.Kind = BackendKind(strings.ToLower(*backend))
		case "endpoints":
			cfg.Backend.Endpoints = splitList(*endpoints)
		case "nats":
			cfg.Backend.NATSURL = *natsURL
		case "consul":
			cfg.Backend.ConsulAddr = *consul
		case "debug":
			cfg.Debug = *debug
		case "headless":
			cfg.Headless = *headless
		case "mute":
			cfg.Audio = !*noAudio
		case "color":
			cfg.ColorMode = *color
		}
	})

	return cfg, cfg.Validate()
}

// Validate rejects unknown enum values and non-positive intervals
func (c Config) Validate() error {
	var errs []error

	switch c.Sample {
	case SampleStore, SampleLobbies, SampleSessions:
	default:
		errs = append(errs, fmt.Errorf("unknown sample %q", c.Sample))
	}

	switch c.Backend.Kind {
	case BackendLocal:
	case BackendWS:
		if len(c.Backend.Endpoints) == 0 && c.Backend.ConsulAddr == "" {
			errs = append(errs, errors.New("ws backend needs endpoints or a consul address"))
		}
	case BackendNATS:
		if c.Backend.NATSURL == "" {
			errs = append(errs, errors.New("nats backend needs a URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend.Kind))
	}

	for name, d := range map[string]time.Duration{
		"refresh.store":    c.Refresh.Store.Duration,
		"refresh.lobby":    c.Refresh.Lobby.Duration,
		"refresh.sessions": c.Refresh.Sessions.Duration,
		"frame_interval":   c.FrameInterval.Duration,
		"shutdown_timeout": c.ShutdownTimeout.Duration,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	if c.Backend.LatencyTicks < 0 {
		errs = append(errs, errors.New("backend.latency_ticks must not be negative"))
	}

	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
