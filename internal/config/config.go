package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rpggio/swipecount/internal/feedback"
	"github.com/rpggio/swipecount/internal/gesture"
	"gopkg.in/yaml.v3"
)

// Transport modes for the MCP server.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Feedback  FeedbackConfig  `yaml:"feedback"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path sends logs to a size-capped file instead of the console.
	Path string `yaml:"path"`
}

// GestureConfig mirrors gesture.Config in YAML form.
type GestureConfig struct {
	TapDistance    float64       `yaml:"tap_distance"`
	TapMaxDuration time.Duration `yaml:"tap_max_duration"`
	SwitchDistance float64       `yaml:"switch_distance"`
	SwitchVelocity float64       `yaml:"switch_velocity"`
	HintDistance   float64       `yaml:"hint_distance"`
	SwipeThreshold float64       `yaml:"swipe_threshold"`
	Step           StepConfig    `yaml:"step"`
}

type StepConfig struct {
	Base       float64 `yaml:"base"`
	GrowthRate float64 `yaml:"growth_rate"`
	Threshold  float64 `yaml:"threshold"`
}

type FeedbackConfig struct {
	Duration time.Duration `yaml:"duration"`
}

// Default returns the built-in configuration.
func Default() Config {
	g := gesture.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: TransportHTTP,
		},
		DB: DBConfig{
			Path: "swipecount.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Gesture: GestureConfig{
			TapDistance:    g.TapDistance,
			TapMaxDuration: g.TapMaxDuration,
			SwitchDistance: g.SwitchDistance,
			SwitchVelocity: g.SwitchVelocity,
			HintDistance:   g.HintDistance,
			SwipeThreshold: g.SwipeThreshold,
			Step: StepConfig{
				Base:       g.Step.Base,
				GrowthRate: g.Step.GrowthRate,
				Threshold:  g.Step.Threshold,
			},
		},
		Feedback: FeedbackConfig{
			Duration: feedback.DefaultDuration,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("SWIPECOUNT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("SWIPECOUNT_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("SWIPECOUNT_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SWIPECOUNT_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("SWIPECOUNT_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if dbPath := os.Getenv("SWIPECOUNT_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("SWIPECOUNT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("SWIPECOUNT_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects thresholds the classifier cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Transport.Mode != TransportStdio && c.Transport.Mode != TransportHTTP {
		errs = append(errs, fmt.Errorf("transport.mode must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Transport.Mode))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	g := c.Gesture
	for name, v := range map[string]float64{
		"gesture.tap_distance":    g.TapDistance,
		"gesture.switch_distance": g.SwitchDistance,
		"gesture.switch_velocity": g.SwitchVelocity,
		"gesture.hint_distance":   g.HintDistance,
		"gesture.swipe_threshold": g.SwipeThreshold,
		"gesture.step.base":       g.Step.Base,
		"gesture.step.threshold":  g.Step.Threshold,
	} {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	if g.Step.GrowthRate <= 1 {
		errs = append(errs, fmt.Errorf("gesture.step.growth_rate must be greater than 1, got %v", g.Step.GrowthRate))
	}
	if g.TapMaxDuration < 0 {
		errs = append(errs, fmt.Errorf("gesture.tap_max_duration must not be negative, got %s", g.TapMaxDuration))
	}
	if c.Feedback.Duration <= 0 {
		errs = append(errs, fmt.Errorf("feedback.duration must be positive, got %s", c.Feedback.Duration))
	}
	return errors.Join(errs...)
}

// ClassifierConfig converts the gesture section for the classifier.
func (c Config) ClassifierConfig() gesture.Config {
	g := c.Gesture
	return gesture.Config{
		TapDistance:    g.TapDistance,
		TapMaxDuration: g.TapMaxDuration,
		SwitchDistance: g.SwitchDistance,
		SwitchVelocity: g.SwitchVelocity,
		HintDistance:   g.HintDistance,
		SwipeThreshold: g.SwipeThreshold,
		Step: gesture.StepConfig{
			Base:       g.Step.Base,
			GrowthRate: g.Step.GrowthRate,
			Threshold:  g.Step.Threshold,
		},
	}
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
