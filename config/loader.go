package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FLIGHTMON_"

// Config is the global application configuration
var Config AppConfig

var defaultPaths = []string{"config.yml", "./config/config.yml"}

// LoadAppConfig loads and validates the application configuration from the
// first readable path, falling back to config.yml and ./config/config.yml.
func LoadAppConfig(paths ...string) error {
	if len(paths) == 0 {
		paths = defaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes YAML config, applies defaults and environment overrides and validates the result.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.Port != 0 {
		cfg.Server.Port = o.Port
	}
	if o.RankingCapacity != 0 {
		cfg.Ranking.Capacity = o.RankingCapacity
	}
	if o.Source != "" {
		cfg.Source = o.Source
	}
	if o.StreamURL != "" {
		cfg.Stream.URL = o.StreamURL
	}
	if o.VehiclePositionsURL != "" {
		cfg.GTFSRT.VehiclePositionsURL = o.VehiclePositionsURL
	}
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Ranking.Capacity == 0 {
		cfg.Ranking.Capacity = DefaultRankingCapacity
	}
	if cfg.Source == "" {
		cfg.Source = SourceArcGIS
	}
	applyStreamDefaults(&cfg.Stream)
	applyGTFSRTDefaults(&cfg.GTFSRT)
	for i := range cfg.Feeds {
		applyStreamDefaults(&cfg.Feeds[i].Stream)
		applyGTFSRTDefaults(&cfg.Feeds[i].GTFSRT)
	}
}

func applyStreamDefaults(s *StreamConfig) {
	if s.ReconnectMaxMS == 0 {
		s.ReconnectMaxMS = DefaultReconnectMaxMS
	}
	if s.ReadLimitBytes == 0 {
		s.ReadLimitBytes = DefaultReadLimitBytes
	}
	if s.PongWaitMS == 0 {
		s.PongWaitMS = DefaultPongWaitMS
	}
}

func applyGTFSRTDefaults(g *GTFSRTConfig) {
	if g.ReadIntervalMS == 0 {
		g.ReadIntervalMS = DefaultGTFSRTIntervalMS
	}
	if g.ScoreField == "" {
		g.ScoreField = "odometer"
	}
}

// SelectFeed chooses a feed by name; fallback to first; if none, use the top-level source.
func SelectFeed(name string) Feed {
	return Config.SelectFeed(name)
}

// SelectFeed chooses a feed by name; fallback to first; if none, use the top-level source.
func (c AppConfig) SelectFeed(name string) Feed {
	if name != "" {
		for _, f := range c.Feeds {
			if f.Name == name {
				return f
			}
		}
	}
	if len(c.Feeds) > 0 {
		return c.Feeds[0]
	}
	return Feed{Name: "default", Source: c.Source, Stream: c.Stream, GTFSRT: c.GTFSRT}
}
