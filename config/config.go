// Package config provides configuration loading and access for the aquarium.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation, economy and front-end parameters.
type Config struct {
	Screen            ScreenConfig    `yaml:"screen" toml:"screen"`
	Playfield         PlayfieldConfig `yaml:"playfield" toml:"playfield"`
	Economy           EconomyConfig   `yaml:"economy" toml:"economy"`
	Growth            GrowthConfig    `yaml:"growth" toml:"growth"`
	Agent             AgentConfig     `yaml:"agent" toml:"agent"`
	Food              FoodConfig      `yaml:"food" toml:"food"`
	Spawn             SpawnConfig     `yaml:"spawn" toml:"spawn"`
	SellZone          RectConfig      `yaml:"sell_zone" toml:"sell_zone"`
	InitialPopulation []string        `yaml:"initial_population" toml:"initial_population"`
	Species           []SpeciesConfig `yaml:"species" toml:"species"`
	Telemetry         TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
	Audio             AudioConfig     `yaml:"audio" toml:"audio"`
	Server            ServerConfig    `yaml:"server" toml:"server"`
	Scripting         ScriptingConfig `yaml:"scripting" toml:"scripting"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds display settings for the graphical front end.
type ScreenConfig struct {
	Width     int `yaml:"width" toml:"width"`
	Height    int `yaml:"height" toml:"height"`
	TargetFPS int `yaml:"target_fps" toml:"target_fps"`
}

// PlayfieldConfig describes the tank the creatures live in.
type PlayfieldConfig struct {
	Width         float64 `yaml:"width" toml:"width"`
	Height        float64 `yaml:"height" toml:"height"`
	Padding       float64 `yaml:"padding" toml:"padding"`                 // Inner wall padding for bounces
	PixelsPerSize float64 `yaml:"pixels_per_size" toml:"pixels_per_size"` // Footprint px per unit of species size
}

// EconomyConfig holds gold balance parameters.
type EconomyConfig struct {
	StartingBalance int64         `yaml:"starting_balance" toml:"starting_balance"`
	FoodCost        int64         `yaml:"food_cost" toml:"food_cost"`
	FeedReward      int64         `yaml:"feed_reward" toml:"feed_reward"`
	PassiveRate     int64         `yaml:"passive_rate" toml:"passive_rate"`         // Gold per creature per payout
	PassiveInterval time.Duration `yaml:"passive_interval" toml:"passive_interval"` // Time between payouts
	PlacementMode   bool          `yaml:"placement_mode" toml:"placement_mode"`     // Purchases wait for a click
	PlacementOffset float64       `yaml:"placement_offset" toml:"placement_offset"` // Subtracted from click coords
	SellFraction    float64       `yaml:"sell_fraction" toml:"sell_fraction"`
	SellLevelBonus  int64         `yaml:"sell_level_bonus" toml:"sell_level_bonus"` // Added to price per level
}

// GrowthConfig controls how creatures level up.
type GrowthConfig struct {
	FeedsPerLevel int           `yaml:"feeds_per_level" toml:"feeds_per_level"`
	TimePerLevel  time.Duration `yaml:"time_per_level" toml:"time_per_level"` // Level n needs (n+1)*this since creation
	MaxLevel      int           `yaml:"max_level" toml:"max_level"`
	SizeStep      float64       `yaml:"size_step" toml:"size_step"` // Size multiplier gained per level
}

// AgentConfig holds creature movement and hunger parameters.
type AgentConfig struct {
	ForageAccel     float64       `yaml:"forage_accel" toml:"forage_accel"`
	Jitter          float64       `yaml:"jitter" toml:"jitter"`
	Friction        float64       `yaml:"friction" toml:"friction"`
	HungrySpeedMult float64       `yaml:"hungry_speed_mult" toml:"hungry_speed_mult"`
	HungerStep      time.Duration `yaml:"hunger_step" toml:"hunger_step"` // Hunger clock advance per update
}

// FoodConfig holds falling food parameters.
type FoodConfig struct {
	FallSpeed float64 `yaml:"fall_speed" toml:"fall_speed"`
	MaxFall   float64 `yaml:"max_fall" toml:"max_fall"` // Expire after falling this far
	Size      float64 `yaml:"size" toml:"size"`         // Square footprint in px
}

// SpawnConfig controls rejection-sampled spawn placement.
type SpawnConfig struct {
	MinDistance float64 `yaml:"min_distance" toml:"min_distance"`
	MaxAttempts int     `yaml:"max_attempts" toml:"max_attempts"`
	Margin      float64 `yaml:"margin" toml:"margin"`
}

// RectConfig is an axis-aligned rectangle in playfield coordinates.
type RectConfig struct {
	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r RectConfig) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// SpeciesConfig defines one purchasable creature type.
type SpeciesConfig struct {
	Name       string        `yaml:"name" toml:"name"`
	Glyph      string        `yaml:"glyph" toml:"glyph"`
	Color      [3]uint8      `yaml:"color" toml:"color"`
	Speed      float64       `yaml:"speed" toml:"speed"`
	Size       float64       `yaml:"size" toml:"size"`
	HungerTime time.Duration `yaml:"hunger_time" toml:"hunger_time"`
	Price      int64         `yaml:"price" toml:"price"`
}

// TelemetryConfig holds statistics collection parameters.
type TelemetryConfig struct {
	StatsWindow    time.Duration `yaml:"stats_window" toml:"stats_window"`
	PerfWindowSize int           `yaml:"perf_window_size" toml:"perf_window_size"` // Frames averaged for perf stats
}

// AudioConfig holds sound parameters.
type AudioConfig struct {
	SampleRate int     `yaml:"sample_rate" toml:"sample_rate"`
	Volume     float64 `yaml:"volume" toml:"volume"` // Linear master gain, 0-1
	Music      bool    `yaml:"music" toml:"music"`
}

// ServerConfig holds websocket front-end parameters.
type ServerConfig struct {
	Addr         string        `yaml:"addr" toml:"addr"`
	WriteTimeout time.Duration `yaml:"write_timeout" toml:"write_timeout"`
	InputBuffer  int           `yaml:"input_buffer" toml:"input_buffer"`
	SendBuffer   int           `yaml:"send_buffer" toml:"send_buffer"`
}

// ScriptingConfig points at optional Lua overrides.
type ScriptingConfig struct {
	SellValueScript string `yaml:"sell_value_script" toml:"sell_value_script"`
}

// DerivedConfig holds values computed from other config values.
type DerivedConfig struct {
	FrameDT      time.Duration    // 1 / Screen.TargetFPS
	SpeciesIndex map[string]uint8 // name -> index for species lookup
	Footprints   []float64        // per-species base footprint in px
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML or TOML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the loaded values for settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		errs = append(errs, fmt.Errorf("playfield must have positive size, got %vx%v", c.Playfield.Width, c.Playfield.Height))
	}
	if c.Economy.PassiveInterval < time.Second {
		errs = append(errs, fmt.Errorf("economy.passive_interval must be at least 1s, got %v", c.Economy.PassiveInterval))
	}
	if c.Growth.FeedsPerLevel <= 0 {
		errs = append(errs, errors.New("growth.feeds_per_level must be positive"))
	}
	if c.Spawn.MaxAttempts <= 0 {
		errs = append(errs, errors.New("spawn.max_attempts must be positive"))
	}
	if len(c.Species) == 0 {
		errs = append(errs, errors.New("species catalog is empty"))
	}
	if len(c.Species) > 255 {
		errs = append(errs, fmt.Errorf("species catalog too large: %d", len(c.Species)))
	}
	seen := make(map[string]bool, len(c.Species))
	for _, sp := range c.Species {
		if sp.Name == "" {
			errs = append(errs, errors.New("species with empty name"))
			continue
		}
		if seen[sp.Name] {
			errs = append(errs, fmt.Errorf("duplicate species %q", sp.Name))
		}
		seen[sp.Name] = true
		if sp.HungerTime <= 0 {
			errs = append(errs, fmt.Errorf("species %q: hunger_time must be positive", sp.Name))
		}
		if sp.Price < 0 {
			errs = append(errs, fmt.Errorf("species %q: negative price", sp.Name))
		}
	}
	for _, name := range c.InitialPopulation {
		if !seen[name] {
			errs = append(errs, fmt.Errorf("initial_population references unknown species %q", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameDT = time.Second / time.Duration(fps)

	c.Derived.SpeciesIndex = make(map[string]uint8, len(c.Species))
	c.Derived.Footprints = make([]float64, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Name] = uint8(i)
		c.Derived.Footprints[i] = sp.Size * c.Playfield.PixelsPerSize
	}
}

// SpeciesByName returns the species config and its index.
func (c *Config) SpeciesByName(name string) (SpeciesConfig, uint8, bool) {
	idx, ok := c.Derived.SpeciesIndex[name]
	if !ok {
		return SpeciesConfig{}, 0, false
	}
	return c.Species[idx], idx, true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
