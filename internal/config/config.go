package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr     string     `yaml:"listen_addr"`
	DBDSN          string     `yaml:"db_dsn"`
	AutoMigrate    bool       `yaml:"auto_migrate"`
	TicksPerSecond float64    `yaml:"ticks_per_second"`
	ClockStartUnix int64      `yaml:"clock_start_unix"`
	LookupTimeout  Duration   `yaml:"lookup_timeout"`
	DemoWorld      DemoWorld  `yaml:"demo_world"`
	Pool           PoolConfig `yaml:"db_pool"`
}

type DemoWorld struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Size int    `yaml:"size"`
}

type PoolConfig struct {
	MaxOpenConns    int      `yaml:"max_open_conns"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	ConnMaxLifetime Duration `yaml:"conn_max_lifetime"`
}

// Duration accepts "1500ms"-style strings or plain integers (milliseconds).
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	raw := strings.TrimSpace(node.Value)
	if raw == "" {
		*d = 0
		return nil
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", node.Line, raw)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func Default() Config {
	return Config{
		ListenAddr:     ":8080",
		AutoMigrate:    true,
		TicksPerSecond: 20,
		LookupTimeout:  Duration(2 * time.Second),
		DemoWorld: DemoWorld{
			ID:   "demo-world",
			Name: "demo",
			Size: 2,
		},
		Pool: PoolConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: Duration(30 * time.Minute),
		},
	}
}

// Load reads path over Default(). An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with BLOCKGRID_* variables. Malformed numbers keep
// the current value.
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv("BLOCKGRID_LISTEN_ADDR")); v != "" {
		c.ListenAddr = v
	}
	if v := strings.TrimSpace(getenv("BLOCKGRID_DB_DSN")); v != "" {
		c.DBDSN = v
	}
	if v := strings.TrimSpace(getenv("BLOCKGRID_AUTO_MIGRATE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AutoMigrate = b
		}
	}
	if v := strings.TrimSpace(getenv("BLOCKGRID_TICKS_PER_SECOND")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.TicksPerSecond = f
		}
	}
	c.ClockStartUnix = int64(intEnv(getenv, "BLOCKGRID_CLOCK_START_UNIX", int(c.ClockStartUnix)))
	c.LookupTimeout = Duration(time.Duration(intEnv(getenv, "BLOCKGRID_LOOKUP_TIMEOUT_MS", int(c.LookupTimeout.Std()/time.Millisecond))) * time.Millisecond)
	c.DemoWorld.Size = intEnv(getenv, "BLOCKGRID_DEMO_WORLD_SIZE", c.DemoWorld.Size)
	return c
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if c.TicksPerSecond <= 0 {
		return fmt.Errorf("ticks_per_second must be positive, got %v", c.TicksPerSecond)
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("lookup_timeout must be positive")
	}
	return nil
}

func intEnv(getenv func(string) string, key string, fallback int) int {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
