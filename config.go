package qverify

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Shots             int
	Qubits            int
	Expected          string
	Seed              uint64
	Retries           int
	Backoff           time.Duration
	Format            string
	ClassicalRegister bool
	ReadoutError      float64
	Debug             bool
	JobID             string
}

func NewConfig() *Config {
	return &Config{
		Shots:             1024,
		Qubits:            2,
		Retries:           3,
		Backoff:           100 * time.Millisecond,
		Format:            FormatText,
		ClassicalRegister: true,
	}
}

// RegisterFlags declares every setting on fs with NewConfig defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := NewConfig()

	fs.String("config", "", "path to a config file (default ./qverify.yaml if present)")
	fs.Int("shots", d.Shots, "number of shots to execute")
	fs.Int("qubits", d.Qubits, "qubits to entangle (2 builds a Bell pair)")
	fs.String("expected", d.Expected, "comma-separated expected outcomes (default all-zeros,all-ones)")
	fs.Uint64("seed", d.Seed, "simulator seed, 0 seeds from the clock")
	fs.Int("retries", d.Retries, "execution attempts before giving up")
	fs.Duration("backoff", d.Backoff, "initial delay between execution attempts")
	fs.String("format", d.Format, "report format: text or json")
	fs.Bool("classical-register", d.ClassicalRegister, "attach a classical register to the circuit")
	fs.Float64("readout-error", d.ReadoutError, "per-bit readout flip probability of the simulator")
	fs.Bool("debug", d.Debug, "enable debug logging")
	fs.String("id", d.JobID, "job ID for logs and the report (default generated)")
}

/*
LoadConfig resolves settings from, lowest to highest priority: defaults, a
config file, QVERIFY_* environment variables, then flags set on fs.
*/
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	d := NewConfig()
	v := viper.New()

	v.SetDefault("shots", d.Shots)
	v.SetDefault("qubits", d.Qubits)
	v.SetDefault("expected", d.Expected)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("retries", d.Retries)
	v.SetDefault("backoff", d.Backoff)
	v.SetDefault("format", d.Format)
	v.SetDefault("classical-register", d.ClassicalRegister)
	v.SetDefault("readout-error", d.ReadoutError)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("id", d.JobID)

	v.SetEnvPrefix("QVERIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
		}
	} else {
		v.SetConfigName("qverify")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
		}
	}

	cfg := &Config{
		Shots:             v.GetInt("shots"),
		Qubits:            v.GetInt("qubits"),
		Expected:          v.GetString("expected"),
		Seed:              v.GetUint64("seed"),
		Retries:           v.GetInt("retries"),
		Backoff:           v.GetDuration("backoff"),
		Format:            strings.ToLower(v.GetString("format")),
		ClassicalRegister: v.GetBool("classical-register"),
		ReadoutError:      v.GetFloat64("readout-error"),
		Debug:             v.GetBool("debug"),
		JobID:             v.GetString("id"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Shots < 1:
		return fmt.Errorf("%w: shots must be positive, got %d", ErrInvalidConfig, c.Shots)
	case c.Qubits < 1:
		return fmt.Errorf("%w: qubits must be positive, got %d", ErrInvalidConfig, c.Qubits)
	case c.Retries < 1:
		return fmt.Errorf("%w: retries must be at least 1, got %d", ErrInvalidConfig, c.Retries)
	case c.Backoff < 0:
		return fmt.Errorf("%w: negative backoff %v", ErrInvalidConfig, c.Backoff)
	case c.ReadoutError < 0 || c.ReadoutError > 1:
		return fmt.Errorf("%w: readout error %v outside [0,1]", ErrInvalidConfig, c.ReadoutError)
	case c.Format != FormatText && c.Format != FormatJSON:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}

	if _, err := c.ExpectedSet(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// ExpectedSet parses Expected, falling back to the correlated set for Qubits.
// Every member must be Qubits bits wide.
func (c *Config) ExpectedSet() (ExpectedSet, error) {
	if strings.TrimSpace(c.Expected) == "" {
		return CorrelatedSet(c.Qubits), nil
	}

	set, err := ParseExpectedSet(c.Expected)
	if err != nil {
		return nil, err
	}

	if set.Width() != c.Qubits {
		return nil, fmt.Errorf("expected outcomes %s have %d bits, circuit measures %d", set, set.Width(), c.Qubits)
	}

	return set, nil
}

// Circuit builds the entangling circuit the run executes.
func (c *Config) Circuit() *Circuit {
	clbits := 0
	if c.ClassicalRegister {
		clbits = c.Qubits
	}

	if c.Qubits == 2 {
		circuit := NewBellCircuit()
		circuit.ClassicalBits = clbits
		return circuit
	}

	return NewGHZCircuit(c.Qubits, clbits)
}
