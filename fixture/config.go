package fixture

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/tuneinsight/fhecore/fixture/statistics"
)

// DefaultSeed is the seed of the default configuration, so that fixtures are reproducible
// unless a seed is given explicitly.
var DefaultSeed = []byte("fhecore/fixture")

// Config parameterizes the execution of a fixture.
type Config struct {
	// Repetitions is the number of independent repetitions: each repetition draws fresh keys
	// and is assessed on its own.
	Repetitions int
	// Samples is the number of executions of the operation per repetition.
	Samples int
	// Unchecked selects the unchecked entry point of the operation.
	Unchecked bool
	// Seed is the root of every random value drawn by the fixture.
	Seed []byte

	Significance   float64
	Band           bool
	MaxExcessBits  float64
	MaxDeficitBits float64

	// Logger receives one line per assessed repetition. A nil Logger discards them.
	Logger *log.Logger
}

// ConfigLiteral is the serializable literal of a Config. Zero or nil fields take their default
// value; the bounds of the tolerance band are pointers so that they can be set to zero.
type ConfigLiteral struct {
	Repetitions    int      `json:",omitempty"`
	Samples        int      `json:",omitempty"`
	Unchecked      bool     `json:",omitempty"`
	Seed           string   `json:",omitempty"` // hexadecimal
	Significance   float64  `json:",omitempty"`
	Band           bool     `json:",omitempty"`
	MaxExcessBits  *float64 `json:",omitempty"`
	MaxDeficitBits *float64 `json:",omitempty"`
}

// DefaultConfig returns the default configuration: 2 repetitions of 1000 samples, checked
// entry points, and the default tolerances of the statistical assertion.
func DefaultConfig() Config {
	opts := statistics.DefaultOptions()
	return Config{
		Repetitions:    2,
		Samples:        1000,
		Seed:           append([]byte{}, DefaultSeed...),
		Significance:   opts.Significance,
		Band:           opts.Band,
		MaxExcessBits:  opts.MaxExcessBits,
		MaxDeficitBits: opts.MaxDeficitBits,
	}
}

// NewConfigFromLiteral returns the configuration described by the literal.
func NewConfigFromLiteral(lit ConfigLiteral) (config Config, err error) {

	config = DefaultConfig()

	if lit.Repetitions != 0 {
		config.Repetitions = lit.Repetitions
	}

	if lit.Samples != 0 {
		config.Samples = lit.Samples
	}

	config.Unchecked = lit.Unchecked

	if lit.Seed != "" {
		if config.Seed, err = hex.DecodeString(lit.Seed); err != nil {
			return Config{}, fmt.Errorf("cannot NewConfigFromLiteral: invalid seed: %w", err)
		}
	}

	if lit.Significance != 0 {
		config.Significance = lit.Significance
	}

	config.Band = lit.Band

	if lit.MaxExcessBits != nil {
		config.MaxExcessBits = *lit.MaxExcessBits
	}

	if lit.MaxDeficitBits != nil {
		config.MaxDeficitBits = *lit.MaxDeficitBits
	}

	if err = config.Validate(); err != nil {
		return Config{}, fmt.Errorf("cannot NewConfigFromLiteral: %w", err)
	}

	return
}

// ConfigLiteral returns the literal of the configuration.
func (c Config) ConfigLiteral() ConfigLiteral {
	excess, deficit := c.MaxExcessBits, c.MaxDeficitBits
	return ConfigLiteral{
		Repetitions:    c.Repetitions,
		Samples:        c.Samples,
		Unchecked:      c.Unchecked,
		Seed:           hex.EncodeToString(c.Seed),
		Significance:   c.Significance,
		Band:           c.Band,
		MaxExcessBits:  &excess,
		MaxDeficitBits: &deficit,
	}
}

// MarshalJSON returns a JSON representation of the configuration. The logger is not serialized.
func (c Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ConfigLiteral())
}

// UnmarshalJSON reads a JSON representation of a configuration literal into the receiver.
func (c *Config) UnmarshalJSON(p []byte) (err error) {
	var lit ConfigLiteral
	if err = json.Unmarshal(p, &lit); err != nil {
		return
	}
	logger := c.Logger
	if *c, err = NewConfigFromLiteral(lit); err != nil {
		return
	}
	c.Logger = logger
	return
}

// Validate returns an error if the configuration cannot be used to run a fixture.
func (c Config) Validate() error {
	if c.Repetitions < 1 {
		return fmt.Errorf("invalid repetitions %d: must be at least 1", c.Repetitions)
	}
	if c.Samples < 1 {
		return fmt.Errorf("invalid samples %d: must be at least 1", c.Samples)
	}
	if len(c.Seed) == 0 {
		return fmt.Errorf("invalid seed: must not be empty")
	}
	return c.Options().Validate()
}

// Options returns the options of the statistical assertion.
func (c Config) Options() statistics.Options {
	return statistics.Options{
		Significance:   c.Significance,
		Band:           c.Band,
		MaxExcessBits:  c.MaxExcessBits,
		MaxDeficitBits: c.MaxDeficitBits,
	}
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}
