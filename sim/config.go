package sim

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/plus3/shiftri/planner"
)

// ErrInvalidConfig is wrapped by every configuration parse or range error.
var ErrInvalidConfig = errors.New("invalid config")

// Selection policies understood by NewSelector.
const (
	PolicyRandom = "random"
	PolicyFirst  = "first"
	PolicyLowest = "lowest"
)

// Config holds the simulation knobs.
type Config struct {
	Width          int
	Height         int
	Seed           uint64
	ExtremeGravity bool
	// GravityEvery is the number of ticks between one-row gravity falls.
	// Zero disables gravity.
	GravityEvery int
	// LockDelay is the number of ticks a piece under gravity may spend
	// without reaching a new lowest row before it is locked where it
	// stands. Zero never forces a lock.
	LockDelay    int
	TickInterval time.Duration
	// PieceLimit stops the match after that many locks. Zero means no limit.
	PieceLimit   int
	Policy       string
	CacheSize    int
	PruneInverse bool
}

// DefaultConfig returns a 10x20 match without gravity.
func DefaultConfig() Config {
	return Config{
		Width:        10,
		Height:       20,
		Seed:         1,
		LockDelay:    60,
		TickInterval: 16 * time.Millisecond,
		Policy:       PolicyRandom,
		CacheSize:    256,
		PruneInverse: true,
	}
}

// Environment keys read by LoadConfig.
const (
	envWidth          = "SHIFTRI_WIDTH"
	envHeight         = "SHIFTRI_HEIGHT"
	envSeed           = "SHIFTRI_SEED"
	envExtremeGravity = "SHIFTRI_EXTREME_GRAVITY"
	envGravityEvery   = "SHIFTRI_GRAVITY_EVERY"
	envLockDelay      = "SHIFTRI_LOCK_DELAY"
	envTickInterval   = "SHIFTRI_TICK_INTERVAL"
	envPieceLimit     = "SHIFTRI_PIECE_LIMIT"
	envPolicy         = "SHIFTRI_POLICY"
	envCacheSize      = "SHIFTRI_CACHE_SIZE"
	envPruneInverse   = "SHIFTRI_PRUNE_INVERSE"
)

// LoadConfig starts from DefaultConfig, overlays the given .env files and
// then the process environment, which wins.
func LoadConfig(paths ...string) (Config, error) {
	values := map[string]string{}
	if len(paths) > 0 {
		fileValues, err := godotenv.Read(paths...)
		if err != nil {
			return Config{}, fmt.Errorf("read env files: %w", err)
		}
		values = fileValues
	}
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(key, "SHIFTRI_") {
			values[key] = value
		}
	}
	return ParseConfig(values)
}

// ParseConfig applies SHIFTRI_* values on top of DefaultConfig.
func ParseConfig(values map[string]string) (Config, error) {
	cfg := DefaultConfig()
	p := parser{values: values}

	p.intVar(envWidth, &cfg.Width)
	p.intVar(envHeight, &cfg.Height)
	p.uint64Var(envSeed, &cfg.Seed)
	p.boolVar(envExtremeGravity, &cfg.ExtremeGravity)
	p.intVar(envGravityEvery, &cfg.GravityEvery)
	p.intVar(envLockDelay, &cfg.LockDelay)
	p.durationVar(envTickInterval, &cfg.TickInterval)
	p.intVar(envPieceLimit, &cfg.PieceLimit)
	p.intVar(envCacheSize, &cfg.CacheSize)
	p.boolVar(envPruneInverse, &cfg.PruneInverse)
	if v, ok := values[envPolicy]; ok {
		cfg.Policy = strings.ToLower(strings.TrimSpace(v))
	}

	if p.err != nil {
		return Config{}, p.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out of range value.
func (c Config) Validate() error {
	switch {
	case c.Width < 4 || c.Width > MaxWidth:
		return fmt.Errorf("%w: width %d outside [4,%d]", ErrInvalidConfig, c.Width, MaxWidth)
	case c.Height < 4:
		return fmt.Errorf("%w: height %d below 4", ErrInvalidConfig, c.Height)
	case c.GravityEvery < 0:
		return fmt.Errorf("%w: negative gravity interval %d", ErrInvalidConfig, c.GravityEvery)
	case c.LockDelay < 0:
		return fmt.Errorf("%w: negative lock delay %d", ErrInvalidConfig, c.LockDelay)
	case c.PieceLimit < 0:
		return fmt.Errorf("%w: negative piece limit %d", ErrInvalidConfig, c.PieceLimit)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: negative cache size %d", ErrInvalidConfig, c.CacheSize)
	}
	if _, err := NewSelector(c.Policy, c.Seed); err != nil {
		return err
	}
	return nil
}

// NewSelector builds the named selection policy.
func NewSelector(policy string, seed uint64) (planner.Selector, error) {
	switch policy {
	case PolicyRandom, "":
		return planner.NewRandomSelector(seed), nil
	case PolicyFirst:
		return planner.FirstSelector{}, nil
	case PolicyLowest:
		return planner.LowestSelector{}, nil
	}
	return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, policy)
}

// parser keeps the first error so call sites stay flat.
type parser struct {
	values map[string]string
	err    error
}

func (p *parser) lookup(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.values[key]
	return strings.TrimSpace(v), ok
}

func (p *parser) fail(key, value string, err error) {
	p.err = fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, err)
}

func (p *parser) intVar(key string, dst *int) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) uint64Var(key string, dst *uint64) {
	if v, ok := p.lookup(key); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) boolVar(key string, dst *bool) {
	if v, ok := p.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (p *parser) durationVar(key string, dst *time.Duration) {
	if v, ok := p.lookup(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = d
	}
}
