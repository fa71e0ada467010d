package workload

import (
	"errors"
	"fmt"
	"math"
)

// Variant selects which stack implementation a workload drives.
type Variant string

const (
	VariantGeneric Variant = "generic"
	VariantInt32   Variant = "int32"
)

var ErrInvalidConfig = errors.New("invalid workload config")

// Config describes the work each worker performs against its own stack.
type Config struct {
	// Variant is the stack implementation under test.
	Variant Variant

	// Elements is the number of values pushed before anything is popped.
	Elements int

	// Pops is the number of values popped after the initial pushes.
	Pops int

	// Refill is the number of values pushed (and popped back) after Pops,
	// to check that interleaved pushes only affect the current contents.
	Refill int

	// Workers is the number of independent stacks driven in parallel.
	Workers int
}

// DefaultConfig returns the long chain teardown scenario: one stack with
// 100,000 values, a single pop, then a release of the rest.
func DefaultConfig() Config {
	return Config{
		Variant:  VariantGeneric,
		Elements: 100_000,
		Pops:     1,
		Refill:   0,
		Workers:  1,
	}
}

// Verify returns an error wrapping ErrInvalidConfig if the config cannot be run.
func (c Config) Verify() error {
	switch c.Variant {
	case VariantGeneric, VariantInt32:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	}

	if c.Elements < 0 {
		return fmt.Errorf("%w: elements must be non-negative, got %d", ErrInvalidConfig, c.Elements)
	}

	if c.Pops < 0 || c.Pops > c.Elements {
		return fmt.Errorf("%w: pops must be between 0 and elements (%d), got %d", ErrInvalidConfig, c.Elements, c.Pops)
	}

	if c.Refill < 0 {
		return fmt.Errorf("%w: refill must be non-negative, got %d", ErrInvalidConfig, c.Refill)
	}

	if int64(c.Elements)+int64(c.Refill) > math.MaxInt32 {
		return fmt.Errorf("%w: elements plus refill must fit in an int32", ErrInvalidConfig)
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}

	return nil
}
