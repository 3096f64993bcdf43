package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Validatable is implemented by config structs that carry invariants
// beyond what env tags can express.
type Validatable interface {
	Validate() error
}

// Load parses environment variables into the provided struct using its
// `env` tags, then runs Validate when the struct implements Validatable.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if v, ok := cfg.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}
	return nil
}
