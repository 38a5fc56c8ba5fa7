// Package simulation runs the viewers: one goroutine per viewer turns
// pose commands and scene changes into freshly cast frames. Movement
// rules are loaded from a data file so setups can tune them.
package simulation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Config holds the movement rules applied to pose commands.
type Config struct {
	// MoveSpeed is the distance a move command covers, in world units.
	MoveSpeed float64 `json:"move_speed"`

	// TurnSpeed is the rotation a turn command covers, in degrees.
	TurnSpeed float64 `json:"turn_speed"`
}

// TurnRadians returns the turn step in radians.
func (c Config) TurnRadians() float64 {
	return c.TurnSpeed * math.Pi / 180
}

// DefaultConfig returns the stock movement rules.
func DefaultConfig() Config {
	return Config{
		MoveSpeed: 10,
		TurnSpeed: 10,
	}
}

// LoadConfig loads movement rules from a JSON file. A missing file is
// not an error; defaults are returned instead.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	return config, nil
}
