// Package fleet supplies trainset state snapshots to the planner. Snapshots
// come either from a deterministic fixture or from depot systems over MQTT.
package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/transitflow/depotplan/core/model"
)

// StateProvider returns the current fleet snapshot used as the baseline for a
// planning run.
type StateProvider interface {
	Fleet(ctx context.Context) ([]model.Trainset, error)
}

// Source names a fleet state backend.
type Source string

const (
	SourceFixture Source = "fixture"
	SourceMQTT    Source = "mqtt"
)

// Config selects and configures the fleet state backend.
type Config struct {
	Source       Source        `json:"source"`
	Broker       string        `json:"broker"`
	ClientID     string        `json:"client_id"`
	Username     string        `json:"username"`
	Password     string        `json:"password"`
	RequestTopic string        `json:"request_topic"`
	StateTopic   string        `json:"state_topic"`
	Timeout      time.Duration `json:"timeout"`
	FixtureSize  int           `json:"fixture_size"`
}

// SetDefaults fills missing fields with sane defaults.
func (c *Config) SetDefaults() {
	if c.Source == "" {
		c.Source = SourceFixture
	}
	if c.ClientID == "" {
		c.ClientID = "depotplan-fleet"
	}
	if c.RequestTopic == "" {
		c.RequestTopic = "depot/fleet/request"
	}
	if c.StateTopic == "" {
		c.StateTopic = "depot/fleet/state/+"
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.FixtureSize <= 0 {
		c.FixtureSize = 25
	}
}

// Validate checks the configuration for completeness.
func (c Config) Validate() error {
	switch c.Source {
	case SourceFixture:
		return nil
	case SourceMQTT:
		if c.Broker == "" {
			return fmt.Errorf("fleet: broker must not be empty for mqtt source")
		}
		return nil
	default:
		return fmt.Errorf("fleet: unknown source %q", c.Source)
	}
}

// NewProvider builds the provider selected by cfg.
func NewProvider(cfg Config) (StateProvider, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Source {
	case SourceMQTT:
		return NewMQTTProvider(cfg)
	default:
		return FixtureProvider{Size: cfg.FixtureSize}, nil
	}
}
