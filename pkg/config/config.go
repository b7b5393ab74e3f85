package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Context holds caller-scoped defaults threaded into every tool call.
type Context struct {
	// ProfileID is the Wise profile used when a tool call does not name one.
	ProfileID string `toml:"profile_id,omitempty"`
}

// Configuration holds the permission grants and context of a toolkit.
//
// Example TOML:
//
//	[context]
//	profile_id = "25"
//
//	[actions.transfers]
//	create = true
//	read = true
type Configuration struct {
	Context Context `toml:"context"`
	Actions Actions `toml:"actions"`
}

// Validate checks that the configuration values are valid.
func (c *Configuration) Validate() error {
	if err := c.Actions.Validate(); err != nil {
		return fmt.Errorf("invalid actions: %w", err)
	}
	if c.Context.ProfileID == "" {
		return nil
	}
	if strings.TrimSpace(c.Context.ProfileID) != c.Context.ProfileID {
		return errors.New("invalid context: profile_id must not contain surrounding whitespace")
	}
	if id, err := strconv.ParseInt(c.Context.ProfileID, 10, 64); err != nil || id <= 0 {
		return fmt.Errorf("invalid context: profile_id %q must be a positive integer", c.Context.ProfileID)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Configuration) Clone() Configuration {
	if c == nil {
		return Configuration{}
	}
	return Configuration{
		Context: c.Context,
		Actions: c.Actions.Clone(),
	}
}

// AllowAll returns a configuration granting every action, for local testing.
func AllowAll(ctx Context) *Configuration {
	return &Configuration{
		Context: ctx,
		Actions: AllActions(),
	}
}

// Load reads a TOML configuration file.
func Load(path string) (*Configuration, error) {
	var cfg Configuration
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in config file %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
