// Package config loads and validates client configuration.
//
// The schema lives in CUE: field types, bounds and defaults are all
// declared there, and a user's config file is unified against it, so
// an out-of-range timeout or an empty relay list fails at load time
// with a position-bearing error instead of surfacing as weird runtime
// behavior.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

// Config is the decoded client configuration.
type Config struct {
	Relays []string `json:"relays"`

	QueryTimeoutMS     int `json:"query_timeout_ms"`
	LongQueryTimeoutMS int `json:"long_query_timeout_ms"`

	ThreadPollSeconds        int `json:"thread_poll_seconds"`
	ConversationsPollSeconds int `json:"conversations_poll_seconds"`

	CacheTTLSeconds int `json:"cache_ttl_seconds"`

	ArchivePath string `json:"archive_path"`
}

// QueryTimeout returns the per-relay deadline for normal views.
func (c Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutMS) * time.Millisecond
}

// LongQueryTimeout returns the per-relay deadline for backlog views.
func (c Config) LongQueryTimeout() time.Duration {
	return time.Duration(c.LongQueryTimeoutMS) * time.Millisecond
}

// ThreadPoll returns the open-thread poll cadence.
func (c Config) ThreadPoll() time.Duration {
	return time.Duration(c.ThreadPollSeconds) * time.Second
}

// ConversationsPoll returns the conversation-list poll cadence.
func (c Config) ConversationsPoll() time.Duration {
	return time.Duration(c.ConversationsPollSeconds) * time.Second
}

// CacheTTL returns the derived-view cache lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Default returns the configuration with every field at its schema
// default.
func Default() (Config, error) {
	return decode(nil)
}

// Load reads a CUE config file and unifies it with the schema. An
// empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes unifies raw CUE source with the schema.
func LoadBytes(data []byte) (Config, error) {
	return decode(data)
}

func decode(user []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}

	value := schema
	if len(user) > 0 {
		overlay := ctx.CompileString(string(user), cue.Filename("config.cue"))
		if err := overlay.Err(); err != nil {
			return Config{}, fmt.Errorf("compile config: %w", err)
		}
		value = schema.Unify(overlay)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Relays) == 0 {
		return Config{}, fmt.Errorf("validate config: relay list is empty")
	}
	return cfg, nil
}
