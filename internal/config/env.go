package config

import (
	"os"
	"strings"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "VSTACK_"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// envMapping lists variables whose name doesn't follow the key pattern.
var envMapping = map[string]string{
	"VSTACK_LOG_LEVEL": "logging.level",
}

// EnvName returns the environment variable for a setting key.
func EnvName(key string) string {
	for env, k := range envMapping {
		if k == key {
			return env
		}
	}
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// ApplyEnv overrides cfg from environment variables. A nil lookup reads
// the process environment. Empty values are treated as set.
func ApplyEnv(cfg Config, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	out := cfg.Clone()
	for _, key := range Keys() {
		val, ok := lookup(EnvName(key))
		if !ok {
			continue
		}
		if err := out.Set(key, val); err != nil {
			return cfg, err
		}
	}
	return out.Normalize(), nil
}
