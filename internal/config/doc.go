// Package config provides the configuration record for the virtualizing
// stack engine.
//
// Configuration is resolved in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← VSTACK_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← vstack.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The file and environment layers address settings by the same kebab-case
// keys (item-span, viewport-buffer, auto-update-mode, ...). The command
// line layer is applied by the caller.
//
// # Applying Changes
//
// The engine never watches individual fields. Callers build a new Config,
// and Diff reports which recomputations the change requires:
//
//	effect := config.Diff(old, next)
//	if effect.Has(config.EffectReset) {
//	    // rebuild the rendered slice
//	}
//
// # Live Reload
//
// Watcher reloads a configuration file when it changes on disk and hands
// the result to a handler:
//
//	w, err := config.NewWatcher(path, func(cfg config.Config, err error) {
//	    ...
//	})
//	defer w.Close()
package config
