package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/vstack/internal/autoupdate"
	"github.com/dshills/vstack/internal/geom"
	"github.com/dshills/vstack/internal/logging"
)

// setter applies a raw value to a config.
type setter func(c *Config, v any) error

// settings maps kebab-case keys to their setters. Nested TOML tables are
// addressed with a dot ("logging.level").
var settings = map[string]setter{
	"virtualize": func(c *Config, v any) (err error) {
		c.Virtualize, err = toBool(v)
		return err
	},
	"viewport": func(c *Config, v any) (err error) {
		c.Viewport, err = toString(v)
		return err
	},
	"item-span": func(c *Config, v any) (err error) {
		c.ItemSpan, err = toFloat(v)
		return err
	},
	"viewport-buffer": func(c *Config, v any) (err error) {
		c.ViewportBuffer, err = toFloat(v)
		return err
	},
	"layout-update-delay": func(c *Config, v any) error {
		ms, err := toFloat(v)
		if err != nil {
			return err
		}
		c.LayoutUpdateDelay = time.Duration(ms * float64(time.Millisecond))
		return nil
	},
	"allow-layout-update-delay": func(c *Config, v any) (err error) {
		c.AllowLayoutUpdateDelay, err = toBool(v)
		return err
	},
	"orientation": func(c *Config, v any) error {
		s, err := toString(v)
		if err != nil {
			return err
		}
		c.Orientation, err = geom.ParseOrientation(s)
		return err
	},
	"auto-update-mode": func(c *Config, v any) error {
		s, err := toString(v)
		if err != nil {
			return err
		}
		c.AutoUpdateMode, err = autoupdate.ParseMode(s)
		return err
	},
	"start-region-span": func(c *Config, v any) (err error) {
		c.StartRegionSpan, err = toFloat(v)
		return err
	},
	"end-region-span": func(c *Config, v any) (err error) {
		c.EndRegionSpan, err = toFloat(v)
		return err
	},
	"span-map": func(c *Config, v any) (err error) {
		c.SpanMap, err = toFloats(v)
		return err
	},
	"logging.level": func(c *Config, v any) error {
		s, err := toString(v)
		if err != nil {
			return err
		}
		if !logging.ValidLevel(s) {
			return fmt.Errorf("unknown log level %q", s)
		}
		c.Logging.Level = strings.ToLower(s)
		return nil
	},
}

// Keys returns every recognized setting key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set applies a single setting by key. String values are parsed, so the
// same call serves files, environment variables and flags. On error c is
// left unchanged.
func (c *Config) Set(key string, value any) error {
	set, ok := settings[key]
	if !ok {
		return &ValueError{Key: key, Value: value, Err: ErrUnknownSetting}
	}
	next := c.Clone()
	if err := set(&next, value); err != nil {
		return &ValueError{Key: key, Value: value, Err: err}
	}
	*c = next
	return nil
}

// apply sets every key of a decoded table, descending into sub-tables.
func (c *Config) apply(prefix string, table map[string]any) error {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := table[k].(map[string]any); ok {
			if err := c.apply(key, sub); err != nil {
				return err
			}
			continue
		}
		if err := c.Set(key, table[k]); err != nil {
			return err
		}
	}
	return nil
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(b))
	default:
		return false, fmt.Errorf("%w: expected bool, got %T", ErrTypeMismatch, v)
	}
}

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrTypeMismatch, v)
	}
	return s, nil
}

func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrTypeMismatch, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: expected finite number, got %v", ErrTypeMismatch, f)
	}
	return f, nil
}

// toFloats accepts a TOML array or a comma separated string.
func toFloats(v any) ([]float64, error) {
	var raw []any
	switch a := v.(type) {
	case []any:
		raw = a
	case []float64:
		return a, nil
	case string:
		if strings.TrimSpace(a) == "" {
			return nil, nil
		}
		for _, part := range strings.Split(a, ",") {
			raw = append(raw, part)
		}
	default:
		return nil, fmt.Errorf("%w: expected array, got %T", ErrTypeMismatch, v)
	}

	out := make([]float64, 0, len(raw))
	for _, item := range raw {
		f, err := toFloat(item)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
