package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads a TOML file over the defaults. A missing file is not an
// error and yields the defaults.
func Load(path string) (Config, error) {
	return LoadOver(path, Default())
}

// LoadOver reads a TOML file over base. A missing file yields base.
func LoadOver(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data, base)
}

// LoadReader reads TOML from r over the defaults.
func LoadReader(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Default(), fmt.Errorf("reading config: %w", err)
	}
	return Parse("<reader>", data, Default())
}

// Parse decodes TOML data over base. source names the data in errors.
func Parse(source string, data []byte, base Config) (Config, error) {
	var table map[string]any
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&table); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return base, perr
	}

	cfg := base.Clone()
	if err := cfg.apply("", table); err != nil {
		return base, fmt.Errorf("%s: %w", source, err)
	}
	return cfg.Normalize(), nil
}
