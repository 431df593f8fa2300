// Package template renders collection items to text.
//
// The default template encodes each item as compact JSON. Lua templates
// define a render(item, index) function and receive items converted to
// Lua tables.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Errors returned by templates.
var (
	// ErrNoRender indicates a Lua chunk that defines no render function.
	ErrNoRender = errors.New("template defines no render function")

	// ErrClosed indicates the template has been closed.
	ErrClosed = errors.New("template is closed")
)

// Template renders one item. index is the item's position in the full
// collection.
type Template interface {
	Render(item any, index int) (string, error)
}

// Func adapts a function to Template.
type Func func(item any, index int) (string, error)

// Render calls f(item, index).
func (f Func) Render(item any, index int) (string, error) {
	return f(item, index)
}

// JSON renders items as compact JSON.
type JSON struct{}

// Render implements Template.
func (JSON) Render(item any, _ int) (string, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return "", fmt.Errorf("encoding item: %w", err)
	}
	return string(data), nil
}

// Default returns the template used when none is configured.
func Default() Template {
	return JSON{}
}
