package template

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single render call.
const DefaultTimeout = time.Second

// RenderFunc is the global a Lua template must define.
const RenderFunc = "render"

// LuaOption configures a Lua template.
type LuaOption func(*Lua)

// WithTimeout sets the per-render execution timeout. Zero disables it.
func WithTimeout(d time.Duration) LuaOption {
	return func(l *Lua) {
		l.timeout = d
	}
}

// Lua is a template scripted in Lua:
//
//	function render(item, index)
//	    return string.format("%5d  %s", index, item.title)
//	end
//
// gopher-lua states are not goroutine-safe; Render serializes calls.
type Lua struct {
	mu      sync.Mutex
	L       *lua.LState
	fn      *lua.LFunction
	timeout time.Duration
	closed  bool
}

// NewLua compiles source and looks up its render function.
func NewLua(source string, opts ...LuaOption) (*Lua, error) {
	return newLua("<template>", source, opts...)
}

// LoadLua reads and compiles a Lua template file.
func LoadLua(path string, opts ...LuaOption) (*Lua, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return newLua(path, string(data), opts...)
}

func newLua(name, source string, opts ...LuaOption) (*Lua, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	t := &Lua{L: L, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(t)
	}

	fn, err := L.Load(strings.NewReader(source), name)
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("compiling template %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		L.Close()
		return nil, fmt.Errorf("running template %s: %w", name, err)
	}

	render, ok := L.GetGlobal(RenderFunc).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNoRender)
	}
	t.fn = render
	return t, nil
}

// openSafeLibraries opens only the libraries templates need.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// Render implements Template.
func (t *Lua) Render(item any, index int) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return "", ErrClosed
	}

	if t.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		t.L.SetContext(ctx)
		defer t.L.RemoveContext()
	}

	top := t.L.GetTop()
	t.L.Push(t.fn)
	t.L.Push(toLua(t.L, item))
	t.L.Push(lua.LNumber(index))
	if err := t.L.PCall(2, 1, nil); err != nil {
		t.L.SetTop(top)
		return "", fmt.Errorf("render item %d: %w", index, err)
	}

	ret := t.L.Get(-1)
	t.L.SetTop(top)

	if ret == lua.LNil {
		return "", nil
	}
	return ret.String(), nil
}

// Close releases the Lua state. Safe to call repeatedly.
func (t *Lua) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	t.L.Close()
	return nil
}
