// Package scripting hosts optional Lua overrides for economy formulas.
package scripting

import (
	"fmt"
	"log/slog"

	lua "github.com/yuin/gopher-lua"
)

// SellValueFunc is the Lua global consulted for creature resale prices.
const SellValueFunc = "sell_value"

// Engine wraps a single gopher-lua VM.
// Single-goroutine access only (game loop).
type Engine struct {
	vm *lua.LState
}

// NewEngine creates a Lua engine and runs the script at path.
func NewEngine(path string) (*Engine, error) {
	vm := newVM()
	if err := vm.DoFile(path); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	slog.Info("loaded lua script", "file", path, "sell_value", vm.GetGlobal(SellValueFunc) != lua.LNil)
	return &Engine{vm: vm}, nil
}

// NewEngineFromString creates a Lua engine from inline source.
func NewEngineFromString(src string) (*Engine, error) {
	vm := newVM()
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load inline script: %w", err)
	}
	return &Engine{vm: vm}, nil
}

func newVM() *lua.LState {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return vm
}

// SellContext is passed to the Lua sell_value function as a table.
type SellContext struct {
	Species   string
	Price     int64
	Level     int
	FeedCount int
	Default   int64 // value the built-in formula would return
}

// SellValue calls the Lua sell_value function. ok is false when the script
// does not define it or the call fails; callers then keep ctx.Default.
func (e *Engine) SellValue(ctx SellContext) (value int64, ok bool) {
	if e == nil {
		return ctx.Default, false
	}
	fn := e.vm.GetGlobal(SellValueFunc)
	if fn == lua.LNil {
		return ctx.Default, false
	}

	t := e.vm.NewTable()
	t.RawSetString("species", lua.LString(ctx.Species))
	t.RawSetString("price", lua.LNumber(ctx.Price))
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("feeds", lua.LNumber(ctx.FeedCount))
	t.RawSetString("default", lua.LNumber(ctx.Default))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		slog.Error("lua sell_value error", "error", err)
		return ctx.Default, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, isNum := result.(lua.LNumber)
	if !isNum || n < 0 {
		slog.Error("lua sell_value returned invalid value", "value", result.String())
		return ctx.Default, false
	}
	return int64(n), true
}

// Close releases the VM.
func (e *Engine) Close() {
	if e != nil {
		e.vm.Close()
	}
}
