package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for scenario execution. Scenario
// scripts build the starting world through the functions registered by Bind.
// Single-goroutine access only (loop thread).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine with the world-building API not yet bound.
func NewEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

func (e *Engine) Close() {
	e.vm.Close()
}

// RunScenario executes a scenario script file.
func (e *Engine) RunScenario(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("run scenario %s: %w", path, err)
	}
	return nil
}

// RunString executes scenario source directly. Used by tests and the
// debug console.
func (e *Engine) RunString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("run scenario source: %w", err)
	}
	return nil
}
