// Package autopilot steers a snake from a Lua script.
//
// A script defines next_direction(state) and returns "up", "down", "left",
// "right", or nil to keep going straight. state carries width, height, score,
// direction, head {x, y}, fruit {x, y} and body (a list of {x, y}, oldest
// first). It also exposes state.free_space(x, y), the number of cells
// reachable from (x, y), and state.fruit_distance(x, y).
package autopilot

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Mshel/snake/internal/game"
	lua "github.com/yuin/gopher-lua"
)

//go:embed default.lua
var defaultScript string

const (
	entryPoint = "next_direction"

	MaxDecisionTime = 50 * time.Millisecond
)

var ErrNoEntryPoint = errors.New("lua script does not define " + entryPoint)

type Pilot struct {
	mu    sync.Mutex
	state *lua.LState
}

// NewDefault returns a pilot running the embedded greedy script.
func NewDefault() (*Pilot, error) {
	return New(defaultScript)
}

func New(script string) (*Pilot, error) {
	state, err := compile(script)
	if err != nil {
		return nil, err
	}
	return &Pilot{state: state}, nil
}

func Load(path string) (*Pilot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lua script %s: %w", path, err)
	}
	return New(string(raw))
}

func compile(script string) (*lua.LState, error) {
	state := lua.NewState()
	if err := state.DoString(script); err != nil {
		state.Close()
		return nil, fmt.Errorf("could not parse lua script: %w", err)
	}

	if state.GetGlobal(entryPoint).Type() != lua.LTFunction {
		state.Close()
		return nil, ErrNoEntryPoint
	}

	return state, nil
}

// Reload swaps in a new script. On error the current script stays active.
func (p *Pilot) Reload(script string) error {
	state, err := compile(script)
	if err != nil {
		return err
	}

	p.mu.Lock()
	previous := p.state
	p.state = state
	p.mu.Unlock()

	previous.Close()
	return nil
}

func (p *Pilot) ReloadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read lua script %s: %w", path, err)
	}
	return p.Reload(string(raw))
}

// Decide runs the script against the current board. Whatever goes wrong, the
// returned direction is usable: it falls back to the current one.
func (p *Pilot) Decide(view game.RenderData) (game.Direction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), MaxDecisionTime)
	defer cancel()
	p.state.SetContext(ctx)
	defer p.state.RemoveContext()

	err := p.state.CallByParam(lua.P{
		Fn:      p.state.GetGlobal(entryPoint),
		NRet:    1,
		Protect: true,
	}, stateTable(p.state, view))
	if err != nil {
		return view.Direction, fmt.Errorf("could not execute lua script: %w", err)
	}

	ret := p.state.Get(-1)
	p.state.Pop(1)

	switch ret.Type() {
	case lua.LTNil:
		return view.Direction, nil
	case lua.LTString:
		name := lua.LVAsString(ret)
		if name == "" {
			return view.Direction, nil
		}
		dir, err := game.ParseDirection(name)
		if err != nil {
			return view.Direction, err
		}
		return dir, nil
	default:
		return view.Direction, fmt.Errorf("lua script returned %s, expected string", ret.Type().String())
	}
}

func (p *Pilot) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Close()
}

func stateTable(L *lua.LState, view game.RenderData) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("width", lua.LNumber(view.Width))
	tbl.RawSetString("height", lua.LNumber(view.Height))
	tbl.RawSetString("score", lua.LNumber(view.Score))
	tbl.RawSetString("direction", lua.LString(view.Direction.String()))
	tbl.RawSetString("head", coordinateTable(L, view.Head))
	tbl.RawSetString("fruit", coordinateTable(L, view.Fruit))

	body := L.NewTable()
	for _, segment := range view.Body {
		body.Append(coordinateTable(L, segment))
	}
	tbl.RawSetString("body", body)

	// free_space(x, y) and fruit_distance(x, y) let scripts look ahead.
	tbl.RawSetString("free_space", L.NewFunction(func(L *lua.LState) int {
		c := game.Coordinate{X: L.CheckInt(1), Y: L.CheckInt(2)}
		L.Push(lua.LNumber(view.FreeSpace(c)))
		return 1
	}))
	tbl.RawSetString("fruit_distance", L.NewFunction(func(L *lua.LState) int {
		c := game.Coordinate{X: L.CheckInt(1), Y: L.CheckInt(2)}
		L.Push(lua.LNumber(game.ManhattanDistance(c, view.Fruit)))
		return 1
	}))

	return tbl
}

func coordinateTable(L *lua.LState, c game.Coordinate) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("x", lua.LNumber(c.X))
	tbl.RawSetString("y", lua.LNumber(c.Y))
	return tbl
}
