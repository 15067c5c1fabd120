package pesto

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/pestoengine/pesto/lualibs"
)

// GlobalName is the single well-known global identifier user scripts use
// to reach host and bundled functionality.
const GlobalName = "pesto"

// updateKey is the field of the root table the host calls every frame.
const updateKey = "update"

// ErrMissingUpdate is returned by CallUpdate when the scripts never
// defined pesto.update. Absence is an expected, testable outcome, not an
// interpreter error.
var ErrMissingUpdate = errors.New("update function not found")

// Bridge owns the embedded Lua interpreter and the pesto root table: the
// graphics primitives plus the bundled libraries, assembled once at
// startup and logically immutable afterwards. The interpreter is
// single-owner; all calls happen on the host's one logical thread.
type Bridge struct {
	state  *lua.LState
	root   *lua.LTable
	canvas Canvas
}

// NewBridge creates a fresh interpreter scoped to the process, extends
// the module search path so require() resolves files under dir, builds
// the root table, and exposes it under the pesto global. A failure while
// evaluating a bundled library is returned as an error: the libraries
// ship with the host and must always load, so callers treat this as
// fatal rather than recoverable into the error state.
func NewBridge(dir string) (*Bridge, error) {
	L := lua.NewState()
	b := &Bridge{state: L}

	if err := b.appendSearchPath(dir); err != nil {
		L.Close()
		return nil, err
	}

	root := L.NewTable()
	b.root = root
	b.registerGraphics(root)

	for _, lib := range lualibs.All() {
		value, err := b.eval(lib.Source, lib.Name)
		if err != nil {
			L.Close()
			return nil, fmt.Errorf("load bundled library %s: %w", lib.Name, err)
		}
		L.SetField(root, lib.Key, value)
	}

	L.SetGlobal(GlobalName, root)
	return b, nil
}

// Close releases the interpreter.
func (b *Bridge) Close() {
	b.state.Close()
}

// SetCanvas binds the drawing target the graphics primitives render to.
// The renderer binds the virtual surface; tests bind a recorder.
func (b *Bridge) SetCanvas(c Canvas) {
	b.canvas = c
}

// Root returns the assembled pesto table, mainly so tests can snapshot
// its shape.
func (b *Bridge) Root() *lua.LTable {
	return b.root
}

// appendSearchPath adds "<dir>/?.lua" to package.path so user modules
// resolve relative to the script directory.
func (b *Bridge) appendSearchPath(dir string) error {
	pkg, ok := b.state.GetGlobal("package").(*lua.LTable)
	if !ok {
		return errors.New("interpreter has no package table")
	}
	path := lua.LVAsString(b.state.GetField(pkg, "path"))
	entry := filepath.Join(dir, "?"+ScriptExt)
	b.state.SetField(pkg, "path", lua.LString(path+";"+entry))
	return nil
}

// registerGraphics builds the graphics sub-namespace. Every primitive
// performs an immediate side effect on the bound canvas and returns
// nothing to the script.
func (b *Bridge) registerGraphics(root *lua.LTable) {
	L := b.state
	gfx := L.NewTable()
	L.SetField(gfx, "circle", L.NewFunction(b.luaCircle))
	L.SetField(gfx, "rectangle", L.NewFunction(b.luaRectangle))
	L.SetField(gfx, "line", L.NewFunction(b.luaLine))
	L.SetField(gfx, "print", L.NewFunction(b.luaPrint))
	L.SetField(root, "graphics", gfx)
}

func (b *Bridge) luaCircle(L *lua.LState) int {
	x := float64(L.CheckNumber(1))
	y := float64(L.CheckNumber(2))
	radius := float64(L.CheckNumber(3))
	if b.canvas != nil {
		b.canvas.Circle(x, y, radius)
	}
	return 0
}

func (b *Bridge) luaRectangle(L *lua.LState) int {
	x := float64(L.CheckNumber(1))
	y := float64(L.CheckNumber(2))
	w := float64(L.CheckNumber(3))
	h := float64(L.CheckNumber(4))
	if b.canvas != nil {
		b.canvas.Rectangle(x, y, w, h)
	}
	return 0
}

func (b *Bridge) luaLine(L *lua.LState) int {
	x1 := float64(L.CheckNumber(1))
	y1 := float64(L.CheckNumber(2))
	x2 := float64(L.CheckNumber(3))
	y2 := float64(L.CheckNumber(4))
	if b.canvas != nil {
		b.canvas.Line(x1, y1, x2, y2)
	}
	return 0
}

func (b *Bridge) luaPrint(L *lua.LState) int {
	text := L.CheckString(1)
	x := float64(L.CheckNumber(2))
	y := float64(L.CheckNumber(3))
	if b.canvas != nil {
		b.canvas.Print(text, x, y)
	}
	return 0
}

// eval runs a chunk expected to return a single value, with the given
// name for error attribution.
func (b *Bridge) eval(source, name string) (lua.LValue, error) {
	fn, err := b.state.Load(strings.NewReader(source), name)
	if err != nil {
		return nil, err
	}
	b.state.Push(fn)
	if err := b.state.PCall(0, 1, nil); err != nil {
		return nil, err
	}
	value := b.state.Get(-1)
	b.state.Pop(1)
	return value, nil
}

// RunEntry reads and evaluates the entry script. The chunk is named
// after the file so interpreter errors attribute to it.
func (b *Bridge) RunEntry(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	fn, err := b.state.Load(bytes.NewReader(source), filepath.Base(path))
	if err != nil {
		return err
	}
	b.state.Push(fn)
	return b.state.PCall(0, 0, nil)
}

// CallUpdate looks up the script-defined update callback and invokes it
// with the elapsed frame time in seconds. The root table's update field
// is checked first, then the update global. Returns ErrMissingUpdate
// when the scripts never defined either, or the interpreter's error when
// the call itself fails.
func (b *Bridge) CallUpdate(dt float64) error {
	value := b.state.GetField(b.root, updateKey)
	if _, ok := value.(*lua.LFunction); !ok {
		value = b.state.GetGlobal(updateKey)
	}
	fn, ok := value.(*lua.LFunction)
	if !ok {
		return ErrMissingUpdate
	}
	return b.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(dt))
}
