// Package script loads board layouts from Lua scripts.
//
// A script builds a layout with the Board constructor and returns it:
//
//	local b = Board.new("spiral", 30)
//	b:ladder(4, 14)
//	b:shoot(27, 5)
//	b:jump(12, -3)
//	return b
//
// Board.classic() returns the 25-square tutorial layout, which scripts may
// extend before returning.
package script

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/louisbranch/ladders/internal/core/board"
)

const layoutTypeName = "board_layout"

// Layout is an unvalidated board description produced by a script.
type Layout struct {
	Name        string
	FinalSquare int
	Offsets     map[int]int
}

// Board validates the layout and builds the board.
func (l *Layout) Board() (*board.Board, error) {
	if l == nil {
		return nil, errors.New("layout is required")
	}
	b, err := board.New(l.FinalSquare, l.Offsets)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", l.Name, err)
	}
	return b, nil
}

// Load runs the Lua script at path and returns the layout it builds.
func Load(path string) (*Layout, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	layout, err := run(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(layout.Name) == "" {
		layout.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return layout, nil
}

// LoadString runs Lua source and returns the layout it builds. The name is
// used for error messages and as the default layout name.
func LoadString(name string, source string) (*Layout, error) {
	state := newState()
	if err := lua.LoadBuffer(state, source, name, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	layout, err := run(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(layout.Name) == "" {
		layout.Name = name
	}
	return layout, nil
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLayoutType(state)
	registerBoardConstructor(state)
	return state
}

func run(state *lua.State) (*Layout, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("board script must return a Board")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	layout, ok := ud.(*Layout)
	if !ok || layout == nil {
		return nil, fmt.Errorf("board script returned an invalid Board")
	}
	return layout, nil
}

func registerLayoutType(state *lua.State) {
	lua.NewMetaTable(state, layoutTypeName)
	state.NewTable()
	lua.SetFunctions(state, layoutMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerBoardConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, boardConstructor, 0)
	state.SetGlobal("Board")
}

var boardConstructor = []lua.RegistryFunction{
	{Name: "new", Function: boardNew},
	{Name: "classic", Function: boardClassic},
}

var layoutMethods = []lua.RegistryFunction{
	{Name: "ladder", Function: layoutLadder},
	{Name: "shoot", Function: layoutShoot},
	{Name: "jump", Function: layoutJump},
	{Name: "clear", Function: layoutClear},
	{Name: "final_square", Function: layoutFinalSquare},
}

// boardNew accepts Board.new(final) or Board.new(name, final).
func boardNew(state *lua.State) int {
	name := ""
	finalIndex := 1
	if state.TypeOf(1) == lua.TypeString {
		name = lua.CheckString(state, 1)
		finalIndex = 2
	}
	final := lua.CheckInteger(state, finalIndex)
	if final < 1 || final > board.MaxFinalSquare {
		lua.ArgumentError(state, finalIndex, fmt.Sprintf("final square must be between 1 and %d", board.MaxFinalSquare))
		return 0
	}
	pushLayout(state, &Layout{Name: name, FinalSquare: final, Offsets: map[int]int{}})
	return 1
}

func boardClassic(state *lua.State) int {
	classic := board.Classic()
	pushLayout(state, &Layout{
		Name:        "classic",
		FinalSquare: classic.FinalSquare(),
		Offsets:     classic.Offsets(),
	})
	return 1
}

func pushLayout(state *lua.State, layout *Layout) {
	state.PushUserData(layout)
	lua.SetMetaTableNamed(state, layoutTypeName)
}

func layoutLadder(state *lua.State) int {
	layout := checkLayout(state)
	from := lua.CheckInteger(state, 2)
	to := lua.CheckInteger(state, 3)
	if to <= from {
		lua.ArgumentError(state, 3, "ladder must climb")
		return 0
	}
	setOffset(state, layout, from, to-from)
	return 0
}

func layoutShoot(state *lua.State) int {
	layout := checkLayout(state)
	from := lua.CheckInteger(state, 2)
	to := lua.CheckInteger(state, 3)
	if to >= from {
		lua.ArgumentError(state, 3, "shoot must descend")
		return 0
	}
	setOffset(state, layout, from, to-from)
	return 0
}

func layoutJump(state *lua.State) int {
	layout := checkLayout(state)
	square := lua.CheckInteger(state, 2)
	offset := lua.CheckInteger(state, 3)
	if offset == 0 {
		lua.ArgumentError(state, 3, "offset must be non-zero")
		return 0
	}
	setOffset(state, layout, square, offset)
	return 0
}

func layoutClear(state *lua.State) int {
	layout := checkLayout(state)
	square := lua.CheckInteger(state, 2)
	delete(layout.Offsets, square)
	return 0
}

func layoutFinalSquare(state *lua.State) int {
	layout := checkLayout(state)
	state.PushInteger(layout.FinalSquare)
	return 1
}

func setOffset(state *lua.State, layout *Layout, square int, offset int) {
	if _, exists := layout.Offsets[square]; exists {
		lua.Errorf(state, "square %d already has a jump", square)
		return
	}
	layout.Offsets[square] = offset
}

func checkLayout(state *lua.State) *Layout {
	ud := lua.CheckUserData(state, 1, layoutTypeName)
	if layout, ok := ud.(*Layout); ok && layout != nil {
		return layout
	}
	lua.ArgumentError(state, 1, "board expected")
	return nil
}
