package script

import (
	"strings"

	"github.com/rivo/uniseg"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/wobl/internal/input/key"
	"github.com/dshills/wobl/internal/renderer/core"
)

// install registers the wobl table and replaces print.
func (e *Engine) install() {
	api := map[string]lua.LGFunction{
		"draw_text":      e.luaDrawText,
		"draw_cell":      e.luaDrawCell,
		"clear":          e.luaClear,
		"size":           e.luaSize,
		"fps":            e.luaFPS,
		"set_fps":        e.luaSetFPS,
		"pressed":        e.keyQuery(e.grid.IsKeyPressed),
		"just_pressed":   e.keyQuery(e.grid.IsKeyJustPressed),
		"just_released":  e.keyQuery(e.grid.IsKeyJustReleased),
		"quit_requested": e.luaQuitRequested,
		"log":            e.luaLog,
	}
	e.L.SetGlobal("wobl", e.L.SetFuncs(e.L.NewTable(), api))
	e.L.SetGlobal("print", e.L.NewFunction(e.luaLog))
}

// wobl.draw_text(x, y, text [, fg [, bg [, attrs]]])
func (e *Engine) luaDrawText(L *lua.LState) int {
	x, y := L.CheckInt(1), L.CheckInt(2)
	text := L.CheckString(3)
	fg, bg, attrs := checkStyle(L, 4)
	e.grid.DrawTextAttr(x, y, text, fg, bg, attrs)
	return 0
}

// wobl.draw_cell(x, y, glyph [, fg [, bg [, attrs]]])
// Only the first grapheme of glyph is drawn.
func (e *Engine) luaDrawCell(L *lua.LState) int {
	x, y := L.CheckInt(1), L.CheckInt(2)
	glyph, _, _, _ := uniseg.FirstGraphemeClusterInString(L.CheckString(3), -1)
	fg, bg, attrs := checkStyle(L, 4)
	e.grid.DrawCell(x, y, core.NewGraphemeCell(glyph, fg, bg, attrs))
	return 0
}

func (e *Engine) luaClear(L *lua.LState) int {
	e.grid.Clear()
	return 0
}

func (e *Engine) luaSize(L *lua.LState) int {
	w, h := e.grid.Size()
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	return 2
}

func (e *Engine) luaFPS(L *lua.LState) int {
	L.Push(lua.LNumber(e.grid.FPS()))
	return 1
}

func (e *Engine) luaSetFPS(L *lua.LState) int {
	e.grid.SetFPS(L.CheckInt(1))
	return 0
}

func (e *Engine) luaQuitRequested(L *lua.LState) int {
	L.Push(lua.LBool(e.grid.QuitRequested()))
	return 1
}

// luaLog joins its arguments with spaces, like print.
func (e *Engine) luaLog(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	e.logger.Info("%s", strings.Join(parts, " "))
	return 0
}

func (e *Engine) keyQuery(query func(key.Key) bool) lua.LGFunction {
	return func(L *lua.LState) int {
		name := L.CheckString(1)
		k, ok := key.Parse(name)
		if !ok {
			L.ArgError(1, "unknown key "+name)
			return 0
		}
		L.Push(lua.LBool(query(k)))
		return 1
	}
}

// checkStyle reads optional fg, bg and attrs arguments starting at n.
func checkStyle(L *lua.LState, n int) (fg, bg core.Color, attrs core.Attribute) {
	fg = checkColor(L, n)
	bg = checkColor(L, n+1)
	list := L.OptString(n+2, "")
	for _, name := range strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		a, ok := core.ParseAttribute(name)
		if !ok {
			L.ArgError(n+2, "unknown attribute "+name)
		}
		attrs = attrs.With(a)
	}
	return fg, bg, attrs
}

func checkColor(L *lua.LState, n int) core.Color {
	name := L.OptString(n, "reset")
	c, err := core.ParseColor(name)
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return c
}
