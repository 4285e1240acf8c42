// script_input.go - Lua-scripted performance input

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

func init() {
	compiledFeatures = append(compiledFeatures, "input:lua")
}

// ScriptInput asks a Lua script for each frame's controls. The script
// defines
//
//	function frame(n) return { x=.., y=.., touch=true, bend=0, key=0, wave=0 } end
//
// where key and wave are press counts for that frame. Returning nil, or a
// table with quit=true, ends the performance.
type ScriptInput struct {
	L     *lua.LState
	fn    *lua.LFunction
	name  string
	frame int
	done  bool
}

// NewScriptInput loads a script file.
func NewScriptInput(path string) (*ScriptInput, error) {
	L := newScriptState()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return newScriptInput(L, path)
}

// NewScriptInputString loads a script from source text.
func NewScriptInputString(name, src string) (*ScriptInput, error) {
	L := newScriptState()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	return newScriptInput(L, name)
}

func newScriptState() *lua.LState {
	L := lua.NewState()
	L.SetGlobal("WIDTH", lua.LNumber(LOGICAL_WIDTH))
	L.SetGlobal("HEIGHT", lua.LNumber(LOGICAL_HEIGHT))
	L.SetGlobal("SLICES", lua.LNumber(NOTE_SLICES))
	L.SetGlobal("TPS", lua.LNumber(DEFAULT_TPS))
	L.SetGlobal("slice_x", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(sliceCenterX(L.CheckInt(1))))
		return 1
	}))
	return L
}

func newScriptInput(L *lua.LState, name string) (*ScriptInput, error) {
	fn, ok := L.GetGlobal("frame").(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("script %s: no frame(n) function", name)
	}
	return &ScriptInput{L: L, fn: fn, name: name}, nil
}

func (si *ScriptInput) Poll() InputState {
	if si.done {
		return InputState{Quit: true}
	}

	err := si.L.CallByParam(lua.P{Fn: si.fn, NRet: 1, Protect: true}, lua.LNumber(si.frame))
	if err != nil {
		logger.Error("script frame failed", "script", si.name, "frame", si.frame, "err", err)
		si.done = true
		return InputState{Quit: true}
	}
	ret := si.L.Get(-1)
	si.L.Pop(1)
	si.frame++

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		if ret != lua.LNil {
			logger.Warn("script frame returned non-table, stopping", "script", si.name, "type", ret.Type().String())
		}
		si.done = true
		return InputState{Quit: true}
	}

	in := InputState{
		TouchX:    float64(lua.LVAsNumber(tbl.RawGetString("x"))),
		TouchY:    float64(lua.LVAsNumber(tbl.RawGetString("y"))),
		Touching:  lua.LVAsBool(tbl.RawGetString("touch")),
		Bend:      float64(lua.LVAsNumber(tbl.RawGetString("bend"))),
		KeyDelta:  int(lua.LVAsNumber(tbl.RawGetString("key"))),
		WaveDelta: int(lua.LVAsNumber(tbl.RawGetString("wave"))),
		Quit:      lua.LVAsBool(tbl.RawGetString("quit")),
	}
	if in.Quit {
		si.done = true
	}
	return in
}

// Frames is the number of frames the script has produced.
func (si *ScriptInput) Frames() int {
	return si.frame
}

func (si *ScriptInput) Close() {
	si.L.Close()
}
