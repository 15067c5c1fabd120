// Package pesto is a host runtime for directories of user-authored Lua
// scripts. It embeds a Lua interpreter, statically validates and
// auto-formats the scripts with external tooling, exposes a curated
// native API under the `pesto` global, and drives the scripts through a
// fixed-resolution render loop presented letterboxed inside a resizable
// window (via [Ebitengine]).
//
// The typical wiring, as done by cmd/pesto:
//
//	bridge, err := pesto.NewBridge(dir)
//	validator := &pesto.Validator{Analyzer: analyzer, Formatter: formatter,
//		Globals: []string{pesto.GlobalName}}
//	rt := pesto.NewRuntime(dir, bridge, validator, logger)
//	rt.Boot()
//	ebiten.RunGame(pesto.NewGame(rt, cfg))
//
// User scripts reach the host through a single global table. The entry
// script main.lua runs once at startup; afterwards the host calls
// pesto.update(dt) every frame. Any failure, from a missing entry script
// to a runtime error inside update, lands in a terminal error state that
// renders the message on the virtual surface instead of crashing the
// process.
//
// [Ebitengine]: https://ebitengine.org
package pesto

import "image/color"

// Virtual resolution all script drawing targets, independent of the real
// window size.
const (
	VirtualWidth  = 1280
	VirtualHeight = 720
)

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Host palette. colorLime fills the letterbox bars during normal
// operation and colorSkyBlue everywhere while in the error state, so the
// bars double as a state indicator.
var (
	colorWhite   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorBlack   = color.RGBA{0x00, 0x00, 0x00, 0xff}
	colorSkyBlue = color.RGBA{0x66, 0xbf, 0xff, 0xff}
	colorLime    = color.RGBA{0x00, 0xe4, 0x30, 0xff}
)

// ScriptExt is the file extension that marks a file as a user script.
const ScriptExt = ".lua"

// EntryScript is the script the host evaluates first. The host refuses
// to start a directory that does not contain it.
const EntryScript = "main" + ScriptExt
