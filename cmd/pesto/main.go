// pesto runs a directory of Lua game scripts.
//
// Usage:
//
//	pesto [dir]
//
// With no argument the current working directory is used. The directory
// must contain a main.lua entry script; a pesto.yml alongside it can set
// the window title, size, and the debug overlay.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/pestoengine/pesto"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pesto [dir]",
	Short: "Pesto - a Lua game host",
	Long: `Pesto loads a directory of Lua scripts, lints and formats them, and
runs them in a fixed-resolution window: scripts draw through the pesto
global at 1280x720 and the result is letterboxed into the real window.

The directory must contain a main.lua entry script defining a top-level
pesto.update(dt) function.

Examples:
  pesto             run the scripts in the current directory
  pesto mygame/     run the scripts in mygame/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHost,
}

func runHost(cmd *cobra.Command, args []string) error {
	// Errors past this point are wiring failures (broken installation),
	// not something a script author can fix; script-level problems land
	// in the rendered error state instead.
	cmd.SilenceUsage = true

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve script directory: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pesto",
	})

	analyzer, err := pesto.Tool{Name: "luacheck"}.Materialize()
	if err != nil {
		return err
	}
	formatter, err := pesto.Tool{Name: "lua-format"}.Materialize()
	if err != nil {
		return err
	}
	logger.Info("tools ready", "analyzer", analyzer, "formatter", formatter)

	cfg, err := pesto.LoadConfig(dir)
	if err != nil {
		return err
	}

	bridge, err := pesto.NewBridge(dir)
	if err != nil {
		return err
	}
	defer bridge.Close()

	validator := &pesto.Validator{
		Analyzer:  analyzer,
		Formatter: formatter,
		Globals:   []string{pesto.GlobalName},
		Logger:    logger,
	}

	runtime := pesto.NewRuntime(dir, bridge, validator, logger)
	runtime.Boot()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(pesto.NewGame(runtime, cfg))
}
