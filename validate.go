package pesto

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/charmbracelet/log"
)

// Diagnostics holds the warning and error counts parsed from the static
// analyzer's summary line, along with the raw analyzer output that backs
// them. Produced and consumed once during validation.
type Diagnostics struct {
	Warnings uint
	Errors   uint
	Output   string
}

// Clean reports whether the analyzer found nothing to complain about.
func (d Diagnostics) Clean() bool {
	return d.Warnings == 0 && d.Errors == 0
}

// summaryPattern matches the analyzer's summary line, e.g.
// "Total: 2 warnings / 1 error in 3 files".
var summaryPattern = regexp.MustCompile(`(\d+) warnings? / (\d+) errors?`)

// ParseSummary extracts diagnostic counts from analyzer output. A parse
// miss deliberately yields zero/zero: a tool that produced no actionable
// summary is treated as clean, mirroring the analyzer's own behavior of
// omitting the line when there is nothing to report.
func ParseSummary(output string) Diagnostics {
	d := Diagnostics{Output: output}
	m := summaryPattern.FindStringSubmatch(output)
	if m == nil {
		return d
	}
	d.Warnings = parseCount(m[1])
	d.Errors = parseCount(m[2])
	return d
}

// parseCount converts one matched digit run. The pattern guarantees the
// string is all digits, so the only possible failure is a run too large
// for uint; that saturates rather than reading as zero so the summary
// can never pass as clean.
func parseCount(s string) uint {
	n, err := strconv.ParseUint(s, 10, strconv.IntSize)
	if err != nil {
		return ^uint(0)
	}
	return uint(n)
}

// Validator invokes the external static analyzer and code formatter over
// a script directory. Both invocations are synchronous and untimed; a
// hung tool hangs startup.
type Validator struct {
	// Analyzer and Formatter are resolved tool paths (see Tool).
	Analyzer  string
	Formatter string
	// Globals are identifiers the analyzer must accept as defined, so it
	// does not flag the host-provided namespace.
	Globals []string
	// Logger, when set, receives debug output for formatter failures.
	Logger *log.Logger
}

// Check runs the analyzer against dir and parses its stdout for the
// diagnostic summary. The analyzer's exit status is not the signal (it
// exits nonzero whenever it has findings); only a failure to run the
// process at all is an error.
func (v *Validator) Check(dir string) (Diagnostics, error) {
	args := []string{dir}
	for _, g := range v.Globals {
		args = append(args, "--globals", g)
	}
	cmd := exec.Command(v.Analyzer, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return Diagnostics{}, fmt.Errorf("run analyzer: %w", err)
	}
	return ParseSummary(stdout.String()), nil
}

// FormatAll walks dir recursively and runs the formatter in place on
// every script file, one file at a time. Formatter failures are logged
// and otherwise ignored: formatting is cosmetic and never gates
// execution. Only a failure to traverse the directory is an error.
func (v *Validator) FormatAll(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ScriptExt {
			return nil
		}
		if err := exec.Command(v.Formatter, path, "-i").Run(); err != nil {
			if v.Logger != nil {
				v.Logger.Debug("formatter failed", "file", path, "err", err)
			}
		}
		return nil
	})
}
