package pesto

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrToolNotFound is returned by Materialize when a tool ships without
// an embedded blob and cannot be found on PATH either.
var ErrToolNotFound = errors.New("tool not found")

// Tool is an external command-line tool the host depends on. When Blob
// is set (a packaged build embeds the binary), Materialize extracts it
// to a deterministic path under the system temporary directory. Without
// a blob the tool is resolved from PATH; shipping the binaries is a
// packaging concern, not a runtime one.
type Tool struct {
	Name string
	Blob []byte
}

// Materialize ensures the tool exists on local storage and returns its
// path. Extraction is idempotent: a pre-existing file at the target path
// is never overwritten, so a second run leaves content and timestamp
// untouched. Failure here is fatal to startup; validation cannot run
// without the tools.
func (t Tool) Materialize() (string, error) {
	if len(t.Blob) == 0 {
		path, err := exec.LookPath(t.Name)
		if err != nil {
			return "", fmt.Errorf("%w: %s is not embedded and not on PATH", ErrToolNotFound, t.Name)
		}
		return path, nil
	}

	path := filepath.Join(os.TempDir(), t.Name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, t.Blob, 0o755); err != nil {
		return "", fmt.Errorf("extract %s: %w", t.Name, err)
	}
	return path, nil
}
