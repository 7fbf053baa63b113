package util

import (
	"log/slog"
	"os"
)

// CloseFileFunc closes f and logs, rather than returns, any error. Meant for
// defers on read-only handles where a close failure cannot lose data.
func CloseFileFunc(f *os.File) {
	if err := f.Close(); err != nil {
		slog.Warn("close file", "name", f.Name(), "err", err)
	}
}
