package images

import (
	"os"

	"go.uber.org/zap"
)

// DeleteFiles removes each path independently, best effort. A failure on
// one file is logged and never stops the rest; an already-absent file is
// not an error. Callers resolve paths to absolute before calling.
func DeleteFiles(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			zap.L().Warn("Failed to remove file",
				zap.String("path", p),
				zap.Error(err),
			)
		}
	}
}
