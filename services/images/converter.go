package images

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Converter resizes and re-encodes one image file. Implementations must
// leave the destination either absent or fully written; partial output is
// not acceptable even when the process dies mid-conversion.
type Converter interface {
	Convert(ctx context.Context, src, dst string, quality, maxSize int) error
}

// SharpConverter shells out to the sharp CLI. The subprocess writes to a
// sibling temp path which is renamed onto the destination, so a killed
// converter never leaves a torn file at the final URL.
type SharpConverter struct {
	// Bin overrides the converter binary; empty means "sharp".
	Bin string
}

func (c *SharpConverter) bin() string {
	if c.Bin != "" {
		return c.Bin
	}
	return "sharp"
}

func (c *SharpConverter) Convert(ctx context.Context, src, dst string, quality, maxSize int) error {
	partial := dst + ".partial"

	cmd := exec.CommandContext(ctx, c.bin(),
		"--input", src,
		"--format", "avif",
		"--quality", strconv.Itoa(quality),
		"resize", strconv.Itoa(maxSize),
		"--output", partial,
	)
	cmd.Stdout = nil

	if err := cmd.Run(); err != nil {
		os.Remove(partial)
		return fmt.Errorf("sharp: %w", err)
	}

	if err := os.Rename(partial, dst); err != nil {
		os.Remove(partial)
		return fmt.Errorf("finalize converted file: %w", err)
	}
	return nil
}
