package container

import (
	"fmt"
	"io"

	"github.com/simonhull/pngme/internal/debug"
	"github.com/simonhull/pngme/internal/types"
)

// Write writes p to w: the signature, then every chunk in order.
func Write(w io.Writer, p *types.PNG) error {
	n, err := p.WriteTo(w)
	if err != nil {
		return fmt.Errorf("write PNG after %d bytes: %w", n, err)
	}
	debug.Log("wrote %d chunks (%d bytes)", len(p.Chunks()), n)
	return nil
}
