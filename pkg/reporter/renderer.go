package reporter

import (
	"bufio"
	"context"

	"github.com/yaklabco/excmd/pkg/analysis"
)

// Renderer formats an analysis.Report for output.
// Renderers are stateless and only handle presentation logic.
type Renderer interface {
	// Render writes the formatted report to the configured output.
	Render(ctx context.Context, report *analysis.Report) error
}

// flush flushes bw into *err unless an earlier error is already set.
func flush(bw *bufio.Writer, err *error) {
	if flushErr := bw.Flush(); *err == nil {
		*err = flushErr
	}
}
