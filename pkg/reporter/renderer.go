package reporter

import (
	"context"

	"github.com/yaklabco/aspxgen/pkg/analysis"
)

// Renderer presents an analysis.Report. Renderers hold no run state.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}
