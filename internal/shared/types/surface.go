package types

import (
	"io"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

// ChartHandle is a live chart drawn on a surface. Handles are never mutated: a new pass
// destroys the old handle and draws a new one.
type ChartHandle interface {
	Slot() string
	Destroy()
}

// Surface is a render target that owns one mount point per chart slot.
type Surface interface {
	// HasMount reports whether the surface has a mount point for the slot.
	HasMount(slot string) bool
	// Draw creates a chart for the spec in its slot.
	Draw(spec entity.ChartSpec) (ChartHandle, error)
	// Placeholder fills the slot with a message instead of a chart.
	Placeholder(slot, title, message string) ChartHandle
	// Render writes every live chart, in slot order.
	Render(w io.Writer) error
}
