package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/symtools/symver/pkg/update"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - finalized releases
	colorGreen = lipgloss.Color("35")  // Green - added symbols
	colorRed   = lipgloss.Color("167") // Soft red - removed symbols
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleAdded     = lipgloss.NewStyle().Foreground(colorGreen)
	styleRemoved   = lipgloss.NewStyle().Foreground(colorRed)
	styleFinalized = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// =============================================================================
// Change Report
// =============================================================================

// printNotice writes one change report line to w. The text is the notice's
// stable String form; styling only colors it, so scripts can match on the
// "Added:"/"Removed:"/"Finalized:" prefixes.
func printNotice(w io.Writer, n update.Notice) {
	line := n.String()
	switch n.Kind {
	case update.NoticeAdded:
		line = styleAdded.Render(line)
	case update.NoticeRemoved:
		line = styleRemoved.Render(line)
	case update.NoticeFinalized:
		line = styleFinalized.Render(line)
	}
	fmt.Fprintln(w, line)
}

// printReport writes the full change report in notice order.
func printReport(w io.Writer, notices []update.Notice) {
	for _, n := range notices {
		printNotice(w, n)
	}
}
